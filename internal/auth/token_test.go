package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/field-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("unit-secret", 30)

	token, exp, err := tm.GenerateToken("p1", SubjectStaff, domain.RoleCoordinador)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if remaining := time.Until(exp); remaining < 29*time.Minute || remaining > 31*time.Minute {
		t.Fatalf("expiry %v not ~30m out", exp)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.SubjectID != "p1" || claims.Subject != SubjectStaff || claims.Role != domain.RoleCoordinador {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 30).GenerateToken("p1", SubjectClient, domain.RoleCliente)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := NewTokenManager("secret-b", 30).ParseToken(token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := NewTokenManager("unit-secret", 30).ParseToken("not-a-token"); err == nil {
		t.Fatal("garbage input must not parse")
	}
}

func TestTokenManagerDefaultTTL(t *testing.T) {
	tm := NewTokenManager("unit-secret", 0)
	_, exp, err := tm.GenerateToken("p1", SubjectStaff, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if remaining := time.Until(exp); remaining < 59*time.Minute || remaining > 61*time.Minute {
		t.Fatalf("default ttl expiry %v not ~60m out", exp)
	}
}
