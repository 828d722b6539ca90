package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/auth"
	"github.com/spec-kit/field-service/internal/config"
	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/repository"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// AuthService coordinates portal, client, and kiosk login flows. All
// credentials are bcrypt-hashed; the old practice of matching plaintext
// passwords straight against profile rows is gone.
type AuthService struct {
	profiles   repository.ProfileRepository
	clients    repository.ClientRepository
	tokenMgr   *auth.TokenManager
	throttle   *auth.PinThrottle
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	ProfileRepo repository.ProfileRepository
	ClientRepo  repository.ClientRepository
	Throttle    *auth.PinThrottle
}

// NewAuthService builds the service.
func NewAuthService(cfg *config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		profiles:   deps.ProfileRepo,
		clients:    deps.ClientRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		throttle:   deps.Throttle,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// LoginStaff authenticates a staff member via the portal.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*domain.Profile, string, time.Time, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, invalidCredentials(err)
	}
	if !profile.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("profile inactive")
	}
	if profile.PasswordHash == nil || auth.ComparePassword(*profile.PasswordHash, password) != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(profile.ID, auth.SubjectStaff, profile.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return profile, token, exp, nil
}

// LoginClient authenticates a client portal account.
func (s *AuthService) LoginClient(ctx context.Context, email, password string) (*domain.Client, string, time.Time, error) {
	client, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, invalidCredentials(err)
	}
	if client.Status == domain.ClientStatusBlocked {
		return nil, "", time.Time{}, apperrors.NewForbidden("client blocked")
	}
	if client.PasswordHash == nil || auth.ComparePassword(*client.PasswordHash, password) != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(client.ID, auth.SubjectClient, domain.RoleCliente)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return client, token, exp, nil
}

// LoginKiosk authenticates a field operative on a shared device by employee
// code and PIN, rate-limited per code.
func (s *AuthService) LoginKiosk(ctx context.Context, code, pin string) (*domain.Profile, string, time.Time, error) {
	if s.throttle.Blocked(ctx, code) {
		return nil, "", time.Time{}, apperrors.NewForbidden("too many attempts, try again later")
	}
	profile, err := s.profiles.GetByEmployeeCode(ctx, code)
	if err != nil {
		s.throttle.RecordFailure(ctx, code)
		return nil, "", time.Time{}, invalidCredentials(err)
	}
	if !profile.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("profile inactive")
	}
	if profile.Role != domain.RoleOperativo && profile.Role != domain.RoleKioskMaster {
		return nil, "", time.Time{}, apperrors.NewForbidden("role cannot use kiosk")
	}
	if profile.PINHash == nil || auth.ComparePIN(*profile.PINHash, pin) != nil {
		s.throttle.RecordFailure(ctx, code)
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	s.throttle.Reset(ctx, code)
	token, exp, err := s.tokenMgr.GenerateToken(profile.ID, auth.SubjectStaff, profile.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return profile, token, exp, nil
}

// ChangePassword verifies the current password before updating the hash.
func (s *AuthService) ChangePassword(ctx context.Context, kind auth.SubjectKind, subjectID, currentPassword, newPassword string) error {
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}

	switch kind {
	case auth.SubjectStaff:
		profile, err := s.profiles.GetByID(ctx, subjectID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if profile.PasswordHash == nil || auth.ComparePassword(*profile.PasswordHash, currentPassword) != nil {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		profile.PasswordHash = &hash
		return apperrors.MapError(s.profiles.Update(ctx, profile))
	case auth.SubjectClient:
		client, err := s.clients.GetByID(ctx, subjectID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if client.PasswordHash == nil || auth.ComparePassword(*client.PasswordHash, currentPassword) != nil {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		client.PasswordHash = &hash
		return apperrors.MapError(s.clients.Update(ctx, client))
	default:
		return apperrors.NewUnauthorized("unknown subject")
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func invalidCredentials(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	return apperrors.MapError(err)
}
