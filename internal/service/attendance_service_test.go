package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/field-service/internal/domain"
)

func TestClockInOncePerDay(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(repo)

	lat, lng := 19.4326, -99.1332
	log, err := svc.ClockIn(context.Background(), "u1", ClockInput{Latitude: &lat, Longitude: &lng, PhotoURL: "photo.jpg"})
	if err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	if log.CheckType != domain.CheckTypeEntrada {
		t.Fatalf("CheckType = %q, want ENTRADA", log.CheckType)
	}
	if log.Latitude == nil || *log.Latitude != lat || log.PhotoURL != "photo.jpg" {
		t.Fatalf("capture metadata not stored: %+v", log)
	}

	if _, err := svc.ClockIn(context.Background(), "u1", ClockInput{}); err == nil {
		t.Fatal("second same-day clock-in must conflict")
	}

	// Another user is unaffected.
	if _, err := svc.ClockIn(context.Background(), "u2", ClockInput{}); err != nil {
		t.Fatalf("clock-in for second user: %v", err)
	}
}

func TestClockOutCheckTypes(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(repo)

	regular, err := svc.ClockOut(context.Background(), "u1", false, ClockInput{})
	if err != nil {
		t.Fatalf("ClockOut: %v", err)
	}
	if regular.CheckType != domain.CheckTypeSalida {
		t.Fatalf("CheckType = %q, want SALIDA", regular.CheckType)
	}

	manual, err := svc.ClockOut(context.Background(), "u1", true, ClockInput{Notes: "olvido marcar"})
	if err != nil {
		t.Fatalf("manual ClockOut: %v", err)
	}
	if manual.CheckType != domain.CheckTypeSalidaManual {
		t.Fatalf("CheckType = %q, want SALIDA_MANUAL", manual.CheckType)
	}
	if manual.Notes != "olvido marcar" {
		t.Fatalf("Notes = %q", manual.Notes)
	}
}

func TestPairLogs(t *testing.T) {
	at := func(value string) time.Time {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		return parsed
	}
	logEntry := func(user string, ct domain.CheckType, when string) domain.AttendanceLog {
		return domain.AttendanceLog{UserID: user, CheckType: ct, CreatedAt: at(when)}
	}

	logs := []domain.AttendanceLog{
		logEntry("u2", domain.CheckTypeEntrada, "2025-06-03T08:05:00Z"),
		logEntry("u1", domain.CheckTypeEntrada, "2025-06-03T08:00:00Z"),
		logEntry("u1", domain.CheckTypeSalida, "2025-06-03T12:00:00Z"),
		logEntry("u1", domain.CheckTypeSalidaAuto, "2025-06-03T17:00:00Z"),
		logEntry("u1", domain.CheckTypeEntrada, "2025-06-04T08:10:00Z"),
	}

	days := PairLogs(logs)
	if len(days) != 3 {
		t.Fatalf("len(days) = %d, want 3", len(days))
	}

	// Ordered by user then date.
	first := days[0]
	if first.UserID != "u1" || first.Date.Day() != 3 {
		t.Fatalf("days[0] = %s/%s", first.UserID, first.Date)
	}
	if first.Entrada == nil || !first.Entrada.CreatedAt.Equal(at("2025-06-03T08:00:00Z")) {
		t.Fatalf("entrada = %+v", first.Entrada)
	}
	// Last salida-kind event closes the day.
	if first.Salida == nil || first.Salida.CheckType != domain.CheckTypeSalidaAuto {
		t.Fatalf("salida = %+v, want the 17:00 auto checkout", first.Salida)
	}

	second := days[1]
	if second.UserID != "u1" || second.Date.Day() != 4 {
		t.Fatalf("days[1] = %s/%s", second.UserID, second.Date)
	}
	if second.Salida != nil {
		t.Fatal("open day must have nil salida")
	}

	if days[2].UserID != "u2" {
		t.Fatalf("days[2].UserID = %s", days[2].UserID)
	}
}

func TestUserDaySummaries(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	base := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	repo.logs = []domain.AttendanceLog{
		{ID: "1", UserID: "u1", CheckType: domain.CheckTypeEntrada, CreatedAt: base},
		{ID: "2", UserID: "u1", CheckType: domain.CheckTypeSalida, CreatedAt: base.Add(9 * time.Hour)},
		{ID: "3", UserID: "u2", CheckType: domain.CheckTypeEntrada, CreatedAt: base.Add(10 * time.Minute)},
	}
	svc := NewAttendanceService(repo)

	days, err := svc.UserDaySummaries(context.Background(), "u1", base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("UserDaySummaries: %v", err)
	}
	if len(days) != 1 || days[0].UserID != "u1" {
		t.Fatalf("days = %+v, want only u1", days)
	}
	if days[0].Entrada == nil || days[0].Salida == nil {
		t.Fatalf("day not paired: %+v", days[0])
	}
}
