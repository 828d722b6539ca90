package service

import (
	"context"
	"sort"
	"time"

	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/repository"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// AttendanceService records clock events and derives per-day summaries.
type AttendanceService struct {
	logs repository.AttendanceRepository
	now  func() time.Time
}

// NewAttendanceService constructs the service.
func NewAttendanceService(logs repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{logs: logs, now: time.Now}
}

// ClockInput carries the capture metadata for one clock event.
type ClockInput struct {
	Latitude  *float64
	Longitude *float64
	PhotoURL  string
	Notes     string
}

// ClockIn records an ENTRADA. A second clock-in on the same calendar day is
// rejected.
func (s *AttendanceService) ClockIn(ctx context.Context, userID string, input ClockInput) (*domain.AttendanceLog, error) {
	exists, err := s.logs.HasEntradaOn(ctx, userID, s.now())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if exists {
		return nil, apperrors.NewConflict("already clocked in today", map[string]any{"user_id": userID})
	}
	return s.record(ctx, userID, domain.CheckTypeEntrada, input)
}

// ClockOut records a SALIDA (or SALIDA_MANUAL when entered by a supervisor).
func (s *AttendanceService) ClockOut(ctx context.Context, userID string, manual bool, input ClockInput) (*domain.AttendanceLog, error) {
	checkType := domain.CheckTypeSalida
	if manual {
		checkType = domain.CheckTypeSalidaManual
	}
	return s.record(ctx, userID, checkType, input)
}

func (s *AttendanceService) record(ctx context.Context, userID string, checkType domain.CheckType, input ClockInput) (*domain.AttendanceLog, error) {
	log := &domain.AttendanceLog{
		UserID:    userID,
		CheckType: checkType,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		PhotoURL:  input.PhotoURL,
		Notes:     input.Notes,
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, apperrors.MapError(err)
	}
	return log, nil
}

// DaySummaries groups all clock events in [from, to) into entrada/salida
// pairs per (user, calendar date).
func (s *AttendanceService) DaySummaries(ctx context.Context, from, to time.Time) ([]domain.AttendanceDay, error) {
	logs, err := s.logs.ListBetween(ctx, from, to)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return PairLogs(logs), nil
}

// UserDaySummaries is DaySummaries restricted to one user.
func (s *AttendanceService) UserDaySummaries(ctx context.Context, userID string, from, to time.Time) ([]domain.AttendanceDay, error) {
	logs, err := s.logs.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return PairLogs(logs), nil
}

// PairLogs groups clock events by (user, calendar date): the first ENTRADA
// opens the day, the last salida-kind event closes it. Days are returned in
// (user, date) order.
func PairLogs(logs []domain.AttendanceLog) []domain.AttendanceDay {
	type key struct {
		userID string
		date   time.Time
	}
	days := map[key]*domain.AttendanceDay{}
	var keys []key

	for i := range logs {
		log := logs[i]
		created := log.CreatedAt
		date := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, created.Location())
		k := key{userID: log.UserID, date: date}
		day, ok := days[k]
		if !ok {
			day = &domain.AttendanceDay{UserID: log.UserID, Date: date}
			days[k] = day
			keys = append(keys, k)
		}
		switch {
		case log.CheckType == domain.CheckTypeEntrada:
			if day.Entrada == nil || log.CreatedAt.Before(day.Entrada.CreatedAt) {
				entry := log
				day.Entrada = &entry
			}
		case log.CheckType.IsSalida():
			if day.Salida == nil || log.CreatedAt.After(day.Salida.CreatedAt) {
				exit := log
				day.Salida = &exit
			}
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].userID != keys[j].userID {
			return keys[i].userID < keys[j].userID
		}
		return keys[i].date.Before(keys[j].date)
	})

	result := make([]domain.AttendanceDay, 0, len(keys))
	for _, k := range keys {
		result = append(result, *days[k])
	}
	return result
}
