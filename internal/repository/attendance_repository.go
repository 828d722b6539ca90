package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/domain"
)

// AttendanceRepository stores clock events.
type AttendanceRepository interface {
	Create(ctx context.Context, log *domain.AttendanceLog) error
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.AttendanceLog, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.AttendanceLog, error)
	HasEntradaOn(ctx context.Context, userID string, day time.Time) (bool, error)
}

type attendanceRepository struct {
	db DB
}

// NewAttendanceRepository returns a Postgres-backed implementation.
func NewAttendanceRepository(db DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
        id, user_id, check_type, latitude, longitude, photo_url, notes, created_at`

func (r *attendanceRepository) Create(ctx context.Context, log *domain.AttendanceLog) error {
	const query = `
        INSERT INTO attendance_logs (user_id, check_type, latitude, longitude, photo_url, notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		log.UserID,
		log.CheckType,
		log.Latitude,
		log.Longitude,
		log.PhotoURL,
		log.Notes,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *attendanceRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.AttendanceLog, error) {
	query := `SELECT` + attendanceColumns + `
        FROM attendance_logs WHERE user_id=$1 AND created_at >= $2 AND created_at < $3
        ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttendanceLogs(rows)
}

func (r *attendanceRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.AttendanceLog, error) {
	query := `SELECT` + attendanceColumns + `
        FROM attendance_logs WHERE created_at >= $1 AND created_at < $2
        ORDER BY user_id ASC, created_at ASC`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttendanceLogs(rows)
}

func (r *attendanceRepository) HasEntradaOn(ctx context.Context, userID string, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM attendance_logs
            WHERE user_id=$1 AND check_type=$2 AND created_at >= $3 AND created_at < $4
        )`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, domain.CheckTypeEntrada, start, end).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanAttendanceLogs(rows pgx.Rows) ([]domain.AttendanceLog, error) {
	var result []domain.AttendanceLog
	for rows.Next() {
		var log domain.AttendanceLog
		if err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.CheckType,
			&log.Latitude,
			&log.Longitude,
			&log.PhotoURL,
			&log.Notes,
			&log.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, log)
	}
	return result, rows.Err()
}
