package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/domain"
)

// AccessRequestRepository stores self-service signup requests.
type AccessRequestRepository interface {
	Create(ctx context.Context, request *domain.AccessRequest) error
	GetByID(ctx context.Context, id string) (*domain.AccessRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]domain.AccessRequest, error)
	Resolve(ctx context.Context, id string, status domain.AccessRequestStatus) error
}

type accessRequestRepository struct {
	db DB
}

// NewAccessRequestRepository returns a Postgres-backed implementation.
func NewAccessRequestRepository(db DB) AccessRequestRepository {
	return &accessRequestRepository{db: db}
}

func (r *accessRequestRepository) Create(ctx context.Context, request *domain.AccessRequest) error {
	const query = `
        INSERT INTO access_requests (email, full_name, organization, phone, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		request.Email,
		request.FullName,
		request.Organization,
		request.Phone,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt)
}

func (r *accessRequestRepository) GetByID(ctx context.Context, id string) (*domain.AccessRequest, error) {
	const query = `
        SELECT id, email, full_name, organization, phone, status, created_at, resolved_at
        FROM access_requests WHERE id=$1`
	var request domain.AccessRequest
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.Email,
		&request.FullName,
		&request.Organization,
		&request.Phone,
		&request.Status,
		&request.CreatedAt,
		&request.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *accessRequestRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.AccessRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, email, full_name, organization, phone, status, created_at, resolved_at
        FROM access_requests WHERE status=$1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, domain.AccessRequestPending, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AccessRequest
	for rows.Next() {
		var request domain.AccessRequest
		if err := rows.Scan(
			&request.ID,
			&request.Email,
			&request.FullName,
			&request.Organization,
			&request.Phone,
			&request.Status,
			&request.CreatedAt,
			&request.ResolvedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}

func (r *accessRequestRepository) Resolve(ctx context.Context, id string, status domain.AccessRequestStatus) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE access_requests SET status=$1, resolved_at=NOW() WHERE id=$2 AND status=$3`,
		status, id, domain.AccessRequestPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
