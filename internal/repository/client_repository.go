package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/domain"
)

// ClientFilter captures client listing parameters.
type ClientFilter struct {
	CoordinatorID *string
	Status        *domain.ClientStatus
	Unassigned    bool
	Limit         int
	Offset        int
}

// ClientRepository defines persistence access for client organizations.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]domain.Client, error)
}

type clientRepository struct {
	db DB
}

// NewClientRepository returns a Postgres-backed implementation.
func NewClientRepository(db DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `
        id, organization, full_name, email, phone, password_hash, coordinator_id,
        status, blocked_until, block_reason, created_at, updated_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (organization, full_name, email, phone, password_hash, coordinator_id, status, blocked_until, block_reason)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		client.Organization,
		client.FullName,
		client.Email,
		client.Phone,
		client.PasswordHash,
		client.CoordinatorID,
		client.Status,
		client.BlockedUntil,
		client.BlockReason,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	const query = `
        UPDATE clients SET organization=$1, full_name=$2, email=$3, phone=$4, password_hash=$5,
            coordinator_id=$6, status=$7, blocked_until=$8, block_reason=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.db.Exec(ctx, query,
		client.Organization,
		client.FullName,
		client.Email,
		client.Phone,
		client.PasswordHash,
		client.CoordinatorID,
		client.Status,
		client.BlockedUntil,
		client.BlockReason,
		client.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT` + clientColumns + ` FROM clients WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	query := `SELECT` + clientColumns + ` FROM clients WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *clientRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Client, error) {
	var client domain.Client
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&client.ID,
		&client.Organization,
		&client.FullName,
		&client.Email,
		&client.Phone,
		&client.PasswordHash,
		&client.CoordinatorID,
		&client.Status,
		&client.BlockedUntil,
		&client.BlockReason,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, filter ClientFilter) ([]domain.Client, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CoordinatorID != nil {
		args = append(args, *filter.CoordinatorID)
		clauses = append(clauses, fmt.Sprintf("coordinator_id=$%d", len(args)))
	}
	if filter.Unassigned {
		clauses = append(clauses, "coordinator_id IS NULL")
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT%s FROM clients WHERE %s ORDER BY organization ASC LIMIT %d OFFSET %d`,
		clientColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(
			&client.ID,
			&client.Organization,
			&client.FullName,
			&client.Email,
			&client.Phone,
			&client.PasswordHash,
			&client.CoordinatorID,
			&client.Status,
			&client.BlockedUntil,
			&client.BlockReason,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, client)
	}
	return result, rows.Err()
}
