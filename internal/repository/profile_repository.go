package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/domain"
)

// ProfileFilter captures staff listing parameters.
type ProfileFilter struct {
	Role     *domain.Role
	Position *domain.Position
	Active   *bool
	Limit    int
	Offset   int
}

// ProfileRepository defines persistence access for staff profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetByEmployeeCode(ctx context.Context, code string) (*domain.Profile, error)
	List(ctx context.Context, filter ProfileFilter) ([]domain.Profile, error)
}

type profileRepository struct {
	db DB
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(db DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
        id, full_name, email, password_hash, role, position, employee_code, pin_hash, active, created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO profiles (full_name, email, password_hash, role, position, employee_code, pin_hash, active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		profile.FullName,
		profile.Email,
		profile.PasswordHash,
		profile.Role,
		profile.Position,
		profile.EmployeeCode,
		profile.PINHash,
		profile.Active,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	const query = `
        UPDATE profiles SET full_name=$1, email=$2, password_hash=$3, role=$4, position=$5,
            employee_code=$6, pin_hash=$7, active=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.db.Exec(ctx, query,
		profile.FullName,
		profile.Email,
		profile.PasswordHash,
		profile.Role,
		profile.Position,
		profile.EmployeeCode,
		profile.PINHash,
		profile.Active,
		profile.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT` + profileColumns + ` FROM profiles WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT` + profileColumns + ` FROM profiles WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *profileRepository) GetByEmployeeCode(ctx context.Context, code string) (*domain.Profile, error) {
	query := `SELECT` + profileColumns + ` FROM profiles WHERE employee_code=$1`
	return r.fetchSingle(ctx, query, code)
}

func (r *profileRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Email,
		&profile.PasswordHash,
		&profile.Role,
		&profile.Position,
		&profile.EmployeeCode,
		&profile.PINHash,
		&profile.Active,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context, filter ProfileFilter) ([]domain.Profile, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.Position != nil {
		args = append(args, *filter.Position)
		clauses = append(clauses, fmt.Sprintf("position=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT%s FROM profiles WHERE %s ORDER BY full_name ASC LIMIT %d OFFSET %d`,
		profileColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Profile
	for rows.Next() {
		var profile domain.Profile
		if err := rows.Scan(
			&profile.ID,
			&profile.FullName,
			&profile.Email,
			&profile.PasswordHash,
			&profile.Role,
			&profile.Position,
			&profile.EmployeeCode,
			&profile.PINHash,
			&profile.Active,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}
