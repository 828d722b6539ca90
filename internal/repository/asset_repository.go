package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/domain"
)

// AssetFilter captures inventory listing parameters.
type AssetFilter struct {
	ClientID   *string
	Orphans    bool
	SearchTerm *string
	Limit      int
	Offset     int
}

// AssetRepository defines persistence access for inventory items.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	Update(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	List(ctx context.Context, filter AssetFilter) ([]domain.Asset, error)
}

type assetRepository struct {
	db DB
}

// NewAssetRepository returns a Postgres-backed implementation.
func NewAssetRepository(db DB) AssetRepository {
	return &assetRepository{db: db}
}

const assetColumns = `
        id, identifier, serial_number, name, status, location_details, client_id, created_at, updated_at`

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	const query = `
        INSERT INTO assets (identifier, serial_number, name, status, location_details, client_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		asset.Identifier,
		asset.SerialNumber,
		asset.Name,
		asset.Status,
		asset.LocationDetails,
		asset.ClientID,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	const query = `
        UPDATE assets SET identifier=$1, serial_number=$2, name=$3, status=$4, location_details=$5,
            client_id=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.db.Exec(ctx, query,
		asset.Identifier,
		asset.SerialNumber,
		asset.Name,
		asset.Status,
		asset.LocationDetails,
		asset.ClientID,
		asset.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	query := `SELECT` + assetColumns + ` FROM assets WHERE id=$1`
	var asset domain.Asset
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&asset.ID,
		&asset.Identifier,
		&asset.SerialNumber,
		&asset.Name,
		&asset.Status,
		&asset.LocationDetails,
		&asset.ClientID,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context, filter AssetFilter) ([]domain.Asset, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		clauses = append(clauses, fmt.Sprintf("client_id=$%d", len(args)))
	}
	if filter.Orphans {
		clauses = append(clauses, "client_id IS NULL")
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(identifier) LIKE %s OR LOWER(serial_number) LIKE %s OR LOWER(name) LIKE %s)", placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT%s FROM assets WHERE %s ORDER BY identifier ASC LIMIT %d OFFSET %d`,
		assetColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Asset
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.Identifier,
			&asset.SerialNumber,
			&asset.Name,
			&asset.Status,
			&asset.LocationDetails,
			&asset.ClientID,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, asset)
	}
	return result, rows.Err()
}
