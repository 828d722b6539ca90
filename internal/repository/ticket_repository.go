package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/domain"
)

// TicketFilter captures listing parameters.
type TicketFilter struct {
	ClientID      *string
	CoordinatorID *string
	LeaderID      *string
	Statuses      []domain.TicketStatus
	SearchTerm    *string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Limit         int
	Offset        int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByServiceCode(ctx context.Context, code string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	// ListScheduledBetween returns open tickets scheduled in the half-open
	// window [from, to).
	ListScheduledBetween(ctx context.Context, from, to time.Time, leaderID *string) ([]domain.Ticket, error)
	ListUnscheduled(ctx context.Context, leaderID *string) ([]domain.Ticket, error)
	Delete(ctx context.Context, id string) error
}

type ticketRepository struct {
	db DB
}

// NewTicketRepository instantiates the repository over a pool or transaction.
func NewTicketRepository(db DB) TicketRepository {
	return &ticketRepository{db: db}
}

// ticketColumns reads the canonical relationship columns with a fallback to
// the legacy names so rows written by older components still resolve.
const ticketColumns = `
        id, service_code, service_type, status, client_id, client_email, company,
        COALESCE(coordinator_id, coordinador_id), COALESCE(leader_id, technical_lead_id), auxiliary_id,
        scheduled_date, description, location, technical_result, service_done_comment, additional_details,
        satisfaction_rating, feedback_cliente, auditoria_cliente, evaluacion_privada, logs,
        created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (service_code, service_type, status, client_id, client_email, company,
            coordinator_id, coordinador_id, leader_id, technical_lead_id, auxiliary_id,
            scheduled_date, description, location, technical_result, service_done_comment, additional_details,
            satisfaction_rating, feedback_cliente, auditoria_cliente, evaluacion_privada, logs)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$7,$8,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		ticket.ServiceCode,
		ticket.ServiceType,
		ticket.Status,
		ticket.ClientID,
		ticket.ClientEmail,
		ticket.Company,
		ticket.CoordinatorID,
		ticket.LeaderID,
		ticket.AuxiliaryID,
		ticket.ScheduledDate,
		ticket.Description,
		ticket.Location,
		ticket.TechnicalResult,
		ticket.ServiceDoneComment,
		ticket.AdditionalDetails,
		ticket.SatisfactionRating,
		ticket.ClientFeedback,
		ticket.ClientAudit,
		ticket.Rated,
		ticket.Logs,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	// Both legacy column pairs are written on every update; several old
	// readers consult only one of the two names.
	const query = `
        UPDATE tickets SET service_type=$1, status=$2, client_id=$3, client_email=$4, company=$5,
            coordinator_id=$6, coordinador_id=$6, leader_id=$7, technical_lead_id=$7, auxiliary_id=$8,
            scheduled_date=$9, description=$10, location=$11, technical_result=$12,
            service_done_comment=$13, additional_details=$14, satisfaction_rating=$15,
            feedback_cliente=$16, auditoria_cliente=$17, evaluacion_privada=$18, logs=$19,
            updated_at=NOW()
        WHERE id=$20`
	cmd, err := r.db.Exec(ctx, query,
		ticket.ServiceType,
		ticket.Status,
		ticket.ClientID,
		ticket.ClientEmail,
		ticket.Company,
		ticket.CoordinatorID,
		ticket.LeaderID,
		ticket.AuxiliaryID,
		ticket.ScheduledDate,
		ticket.Description,
		ticket.Location,
		ticket.TechnicalResult,
		ticket.ServiceDoneComment,
		ticket.AdditionalDetails,
		ticket.SatisfactionRating,
		ticket.ClientFeedback,
		ticket.ClientAudit,
		ticket.Rated,
		ticket.Logs,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT` + ticketColumns + ` FROM tickets WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByServiceCode(ctx context.Context, code string) (*domain.Ticket, error) {
	query := `SELECT` + ticketColumns + ` FROM tickets WHERE service_code=$1`
	return r.fetchSingle(ctx, query, code)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := scanTicket(r.db.QueryRow(ctx, query, arg), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		clauses = append(clauses, fmt.Sprintf("client_id=$%d", len(args)))
	}
	if filter.CoordinatorID != nil {
		args = append(args, *filter.CoordinatorID)
		clauses = append(clauses, fmt.Sprintf("COALESCE(coordinator_id, coordinador_id)=$%d", len(args)))
	}
	if filter.LeaderID != nil {
		args = append(args, *filter.LeaderID)
		clauses = append(clauses, fmt.Sprintf("COALESCE(leader_id, technical_lead_id)=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(service_code) LIKE %s OR LOWER(description) LIKE %s OR LOWER(company) LIKE %s)", placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT%s FROM tickets WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListScheduledBetween(ctx context.Context, from, to time.Time, leaderID *string) ([]domain.Ticket, error) {
	clauses := []string{
		"scheduled_date IS NOT NULL",
		"scheduled_date >= $1",
		"scheduled_date < $2",
		"status NOT IN ($3,$4)",
	}
	args := []any{from, to, domain.StatusCerrado, domain.StatusCancelado}
	if leaderID != nil {
		args = append(args, *leaderID)
		clauses = append(clauses, fmt.Sprintf("COALESCE(leader_id, technical_lead_id)=$%d", len(args)))
	}
	query := fmt.Sprintf(`SELECT%s FROM tickets WHERE %s ORDER BY scheduled_date ASC, service_code ASC`,
		ticketColumns, strings.Join(clauses, " AND "))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListUnscheduled(ctx context.Context, leaderID *string) ([]domain.Ticket, error) {
	clauses := []string{"scheduled_date IS NULL", "status NOT IN ($1,$2)"}
	args := []any{domain.StatusCerrado, domain.StatusCancelado}
	if leaderID != nil {
		args = append(args, *leaderID)
		clauses = append(clauses, fmt.Sprintf("COALESCE(leader_id, technical_lead_id)=$%d", len(args)))
	}
	query := fmt.Sprintf(`SELECT%s FROM tickets WHERE %s ORDER BY created_at ASC`,
		ticketColumns, strings.Join(clauses, " AND "))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.ServiceCode,
		&ticket.ServiceType,
		&ticket.Status,
		&ticket.ClientID,
		&ticket.ClientEmail,
		&ticket.Company,
		&ticket.CoordinatorID,
		&ticket.LeaderID,
		&ticket.AuxiliaryID,
		&ticket.ScheduledDate,
		&ticket.Description,
		&ticket.Location,
		&ticket.TechnicalResult,
		&ticket.ServiceDoneComment,
		&ticket.AdditionalDetails,
		&ticket.SatisfactionRating,
		&ticket.ClientFeedback,
		&ticket.ClientAudit,
		&ticket.Rated,
		&ticket.Logs,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
