package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/events"
	"github.com/spec-kit/field-service/internal/repository"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// TxBeginner starts database transactions; satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// IntakeService creates tickets, optionally creating the client record and
// linking an asset in the same transaction so a partial failure leaves no
// orphaned rows behind.
type IntakeService struct {
	db         TxBeginner
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewIntakeService constructs the service.
func NewIntakeService(db TxBeginner, dispatcher events.Dispatcher) *IntakeService {
	return &IntakeService{db: db, dispatcher: dispatcher, now: time.Now}
}

// NewClientInput describes an inline client record created during intake.
type NewClientInput struct {
	Organization  string
	FullName      string
	Email         string
	Phone         string
	CoordinatorID string
}

// IntakeInput describes one ticket intake request.
type IntakeInput struct {
	ClientID  string
	NewClient *NewClientInput
	AssetID   string

	ServiceType       string
	Description       string
	Location          string
	AdditionalDetails string
	ScheduledDate     *time.Time
}

// CreateTicket performs the whole intake as one transaction: resolve or
// create the client, bind the asset, insert the ticket with its creation log
// entry.
func (s *IntakeService) CreateTicket(ctx context.Context, actor Actor, input IntakeInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if input.ClientID == "" && input.NewClient == nil {
		return nil, apperrors.NewValidationError("client required", nil)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	clients := repository.NewClientRepository(tx)
	assets := repository.NewAssetRepository(tx)
	tickets := repository.NewTicketRepository(tx)

	client, err := s.resolveClient(ctx, clients, input)
	if err != nil {
		return nil, err
	}
	if !client.CanReceiveServices(s.now()) {
		return nil, apperrors.NewConflict("client cannot receive services", map[string]any{
			"client_id": client.ID,
			"status":    client.Status,
		})
	}

	if input.AssetID != "" {
		if err := s.bindAsset(ctx, assets, input.AssetID, client.ID); err != nil {
			return nil, err
		}
	}

	status := domain.StatusSinAsignar
	if actor.Role == domain.RoleCliente {
		status = domain.StatusPendiente
	}

	ticket := &domain.Ticket{
		ServiceCode:       generateServiceCode(),
		ServiceType:       strings.TrimSpace(input.ServiceType),
		Status:            status,
		ClientID:          &client.ID,
		ClientEmail:       client.Email,
		Company:           client.Organization,
		ScheduledDate:     input.ScheduledDate,
		Description:       strings.TrimSpace(input.Description),
		Location:          strings.TrimSpace(input.Location),
		AdditionalDetails: strings.TrimSpace(input.AdditionalDetails),
		Logs: []domain.LogEntry{{
			Date: s.now(),
			User: actor.Name,
			Role: actor.Role,
			Type: domain.LogTypeSystem,
			Note: "Servicio creado",
		}},
	}
	if err := tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		publishWith(ctx, s.dispatcher, events.Event{
			Type:     events.EventTicketCreated,
			TicketID: ticket.ID,
			Actor:    eventActor(actor),
			Payload: events.TicketCreatedPayload{
				ServiceCode: ticket.ServiceCode,
				ServiceType: ticket.ServiceType,
				ClientID:    ticket.ClientID,
				Status:      ticket.Status,
			},
		}, s.now)
	}
	return ticket, nil
}

func (s *IntakeService) resolveClient(ctx context.Context, clients repository.ClientRepository, input IntakeInput) (*domain.Client, error) {
	if input.NewClient != nil {
		nc := input.NewClient
		if strings.TrimSpace(nc.Organization) == "" || strings.TrimSpace(nc.Email) == "" {
			return nil, apperrors.NewValidationError("organization and email required for new client", nil)
		}
		client := &domain.Client{
			Organization:  strings.TrimSpace(nc.Organization),
			FullName:      strings.TrimSpace(nc.FullName),
			Email:         strings.TrimSpace(nc.Email),
			Phone:         strings.TrimSpace(nc.Phone),
			CoordinatorID: optionalID(nc.CoordinatorID),
			Status:        domain.ClientStatusActive,
		}
		if client.CoordinatorID == nil {
			client.Status = domain.ClientStatusPending
		}
		if err := clients.Create(ctx, client); err != nil {
			return nil, apperrors.MapError(err)
		}
		return client, nil
	}

	client, err := clients.GetByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": input.ClientID})
		}
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// bindAsset links an orphan asset to the ticket's client. An asset already
// bound to another client is a conflict, never silently relinked.
func (s *IntakeService) bindAsset(ctx context.Context, assets repository.AssetRepository, assetID, clientID string) error {
	asset, err := assets.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("asset", map[string]any{"asset_id": assetID})
		}
		return apperrors.MapError(err)
	}
	if asset.ClientID != nil {
		if *asset.ClientID != clientID {
			return apperrors.NewConflict("asset belongs to another client", map[string]any{"asset_id": assetID})
		}
		return nil
	}
	asset.ClientID = &clientID
	if err := assets.Update(ctx, asset); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func generateServiceCode() string {
	return "SRV-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
