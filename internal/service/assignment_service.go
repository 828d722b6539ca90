package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/events"
	"github.com/spec-kit/field-service/internal/policy"
	"github.com/spec-kit/field-service/internal/repository"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// AssignmentService handles coordinator and operative assignment, including
// the status side effects those assignments carry.
type AssignmentService struct {
	tickets    repository.TicketRepository
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// AssignmentDependencies bundles requirements.
type AssignmentDependencies struct {
	TicketRepo  repository.TicketRepository
	ProfileRepo repository.ProfileRepository
	Dispatcher  events.Dispatcher
	Now         func() time.Time
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &AssignmentService{
		tickets:    deps.TicketRepo,
		profiles:   deps.ProfileRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// AssignCoordinator sets or clears the responsible coordinator. Assigning
// onto "Sin asignar" advances the ticket to "Asignado"; clearing reverts it.
// Both legacy coordinator columns are written by the repository.
func (s *AssignmentService) AssignCoordinator(ctx context.Context, actor Actor, ticketID string, coordinatorID string) (*domain.Ticket, error) {
	if !policy.CanAssign(actor.Role, policy.FieldCoordinator) {
		return nil, apperrors.NewForbidden("role cannot assign coordinator")
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.IsEditable(ticket, actor.Role) {
		return nil, apperrors.NewForbidden("ticket is locked")
	}
	if id := optionalID(coordinatorID); id != nil {
		if err := s.requireProfile(ctx, *id, domain.RoleCoordinador, ""); err != nil {
			return nil, err
		}
	}

	before := *ticket
	applyCoordinatorAssignment(ticket, coordinatorID, false)
	return s.saveAssignment(ctx, actor, &before, ticket)
}

// AssignOperatives sets the technical leader and optionally the auxiliary.
// Assigning a leader onto a pending ticket advances it to "En proceso" when
// the acting role may set that status.
func (s *AssignmentService) AssignOperatives(ctx context.Context, actor Actor, ticketID string, leaderID, auxiliaryID *string) (*domain.Ticket, error) {
	if !policy.CanAssign(actor.Role, policy.FieldLeader) {
		return nil, apperrors.NewForbidden("role cannot assign operatives")
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.IsEditable(ticket, actor.Role) {
		return nil, apperrors.NewForbidden("ticket is locked")
	}
	if leaderID != nil {
		if id := optionalID(*leaderID); id != nil {
			if err := s.requireProfile(ctx, *id, domain.RoleOperativo, domain.PositionLider); err != nil {
				return nil, err
			}
		}
	}
	if auxiliaryID != nil {
		if id := optionalID(*auxiliaryID); id != nil {
			if err := s.requireProfile(ctx, *id, domain.RoleOperativo, domain.PositionAuxiliar); err != nil {
				return nil, err
			}
		}
	}

	before := *ticket
	if leaderID != nil {
		applyLeaderAssignment(ticket, *leaderID, actor.Role, false)
	}
	if auxiliaryID != nil {
		ticket.AuxiliaryID = optionalID(*auxiliaryID)
	}
	return s.saveAssignment(ctx, actor, &before, ticket)
}

// ReturnToPending clears the schedule and operative assignments and forces
// the ticket back to "Pendiente", writing exactly one system_reset entry.
func (s *AssignmentService) ReturnToPending(ctx context.Context, actor Actor, ticketID string) (*domain.Ticket, error) {
	switch actor.Role {
	case domain.RoleSuperadmin, domain.RoleAdmin, domain.RoleCoordinador:
	default:
		return nil, apperrors.NewForbidden("role cannot return tickets to pending")
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.IsEditable(ticket, actor.Role) {
		return nil, apperrors.NewForbidden("ticket is locked")
	}

	oldStatus := ticket.Status
	ticket.ScheduledDate = nil
	ticket.LeaderID = nil
	ticket.AuxiliaryID = nil
	ticket.Status = domain.StatusPendiente
	ticket.PrependLog(domain.LogEntry{
		Date: s.now(),
		User: actor.Name,
		Role: actor.Role,
		Type: domain.LogTypeSystemReset,
		Note: "Servicio devuelto a pendiente: programacion y operativos reiniciados",
	})
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketReturnedPending,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
		},
	})
	return ticket, nil
}

func (s *AssignmentService) saveAssignment(ctx context.Context, actor Actor, before, ticket *domain.Ticket) (*domain.Ticket, error) {
	summary := changeSummary(before, ticket)
	if summary != "" {
		ticket.PrependLog(domain.LogEntry{
			Date: s.now(),
			User: actor.Name,
			Role: actor.Role,
			Type: domain.LogTypeSystem,
			Note: summary,
		})
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketAssignedPayload{
			CoordinatorID: ticket.CoordinatorID,
			LeaderID:      ticket.LeaderID,
			AuxiliaryID:   ticket.AuxiliaryID,
		},
	})
	return ticket, nil
}

func (s *AssignmentService) requireProfile(ctx context.Context, id string, role domain.Role, position domain.Position) error {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("profile", map[string]any{"profile_id": id})
		}
		return apperrors.MapError(err)
	}
	if !profile.Active {
		return apperrors.NewConflict("profile inactive", map[string]any{"profile_id": id})
	}
	if profile.Role != role {
		return apperrors.NewConflict("profile has wrong role", map[string]any{"profile_id": id, "role": profile.Role})
	}
	if position != "" && profile.Position != position {
		return apperrors.NewConflict("profile has wrong position", map[string]any{"profile_id": id, "position": profile.Position})
	}
	return nil
}

func (s *AssignmentService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *AssignmentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	publishWith(ctx, s.dispatcher, event, s.now)
}
