package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/events"
	"github.com/spec-kit/field-service/internal/policy"
	"github.com/spec-kit/field-service/internal/repository"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// TicketService coordinates the ticket lifecycle: the status transition
// guard, audit trail, comments, and client evaluation.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// TicketUpdateInput describes a single optimistic update against a ticket.
// Nil pointers leave the field untouched; a pointer to the empty string
// clears an assignment.
type TicketUpdateInput struct {
	Status        *string
	ScheduledDate *time.Time
	ClearSchedule bool

	CoordinatorID *string
	LeaderID      *string
	AuxiliaryID   *string

	Description        *string
	Location           *string
	TechnicalResult    *string
	ServiceDoneComment *string
	AdditionalDetails  *string

	Note        string
	ConfirmLock bool
}

var contentEditorRoles = map[domain.Role]struct{}{
	domain.RoleSuperadmin:  {},
	domain.RoleAdmin:       {},
	domain.RoleCoordinador: {},
	domain.RoleOperativo:   {},
}

// UpdateTicket applies one update call. The whole call succeeds or is
// rejected as a unit: a refused lock confirmation drops every pending field
// edit in the same request, matching the single-round-trip save semantics.
func (s *TicketService) UpdateTicket(ctx context.Context, actor Actor, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.IsEditable(ticket, actor.Role) {
		return nil, apperrors.NewForbidden("ticket is locked")
	}
	if _, ok := contentEditorRoles[actor.Role]; !ok {
		return nil, apperrors.NewForbidden("role cannot edit tickets")
	}

	before := *ticket
	oldStatus := ticket.Status
	statusExplicit := false

	if input.Status != nil {
		newStatus, err := domain.ParseStatus(*input.Status)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		if newStatus != ticket.Status {
			if !policy.CanSetStatus(actor.Role, ticket.Status, newStatus) {
				return nil, apperrors.NewForbidden("status not allowed for role")
			}
			ticket.Status = newStatus
			statusExplicit = true
		}
	}

	if input.ScheduledDate != nil || input.ClearSchedule {
		if !policy.CanAssign(actor.Role, policy.FieldSchedule) {
			return nil, apperrors.NewForbidden("role cannot edit schedule")
		}
		if input.ClearSchedule {
			ticket.ScheduledDate = nil
		} else {
			ticket.ScheduledDate = input.ScheduledDate
		}
	}

	if input.CoordinatorID != nil {
		if !policy.CanAssign(actor.Role, policy.FieldCoordinator) {
			return nil, apperrors.NewForbidden("role cannot assign coordinator")
		}
		applyCoordinatorAssignment(ticket, *input.CoordinatorID, statusExplicit)
	}
	if input.LeaderID != nil {
		if !policy.CanAssign(actor.Role, policy.FieldLeader) {
			return nil, apperrors.NewForbidden("role cannot assign leader")
		}
		applyLeaderAssignment(ticket, *input.LeaderID, actor.Role, statusExplicit)
	}
	if input.AuxiliaryID != nil {
		if !policy.CanAssign(actor.Role, policy.FieldAuxiliary) {
			return nil, apperrors.NewForbidden("role cannot assign auxiliary")
		}
		ticket.AuxiliaryID = optionalID(*input.AuxiliaryID)
	}

	applyText(&ticket.Description, input.Description)
	applyText(&ticket.Location, input.Location)
	applyText(&ticket.TechnicalResult, input.TechnicalResult)
	applyText(&ticket.ServiceDoneComment, input.ServiceDoneComment)
	applyText(&ticket.AdditionalDetails, input.AdditionalDetails)

	if domain.IsLockedStatus(ticket.Status) && !domain.IsLockedStatus(oldStatus) && !input.ConfirmLock {
		return nil, apperrors.NewConflict("transition into a locked status requires confirmation", map[string]any{
			"status": ticket.Status,
		})
	}

	summary := changeSummary(&before, ticket)
	appendAuditEntry(ticket, actor, summary, input.Note, s.now())

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Actor:    eventActor(actor),
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
				Summary:   summary,
			},
		})
	}
	return ticket, nil
}

// AddComment appends a free-standing note to the ticket's history. Comments
// post immediately, without a lock confirmation step.
func (s *TicketService) AddComment(ctx context.Context, actor Actor, ticketID, note string) (*domain.Ticket, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, apperrors.NewValidationError("note required", nil)
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.IsEditable(ticket, actor.Role) {
		return nil, apperrors.NewForbidden("ticket is locked")
	}
	ticket.PrependLog(domain.LogEntry{
		Date: s.now(),
		User: actor.Name,
		Role: actor.Role,
		Type: domain.LogTypeComment,
		Note: note,
	})
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload:  events.TicketCommentAddedPayload{NotePreview: stringPreview(note, 120)},
	})
	return ticket, nil
}

// RateTicket records the client's evaluation once per ticket.
func (s *TicketService) RateTicket(ctx context.Context, actor Actor, clientID, ticketID string, rating int, feedback string) (*domain.Ticket, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.ClientID == nil || *ticket.ClientID != clientID {
		return nil, apperrors.NewForbidden("ticket does not belong to client")
	}
	if ticket.Status != domain.StatusRealizado && ticket.Status != domain.StatusCerrado {
		return nil, apperrors.NewConflict("ticket is not ready for evaluation", nil)
	}
	if ticket.Rated {
		return nil, apperrors.NewConflict("ticket already rated", nil)
	}
	ticket.SatisfactionRating = &rating
	ticket.ClientFeedback = strings.TrimSpace(feedback)
	ticket.Rated = true
	ticket.PrependLog(domain.LogEntry{
		Date: s.now(),
		User: actor.Name,
		Role: actor.Role,
		Type: domain.LogTypeSystem,
		Note: "Evaluacion del cliente registrada",
	})
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketRated,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload:  events.TicketRatedPayload{Rating: rating},
	})
	return ticket, nil
}

// GetTicket fetches one ticket.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.getTicket(ctx, ticketID)
}

// GetTicketForClient fetches one ticket ensuring ownership.
func (s *TicketService) GetTicketForClient(ctx context.Context, clientID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.ClientID == nil || *ticket.ClientID != clientID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// ListTickets returns tickets matching the filter.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// DeleteTicket removes a ticket row. Superadmin only.
func (s *TicketService) DeleteTicket(ctx context.Context, actor Actor, ticketID string) error {
	if actor.Role != domain.RoleSuperadmin {
		return apperrors.NewForbidden("superadmin required")
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// applyCoordinatorAssignment sets the coordinator and derives the status
// side effect: assigning onto "Sin asignar" advances to "Asignado"; clearing
// reverts to "Sin asignar".
func applyCoordinatorAssignment(ticket *domain.Ticket, coordinatorID string, statusExplicit bool) {
	newID := optionalID(coordinatorID)
	ticket.CoordinatorID = newID
	if statusExplicit {
		return
	}
	if newID != nil && ticket.Status == domain.StatusSinAsignar {
		ticket.Status = domain.StatusAsignado
	} else if newID == nil {
		ticket.Status = domain.StatusSinAsignar
	}
}

// applyLeaderAssignment sets the leader and advances a pending ticket to
// "En proceso" when the acting role is allowed to set that status.
func applyLeaderAssignment(ticket *domain.Ticket, leaderID string, role domain.Role, statusExplicit bool) {
	newID := optionalID(leaderID)
	ticket.LeaderID = newID
	if statusExplicit || newID == nil {
		return
	}
	switch ticket.Status {
	case domain.StatusPendiente, domain.StatusSinAsignar, "":
		if policy.CanSetStatus(role, ticket.Status, domain.StatusEnProceso) {
			ticket.Status = domain.StatusEnProceso
		}
	}
}

func applyText(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func optionalID(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	publishWith(ctx, s.dispatcher, event, s.now)
}

func eventActor(actor Actor) events.Actor {
	return events.Actor{ID: actor.ID, Name: actor.Name, Role: actor.Role}
}
