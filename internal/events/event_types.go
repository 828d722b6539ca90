package events

import (
	"time"

	"github.com/spec-kit/field-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketReturnedPending EventType = "ticket_returned_to_pending"
	EventTicketCommentAdded    EventType = "ticket_comment_added"
	EventTicketRated           EventType = "ticket_rated"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	ServiceCode string              `json:"service_code"`
	ServiceType string              `json:"service_type"`
	ClientID    *string             `json:"client_id,omitempty"`
	Status      domain.TicketStatus `json:"status"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Summary   string              `json:"summary,omitempty"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	CoordinatorID *string `json:"coordinator_id,omitempty"`
	LeaderID      *string `json:"leader_id,omitempty"`
	AuxiliaryID   *string `json:"auxiliary_id,omitempty"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	NotePreview string `json:"note_preview"`
}

// TicketRatedPayload payload.
type TicketRatedPayload struct {
	Rating int `json:"rating"`
}
