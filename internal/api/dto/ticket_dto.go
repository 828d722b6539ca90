package dto

import (
	"time"

	"github.com/spec-kit/field-service/internal/domain"
)

// NewClientRequest describes a client created inline during intake.
type NewClientRequest struct {
	Organization  string `json:"organization" validate:"required"`
	FullName      string `json:"full_name"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone"`
	CoordinatorID string `json:"coordinator_id"`
}

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	ClientID  string            `json:"client_id"`
	NewClient *NewClientRequest `json:"new_client"`
	AssetID   string            `json:"asset_id"`

	ServiceType       string     `json:"service_type"`
	Description       string     `json:"description" validate:"required"`
	Location          string     `json:"location"`
	AdditionalDetails string     `json:"additional_details"`
	ScheduledDate     *time.Time `json:"scheduled_date"`
}

// UpdateTicketRequest payload. Absent fields stay untouched; empty-string
// assignment ids clear the slot.
type UpdateTicketRequest struct {
	Status        *string    `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	ClearSchedule bool       `json:"clear_schedule"`

	CoordinatorID *string `json:"coordinator_id"`
	LeaderID      *string `json:"leader_id"`
	AuxiliaryID   *string `json:"auxiliary_id"`

	Description        *string `json:"description"`
	Location           *string `json:"location"`
	TechnicalResult    *string `json:"technical_result"`
	ServiceDoneComment *string `json:"service_done_comment"`
	AdditionalDetails  *string `json:"additional_details"`

	Note        string `json:"note"`
	ConfirmLock bool   `json:"confirm_lock"`
}

// CommentRequest payload.
type CommentRequest struct {
	Note string `json:"note" validate:"required"`
}

// RateTicketRequest payload for the client evaluation.
type RateTicketRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

// AssignCoordinatorRequest payload. Empty id clears the assignment.
type AssignCoordinatorRequest struct {
	CoordinatorID string `json:"coordinator_id"`
}

// AssignOperativesRequest payload. Nil fields stay untouched.
type AssignOperativesRequest struct {
	LeaderID    *string `json:"leader_id"`
	AuxiliaryID *string `json:"auxiliary_id"`
}

// LogEntryResponse is one audit trail record, newest first.
type LogEntryResponse struct {
	Date time.Time      `json:"date"`
	User string         `json:"user"`
	Role domain.Role    `json:"role"`
	Type domain.LogType `json:"type"`
	Note string         `json:"note"`
}

// TicketCapabilities echoes what the calling role may do with the ticket so
// clients never hardcode the role table.
type TicketCapabilities struct {
	Editable          bool                  `json:"editable"`
	AllowedStatuses   []domain.TicketStatus `json:"allowed_statuses"`
	CanAssignLeader   bool                  `json:"can_assign_leader"`
	CanAssignCoord    bool                  `json:"can_assign_coordinator"`
	CanAssignSchedule bool                  `json:"can_assign_schedule"`
}

// TicketSummary response.
type TicketSummary struct {
	ID            string              `json:"id"`
	ServiceCode   string              `json:"service_code"`
	ServiceType   string              `json:"service_type,omitempty"`
	Status        domain.TicketStatus `json:"status"`
	ClientID      *string             `json:"client_id,omitempty"`
	Company       string              `json:"company,omitempty"`
	CoordinatorID *string             `json:"coordinator_id,omitempty"`
	LeaderID      *string             `json:"leader_id,omitempty"`
	AuxiliaryID   *string             `json:"auxiliary_id,omitempty"`
	ScheduledDate *time.Time          `json:"scheduled_date,omitempty"`
	Location      string              `json:"location,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	TicketSummary

	ClientEmail        string `json:"client_email,omitempty"`
	Description        string `json:"description"`
	TechnicalResult    string `json:"technical_result,omitempty"`
	ServiceDoneComment string `json:"service_done_comment,omitempty"`
	AdditionalDetails  string `json:"additional_details,omitempty"`

	SatisfactionRating *int   `json:"satisfaction_rating,omitempty"`
	ClientFeedback     string `json:"client_feedback,omitempty"`
	ClientAudit        string `json:"client_audit,omitempty"`
	Rated              bool   `json:"rated"`

	Logs         []LogEntryResponse  `json:"logs"`
	Capabilities *TicketCapabilities `json:"capabilities,omitempty"`
}
