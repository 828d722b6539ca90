package domain

import "time"

// LogType classifies audit trail entries embedded in a ticket.
type LogType string

const (
	LogTypeSystem       LogType = "system"
	LogTypeComment      LogType = "comment"
	LogTypeManualUpdate LogType = "manual_update"
	LogTypeSystemReset  LogType = "system_reset"
)

// LogEntry is one append-only record in a ticket's embedded history.
// Entries are prepended (newest first) and never edited or removed.
type LogEntry struct {
	Date time.Time `json:"date"`
	User string    `json:"user"`
	Role Role      `json:"role"`
	Type LogType   `json:"type"`
	Note string    `json:"note"`
}

// Ticket is the aggregate for one service request / work order.
//
// CoordinatorID and LeaderID are the canonical relationship fields; the
// persistence layer dual-writes the legacy column names (coordinador_id,
// technical_lead_id) on every update so readers of either name stay
// consistent.
type Ticket struct {
	ID          string
	ServiceCode string
	ServiceType string
	Status      TicketStatus

	ClientID    *string
	ClientEmail string
	Company     string

	CoordinatorID *string
	LeaderID      *string
	AuxiliaryID   *string
	ScheduledDate *time.Time

	Description        string
	Location           string
	TechnicalResult    string
	ServiceDoneComment string
	AdditionalDetails  string

	SatisfactionRating *int
	ClientFeedback     string
	ClientAudit        string
	Rated              bool

	Logs []LogEntry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrependLog inserts an entry at the head of the log array.
func (t *Ticket) PrependLog(entry LogEntry) {
	t.Logs = append([]LogEntry{entry}, t.Logs...)
}
