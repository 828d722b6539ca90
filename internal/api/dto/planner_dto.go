package dto

import "time"

// PlannerGroupResponse is one leader's tickets inside a day column.
type PlannerGroupResponse struct {
	LeaderID   string          `json:"leader_id"`
	LeaderName string          `json:"leader_name"`
	Tickets    []TicketSummary `json:"tickets"`
}

// PlannerDayResponse is one weekday column.
type PlannerDayResponse struct {
	Date    time.Time              `json:"date"`
	Tickets []TicketSummary        `json:"tickets"`
	Groups  []PlannerGroupResponse `json:"groups,omitempty"`
}

// PlannerBoardResponse is one week of the board plus the pending backlog.
type PlannerBoardResponse struct {
	WeekStart time.Time            `json:"week_start"`
	WeekEnd   time.Time            `json:"week_end"`
	Days      []PlannerDayResponse `json:"days"`
	Pending   []TicketSummary      `json:"pending"`
}
