package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/field-service/internal/domain"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name  string
		pivot string
		want  string
	}{
		{name: "monday stays", pivot: "2025-06-02T15:30:00Z", want: "2025-06-02"},
		{name: "wednesday rounds back", pivot: "2025-06-04T09:00:00Z", want: "2025-06-02"},
		{name: "sunday belongs to previous monday", pivot: "2025-06-08T23:59:00Z", want: "2025-06-02"},
		{name: "year boundary", pivot: "2025-01-01T00:00:00Z", want: "2024-12-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(mustParseTime(t, tt.pivot))
			if got.Format("2006-01-02") != tt.want {
				t.Fatalf("WeekStart(%s) = %s, want %s", tt.pivot, got.Format("2006-01-02"), tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
				t.Fatalf("WeekStart not truncated to midnight: %s", got)
			}
		})
	}
}

func TestBuildBoard(t *testing.T) {
	weekStart := mustParseTime(t, "2025-06-02T00:00:00Z")

	scheduledTicket := func(id string, day time.Time, leader *string) domain.Ticket {
		return domain.Ticket{ID: id, Status: domain.StatusEnProceso, ScheduledDate: &day, LeaderID: leader}
	}
	monday := weekStart
	wednesday := weekStart.AddDate(0, 0, 2)
	sunday := weekStart.AddDate(0, 0, 6)
	nextMonday := weekStart.AddDate(0, 0, 7)

	tickets := []domain.Ticket{
		scheduledTicket("mon", monday, strPtr("lead1")),
		scheduledTicket("wed-a", wednesday, strPtr("lead1")),
		scheduledTicket("wed-b", wednesday, nil),
		scheduledTicket("sun", sunday, strPtr("lead2")),
		scheduledTicket("next-week", nextMonday, nil),
		{ID: "no-date", Status: domain.StatusPendiente},
	}

	board := BuildBoard(tickets, weekStart, false, nil)

	if !board.WeekStart.Equal(weekStart) || !board.WeekEnd.Equal(sunday) {
		t.Fatalf("week bounds = %s .. %s", board.WeekStart, board.WeekEnd)
	}
	wantPerDay := [7]int{1, 0, 2, 0, 0, 0, 1}
	for i, want := range wantPerDay {
		if len(board.Days[i].Tickets) != want {
			t.Errorf("day %d has %d tickets, want %d", i, len(board.Days[i].Tickets), want)
		}
		if !board.Days[i].Date.Equal(weekStart.AddDate(0, 0, i)) {
			t.Errorf("day %d date = %s", i, board.Days[i].Date)
		}
	}
	if board.Days[2].Tickets[0].ID != "wed-a" || board.Days[2].Tickets[1].ID != "wed-b" {
		t.Errorf("wednesday order = %s, %s", board.Days[2].Tickets[0].ID, board.Days[2].Tickets[1].ID)
	}
}

func TestBuildBoardGroupsByLeader(t *testing.T) {
	weekStart := mustParseTime(t, "2025-06-02T00:00:00Z")
	monday := weekStart

	tickets := []domain.Ticket{
		{ID: "a", ScheduledDate: &monday, LeaderID: strPtr("lead1")},
		{ID: "b", ScheduledDate: &monday},
		{ID: "c", ScheduledDate: &monday, LeaderID: strPtr("lead2")},
		{ID: "d", ScheduledDate: &monday, LeaderID: strPtr("lead1")},
	}
	names := map[string]string{"lead1": "Luis Lider", "lead2": "Lupe Lider"}

	board := BuildBoard(tickets, weekStart, true, names)
	groups := board.Days[0].Groups
	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}
	// First-seen order: lead1, unassigned, lead2.
	if groups[0].LeaderID != "lead1" || groups[0].LeaderName != "Luis Lider" || len(groups[0].Tickets) != 2 {
		t.Errorf("group 0 = %+v", groups[0])
	}
	if groups[1].LeaderID != "" || len(groups[1].Tickets) != 1 {
		t.Errorf("group 1 = %+v, want unassigned bucket", groups[1])
	}
	if groups[2].LeaderID != "lead2" || groups[2].LeaderName != "Lupe Lider" {
		t.Errorf("group 2 = %+v", groups[2])
	}
}

func TestPlannerBoardIncludesPendingBacklog(t *testing.T) {
	weekStart := mustParseTime(t, "2025-06-02T00:00:00Z")
	wednesday := weekStart.AddDate(0, 0, 2)

	repo := newFakeTicketRepo(
		&domain.Ticket{ID: "scheduled", Status: domain.StatusEnProceso, ScheduledDate: &wednesday, LeaderID: strPtr("lead1")},
		&domain.Ticket{ID: "backlog", Status: domain.StatusPendiente},
		&domain.Ticket{ID: "closed-backlog", Status: domain.StatusCerrado},
	)
	profiles := newFakeProfileRepo(operativeProfile("lead1", domain.PositionLider))
	svc := NewPlannerService(repo, profiles)

	board, err := svc.Board(context.Background(), weekStart.AddDate(0, 0, 3), nil, true)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(board.Days[2].Tickets) != 1 || board.Days[2].Tickets[0].ID != "scheduled" {
		t.Fatalf("wednesday bucket = %+v", board.Days[2].Tickets)
	}
	if len(board.Pending) != 1 || board.Pending[0].ID != "backlog" {
		t.Fatalf("pending = %+v, closed tickets must not appear", board.Pending)
	}
	if got := board.Days[2].Groups[0].LeaderName; got != "Op lead1" {
		t.Fatalf("leader name = %q", got)
	}
}

func TestPlannerBoardSundayWithTimeOfDay(t *testing.T) {
	weekStart := mustParseTime(t, "2025-06-02T00:00:00Z")
	sundayMorning := mustParseTime(t, "2025-06-08T09:00:00Z")

	repo := newFakeTicketRepo(
		&domain.Ticket{ID: "sun", Status: domain.StatusEnProceso, ScheduledDate: &sundayMorning},
	)
	svc := NewPlannerService(repo, newFakeProfileRepo())

	board, err := svc.Board(context.Background(), weekStart, nil, false)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(board.Days[6].Tickets) != 1 || board.Days[6].Tickets[0].ID != "sun" {
		t.Fatalf("sunday bucket = %+v, want the 09:00 ticket", board.Days[6].Tickets)
	}
	if len(board.Pending) != 0 {
		t.Fatalf("pending = %+v, scheduled ticket must not leak into the backlog", board.Pending)
	}
}

func TestPlannerBoardLeaderFilter(t *testing.T) {
	weekStart := mustParseTime(t, "2025-06-02T00:00:00Z")
	monday := weekStart

	repo := newFakeTicketRepo(
		&domain.Ticket{ID: "mine", Status: domain.StatusEnProceso, ScheduledDate: &monday, LeaderID: strPtr("lead1")},
		&domain.Ticket{ID: "other", Status: domain.StatusEnProceso, ScheduledDate: &monday, LeaderID: strPtr("lead2")},
	)
	svc := NewPlannerService(repo, newFakeProfileRepo())

	leader := "lead1"
	board, err := svc.Board(context.Background(), monday, &leader, false)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(board.Days[0].Tickets) != 1 || board.Days[0].Tickets[0].ID != "mine" {
		t.Fatalf("filtered bucket = %+v", board.Days[0].Tickets)
	}
}

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}
