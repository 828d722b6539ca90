package service

import (
	"context"
	"time"

	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/repository"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// PlannerService builds the weekly scheduling board: scheduled tickets
// partitioned by day of week, plus a week-independent pending list.
type PlannerService struct {
	tickets  repository.TicketRepository
	profiles repository.ProfileRepository
}

// NewPlannerService constructs the service.
func NewPlannerService(tickets repository.TicketRepository, profiles repository.ProfileRepository) *PlannerService {
	return &PlannerService{tickets: tickets, profiles: profiles}
}

// LeaderGroup sub-groups a day's tickets by assigned leader.
type LeaderGroup struct {
	LeaderID   string
	LeaderName string
	Tickets    []domain.Ticket
}

// DayBucket holds one weekday's scheduled tickets.
type DayBucket struct {
	Date    time.Time
	Tickets []domain.Ticket
	Groups  []LeaderGroup
}

// Board is one week of the planner plus the unscheduled backlog.
type Board struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Days      [7]DayBucket
	Pending   []domain.Ticket
}

// WeekStart rounds a pivot date back to the Monday of its ISO week,
// truncated to midnight in the pivot's location.
func WeekStart(pivot time.Time) time.Time {
	day := time.Date(pivot.Year(), pivot.Month(), pivot.Day(), 0, 0, 0, 0, pivot.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Board fetches and partitions one week. Navigation (±7 days on the pivot)
// and leader filtering are plain refetches; no incremental state is kept.
func (s *PlannerService) Board(ctx context.Context, pivot time.Time, leaderID *string, groupByLeader bool) (*Board, error) {
	weekStart := WeekStart(pivot)

	// The fetch window is half-open [Monday 00:00, next Monday 00:00) so a
	// schedule carrying a time of day still lands on Sunday's bucket.
	scheduled, err := s.tickets.ListScheduledBetween(ctx, weekStart, weekStart.AddDate(0, 0, 7), leaderID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	pending, err := s.tickets.ListUnscheduled(ctx, leaderID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	board := BuildBoard(scheduled, weekStart, groupByLeader, s.leaderNames(ctx, scheduled))
	board.Pending = pending
	return board, nil
}

// BuildBoard partitions scheduled tickets into day-of-week buckets.
// Tickets whose scheduled date falls outside [weekStart, weekStart+6d] are
// dropped; tickets without a scheduled date never appear in a bucket.
func BuildBoard(tickets []domain.Ticket, weekStart time.Time, groupByLeader bool, leaderNames map[string]string) *Board {
	board := &Board{
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDate(0, 0, 6),
	}
	for i := range board.Days {
		board.Days[i].Date = weekStart.AddDate(0, 0, i)
	}
	for _, ticket := range tickets {
		if ticket.ScheduledDate == nil {
			continue
		}
		day := int(ticket.ScheduledDate.Sub(weekStart).Hours() / 24)
		if day < 0 || day > 6 {
			continue
		}
		board.Days[day].Tickets = append(board.Days[day].Tickets, ticket)
	}
	if groupByLeader {
		for i := range board.Days {
			board.Days[i].Groups = groupTickets(board.Days[i].Tickets, leaderNames)
		}
	}
	return board
}

// groupTickets sub-groups a bucket by leader, preserving first-seen order.
// Unassigned tickets collect under an empty leader id.
func groupTickets(tickets []domain.Ticket, leaderNames map[string]string) []LeaderGroup {
	var groups []LeaderGroup
	index := map[string]int{}
	for _, ticket := range tickets {
		key := ""
		if ticket.LeaderID != nil {
			key = *ticket.LeaderID
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, LeaderGroup{LeaderID: key, LeaderName: leaderNames[key]})
		}
		groups[i].Tickets = append(groups[i].Tickets, ticket)
	}
	return groups
}

// leaderNames resolves the display names for every leader referenced by the
// week's tickets. Lookups that fail resolve to an empty name.
func (s *PlannerService) leaderNames(ctx context.Context, tickets []domain.Ticket) map[string]string {
	names := map[string]string{}
	for _, ticket := range tickets {
		if ticket.LeaderID == nil {
			continue
		}
		id := *ticket.LeaderID
		if _, ok := names[id]; ok {
			continue
		}
		if profile, err := s.profiles.GetByID(ctx, id); err == nil {
			names[id] = profile.FullName
		} else {
			names[id] = ""
		}
	}
	return names
}
