package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-service/internal/api/dto"
	"github.com/spec-kit/field-service/internal/service"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// PlannerHandler serves the weekly scheduling board.
type PlannerHandler struct {
	service *service.PlannerService
}

// NewPlannerHandler constructs handler.
func NewPlannerHandler(plannerService *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{service: plannerService}
}

// Board GET /planner/board?date=YYYY-MM-DD&leader_id=&group_by_leader=.
// The date pins any day inside the wanted week; week navigation is just a
// refetch with the pivot moved ±7 days.
func (h *PlannerHandler) Board(c *fiber.Ctx) error {
	pivot := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return apperrors.NewValidationError("date must be YYYY-MM-DD", nil)
		}
		pivot = parsed
	}

	var leaderID *string
	if id := c.Query("leader_id"); id != "" {
		leaderID = &id
	}
	groupByLeader := c.QueryBool("group_by_leader", false)

	board, err := h.service.Board(c.Context(), pivot, leaderID, groupByLeader)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": boardResponse(board)})
}

func boardResponse(board *service.Board) dto.PlannerBoardResponse {
	resp := dto.PlannerBoardResponse{
		WeekStart: board.WeekStart,
		WeekEnd:   board.WeekEnd,
		Days:      make([]dto.PlannerDayResponse, 0, len(board.Days)),
		Pending:   make([]dto.TicketSummary, 0, len(board.Pending)),
	}
	for i := range board.Days {
		day := board.Days[i]
		dayResp := dto.PlannerDayResponse{
			Date:    day.Date,
			Tickets: make([]dto.TicketSummary, 0, len(day.Tickets)),
		}
		for j := range day.Tickets {
			dayResp.Tickets = append(dayResp.Tickets, ticketSummary(&day.Tickets[j]))
		}
		for _, group := range day.Groups {
			groupResp := dto.PlannerGroupResponse{
				LeaderID:   group.LeaderID,
				LeaderName: group.LeaderName,
				Tickets:    make([]dto.TicketSummary, 0, len(group.Tickets)),
			}
			for j := range group.Tickets {
				groupResp.Tickets = append(groupResp.Tickets, ticketSummary(&group.Tickets[j]))
			}
			dayResp.Groups = append(dayResp.Groups, groupResp)
		}
		resp.Days = append(resp.Days, dayResp)
	}
	for i := range board.Pending {
		resp.Pending = append(resp.Pending, ticketSummary(&board.Pending[i]))
	}
	return resp
}
