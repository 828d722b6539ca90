package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-service/internal/api/dto"
	"github.com/spec-kit/field-service/internal/auth"
	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/repository"
	"github.com/spec-kit/field-service/internal/service"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// TicketsHandler manages the staff ticket endpoints.
type TicketsHandler struct {
	tickets     *service.TicketService
	intake      *service.IntakeService
	assignments *service.AssignmentService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, intake *service.IntakeService, assignments *service.AssignmentService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, intake: intake, assignments: assignments}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.IntakeInput{
		ClientID:          req.ClientID,
		AssetID:           req.AssetID,
		ServiceType:       req.ServiceType,
		Description:       req.Description,
		Location:          req.Location,
		AdditionalDetails: req.AdditionalDetails,
		ScheduledDate:     req.ScheduledDate,
	}
	if req.NewClient != nil {
		input.NewClient = &service.NewClientInput{
			Organization:  req.NewClient.Organization,
			FullName:      req.NewClient.FullName,
			Email:         req.NewClient.Email,
			Phone:         req.NewClient.Phone,
			CoordinatorID: req.NewClient.CoordinatorID,
		}
	}
	ticket, err := h.intake.CreateTicket(c.Context(), actorFrom(principal), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket, principal.Role)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	filter := parseTicketQuery(c)
	switch principal.Role {
	case domain.RoleCoordinador:
		id := principal.ActorID()
		filter.CoordinatorID = &id
	case domain.RoleOperativo:
		id := principal.ActorID()
		filter.LeaderID = &id
	}
	tickets, err := h.tickets.ListTickets(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.tickets.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, principal.Role)})
}

// UpdateTicket PATCH /tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.TicketUpdateInput{
		Status:             req.Status,
		ScheduledDate:      req.ScheduledDate,
		ClearSchedule:      req.ClearSchedule,
		CoordinatorID:      req.CoordinatorID,
		LeaderID:           req.LeaderID,
		AuxiliaryID:        req.AuxiliaryID,
		Description:        req.Description,
		Location:           req.Location,
		TechnicalResult:    req.TechnicalResult,
		ServiceDoneComment: req.ServiceDoneComment,
		AdditionalDetails:  req.AdditionalDetails,
		Note:               req.Note,
		ConfirmLock:        req.ConfirmLock,
	}
	ticket, err := h.tickets.UpdateTicket(c.Context(), actorFrom(principal), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, principal.Role)})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticket, err := h.tickets.AddComment(c.Context(), actorFrom(principal), c.Params("id"), req.Note)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket, principal.Role)})
}

// AssignCoordinator POST /tickets/:id/assign-coordinator.
func (h *TicketsHandler) AssignCoordinator(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignCoordinatorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.assignments.AssignCoordinator(c.Context(), actorFrom(principal), c.Params("id"), req.CoordinatorID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, principal.Role)})
}

// AssignOperatives POST /tickets/:id/assign-operatives.
func (h *TicketsHandler) AssignOperatives(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignOperativesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.assignments.AssignOperatives(c.Context(), actorFrom(principal), c.Params("id"), req.LeaderID, req.AuxiliaryID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, principal.Role)})
}

// ReturnToPending POST /tickets/:id/return-to-pending.
func (h *TicketsHandler) ReturnToPending(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.assignments.ReturnToPending(c.Context(), actorFrom(principal), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, principal.Role)})
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.tickets.DeleteTicket(c.Context(), actorFrom(principal), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func parseTicketQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	if clientID := c.Query("client_id"); clientID != "" {
		filter.ClientID = &clientID
	}
	if coordinatorID := c.Query("coordinator_id"); coordinatorID != "" {
		filter.CoordinatorID = &coordinatorID
	}
	if leaderID := c.Query("leader_id"); leaderID != "" {
		filter.LeaderID = &leaderID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			if status, err := domain.ParseStatus(part); err == nil {
				filter.Statuses = append(filter.Statuses, status)
			}
		}
	}
	if term := strings.TrimSpace(c.Query("search")); term != "" {
		filter.SearchTerm = &term
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
