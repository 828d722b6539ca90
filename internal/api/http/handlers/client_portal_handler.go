package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-service/internal/api/dto"
	"github.com/spec-kit/field-service/internal/auth"
	"github.com/spec-kit/field-service/internal/service"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// ClientPortalHandler serves the client-facing surface: their own tickets,
// new requests, and the one-shot evaluation.
type ClientPortalHandler struct {
	tickets *service.TicketService
	intake  *service.IntakeService
}

// NewClientPortalHandler constructs handler.
func NewClientPortalHandler(tickets *service.TicketService, intake *service.IntakeService) *ClientPortalHandler {
	return &ClientPortalHandler{tickets: tickets, intake: intake}
}

// ListMyTickets GET /portal/tickets.
func (h *ClientPortalHandler) ListMyTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Client == nil {
		return apperrors.NewUnauthorized("client required")
	}
	filter := parseTicketQuery(c)
	filter.ClientID = &principal.Client.ID
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

// GetMyTicket GET /portal/tickets/:id.
func (h *ClientPortalHandler) GetMyTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Client == nil {
		return apperrors.NewUnauthorized("client required")
	}
	ticket, err := h.tickets.GetTicketForClient(c.Context(), principal.Client.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, principal.Role)})
}

// CreateRequest POST /portal/tickets. Client-opened tickets start in
// "Pendiente" and wait for a coordinator.
func (h *ClientPortalHandler) CreateRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Client == nil {
		return apperrors.NewUnauthorized("client required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	input := service.IntakeInput{
		ClientID:          principal.Client.ID,
		AssetID:           req.AssetID,
		ServiceType:       req.ServiceType,
		Description:       req.Description,
		Location:          req.Location,
		AdditionalDetails: req.AdditionalDetails,
	}
	ticket, err := h.intake.CreateTicket(c.Context(), actorFrom(principal), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket, principal.Role)})
}

// RateTicket POST /portal/tickets/:id/rate.
func (h *ClientPortalHandler) RateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Client == nil {
		return apperrors.NewUnauthorized("client required")
	}
	var req dto.RateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticket, err := h.tickets.RateTicket(c.Context(), actorFrom(principal), principal.Client.ID, c.Params("id"), req.Rating, req.Feedback)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, principal.Role)})
}
