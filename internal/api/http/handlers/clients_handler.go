package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-service/internal/api/dto"
	"github.com/spec-kit/field-service/internal/auth"
	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/repository"
	"github.com/spec-kit/field-service/internal/service"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// ClientsHandler manages client directory and access request endpoints.
type ClientsHandler struct {
	staff   *service.StaffService
	clients repository.ClientRepository
}

// NewClientsHandler constructs handler.
func NewClientsHandler(staffService *service.StaffService, clients repository.ClientRepository) *ClientsHandler {
	return &ClientsHandler{staff: staffService, clients: clients}
}

// ListClients GET /clients.
func (h *ClientsHandler) ListClients(c *fiber.Ctx) error {
	filter := repository.ClientFilter{
		Unassigned: c.QueryBool("unassigned", false),
	}
	if coordinatorID := c.Query("coordinator_id"); coordinatorID != "" {
		filter.CoordinatorID = &coordinatorID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.ClientStatus(statusStr)
		filter.Status = &status
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	clients, err := h.clients.List(c.Context(), filter)
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.ClientSummary, 0, len(clients))
	for i := range clients {
		items = append(items, clientSummary(&clients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// InviteClient POST /clients/invite.
func (h *ClientsHandler) InviteClient(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.InviteClientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	client, err := h.staff.InviteClient(c.Context(), actorFrom(principal), req.Email, req.FullName, req.Organization, req.TempPassword)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": clientSummary(client)})
}

// SubmitAccessRequest POST /access-requests. Public endpoint.
func (h *ClientsHandler) SubmitAccessRequest(c *fiber.Ctx) error {
	var req dto.AccessRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	request, err := h.staff.SubmitAccessRequest(c.Context(), req.Email, req.FullName, req.Organization, req.Phone)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": accessRequestResponse(request)})
}

// ListAccessRequests GET /access-requests.
func (h *ClientsHandler) ListAccessRequests(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	requests, err := h.staff.ListAccessRequests(c.Context(), actorFrom(principal), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.AccessRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, accessRequestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ApproveAccessRequest POST /access-requests/:id/approve.
func (h *ClientsHandler) ApproveAccessRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ApproveAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	client, err := h.staff.ApproveAccessRequest(c.Context(), actorFrom(principal), c.Params("id"), req.CoordinatorID, req.TempPassword)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clientSummary(client)})
}

// RejectAccessRequest POST /access-requests/:id/reject.
func (h *ClientsHandler) RejectAccessRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.staff.RejectAccessRequest(c.Context(), actorFrom(principal), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"rejected": true}})
}
