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

// StaffHandler manages staff account administration.
type StaffHandler struct {
	service *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{service: staffService}
}

// ListStaff GET /staff.
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	filter := repository.ProfileFilter{}
	if roleStr := c.Query("role"); roleStr != "" {
		role, err := domain.ParseRole(roleStr)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		filter.Role = &role
	}
	if positionStr := c.Query("position"); positionStr != "" {
		position := domain.ParsePosition(positionStr)
		filter.Position = &position
	}
	if c.Query("active") != "" {
		active := c.QueryBool("active", true)
		filter.Active = &active
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	profiles, err := h.service.ListStaff(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ProfileSummary, 0, len(profiles))
	for i := range profiles {
		items = append(items, profileSummary(&profiles[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateStaff POST /admin/create-user. Also covers kiosk accounts when
// employee_code and pin are supplied.
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	profile, err := h.service.CreateStaff(c.Context(), actorFrom(principal), service.CreateStaffInput{
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		Position:     req.Position,
		EmployeeCode: req.EmployeeCode,
		PIN:          req.PIN,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": profileSummary(profile)})
}

// CreateKioskUser POST /admin/create-staff-kiosk. Field accounts carry no
// portal email or password; the employee code and PIN are the credentials.
func (h *StaffHandler) CreateKioskUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateKioskStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	role := req.Role
	if role == "" {
		role = string(domain.RoleOperativo)
	}
	profile, err := h.service.CreateStaff(c.Context(), actorFrom(principal), service.CreateStaffInput{
		FullName:     req.FullName,
		Role:         role,
		Position:     req.Position,
		EmployeeCode: req.EmployeeCode,
		PIN:          req.PIN,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": profileSummary(profile)})
}

// UpdatePassword POST /admin/update-password.
func (h *StaffHandler) UpdatePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := h.service.UpdatePassword(c.Context(), actorFrom(principal), req.ProfileID, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}
