package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-service/internal/api/dto"
	"github.com/spec-kit/field-service/internal/auth"
	"github.com/spec-kit/field-service/internal/service"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// AttendanceHandler manages clock events and day summaries.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: attendanceService}
}

// ClockIn POST /attendance/clock-in.
func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	log, err := h.service.ClockIn(c.Context(), principal.Profile.ID, clockInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": attendanceLogResponse(log)})
}

// ClockOut POST /attendance/clock-out.
func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	log, err := h.service.ClockOut(c.Context(), principal.Profile.ID, false, clockInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": attendanceLogResponse(log)})
}

// MySummaries GET /attendance/me.
func (h *AttendanceHandler) MySummaries(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	from, to := attendanceRange(c)
	days, err := h.service.UserDaySummaries(c.Context(), principal.Profile.ID, from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": attendanceDayResponses(days)})
}

// Summaries GET /attendance. Supervisor view across all staff.
func (h *AttendanceHandler) Summaries(c *fiber.Ctx) error {
	from, to := attendanceRange(c)
	if userID := c.Query("user_id"); userID != "" {
		days, err := h.service.UserDaySummaries(c.Context(), userID, from, to)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": attendanceDayResponses(days)})
	}
	days, err := h.service.DaySummaries(c.Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": attendanceDayResponses(days)})
}

// ManualClockOut POST /attendance/:user_id/clock-out. Supervisor entry for a
// missed salida.
func (h *AttendanceHandler) ManualClockOut(c *fiber.Ctx) error {
	var req dto.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	log, err := h.service.ClockOut(c.Context(), c.Params("user_id"), true, clockInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": attendanceLogResponse(log)})
}

func clockInput(req dto.ClockRequest) service.ClockInput {
	return service.ClockInput{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		PhotoURL:  req.PhotoURL,
		Notes:     req.Notes,
	}
}

// attendanceRange defaults to the current ISO week when no bounds are given.
func attendanceRange(c *fiber.Ctx) (time.Time, time.Time) {
	from := service.WeekStart(time.Now())
	to := from.AddDate(0, 0, 7)
	if raw := c.Query("from"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			from = parsed
		}
	}
	if raw := c.Query("to"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			to = parsed.AddDate(0, 0, 1)
		}
	}
	return from, to
}
