package dto

import (
	"time"

	"github.com/spec-kit/field-service/internal/domain"
)

// ClockRequest payload for clock-in/out events.
type ClockRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	PhotoURL  string   `json:"photo_url"`
	Notes     string   `json:"notes"`
}

// AttendanceLogResponse is one raw clock event.
type AttendanceLogResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	CheckType domain.CheckType `json:"check_type"`
	Latitude  *float64         `json:"latitude,omitempty"`
	Longitude *float64         `json:"longitude,omitempty"`
	PhotoURL  string           `json:"photo_url,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// AttendanceDayResponse pairs entrada and salida for one user and date.
type AttendanceDayResponse struct {
	UserID  string                 `json:"user_id"`
	Date    time.Time              `json:"date"`
	Entrada *AttendanceLogResponse `json:"entrada,omitempty"`
	Salida  *AttendanceLogResponse `json:"salida,omitempty"`
}
