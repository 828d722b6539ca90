package dto

import (
	"time"

	"github.com/spec-kit/field-service/internal/domain"
)

// LoginRequest payload for staff and client portal login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// KioskLoginRequest payload for shared-device PIN login.
type KioskLoginRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required"`
	PIN          string `json:"pin" validate:"required,min=4,max=8"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// AuthResponse carries the issued token plus subject summary.
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   *ProfileSummary `json:"profile,omitempty"`
	Client    *ClientSummary  `json:"client,omitempty"`
}

// ProfileSummary response.
type ProfileSummary struct {
	ID           string          `json:"id"`
	FullName     string          `json:"full_name"`
	Email        *string         `json:"email,omitempty"`
	Role         domain.Role     `json:"role"`
	Position     domain.Position `json:"position,omitempty"`
	EmployeeCode *string         `json:"employee_code,omitempty"`
	Active       bool            `json:"active"`
}

// ClientSummary response.
type ClientSummary struct {
	ID            string              `json:"id"`
	Organization  string              `json:"organization"`
	FullName      string              `json:"full_name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone,omitempty"`
	CoordinatorID *string             `json:"coordinator_id,omitempty"`
	Status        domain.ClientStatus `json:"status"`
	BlockedUntil  *time.Time          `json:"blocked_until,omitempty"`
	BlockReason   string              `json:"block_reason,omitempty"`
}
