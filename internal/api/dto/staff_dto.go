package dto

import "time"

// CreateStaffRequest payload for portal or kiosk staff accounts.
type CreateStaffRequest struct {
	FullName     string `json:"full_name" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Password     string `json:"password" validate:"omitempty,min=8"`
	Role         string `json:"role" validate:"required"`
	Position     string `json:"position"`
	EmployeeCode string `json:"employee_code"`
	PIN          string `json:"pin" validate:"omitempty,min=4,max=8"`
}

// CreateKioskStaffRequest payload for field accounts that log in at the
// kiosk by employee code and PIN only.
type CreateKioskStaffRequest struct {
	FullName     string `json:"full_name" validate:"required"`
	EmployeeCode string `json:"employee_code" validate:"required"`
	PIN          string `json:"pin" validate:"required,min=4,max=8"`
	Position     string `json:"position"`
	Role         string `json:"role" validate:"omitempty,oneof=operativo kiosk_master"`
}

// UpdatePasswordRequest payload for the admin reset endpoint.
type UpdatePasswordRequest struct {
	ProfileID   string `json:"profile_id" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// InviteClientRequest payload.
type InviteClientRequest struct {
	Email        string `json:"email" validate:"required,email"`
	FullName     string `json:"full_name"`
	Organization string `json:"organization" validate:"required"`
	TempPassword string `json:"temp_password" validate:"omitempty,min=8"`
}

// AccessRequestRequest is the public self-service signup payload.
type AccessRequestRequest struct {
	Email        string `json:"email" validate:"required,email"`
	FullName     string `json:"full_name"`
	Organization string `json:"organization" validate:"required"`
	Phone        string `json:"phone"`
}

// ApproveAccessRequest payload.
type ApproveAccessRequest struct {
	CoordinatorID string `json:"coordinator_id"`
	TempPassword  string `json:"temp_password" validate:"omitempty,min=8"`
}

// AccessRequestResponse response.
type AccessRequestResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Organization string     `json:"organization"`
	Phone        string     `json:"phone,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}
