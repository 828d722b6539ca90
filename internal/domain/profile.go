package domain

import "time"

// Profile models a staff member: portal users, coordinators, and field
// operatives. Kiosk login uses EmployeeCode plus a bcrypt-hashed PIN.
type Profile struct {
	ID           string
	FullName     string
	Email        *string
	PasswordHash *string
	Role         Role
	Position     Position
	EmployeeCode *string
	PINHash      *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLeader reports whether the profile is a field leader.
func (p *Profile) IsLeader() bool {
	return p.Role == RoleOperativo && p.Position == PositionLider
}
