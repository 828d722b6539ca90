// Package policy centralizes the role table that the legacy views each
// carried a private copy of: which statuses a role may set, which assignment
// fields it may touch, and when a ticket is read-only.
package policy

import "github.com/spec-kit/field-service/internal/domain"

// AssignField names an assignment control on a ticket.
type AssignField string

const (
	FieldCoordinator AssignField = "coordinator"
	FieldLeader      AssignField = "leader"
	FieldAuxiliary   AssignField = "auxiliary"
	FieldSchedule    AssignField = "schedule"
)

type rolePolicy struct {
	settable     []domain.TicketStatus
	assignFields map[AssignField]struct{}
	seeSensitive bool
}

func fields(list ...AssignField) map[AssignField]struct{} {
	set := make(map[AssignField]struct{}, len(list))
	for _, f := range list {
		set[f] = struct{}{}
	}
	return set
}

var policies = map[domain.Role]rolePolicy{
	domain.RoleSuperadmin: {
		settable:     domain.AllStatuses,
		assignFields: fields(FieldCoordinator, FieldLeader, FieldAuxiliary, FieldSchedule),
		seeSensitive: true,
	},
	domain.RoleAdmin: {
		settable:     domain.AllStatuses,
		assignFields: fields(FieldCoordinator, FieldLeader, FieldAuxiliary, FieldSchedule),
		seeSensitive: true,
	},
	domain.RoleCoordinador: {
		settable: []domain.TicketStatus{
			domain.StatusSinAsignar,
			domain.StatusAsignado,
			domain.StatusPendiente,
			domain.StatusEnProceso,
			domain.StatusEjecutado,
			domain.StatusRevisionInterna,
		},
		assignFields: fields(FieldLeader, FieldAuxiliary, FieldSchedule),
		seeSensitive: true,
	},
	domain.RoleOperativo: {
		settable: []domain.TicketStatus{
			domain.StatusEnProceso,
			domain.StatusEjecutado,
		},
		assignFields: fields(),
	},
	domain.RoleKioskMaster: {assignFields: fields()},
	domain.RoleCliente:     {assignFields: fields()},
}

// AllowedStatuses returns the ordered status options the role may set for a
// ticket currently in the given status. A locked ticket offers nothing to
// anyone but superadmin.
func AllowedStatuses(role domain.Role, current domain.TicketStatus) []domain.TicketStatus {
	if IsLocked(current, role) {
		return nil
	}
	pol, ok := policies[role]
	if !ok {
		return nil
	}
	out := make([]domain.TicketStatus, len(pol.settable))
	copy(out, pol.settable)
	return out
}

// CanSetStatus reports whether the role may set the target status on a
// ticket currently in the given status.
func CanSetStatus(role domain.Role, current, target domain.TicketStatus) bool {
	for _, status := range AllowedStatuses(role, current) {
		if status == target {
			return true
		}
	}
	return false
}

// CanAssign reports whether the role may edit the given assignment field.
func CanAssign(role domain.Role, field AssignField) bool {
	pol, ok := policies[role]
	if !ok {
		return false
	}
	_, allowed := pol.assignFields[field]
	return allowed
}

// CanSeeSensitive reports whether internal evaluation fields are visible.
func CanSeeSensitive(role domain.Role) bool {
	return policies[role].seeSensitive
}

// IsLocked reports whether the status freezes the ticket for the role.
// Superadmin is the single override.
func IsLocked(status domain.TicketStatus, role domain.Role) bool {
	if role == domain.RoleSuperadmin {
		return false
	}
	return domain.IsLockedStatus(status)
}

// IsEditable is the guard every mutation path consults before writing.
func IsEditable(ticket *domain.Ticket, role domain.Role) bool {
	return !IsLocked(ticket.Status, role)
}
