package domain

import (
	"fmt"
	"strings"
)

// TicketStatus enumerates the closed ticket lifecycle vocabulary. The
// canonical spelling is the one shown to clients; parsing accepts the
// legacy variants that accumulated across the old views.
type TicketStatus string

const (
	StatusSinAsignar      TicketStatus = "Sin asignar"
	StatusAsignado        TicketStatus = "Asignado"
	StatusPendiente       TicketStatus = "Pendiente"
	StatusEnProceso       TicketStatus = "En proceso"
	StatusEjecutado       TicketStatus = "Ejecutado"
	StatusRealizado       TicketStatus = "Realizado"
	StatusRevisionInterna TicketStatus = "Revision interna"
	StatusCerrado         TicketStatus = "Cerrado"
	StatusCancelado       TicketStatus = "Cancelado"
	StatusQA              TicketStatus = "QA"
)

// AllStatuses lists every status in dropdown order.
var AllStatuses = []TicketStatus{
	StatusSinAsignar,
	StatusAsignado,
	StatusPendiente,
	StatusEnProceso,
	StatusEjecutado,
	StatusRealizado,
	StatusRevisionInterna,
	StatusCerrado,
	StatusCancelado,
	StatusQA,
}

// lockedStatuses is the terminal set after which only superadmin may edit.
var lockedStatuses = map[TicketStatus]struct{}{
	StatusRealizado:       {},
	StatusEjecutado:       {},
	StatusRevisionInterna: {},
	StatusCerrado:         {},
	StatusCancelado:       {},
}

// statusAliases maps normalized legacy spellings to the canonical status.
var statusAliases = map[string]TicketStatus{
	"sin asignar":              StatusSinAsignar,
	"asignado":                 StatusAsignado,
	"pendiente":                StatusPendiente,
	"en proceso":               StatusEnProceso,
	"in progress":              StatusEnProceso,
	"en camino":                StatusEnProceso,
	"ejecutado":                StatusEjecutado,
	"realizado":                StatusRealizado,
	"revision interna":         StatusRevisionInterna,
	"revision control interno": StatusRevisionInterna,
	"cerrado":                  StatusCerrado,
	"cancelado":                StatusCancelado,
	"qa":                       StatusQA,
}

// ParseStatus resolves an external status token case- and
// spacing-insensitively. Unknown tokens are an error, never a default.
func ParseStatus(raw string) (TicketStatus, error) {
	if status, ok := statusAliases[normalizeToken(raw)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unknown ticket status %q", raw)
}

// IsLockedStatus reports whether the status belongs to the terminal set.
func IsLockedStatus(status TicketStatus) bool {
	_, ok := lockedStatuses[status]
	return ok
}

// normalizeToken lowercases, trims, and collapses underscores and runs of
// whitespace so "Revision_control  Interno" matches "revision control interno".
func normalizeToken(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "_", " ")
	return strings.Join(strings.Fields(lowered), " ")
}
