package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/events"
)

// Actor identifies who performs a mutation, for audit entries and events.
type Actor struct {
	ID   string
	Name string
	Role domain.Role
}

// changeSummary renders the human-readable diff between the prior snapshot
// and the updated ticket, e.g. "Estatus: Sin asignar ➝ Asignado | Operativo
// actualizado". Empty when none of the tracked fields changed.
func changeSummary(before, after *domain.Ticket) string {
	var parts []string

	if before.Status != after.Status {
		parts = append(parts, "Estatus: "+string(before.Status)+" ➝ "+string(after.Status))
	}
	if !equalDates(before.ScheduledDate, after.ScheduledDate) {
		switch {
		case after.ScheduledDate == nil:
			parts = append(parts, "Fecha programada eliminada")
		case before.ScheduledDate == nil:
			parts = append(parts, "Fecha programada: "+after.ScheduledDate.Format("2006-01-02"))
		default:
			parts = append(parts, "Fecha programada: "+before.ScheduledDate.Format("2006-01-02")+" ➝ "+after.ScheduledDate.Format("2006-01-02"))
		}
	}
	if !equalIDs(before.CoordinatorID, after.CoordinatorID) {
		parts = append(parts, "Coordinador actualizado")
	}
	if !equalIDs(before.LeaderID, after.LeaderID) {
		parts = append(parts, "Operativo actualizado")
	}
	if !equalIDs(before.AuxiliaryID, after.AuxiliaryID) {
		parts = append(parts, "Auxiliar actualizado")
	}

	return strings.Join(parts, " | ")
}

// appendAuditEntry prepends exactly one log entry when the diff summary is
// non-empty or a manual note was supplied. Returns whether an entry was
// written.
func appendAuditEntry(ticket *domain.Ticket, actor Actor, summary, note string, now time.Time) bool {
	text := summary
	if strings.TrimSpace(note) != "" {
		if text != "" {
			text += " | "
		}
		text += "Nota: " + strings.TrimSpace(note)
	}
	if text == "" {
		return false
	}
	ticket.PrependLog(domain.LogEntry{
		Date: now,
		User: actor.Name,
		Role: actor.Role,
		Type: domain.LogTypeManualUpdate,
		Note: text,
	})
	return true
}

func equalIDs(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalDates(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func publishWith(ctx context.Context, dispatcher events.Dispatcher, event events.Event, now func() time.Time) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now()
	}
	_ = dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
