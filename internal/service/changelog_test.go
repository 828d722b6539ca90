package service

import (
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/field-service/internal/domain"
)

func TestChangeSummary(t *testing.T) {
	june2 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	june5 := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		before domain.Ticket
		after  domain.Ticket
		want   string
	}{
		{
			name:   "no changes",
			before: domain.Ticket{Status: domain.StatusPendiente},
			after:  domain.Ticket{Status: domain.StatusPendiente},
			want:   "",
		},
		{
			name:   "status change",
			before: domain.Ticket{Status: domain.StatusSinAsignar},
			after:  domain.Ticket{Status: domain.StatusAsignado},
			want:   "Estatus: Sin asignar ➝ Asignado",
		},
		{
			name:   "schedule set",
			before: domain.Ticket{},
			after:  domain.Ticket{ScheduledDate: &june2},
			want:   "Fecha programada: 2025-06-02",
		},
		{
			name:   "schedule moved",
			before: domain.Ticket{ScheduledDate: &june2},
			after:  domain.Ticket{ScheduledDate: &june5},
			want:   "Fecha programada: 2025-06-02 ➝ 2025-06-05",
		},
		{
			name:   "schedule removed",
			before: domain.Ticket{ScheduledDate: &june2},
			after:  domain.Ticket{},
			want:   "Fecha programada eliminada",
		},
		{
			name:   "assignments",
			before: domain.Ticket{},
			after:  domain.Ticket{CoordinatorID: strPtr("c1"), LeaderID: strPtr("l1"), AuxiliaryID: strPtr("a1")},
			want:   "Coordinador actualizado | Operativo actualizado | Auxiliar actualizado",
		},
		{
			name:   "combined with pipe separator",
			before: domain.Ticket{Status: domain.StatusPendiente},
			after:  domain.Ticket{Status: domain.StatusEnProceso, LeaderID: strPtr("l1")},
			want:   "Estatus: Pendiente ➝ En proceso | Operativo actualizado",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := changeSummary(&tt.before, &tt.after); got != tt.want {
				t.Fatalf("changeSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendAuditEntry(t *testing.T) {
	actor := Actor{ID: "u1", Name: "Ana", Role: domain.RoleAdmin}
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		summary  string
		note     string
		wantNote string
	}{
		{name: "summary only", summary: "Estatus: Pendiente ➝ En proceso", wantNote: "Estatus: Pendiente ➝ En proceso"},
		{name: "note only", note: "cliente avisado", wantNote: "Nota: cliente avisado"},
		{name: "summary and note", summary: "Operativo actualizado", note: "cubre vacaciones", wantNote: "Operativo actualizado | Nota: cubre vacaciones"},
		{name: "note trimmed", note: "  con espacios  ", wantNote: "Nota: con espacios"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := &domain.Ticket{}
			if !appendAuditEntry(ticket, actor, tt.summary, tt.note, now) {
				t.Fatal("appendAuditEntry() = false, want entry written")
			}
			if len(ticket.Logs) != 1 {
				t.Fatalf("len(Logs) = %d, want 1", len(ticket.Logs))
			}
			entry := ticket.Logs[0]
			if entry.Note != tt.wantNote {
				t.Fatalf("Note = %q, want %q", entry.Note, tt.wantNote)
			}
			if entry.Type != domain.LogTypeManualUpdate || entry.User != "Ana" || !entry.Date.Equal(now) {
				t.Fatalf("entry = %+v", entry)
			}
		})
	}

	t.Run("nothing to record", func(t *testing.T) {
		ticket := &domain.Ticket{}
		if appendAuditEntry(ticket, actor, "", "   ", now) {
			t.Fatal("appendAuditEntry() = true for empty summary and blank note")
		}
		if len(ticket.Logs) != 0 {
			t.Fatalf("len(Logs) = %d, want 0", len(ticket.Logs))
		}
	})
}

func TestStringPreview(t *testing.T) {
	if got := stringPreview("corto", 120); got != "corto" {
		t.Errorf("stringPreview short = %q", got)
	}
	long := strings.Repeat("x", 130)
	got := stringPreview(long, 120)
	if len(got) != 120 || !strings.HasSuffix(got, "...") {
		t.Errorf("stringPreview long = %q (len %d)", got, len(got))
	}
	if got := stringPreview("  recortado  ", 120); got != "recortado" {
		t.Errorf("stringPreview trim = %q", got)
	}
}
