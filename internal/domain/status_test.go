package domain

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    TicketStatus
		wantErr bool
	}{
		{name: "canonical", raw: "Sin asignar", want: StatusSinAsignar},
		{name: "case insensitive", raw: "ASIGNADO", want: StatusAsignado},
		{name: "underscores", raw: "en_proceso", want: StatusEnProceso},
		{name: "extra spaces", raw: "  Revision   interna ", want: StatusRevisionInterna},
		{name: "english legacy", raw: "in progress", want: StatusEnProceso},
		{name: "en camino legacy", raw: "En camino", want: StatusEnProceso},
		{name: "revision control legacy", raw: "Revision_control Interno", want: StatusRevisionInterna},
		{name: "qa", raw: "qa", want: StatusQA},
		{name: "unknown", raw: "archived", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseStatus(%q) = %q, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("ParseStatus(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsLockedStatus(t *testing.T) {
	locked := []TicketStatus{StatusRealizado, StatusEjecutado, StatusRevisionInterna, StatusCerrado, StatusCancelado}
	for _, status := range locked {
		if !IsLockedStatus(status) {
			t.Errorf("IsLockedStatus(%q) = false, want true", status)
		}
	}
	open := []TicketStatus{StatusSinAsignar, StatusAsignado, StatusPendiente, StatusEnProceso, StatusQA}
	for _, status := range open {
		if IsLockedStatus(status) {
			t.Errorf("IsLockedStatus(%q) = true, want false", status)
		}
	}
}

func TestPrependLog(t *testing.T) {
	ticket := &Ticket{}
	ticket.PrependLog(LogEntry{Note: "first"})
	ticket.PrependLog(LogEntry{Note: "second"})
	ticket.PrependLog(LogEntry{Note: "third"})

	if len(ticket.Logs) != 3 {
		t.Fatalf("len(Logs) = %d, want 3", len(ticket.Logs))
	}
	want := []string{"third", "second", "first"}
	for i, note := range want {
		if ticket.Logs[i].Note != note {
			t.Errorf("Logs[%d].Note = %q, want %q", i, ticket.Logs[i].Note, note)
		}
	}
}
