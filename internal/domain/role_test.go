package domain

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{raw: "superadmin", want: RoleSuperadmin},
		{raw: "Super_Admin", want: RoleSuperadmin},
		{raw: "ADMIN", want: RoleAdmin},
		{raw: "coordinator", want: RoleCoordinador},
		{raw: "coordinador", want: RoleCoordinador},
		{raw: "operativo", want: RoleOperativo},
		{raw: "kiosk_master", want: RoleKioskMaster},
		{raw: "client", want: RoleCliente},
		{raw: "cliente", want: RoleCliente},
		{raw: "manager", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseRole(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRole(%q) = %q, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRole(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("ParseRole(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		raw  string
		want Position
	}{
		{raw: "LIDER", want: PositionLider},
		{raw: "Líder técnico", want: PositionLider},
		{raw: "lider de cuadrilla", want: PositionLider},
		{raw: "AUXILIAR", want: PositionAuxiliar},
		{raw: "Auxiliar de campo", want: PositionAuxiliar},
		{raw: "", want: PositionNoApplica},
		{raw: "oficina", want: PositionNoApplica},
	}
	for _, tt := range tests {
		if got := ParsePosition(tt.raw); got != tt.want {
			t.Errorf("ParsePosition(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestClientCanReceiveServices(t *testing.T) {
	coordinator := "c1"
	now := mustTime(t, "2025-06-02T10:00:00Z")
	past := mustTime(t, "2025-06-01T00:00:00Z")
	future := mustTime(t, "2025-06-30T00:00:00Z")

	tests := []struct {
		name   string
		client Client
		want   bool
	}{
		{name: "active with coordinator", client: Client{CoordinatorID: &coordinator, Status: ClientStatusActive}, want: true},
		{name: "no coordinator", client: Client{Status: ClientStatusActive}, want: false},
		{name: "pending", client: Client{CoordinatorID: &coordinator, Status: ClientStatusPending}, want: false},
		{name: "blocked indefinitely", client: Client{CoordinatorID: &coordinator, Status: ClientStatusBlocked}, want: false},
		{name: "block expired", client: Client{CoordinatorID: &coordinator, Status: ClientStatusBlocked, BlockedUntil: &past}, want: true},
		{name: "block active", client: Client{CoordinatorID: &coordinator, Status: ClientStatusBlocked, BlockedUntil: &future}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.CanReceiveServices(now); got != tt.want {
				t.Fatalf("CanReceiveServices() = %v, want %v", got, tt.want)
			}
		})
	}
}
