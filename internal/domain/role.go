package domain

import (
	"fmt"
	"strings"
)

// Role enumerates actor roles. External representations are parsed
// case-insensitively; the historical spelling drift (super_admin vs
// superadmin, client vs cliente) collapses into one canonical value.
type Role string

const (
	RoleSuperadmin  Role = "superadmin"
	RoleAdmin       Role = "admin"
	RoleCoordinador Role = "coordinador"
	RoleOperativo   Role = "operativo"
	RoleKioskMaster Role = "kiosk_master"
	RoleCliente     Role = "cliente"
)

var roleAliases = map[string]Role{
	"superadmin":   RoleSuperadmin,
	"super admin":  RoleSuperadmin,
	"admin":        RoleAdmin,
	"coordinador":  RoleCoordinador,
	"coordinator":  RoleCoordinador,
	"operativo":    RoleOperativo,
	"kiosk master": RoleKioskMaster,
	"cliente":      RoleCliente,
	"client":       RoleCliente,
}

// ParseRole resolves an external role token to the canonical role.
func ParseRole(raw string) (Role, error) {
	if role, ok := roleAliases[normalizeToken(raw)]; ok {
		return role, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// Position further classifies operativo staff into field tiers.
type Position string

const (
	PositionLider     Position = "LIDER"
	PositionAuxiliar  Position = "AUXILIAR"
	PositionNoApplica Position = "N/A"
)

// ParsePosition matches by substring on the normalized text, mirroring how
// the legacy data stored free-typed position labels ("Líder técnico", etc.).
func ParsePosition(raw string) Position {
	normalized := normalizeToken(raw)
	switch {
	case strings.Contains(normalized, "lider") || strings.Contains(normalized, "líder"):
		return PositionLider
	case strings.Contains(normalized, "auxiliar"):
		return PositionAuxiliar
	default:
		return PositionNoApplica
	}
}
