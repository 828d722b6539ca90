package domain

import "time"

// CheckType enumerates attendance clock event kinds.
type CheckType string

const (
	CheckTypeEntrada      CheckType = "ENTRADA"
	CheckTypeSalida       CheckType = "SALIDA"
	CheckTypeSalidaAuto   CheckType = "SALIDA_AUTO"
	CheckTypeSalidaManual CheckType = "SALIDA_MANUAL"
)

// AttendanceLog is one clock-in/out event for a staff member.
type AttendanceLog struct {
	ID        string
	UserID    string
	CheckType CheckType
	Latitude  *float64
	Longitude *float64
	PhotoURL  string
	Notes     string
	CreatedAt time.Time
}

// IsSalida reports whether the event closes a working day.
func (c CheckType) IsSalida() bool {
	return c == CheckTypeSalida || c == CheckTypeSalidaAuto || c == CheckTypeSalidaManual
}

// AttendanceDay pairs the first entrada with the last salida of one
// (user, calendar date) group.
type AttendanceDay struct {
	UserID  string
	Date    time.Time
	Entrada *AttendanceLog
	Salida  *AttendanceLog
}
