package domain

import "time"

// Asset is an inventory item. ClientID is nil for orphan assets awaiting
// manual linkage; once an asset is attached to a ticket it is bound to that
// ticket's client permanently.
type Asset struct {
	ID              string
	Identifier      string
	SerialNumber    string
	Name            string
	Status          string
	LocationDetails string
	ClientID        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
