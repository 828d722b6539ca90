package dto

import "time"

// CreateAssetRequest payload.
type CreateAssetRequest struct {
	Identifier      string `json:"identifier" validate:"required"`
	SerialNumber    string `json:"serial_number"`
	Name            string `json:"name" validate:"required"`
	Status          string `json:"status"`
	LocationDetails string `json:"location_details"`
	ClientID        string `json:"client_id"`
}

// AssetResponse response.
type AssetResponse struct {
	ID              string    `json:"id"`
	Identifier      string    `json:"identifier"`
	SerialNumber    string    `json:"serial_number,omitempty"`
	Name            string    `json:"name"`
	Status          string    `json:"status,omitempty"`
	LocationDetails string    `json:"location_details,omitempty"`
	ClientID        *string   `json:"client_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
