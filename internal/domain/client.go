package domain

import "time"

// ClientStatus enumerates client account states.
type ClientStatus string

const (
	ClientStatusActive  ClientStatus = "active"
	ClientStatusPending ClientStatus = "pending"
	ClientStatusBlocked ClientStatus = "blocked"
)

// Client is an organization/contact record. A client with no coordinator is
// pending and cannot receive services.
type Client struct {
	ID            string
	Organization  string
	FullName      string
	Email         string
	Phone         string
	PasswordHash  *string
	CoordinatorID *string
	Status        ClientStatus
	BlockedUntil  *time.Time
	BlockReason   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanReceiveServices reports whether new tickets may be opened for the client.
func (c *Client) CanReceiveServices(now time.Time) bool {
	if c.CoordinatorID == nil {
		return false
	}
	switch c.Status {
	case ClientStatusActive:
		return true
	case ClientStatusBlocked:
		return c.BlockedUntil != nil && now.After(*c.BlockedUntil)
	default:
		return false
	}
}
