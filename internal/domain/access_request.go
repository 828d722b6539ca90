package domain

import "time"

// AccessRequestStatus enumerates self-service signup states.
type AccessRequestStatus string

const (
	AccessRequestPending  AccessRequestStatus = "pending"
	AccessRequestApproved AccessRequestStatus = "approved"
	AccessRequestRejected AccessRequestStatus = "rejected"
)

// AccessRequest queues a prospective client for staff approval.
type AccessRequest struct {
	ID           string
	Email        string
	FullName     string
	Organization string
	Phone        string
	Status       AccessRequestStatus
	CreatedAt    time.Time
	ResolvedAt   *time.Time
}
