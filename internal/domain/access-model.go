package domain

import "time"

// AccessStatus describes where a viewer stands in the NDA lifecycle for a pitch.
type AccessStatus string

const (
	AccessStatusNone     AccessStatus = "none"
	AccessStatusPending  AccessStatus = "pending"
	AccessStatusApproved AccessStatus = "approved"
	AccessStatusRejected AccessStatus = "rejected"
	AccessStatusExpired  AccessStatus = "expired"
	AccessStatusRevoked  AccessStatus = "revoked"
)

// AccessDecision is derived at read time and never persisted.
type AccessDecision struct {
	Status      AccessStatus
	AccessLevel AccessLevel

	// Populated when a matching record exists so the UI can route the viewer.
	RequestID   *uint
	SignedNDAID *uint
	ExpiresAt   *time.Time
}
