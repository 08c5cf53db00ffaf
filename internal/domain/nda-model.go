package domain

import (
	"time"

	"gorm.io/gorm"
)

type NDAType string

const (
	NDATypeBasic    NDAType = "basic"
	NDATypeEnhanced NDAType = "enhanced"
	NDATypeCustom   NDAType = "custom"
)

func (t NDAType) Valid() bool {
	switch t {
	case NDATypeBasic, NDATypeEnhanced, NDATypeCustom:
		return true
	}
	return false
}

// AccessLevel is the coarse grant of content visibility derived from the NDA type.
type AccessLevel string

const (
	AccessLevelNone     AccessLevel = "none"
	AccessLevelBasic    AccessLevel = "basic"
	AccessLevelEnhanced AccessLevel = "enhanced"
)

// AccessLevelFor maps an NDA type to the level granted on approval:
// basic -> basic, enhanced and custom -> enhanced.
func AccessLevelFor(t NDAType) AccessLevel {
	if t == NDATypeBasic {
		return AccessLevelBasic
	}
	return AccessLevelEnhanced
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusWithdrawn RequestStatus = "withdrawn"
)

type NDARequest struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	PitchID     uint          `gorm:"not null;index" json:"pitch_id"`
	RequesterID uint          `gorm:"not null;index" json:"requester_id"`
	OwnerID     uint          `gorm:"not null;index" json:"owner_id"`
	NDAType     NDAType       `gorm:"type:varchar(20);not null;default:'basic'" json:"nda_type"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	RequestMessage  *string `gorm:"type:text" json:"request_message,omitempty"`
	ResponseMessage *string `gorm:"type:text" json:"response_message,omitempty"`

	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	gorm.Model
}

func (r *NDARequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

type SignedNDA struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	PitchID     uint        `gorm:"not null;index" json:"pitch_id"`
	SignerID    uint        `gorm:"not null;index" json:"signer_id"`
	RequestID   uint        `gorm:"uniqueIndex;not null" json:"request_id"`
	NDAType     NDAType     `gorm:"type:varchar(20);not null" json:"nda_type"`
	AccessLevel AccessLevel `gorm:"type:varchar(20);not null" json:"access_level"`

	SignedAt  time.Time  `gorm:"not null" json:"signed_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // nil = no expiry
	Revoked   bool       `gorm:"not null;default:false" json:"revoked"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	gorm.Model
}

func (n *SignedNDA) Expired(now time.Time) bool {
	return n.ExpiresAt != nil && !n.ExpiresAt.After(now)
}

// Active reports whether the NDA still grants access at the given time.
func (n *SignedNDA) Active(now time.Time) bool {
	return !n.Revoked && !n.Expired(now)
}
