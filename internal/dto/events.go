package dto

// Events published to the NDA topic after a successful commit. The
// notification service consumes them; delivery is best-effort and never
// blocks the originating call.

type RequestCreatedEvent struct {
	EventID     string `json:"event_id"`
	RequestID   uint   `json:"request_id"`
	PitchID     uint   `json:"pitch_id"`
	RequesterID uint   `json:"requester_id"`
	OwnerID     uint   `json:"owner_id"`
	NDAType     string `json:"nda_type"`
	RequestedAt string `json:"requested_at"`
}

type RequestDecidedEvent struct {
	EventID     string `json:"event_id"`
	RequestID   uint   `json:"request_id"`
	PitchID     uint   `json:"pitch_id"`
	RequesterID uint   `json:"requester_id"`
	OwnerID     uint   `json:"owner_id"`
	Decision    string `json:"decision"` // approved | rejected
	SignedNDAID *uint  `json:"signed_nda_id,omitempty"`
	DecidedAt   string `json:"decided_at"`
}

type NDARevokedEvent struct {
	EventID     string `json:"event_id"`
	SignedNDAID uint   `json:"signed_nda_id"`
	PitchID     uint   `json:"pitch_id"`
	SignerID    uint   `json:"signer_id"`
	OwnerID     uint   `json:"owner_id"`
	RevokedAt   string `json:"revoked_at"`
}
