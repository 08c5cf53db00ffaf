package dto

type CreateNDARequest struct {
	PitchID uint   `json:"pitch_id"`
	NDAType string `json:"nda_type"` // basic | enhanced | custom
	Message string `json:"message"`
}

type RespondNDARequest struct {
	Message string `json:"message"`
}

type NDARequestResponse struct {
	ID              uint    `json:"id"`
	PitchID         uint    `json:"pitch_id"`
	RequesterID     uint    `json:"requester_id"`
	OwnerID         uint    `json:"owner_id"`
	NDAType         string  `json:"nda_type"`
	Status          string  `json:"status"` // pending | approved | rejected | withdrawn
	RequestMessage  *string `json:"request_message,omitempty"`
	ResponseMessage *string `json:"response_message,omitempty"`
	RequestedAt     string  `json:"requested_at"`
	RespondedAt     *string `json:"responded_at,omitempty"`
}

type SignedNDAResponse struct {
	ID          uint    `json:"id"`
	PitchID     uint    `json:"pitch_id"`
	SignerID    uint    `json:"signer_id"`
	RequestID   uint    `json:"request_id"`
	NDAType     string  `json:"nda_type"`
	AccessLevel string  `json:"access_level"`
	SignedAt    string  `json:"signed_at"`
	ExpiresAt   *string `json:"expires_at,omitempty"`
	Revoked     bool    `json:"revoked"`
	RevokedAt   *string `json:"revoked_at,omitempty"`
}

type AccessStatusResponse struct {
	Status      string  `json:"status"` // none | pending | approved | rejected | expired | revoked
	AccessLevel string  `json:"access_level"`
	RequestID   *uint   `json:"request_id,omitempty"`
	SignedNDAID *uint   `json:"signed_nda_id,omitempty"`
	ExpiresAt   *string `json:"expires_at,omitempty"`
}
