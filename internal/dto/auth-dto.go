package dto

// AuthResponse carries the verified identity claims for the current request.
type AuthResponse struct {
	UserID int     `json:"user_id"`
	Email  string  `json:"email"`
	Role   string  `json:"role"` // creator | investor | production
	Expiry float64 `json:"exp"`
	Iat    float64 `json:"iat"`
}
