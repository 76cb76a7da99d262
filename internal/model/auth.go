package model

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the facilitator login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the facilitator token
type LoginResponse struct {
	Token         string `json:"token"`
	FacilitatorID string `json:"facilitatorId"`
}

// FacilitatorClaims are JWT claims for the facilitator (dashboard) role
type FacilitatorClaims struct {
	FacilitatorID string `json:"facilitatorId"`
	jwt.RegisteredClaims
}

// ParticipantClaims are JWT claims scoped to a single assessment session
type ParticipantClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}
