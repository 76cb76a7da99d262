package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"kvassess/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles facilitator and participant authentication. The
// facilitator logs in with env-configured credentials; participants get a
// token scoped to their own session when the session starts.
type AuthService struct {
	facilitatorUsername string
	facilitatorPassword string
	jwtSecret           []byte
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	username := os.Getenv("FACILITATOR_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("FACILITATOR_PASSWORD")
	if password == "" {
		password = "password123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		facilitatorUsername: username,
		facilitatorPassword: password,
		jwtSecret:           []byte(secret),
	}
}

// Login validates facilitator credentials and returns a token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.facilitatorUsername || password != s.facilitatorPassword {
		return nil, ErrInvalidCredentials
	}

	facilitatorID := "fac_" + uuid.New().String()[:8]

	claims := &model.FacilitatorClaims{
		FacilitatorID: facilitatorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:         tokenString,
		FacilitatorID: facilitatorID,
	}, nil
}

// ValidateFacilitatorToken validates a facilitator JWT and returns claims
func (s *AuthService) ValidateFacilitatorToken(tokenString string) (*model.FacilitatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.FacilitatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.FacilitatorClaims)
	if !ok || !token.Valid || claims.FacilitatorID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateParticipantToken creates a session-scoped token for a participant
func (s *AuthService) GenerateParticipantToken(sessionID string) (string, error) {
	claims := &model.ParticipantClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateParticipantToken validates a participant JWT and returns claims
func (s *AuthService) ValidateParticipantToken(tokenString string) (*model.ParticipantClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.ParticipantClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.ParticipantClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
