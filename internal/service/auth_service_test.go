package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	svc := NewAuthService()

	t.Run("wrong credentials", func(t *testing.T) {
		_, err := svc.Login("admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("default credentials", func(t *testing.T) {
		resp, err := svc.Login("admin", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Contains(t, resp.FacilitatorID, "fac_")

		claims, err := svc.ValidateFacilitatorToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.FacilitatorID, claims.FacilitatorID)
	})
}

func TestParticipantToken(t *testing.T) {
	svc := NewAuthService()

	token, err := svc.GenerateParticipantToken("sess-123")
	require.NoError(t, err)

	claims, err := svc.ValidateParticipantToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-123", claims.SessionID)
}

func TestTokenTypesDoNotCross(t *testing.T) {
	svc := NewAuthService()

	participantToken, err := svc.GenerateParticipantToken("sess-123")
	require.NoError(t, err)
	_, err = svc.ValidateFacilitatorToken(participantToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	resp, err := svc.Login("admin", "password123")
	require.NoError(t, err)
	_, err = svc.ValidateParticipantToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := NewAuthService()
	_, err := svc.ValidateFacilitatorToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
