package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateToken("JEKNVnkbo3jma5nREBBJCDoXFVeKkD56V3xKrvRmWxFG")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	address, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "JEKNVnkbo3jma5nREBBJCDoXFVeKkD56V3xKrvRmWxFG", address)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService("secret-a", time.Hour)
	verifier := NewAuthService("secret-b", time.Hour)

	token, _, err := issuer.GenerateToken("wallet")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewAuthService("test-secret", -time.Hour)

	token, _, err := svc.GenerateToken("wallet")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
