package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc, err := NewJWTService("test-secret-key-for-jwt", "1h")
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", decoded.Subject())
	assert.NotEmpty(t, decoded.JwtID())

	role, ok := decoded.Get("role")
	require.True(t, ok)
	assert.Equal(t, "admin", role)
}

func TestRevokeToken(t *testing.T) {
	svc, err := NewJWTService("test-secret-key-for-jwt", "1h")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc", time.Now().Add(time.Hour).Unix())
	assert.True(t, svc.IsTokenRevoked("abc"))

	svc.RevokeToken("old", time.Now().Add(-time.Hour).Unix())
	svc.RevokeToken("new", time.Now().Add(time.Hour).Unix())
	assert.False(t, svc.IsTokenRevoked("old"), "expired entries are pruned")
}

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("secret", "forever")
	assert.Error(t, err)
}
