package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "ADMIN", "secret", time.Minute, "smd")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "smd", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT("user-1", "USER", "secret", -time.Minute, "smd")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret")
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	raw, err := GenerateSecureRandomString(RefreshTokenBytes)
	require.NoError(t, err)
	assert.Len(t, raw, RefreshTokenBytes*2)

	hash := HashRefreshToken(raw)
	assert.NotEqual(t, raw, hash)
	assert.True(t, CompareTokenHash(raw, hash))
	assert.False(t, CompareTokenHash(raw+"x", hash))
}

func TestGenerateSecureRandomString(t *testing.T) {
	_, err := GenerateSecureRandomString(0)
	assert.Error(t, err)

	a, err := GenerateSecureRandomString(OAuthStateBytes)
	require.NoError(t, err)
	b, err := GenerateSecureRandomString(OAuthStateBytes)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong horse", hash))
}

func TestPosthogWrapperDisabled(t *testing.T) {
	var w *PosthogClientWrapper
	assert.False(t, w.IsInitialized())
	w.Enqueue("u", EventPostPublished, nil)
	w.Close()
}
