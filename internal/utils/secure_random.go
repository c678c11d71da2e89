package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Byte lengths of the random opaque values the backend issues.
const (
	OAuthStateBytes   = 16
	RefreshTokenBytes = 32
	ResetTokenBytes   = 32
)

// GenerateSecureRandomString returns lengthInBytes random bytes hex encoded,
// so 16 bytes give a 32 character string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
