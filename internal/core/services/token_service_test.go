package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
	"github.com/SscSPs/social_dashboard/internal/core/services"
	"github.com/SscSPs/social_dashboard/internal/platform/config"
	"github.com/SscSPs/social_dashboard/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          15 * time.Minute,
		JWTIssuer:                  "test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	svc := services.NewTokenService(cfg, services.WithClock(fixedClock))
	user := &domain.User{UserID: "u1", Role: domain.RoleAdmin}

	access, accessExp, err := svc.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(15*time.Minute), accessExp)

	claims, err := utils.ParseAndValidateJWT(access, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, string(domain.RoleAdmin), claims.Role)

	refresh, refreshExp, err := svc.GenerateRefreshToken(context.Background(), user)
	require.NoError(t, err)
	assert.Len(t, refresh, 64)
	assert.Equal(t, testNow.Add(24*time.Hour), refreshExp)
}
