package repositories

import (
	"context"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
)

// RefreshTokenRepository persists application session refresh tokens by hash.
type RefreshTokenRepository interface {
	// SaveRefreshToken persists a new token row.
	SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error

	// FindRefreshTokenByHash returns apperrors.ErrNotFound for unknown hashes.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)

	// DeleteRefreshTokenByHash removes one token. Deleting an unknown hash is not an error.
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error

	// DeleteRefreshTokensByUserID removes every token of a user and returns how many were removed.
	DeleteRefreshTokensByUserID(ctx context.Context, userID string) (int64, error)
}
