package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProviderDetails retrieves a user by sign-in provider and the provider's subject id.
	FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error)

	// FindUserByResetTokenHash retrieves the user holding an unexpired password reset token.
	FindUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. A taken email yields apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates profile fields (name, role, sign-in provider).
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdatePassword replaces the password hash and clears any reset token.
	UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error

	// SetResetToken stores a hashed password reset token with its expiry.
	SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error
}

// UserCredentialWriter writes the per-provider credential columns of a user.
type UserCredentialWriter interface {
	// UpdateCredential stores the token bundle and identity for one provider.
	UpdateCredential(ctx context.Context, userID string, cred domain.Credential, updatedAt time.Time) error

	// ClearCredential nulls every column of one provider.
	ClearCredential(ctx context.Context, userID string, provider domain.Provider, updatedAt time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserCredentialWriter
}
