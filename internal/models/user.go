package models

import (
	"time"
)

// User is the users table row, including the per-provider credential columns.
type User struct {
	UserID         string  `db:"user_id"`
	Email          string  `db:"email"`
	Name           string  `db:"name"`
	PasswordHash   *string `db:"password_hash"`
	Role           string  `db:"role"`
	AuthProvider   string  `db:"auth_provider"`
	ProviderUserID *string `db:"provider_user_id"`

	FacebookToken       *string    `db:"facebook_token"`
	FacebookTokenExpiry *time.Time `db:"facebook_token_expiry"`
	FacebookID          *string    `db:"facebook_id"`

	LinkedInAccessToken  *string    `db:"linkedin_access_token"`
	LinkedInRefreshToken *string    `db:"linkedin_refresh_token"`
	LinkedInExpiresAt    *time.Time `db:"linkedin_expires_at"`
	LinkedInID           *string    `db:"linkedin_id"`

	ResetTokenHash   *string    `db:"reset_token_hash"`
	ResetTokenExpiry *time.Time `db:"reset_token_expiry"`

	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
