package models

import "time"

// RefreshToken is the refresh_tokens table row.
type RefreshToken struct {
	RefreshTokenID string    `db:"refresh_token_id"`
	TokenHash      string    `db:"token_hash"`
	UserID         string    `db:"user_id"`
	ExpiresAt      time.Time `db:"expires_at"`
	CreatedAt      time.Time `db:"created_at"`
}
