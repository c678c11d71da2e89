package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
)

// OAuthStateStore keeps one-time OAuth state values keyed by the value itself.
type OAuthStateStore interface {
	// Save stores the state until ttl elapses.
	Save(ctx context.Context, state domain.OAuthState, ttl time.Duration) error

	// Consume returns and deletes the state. An unknown or expired value yields nil, nil.
	Consume(ctx context.Context, state string) (*domain.OAuthState, error)
}
