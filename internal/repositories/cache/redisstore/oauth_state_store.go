package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "oauth_state:"

// OAuthStateStore keeps OAuth state envelopes in Redis so any instance can finish a flow.
type OAuthStateStore struct {
	client redis.Cmdable
}

var _ portsrepo.OAuthStateStore = (*OAuthStateStore)(nil)

func NewOAuthStateStore(client redis.Cmdable) *OAuthStateStore {
	return &OAuthStateStore{client: client}
}

func stateKey(state string) string {
	return stateKeyPrefix + state
}

func (s *OAuthStateStore) Save(ctx context.Context, state domain.OAuthState, ttl time.Duration) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal oauth state: %w", err)
	}
	if err := s.client.Set(ctx, stateKey(state.State), raw, ttl).Err(); err != nil {
		return fmt.Errorf("store oauth state: %w", err)
	}
	return nil
}

// Consume reads and deletes the envelope in one GETDEL so a state can only be used once.
func (s *OAuthStateStore) Consume(ctx context.Context, state string) (*domain.OAuthState, error) {
	if state == "" {
		return nil, nil
	}
	raw, err := s.client.GetDel(ctx, stateKey(state)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("consume oauth state: %w", err)
	}
	var out domain.OAuthState
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode oauth state: %w", err)
	}
	return &out, nil
}
