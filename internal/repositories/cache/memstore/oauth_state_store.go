package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultSize bounds the number of outstanding states kept in process.
const DefaultSize = 10_000

type entry struct {
	state     domain.OAuthState
	expiresAt time.Time
}

// OAuthStateStore is the single-instance state store used when no Redis URL is configured.
// The LRU evicts after maxTTL; each entry also carries its own expiry for shorter TTLs.
type OAuthStateStore struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, entry]
	now   func() time.Time
}

var _ portsrepo.OAuthStateStore = (*OAuthStateStore)(nil)

func NewOAuthStateStore(size int, maxTTL time.Duration) *OAuthStateStore {
	if size <= 0 {
		size = DefaultSize
	}
	return &OAuthStateStore{
		cache: expirable.NewLRU[string, entry](size, nil, maxTTL),
		now:   time.Now,
	}
}

func (s *OAuthStateStore) Save(_ context.Context, state domain.OAuthState, ttl time.Duration) error {
	s.cache.Add(state.State, entry{state: state, expiresAt: s.now().Add(ttl)})
	return nil
}

func (s *OAuthStateStore) Consume(_ context.Context, state string) (*domain.OAuthState, error) {
	if state == "" {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cache.Get(state)
	if !ok {
		return nil, nil
	}
	s.cache.Remove(state)
	if !s.now().Before(e.expiresAt) {
		return nil, nil
	}
	out := e.state
	return &out, nil
}
