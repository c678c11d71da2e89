package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateKey(t *testing.T) {
	assert.Equal(t, "oauth_state:xyz", stateKey("xyz"))
}

func TestConsume_EmptyStateSkipsRedis(t *testing.T) {
	// Unreachable address: any round trip would fail.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	got, err := NewOAuthStateStore(client).Consume(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "redis://:badport:xx/0")
	assert.Error(t, err)
}
