//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marcelsud/issue-webhooks/webhook/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	testcontainersredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// replayServer is a throwaway Redis plus a raw client for inspecting keys
type replayServer struct {
	Addr   string
	client *goredis.Client
}

// SetupRedisContainer starts Redis; the returned func terminates it
func SetupRedisContainer(t *testing.T, ctx context.Context) (*replayServer, func()) {
	t.Helper()

	container, err := testcontainersredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start Redis container")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "failed to get Redis connection string")

	addr := strings.TrimPrefix(uri, "redis://")
	server := &replayServer{
		Addr:   addr,
		client: goredis.NewClient(&goredis.Options{Addr: addr}),
	}
	require.NoError(t, server.client.Ping(ctx).Err(), "redis not ready")

	return server, func() {
		_ = server.client.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	}
}

// CreateTestCache opens a replay cache against addr, closed at test end
func CreateTestCache(t *testing.T, addr string) *redis.ReplayCache {
	t.Helper()

	cache, err := redis.NewReplayCache(addr, "", 0)
	require.NoError(t, err, "failed to create replay cache")
	t.Cleanup(func() { _ = cache.Close() })

	return cache
}

var keySeq atomic.Int64

// GenerateKey returns a replay key no other test uses
func GenerateKey(t *testing.T, index int) string {
	t.Helper()
	return fmt.Sprintf("%d:%s-%d-%d", time.Now().Unix(), t.Name(), index, keySeq.Add(1))
}

// GetKeyTTL returns the remaining TTL of key in seconds
func GetKeyTTL(t *testing.T, server *replayServer, key string) int64 {
	t.Helper()

	ttl, err := server.client.TTL(context.Background(), key).Result()
	require.NoError(t, err)
	return int64(ttl.Seconds())
}

func KeyExists(t *testing.T, server *replayServer, key string) bool {
	t.Helper()

	n, err := server.client.Exists(context.Background(), key).Result()
	require.NoError(t, err)
	return n > 0
}
