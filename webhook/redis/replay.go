package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

/* Redis implementation of verify.ReplayCache
 * Each accepted signature is stored under its own key with SET NX and a TTL,
 * so entries expire on their own and nothing has to be swept
 */

const keyPrefix = "webhook:replay" // Key naming: webhook:replay:{timestamp}:{hmac}

type ReplayCache struct {
	client *redis.Client
}

// NewReplayCache connects to Redis and checks the connection
func NewReplayCache(addr, password string, db int) (*ReplayCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &ReplayCache{
		client: client,
	}, nil
}

// Remember stores key for ttl and reports whether it was not already present
func (c *ReplayCache) Remember(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, Key(key), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("recording signature: %w", err)
	}
	return ok, nil
}

// Ping checks that Redis is reachable
func (c *ReplayCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *ReplayCache) Close() error {
	return c.client.Close()
}

// Key returns the Redis key used for a replay cache entry
func Key(key string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, key)
}
