package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis-backed cache of raw engine payloads keyed by a digest of the built
// request body. The cache only short-circuits the engine round trip; result
// persistence always happens, so losing the cache loses nothing durable.
type RedisResultCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisResultCache connects using a redis URL (redis://host:port/db).
func NewRedisResultCache(redisURL string, ttl time.Duration) (*RedisResultCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("result cache: parse redis url: %w", err)
	}

	return NewRedisResultCacheWithClient(redis.NewClient(opts), ttl), nil
}

// NewRedisResultCacheWithClient wraps an existing client. Useful for tests.
func NewRedisResultCacheWithClient(client redis.UniversalClient, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{client: client, ttl: ttl}
}

// Ping verifies the connection, for use at startup.
func (c *RedisResultCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("result cache: ping: %w", err)
	}
	return nil
}

// Look up a cached payload. A missing key is not an error.
func (c *RedisResultCache) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("result cache: get %q: %w", key, err)
	}

	return json.RawMessage(val), true, nil
}

// Store a payload under key for the configured TTL.
func (c *RedisResultCache) Put(ctx context.Context, key string, result json.RawMessage) error {
	if err := c.client.Set(ctx, key, []byte(result), c.ttl).Err(); err != nil {
		return fmt.Errorf("result cache: set %q: %w", key, err)
	}
	return nil
}
