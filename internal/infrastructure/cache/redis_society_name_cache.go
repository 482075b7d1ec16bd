package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nsnodes/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const societyNamesKey = "societies:names"

// RedisSocietyNameCache shares the society name list between instances
type RedisSocietyNameCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisSocietyNameCache connects to Redis and verifies the connection
func NewRedisSocietyNameCache(cfg config.RedisConfig, cacheCfg config.CacheConfig) (*RedisSocietyNameCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSocietyNameCacheWithClient(client, cacheCfg.KeyPrefix, cacheCfg.TTL), nil
}

// NewRedisSocietyNameCacheWithClient creates a cache over an existing client
func NewRedisSocietyNameCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSocietyNameCache {
	return &RedisSocietyNameCache{
		client: client,
		key:    keyPrefix + societyNamesKey,
		ttl:    ttl,
	}
}

// Get implements SocietyNameCache
func (c *RedisSocietyNameCache) Get(ctx context.Context) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read society names: %w", err)
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		// a corrupt entry is a miss; the next Set overwrites it
		return nil, false, nil
	}
	return names, true, nil
}

// Set implements SocietyNameCache
func (c *RedisSocietyNameCache) Set(ctx context.Context, names []string) error {
	if names == nil {
		names = []string{}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to encode society names: %w", err)
	}
	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write society names: %w", err)
	}
	return nil
}

// Invalidate implements SocietyNameCache
func (c *RedisSocietyNameCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate society names: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisSocietyNameCache) Close() error {
	return c.client.Close()
}

var _ SocietyNameCache = (*RedisSocietyNameCache)(nil)
