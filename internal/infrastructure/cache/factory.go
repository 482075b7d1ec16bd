package cache

import (
	"github.com/nsnodes/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewSocietyNameCache builds the cache selected by cfg.Cache.Type. When Redis
// is selected but unreachable it falls back to memory and logs a warning,
// since names are always reloadable from the database.
//
// The returned close function releases the Redis client, if any.
func NewSocietyNameCache(cfg *config.Config, logger *zap.Logger) (SocietyNameCache, func() error) {
	noop := func() error { return nil }
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Cache.Type != "redis" {
		logger.Info("using in-memory society name cache", zap.Duration("ttl", cfg.Cache.TTL))
		return NewInMemorySocietyNameCache(cfg.Cache.TTL), noop
	}

	redisCache, err := NewRedisSocietyNameCache(cfg.Redis, cfg.Cache)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory society name cache",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err),
		)
		return NewInMemorySocietyNameCache(cfg.Cache.TTL), noop
	}

	logger.Info("using Redis society name cache", zap.String("addr", cfg.Redis.Addr()))
	return redisCache, redisCache.Close
}
