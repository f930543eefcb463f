package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/atlas/backend/internal/domain/geo"
	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PlaceCacheFactory creates geocode caches based on configuration
type PlaceCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// PlaceCacheFactoryOption is a functional option for configuring the factory
type PlaceCacheFactoryOption func(*PlaceCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) PlaceCacheFactoryOption {
	return func(f *PlaceCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-process cache. Default is true.
func WithInMemoryFallback(allow bool) PlaceCacheFactoryOption {
	return func(f *PlaceCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewPlaceCacheFactory creates a new factory
func NewPlaceCacheFactory(redisCfg config.RedisConfig, ttl time.Duration, opts ...PlaceCacheFactoryOption) *PlaceCacheFactory {
	f := &PlaceCacheFactory{
		redisConfig:           redisCfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// PlaceCacheHandle is a cache plus the function that releases its resources
type PlaceCacheHandle struct {
	Cache geo.PlaceCache
	Close func() error
}

// Create returns a Redis cache when Redis is enabled and reachable, otherwise
// an in-memory one. A nil client is opened from the factory's config.
func (f *PlaceCacheFactory) Create(ctx context.Context, client *redis.Client) (*PlaceCacheHandle, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory geocode cache")
		return f.inMemory(), nil
	}

	if client == nil {
		var err error
		client, err = NewRedisClient(ctx, f.redisConfig)
		if err != nil {
			if !f.allowInMemoryFallback {
				return nil, fmt.Errorf("redis required for geocode cache but unavailable: %w", err)
			}
			f.logger.Warn("Redis unavailable, falling back to in-memory geocode cache", zap.Error(err))
			return f.inMemory(), nil
		}
		f.logger.Info("Using Redis geocode cache", zap.String("addr", f.redisConfig.Addr()))
		return &PlaceCacheHandle{Cache: NewRedisPlaceCache(client, f.ttl), Close: client.Close}, nil
	}

	f.logger.Info("Using Redis geocode cache", zap.String("addr", f.redisConfig.Addr()))
	return &PlaceCacheHandle{Cache: NewRedisPlaceCache(client, f.ttl), Close: func() error { return nil }}, nil
}

func (f *PlaceCacheFactory) inMemory() *PlaceCacheHandle {
	c := NewInMemoryPlaceCache(f.ttl)
	return &PlaceCacheHandle{Cache: c, Close: func() error { c.Stop(); return nil }}
}
