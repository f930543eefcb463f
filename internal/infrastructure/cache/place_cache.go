package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atlas/backend/internal/domain/geo"
	"github.com/redis/go-redis/v9"
)

const defaultCleanupInterval = time.Minute

// placeKey folds an input into a fixed-length key
func placeKey(input string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(input))))
	return hex.EncodeToString(sum[:])
}

// RedisPlaceCache implements geo.PlaceCache using Redis
type RedisPlaceCache struct {
	client    redis.UniversalClient
	ttl       time.Duration
	keyPrefix string
}

// NewRedisPlaceCache creates a place cache on an existing client
func NewRedisPlaceCache(client redis.UniversalClient, ttl time.Duration) *RedisPlaceCache {
	return &RedisPlaceCache{client: client, ttl: ttl, keyPrefix: "atlas:geocode:"}
}

// Get returns the cached place for input
func (c *RedisPlaceCache) Get(ctx context.Context, input string) (*geo.Place, bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+placeKey(input)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read geocode cache: %w", err)
	}

	var p geo.Place
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached place: %w", err)
	}
	return &p, true, nil
}

// Set stores a place for input with the configured TTL
func (c *RedisPlaceCache) Set(ctx context.Context, input string, p *geo.Place) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode place: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+placeKey(input), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write geocode cache: %w", err)
	}
	return nil
}

var _ geo.PlaceCache = (*RedisPlaceCache)(nil)

// cacheEntry wraps a cached value with expiration time
type cacheEntry struct {
	place     geo.Place
	expiresAt time.Time
}

// InMemoryPlaceCache implements geo.PlaceCache for a single instance. A
// background goroutine drops expired entries until Stop is called.
type InMemoryPlaceCache struct {
	entries sync.Map // key -> *cacheEntry
	ttl     time.Duration
	now     func() time.Time
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// NewInMemoryPlaceCache creates a place cache and starts its cleanup loop
func NewInMemoryPlaceCache(ttl time.Duration) *InMemoryPlaceCache {
	c := &InMemoryPlaceCache{
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go c.cleanupLoop(defaultCleanupInterval)
	return c
}

// Get returns the cached place for input
func (c *InMemoryPlaceCache) Get(_ context.Context, input string) (*geo.Place, bool, error) {
	v, ok := c.entries.Load(placeKey(input))
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}
	e := v.(*cacheEntry)
	if c.now().After(e.expiresAt) {
		c.entries.Delete(placeKey(input))
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}
	atomic.AddInt64(&c.hits, 1)
	p := e.place
	return &p, true, nil
}

// Set stores a copy of p for input
func (c *InMemoryPlaceCache) Set(_ context.Context, input string, p *geo.Place) error {
	c.entries.Store(placeKey(input), &cacheEntry{place: *p, expiresAt: c.now().Add(c.ttl)})
	return nil
}

// Stats returns the hit and miss counters
func (c *InMemoryPlaceCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Stop ends the cleanup loop; it is safe to call more than once
func (c *InMemoryPlaceCache) Stop() {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
}

func (c *InMemoryPlaceCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *InMemoryPlaceCache) removeExpired() {
	now := c.now()
	c.entries.Range(func(k, v any) bool {
		if now.After(v.(*cacheEntry).expiresAt) {
			c.entries.Delete(k)
		}
		return true
	})
}

var _ geo.PlaceCache = (*InMemoryPlaceCache)(nil)
