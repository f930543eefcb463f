package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList records sessions ended by logout before their expiry
type RevocationList interface {
	// Revoke marks a session ID as ended for ttl
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// RedisRevocationList implements RevocationList using Redis so every
// instance sees a logout
type RedisRevocationList struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisRevocationList creates a revocation list on an existing client
func NewRedisRevocationList(client redis.UniversalClient) *RedisRevocationList {
	return &RedisRevocationList{client: client, keyPrefix: "atlas:session:revoked:"}
}

// Revoke stores the session ID with the remaining lifetime as TTL
func (l *RedisRevocationList) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := l.client.Set(ctx, l.keyPrefix+sessionID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// IsRevoked checks whether the session ID was revoked
func (l *RedisRevocationList) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := l.client.Exists(ctx, l.keyPrefix+sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return n > 0, nil
}

var _ RevocationList = (*RedisRevocationList)(nil)

// InMemoryRevocationList is the single-instance fallback used when Redis
// is not configured
type InMemoryRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time // session ID -> expiry
	now     func() time.Time
}

// NewInMemoryRevocationList creates an empty in-memory revocation list
func NewInMemoryRevocationList() *InMemoryRevocationList {
	return &InMemoryRevocationList{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke marks a session ID as ended for ttl
func (l *InMemoryRevocationList) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revoked[sessionID] = l.now().Add(ttl)
	l.sweep()
	return nil
}

// IsRevoked checks whether the session ID was revoked and has not aged out
func (l *InMemoryRevocationList) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	exp, ok := l.revoked[sessionID]
	if !ok {
		return false, nil
	}
	if l.now().After(exp) {
		delete(l.revoked, sessionID)
		return false, nil
	}
	return true, nil
}

// sweep drops expired entries; caller holds mu
func (l *InMemoryRevocationList) sweep() {
	now := l.now()
	for id, exp := range l.revoked {
		if now.After(exp) {
			delete(l.revoked, id)
		}
	}
}

var _ RevocationList = (*InMemoryRevocationList)(nil)
