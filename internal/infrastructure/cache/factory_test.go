package cache

import (
	"context"
	"testing"
	"time"

	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPlaceCacheFactory_RedisDisabled(t *testing.T) {
	f := NewPlaceCacheFactory(config.RedisConfig{Enabled: false}, time.Hour, WithLogger(zap.NewNop()))

	h, err := f.Create(context.Background(), nil)
	require.NoError(t, err)
	defer h.Close()

	_, ok := h.Cache.(*InMemoryPlaceCache)
	assert.True(t, ok)
}

func TestPlaceCacheFactory_UnreachableRedis(t *testing.T) {
	cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("falls back to memory", func(t *testing.T) {
		f := NewPlaceCacheFactory(cfg, time.Hour)
		h, err := f.Create(context.Background(), nil)
		require.NoError(t, err)
		defer h.Close()

		_, ok := h.Cache.(*InMemoryPlaceCache)
		assert.True(t, ok)
	})

	t.Run("fails without fallback", func(t *testing.T) {
		f := NewPlaceCacheFactory(cfg, time.Hour, WithInMemoryFallback(false))
		_, err := f.Create(context.Background(), nil)
		assert.Error(t, err)
	})
}
