package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time           { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestLimiter(limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, window)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows the burst then blocks", func(t *testing.T) {
		rl, _ := newTestLimiter(3, time.Minute)
		for i := 0; i < 3; i++ {
			ok, _ := rl.Allow("a")
			assert.True(t, ok, "request %d", i+1)
		}
		ok, wait := rl.Allow("a")
		assert.False(t, ok)
		assert.Equal(t, 20*time.Second, wait)
	})

	t.Run("separate buckets per key", func(t *testing.T) {
		rl, _ := newTestLimiter(1, time.Minute)
		ok, _ := rl.Allow("a")
		assert.True(t, ok)
		ok, _ = rl.Allow("a")
		assert.False(t, ok)
		ok, _ = rl.Allow("b")
		assert.True(t, ok)
	})

	t.Run("refills over the window", func(t *testing.T) {
		rl, clock := newTestLimiter(2, time.Minute)
		rl.Allow("a")
		rl.Allow("a")
		ok, _ := rl.Allow("a")
		assert.False(t, ok)

		clock.advance(30 * time.Second)
		ok, _ = rl.Allow("a")
		assert.True(t, ok)
	})

	t.Run("rejections do not consume tokens", func(t *testing.T) {
		rl, clock := newTestLimiter(1, time.Minute)
		rl.Allow("a")
		for i := 0; i < 5; i++ {
			rl.Allow("a")
		}
		clock.advance(time.Minute)
		ok, _ := rl.Allow("a")
		assert.True(t, ok)
	})

	t.Run("remaining counts whole tokens", func(t *testing.T) {
		rl, _ := newTestLimiter(5, time.Minute)
		assert.Equal(t, 5, rl.Remaining("a"))
		rl.Allow("a")
		rl.Allow("a")
		assert.Equal(t, 3, rl.Remaining("a"))
	})

	t.Run("idle buckets are swept", func(t *testing.T) {
		rl, clock := newTestLimiter(1, time.Minute)
		rl.Allow("a")
		clock.advance(3 * time.Minute)
		rl.Allow("b")
		assert.Len(t, rl.clients, 1)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(2, time.Minute)
	router := gin.New()
	router.Use(RateLimit(rl))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := do()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, do().Code)

	blocked := do()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "30", blocked.Header().Get("Retry-After"))
	assert.Contains(t, blocked.Body.String(), "ERR_RATE_LIMITED")
}
