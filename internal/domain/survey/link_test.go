package survey

import (
	"testing"
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLink(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	l := NewLink(uuid.New(), uuid.New(), "59171234567", 0, now)

	assert.Equal(t, StatusPending, l.Status)
	assert.Len(t, l.Token, 32)
	assert.Equal(t, now.Add(7*24*time.Hour), l.ExpiresAt)
	assert.True(t, l.Reusable())

	other := NewLink(l.TenantID, l.OrderID, "", time.Hour, now)
	assert.NotEqual(t, l.Token, other.Token)
}

func TestLink_StateChanges(t *testing.T) {
	now := time.Now()
	l := NewLink(uuid.New(), uuid.New(), "", 0, now)

	l.MarkSent("wamid.1", now)
	assert.Equal(t, StatusSent, l.Status)
	assert.True(t, l.Reusable())

	l.MarkFailed("provider timeout", now)
	assert.Equal(t, StatusFailed, l.Status)
	assert.Equal(t, "provider timeout", l.FailedReason)
	assert.False(t, l.Reusable())
}

func TestLink_CheckSubmittable(t *testing.T) {
	now := time.Now()
	l := NewLink(uuid.New(), uuid.New(), "", time.Hour, now.Add(-2*time.Hour))

	assert.NoError(t, l.CheckSubmittable(now, false), "expiry is not enforced by default")
	assert.ErrorIs(t, l.CheckSubmittable(now, true), ErrExpired)

	consumed := now
	l.ConsumedAt = &consumed
	err := l.CheckSubmittable(now, false)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestNewResponse(t *testing.T) {
	l := NewLink(uuid.New(), uuid.New(), "", 0, time.Now())

	r, err := NewResponse(l, 5, "  excelente ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, l.ID, r.LinkID)
	assert.Equal(t, l.OrderID, r.OrderID)
	assert.Equal(t, "excelente", r.Comment)

	for _, bad := range []int{0, 6, -1} {
		_, err := NewResponse(l, bad, "", time.Now())
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	}
}

func TestLink_URLAndMessage(t *testing.T) {
	l := &Link{Token: "abc"}
	url := l.URL("https://atlas.example.com/")
	assert.Equal(t, "https://atlas.example.com/encuesta/abc", url)
	assert.Contains(t, Message("Rosa", url), "Hola Rosa")
	assert.Contains(t, Message("", url), url)
}
