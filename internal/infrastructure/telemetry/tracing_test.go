package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return rec
}

func TestStartSpan(t *testing.T) {
	rec := installRecorder(t)
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	ctx, span := StartSpan(context.Background(), "geocode", "resolve", AttrProvider, "google", AttrGeocodeHit, false, AttrTenantID, id, "dangling")
	assert.NotEmpty(t, TraceID(ctx))
	SetAttributes(span, "attempts", 2)
	RecordError(span, errors.New("boom"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	s := ended[0]
	assert.Equal(t, "geocode.resolve", s.Name())
	assert.Equal(t, codes.Error, s.Status().Code)
	assert.Contains(t, s.Attributes(), attribute.String(AttrProvider, "google"))
	assert.Contains(t, s.Attributes(), attribute.Bool(AttrGeocodeHit, false))
	assert.Contains(t, s.Attributes(), attribute.String(AttrTenantID, id.String()))
	assert.Contains(t, s.Attributes(), attribute.Int("attempts", 2))
	assert.Len(t, s.Attributes(), 4)
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
	RecordError(nil, errors.New("ignored"))
	SetAttributes(nil, "k", "v")
}

func TestSampler(t *testing.T) {
	assert.Contains(t, Sampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, Sampler(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, Sampler(0.25).Description(), "TraceIDRatioBased")
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{Enabled: false, ServiceName: "atlas"}, "test", zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("x"))
	assert.NoError(t, tp.Shutdown(context.Background()))
}
