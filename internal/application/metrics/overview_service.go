// Package metrics serves the dashboard overview.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/atlas/backend/internal/domain/metrics"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/atlas/backend/internal/infrastructure/persistence"
	"github.com/atlas/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OverviewService computes the dashboard overview for a tenant
type OverviewService struct {
	source metrics.Source
	loc    *time.Location
	now    func() time.Time
}

// NewOverviewService creates a service that reports in loc
func NewOverviewService(source metrics.Source, loc *time.Location) *OverviewService {
	if loc == nil {
		loc = time.UTC
	}
	return &OverviewService{source: source, loc: loc, now: time.Now}
}

// Location is the business timezone
func (s *OverviewService) Location() *time.Location {
	return s.loc
}

// Overview fetches the month of order lines, today's returns and today's
// attendance, then rolls them up. Any fetch failure aborts; transient store
// failures surface as shared.ErrUnavailable.
func (s *OverviewService) Overview(ctx context.Context, tenantID uuid.UUID) (*metrics.Overview, error) {
	ctx, span := telemetry.StartSpan(ctx, "metrics", "overview", telemetry.AttrTenantID, tenantID)
	defer span.End()

	now := s.now()
	rg := metrics.ComputeRanges(now, s.loc)

	lines, err := s.source.OrderLines(ctx, tenantID, rg.Month)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, s.classify(ctx, "order lines", err)
	}
	returns, err := s.source.ReturnAmounts(ctx, tenantID, rg.Today)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, s.classify(ctx, "returns", err)
	}
	people, err := s.source.AttendancePeople(ctx, tenantID, rg.Today)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, s.classify(ctx, "attendance", err)
	}

	ov := metrics.BuildOverview(now, s.loc, rg, lines, returns, people)
	return &ov, nil
}

func (s *OverviewService) classify(ctx context.Context, what string, err error) error {
	if persistence.IsTransient(err) {
		logger.L(ctx).Warn("Overview fetch hit a transient store error", zap.String("fetch", what), zap.Error(err))
		return shared.ErrUnavailable
	}
	return fmt.Errorf("fetch %s: %w", what, err)
}
