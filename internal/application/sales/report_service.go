package sales

import (
	"context"
	"time"

	"github.com/atlas/backend/internal/domain/sales"
	"github.com/google/uuid"
)

// TopProductsLimit caps the best-seller list of a sales report
const TopProductsLimit = 10

// ReportService builds the sales and returns reports
type ReportService struct {
	reader  sales.ReportReader
	returns sales.ReturnRepository
	loc     *time.Location
	now     func() time.Time
}

// NewReportService creates a new ReportService reporting days in loc
func NewReportService(reader sales.ReportReader, returns sales.ReturnRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{reader: reader, returns: returns, loc: loc, now: time.Now}
}

// Sales reports orders in [from, to), defaulting to the current month
func (s *ReportService) Sales(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) (*sales.SalesReport, error) {
	period, err := ResolvePeriod(from, to, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	orders, err := s.reader.OrdersInRange(ctx, tenantID, period.From, period.To)
	if err != nil {
		return nil, err
	}
	top, err := s.reader.TopProducts(ctx, tenantID, period.From, period.To, TopProductsLimit)
	if err != nil {
		return nil, err
	}
	rep := sales.BuildSalesReport(period.From, period.To, s.loc, orders, top)
	return &rep, nil
}

// Returns reports product returns in [from, to), defaulting to the current month
func (s *ReportService) Returns(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) (*sales.ReturnsReport, error) {
	period, err := ResolvePeriod(from, to, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	list, err := s.returns.ListInRange(ctx, tenantID, period.From, period.To)
	if err != nil {
		return nil, err
	}
	rep := sales.BuildReturnsReport(period.From, period.To, list)
	return &rep, nil
}
