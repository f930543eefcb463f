package persistence

import (
	"context"

	"github.com/atlas/backend/internal/domain/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMetricsSource implements metrics.Source. Every read goes through the
// transient-error retry.
type GormMetricsSource struct {
	db     *gorm.DB
	policy RetryPolicy
}

// NewGormMetricsSource creates a new GormMetricsSource
func NewGormMetricsSource(db *gorm.DB, policy RetryPolicy) *GormMetricsSource {
	return &GormMetricsSource{db: db, policy: policy}
}

type lineRow struct {
	OrderID   string
	OrderedAt *string
	Subtotal  decimal.Decimal
	Quantity  decimal.Decimal
}

// OrderLines fetches the lines of every order created inside r, joined to
// the parent timestamp. The timestamp is scanned as text so a malformed
// value drops one line instead of failing the query.
func (s *GormMetricsSource) OrderLines(ctx context.Context, tenantID uuid.UUID, r metrics.Range) ([]metrics.Line, error) {
	return WithRetry(ctx, s.policy, func(ctx context.Context) ([]metrics.Line, error) {
		rows, err := s.db.WithContext(ctx).Raw(`
			SELECT oi.order_id, o.created_at, oi.subtotal, oi.quantity
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.tenant_id = ? AND o.created_at >= ? AND o.created_at < ?`,
			tenantID, r.Start.UTC(), r.End.UTC()).Rows()
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var lines []metrics.Line
		for rows.Next() {
			var row lineRow
			if err := rows.Scan(&row.OrderID, &row.OrderedAt, &row.Subtotal, &row.Quantity); err != nil {
				return nil, err
			}
			lines = append(lines, metrics.Line(row))
		}
		return lines, rows.Err()
	})
}

// ReturnAmounts returns the amount of every return created inside r
func (s *GormMetricsSource) ReturnAmounts(ctx context.Context, tenantID uuid.UUID, r metrics.Range) ([]decimal.Decimal, error) {
	return WithRetry(ctx, s.policy, func(ctx context.Context) ([]decimal.Decimal, error) {
		var amounts []decimal.Decimal
		err := s.db.WithContext(ctx).
			Table("product_returns").
			Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, r.Start.UTC(), r.End.UTC()).
			Pluck("amount", &amounts).Error
		return amounts, err
	})
}

// AttendancePeople returns the person id of every check-in inside r
func (s *GormMetricsSource) AttendancePeople(ctx context.Context, tenantID uuid.UUID, r metrics.Range) ([]string, error) {
	return WithRetry(ctx, s.policy, func(ctx context.Context) ([]string, error) {
		var people []string
		err := s.db.WithContext(ctx).
			Table("attendance").
			Where("tenant_id = ? AND checked_in_at >= ? AND checked_in_at < ?", tenantID, r.Start.UTC(), r.End.UTC()).
			Pluck("person_id", &people).Error
		return people, err
	})
}
