package persistence

import (
	"context"
	"time"

	"github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements sales.ReportReader using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// OrdersInRange returns the header of every order created in [from, to)
func (r *GormReportRepository) OrdersInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]sales.OrderRow, error) {
	return WithRetry(ctx, DefaultRetryPolicy, func(ctx context.Context) ([]sales.OrderRow, error) {
		var rows []models.OrderModel
		if err := r.db.WithContext(ctx).
			Select("id", "created_at", "total", "payment_method").
			Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from.UTC(), to.UTC()).
			Order("created_at ASC").
			Find(&rows).Error; err != nil {
			return nil, err
		}

		out := make([]sales.OrderRow, len(rows))
		for i, m := range rows {
			out[i] = sales.OrderRow{
				ID:            m.ID,
				CreatedAt:     m.CreatedAt,
				Total:         m.Total,
				PaymentMethod: sales.PaymentMethod(m.PaymentMethod),
			}
		}
		return out, nil
	})
}

type productSalesRow struct {
	ProductID   *uuid.UUID
	Description string
	Units       decimal.Decimal
	Revenue     decimal.Decimal
}

// TopProducts ranks order lines in [from, to) by revenue
func (r *GormReportRepository) TopProducts(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]sales.ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}
	return WithRetry(ctx, DefaultRetryPolicy, func(ctx context.Context) ([]sales.ProductSales, error) {
		var rows []productSalesRow
		if err := r.db.WithContext(ctx).Raw(`
			SELECT oi.product_id AS product_id, oi.description AS description,
				SUM(oi.quantity) AS units, SUM(oi.subtotal) AS revenue
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.tenant_id = ? AND o.created_at >= ? AND o.created_at < ?
			GROUP BY oi.product_id, oi.description
			ORDER BY revenue DESC
			LIMIT ?`, tenantID, from.UTC(), to.UTC(), limit).
			Scan(&rows).Error; err != nil {
			return nil, err
		}

		out := make([]sales.ProductSales, len(rows))
		for i, row := range rows {
			out[i] = sales.ProductSales(row)
		}
		return out, nil
	})
}
