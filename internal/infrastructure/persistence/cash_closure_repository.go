package persistence

import (
	"context"
	"time"

	"github.com/atlas/backend/internal/domain/cash"
	"github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormClosureRepository implements cash.ClosureRepository using GORM
type GormClosureRepository struct {
	db *gorm.DB
}

// NewGormClosureRepository creates a new GormClosureRepository
func NewGormClosureRepository(db *gorm.DB) *GormClosureRepository {
	return &GormClosureRepository{db: db}
}

// Create inserts a closure
func (r *GormClosureRepository) Create(ctx context.Context, c *cash.Closure) error {
	return translate(r.db.WithContext(ctx).Create(models.CashClosureModelFromDomain(c)).Error)
}

// List returns closures newest first
func (r *GormClosureRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]cash.Closure, error) {
	var rows []models.CashClosureModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Scopes(paginate(filter)).
		Order("closed_at DESC").
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	out := make([]cash.Closure, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CashSalesTotal sums the totals of cash-paid orders created in [from, to)
func (r *GormClosureRepository) CashSalesTotal(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("SUM(total)").
		Where("tenant_id = ? AND payment_method = ? AND created_at >= ? AND created_at < ?",
			tenantID, string(sales.PaymentCash), from.UTC(), to.UTC()).
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, translate(err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
