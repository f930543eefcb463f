package persistence

import (
	"context"
	"time"

	"github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReturnRepository implements sales.ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// Create inserts a return
func (r *GormReturnRepository) Create(ctx context.Context, ret *sales.ProductReturn) error {
	return translate(r.db.WithContext(ctx).Create(models.ProductReturnModelFromDomain(ret)).Error)
}

// ListInRange returns the returns created in [from, to), newest first
func (r *GormReturnRepository) ListInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]sales.ProductReturn, error) {
	return WithRetry(ctx, DefaultRetryPolicy, func(ctx context.Context) ([]sales.ProductReturn, error) {
		var rows []models.ProductReturnModel
		if err := r.db.WithContext(ctx).
			Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from.UTC(), to.UTC()).
			Order("created_at DESC").
			Find(&rows).Error; err != nil {
			return nil, err
		}

		out := make([]sales.ProductReturn, len(rows))
		for i := range rows {
			out[i] = *rows[i].ToDomain()
		}
		return out, nil
	})
}
