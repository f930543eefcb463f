package persistence

import (
	"context"

	"github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create stores the order and its items in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, o *sales.Order) error {
	m := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(m).Error; err != nil {
			return translate(err)
		}
		if len(m.Items) == 0 {
			return nil
		}
		return translate(tx.Create(&m.Items).Error)
	})
}

// FindByID loads an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// List returns orders newest first with their items
func (r *GormOrderRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Order, error) {
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ?", tenantID).
		Scopes(search(filter.Search, "customer_name", "customer_phone"), paginate(filter)).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	orders := make([]sales.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// DeleteItems removes the lines of an order and reports how many went
func (r *GormOrderRepository) DeleteItems(ctx context.Context, tenantID, orderID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Delete(&models.OrderItemModel{})
	return res.RowsAffected, translate(res.Error)
}

// Delete removes the order row itself
func (r *GormOrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.OrderModel{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
