package persistence

import (
	"context"

	"github.com/atlas/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockReader implements inventory.StockReader. Only products with at
// least one stock row are tracked.
type GormStockReader struct {
	db *gorm.DB
}

// NewGormStockReader creates a new GormStockReader
func NewGormStockReader(db *gorm.DB) *GormStockReader {
	return &GormStockReader{db: db}
}

// ProductStocks sums stock across locations per product
func (r *GormStockReader) ProductStocks(ctx context.Context, tenantID uuid.UUID) ([]inventory.ProductStock, error) {
	return WithRetry(ctx, DefaultRetryPolicy, func(ctx context.Context) ([]inventory.ProductStock, error) {
		var rows []inventory.ProductStock
		err := r.db.WithContext(ctx).Raw(`
			SELECT p.id AS product_id, p.sku AS sku, p.name AS name, SUM(s.quantity) AS quantity
			FROM inventory_stock s
			JOIN products p ON p.id = s.product_id AND p.tenant_id = s.tenant_id
			WHERE s.tenant_id = ? AND p.active = ?
			GROUP BY p.id, p.sku, p.name`, tenantID, true).
			Scan(&rows).Error
		return rows, err
	})
}
