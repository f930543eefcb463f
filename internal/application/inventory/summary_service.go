// Package inventory serves stock overviews.
package inventory

import (
	"context"

	"github.com/atlas/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// SummaryService builds the inventory summary
type SummaryService struct {
	stock inventory.StockReader
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(stock inventory.StockReader) *SummaryService {
	return &SummaryService{stock: stock}
}

// Summary totals tracked stock and lists critical products
func (s *SummaryService) Summary(ctx context.Context, tenantID uuid.UUID) (*inventory.Summary, error) {
	items, err := s.stock.ProductStocks(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	sum := inventory.Summarize(items)
	return &sum, nil
}
