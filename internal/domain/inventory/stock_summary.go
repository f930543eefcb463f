package inventory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CriticalThreshold is the quantity below which a product is critical
var CriticalThreshold = decimal.NewFromInt(10)

// CriticalLimit caps the critical list
const CriticalLimit = 10

// ProductStock is a product with its total tracked quantity across locations
type ProductStock struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// Summary is the inventory overview
type Summary struct {
	Products   int             `json:"products"`
	TotalUnits decimal.Decimal `json:"total_units"`
	OutOfStock int             `json:"out_of_stock"`
	Critical   []ProductStock  `json:"critical"`
}

// CriticalStock returns products under threshold, lowest quantity first,
// at most limit entries. Ties break on name for a stable order.
func CriticalStock(items []ProductStock, threshold decimal.Decimal, limit int) []ProductStock {
	out := make([]ProductStock, 0)
	for _, it := range items {
		if it.Quantity.LessThan(threshold) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Quantity.Cmp(out[j].Quantity); c != 0 {
			return c < 0
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Summarize builds the inventory overview
func Summarize(items []ProductStock) Summary {
	s := Summary{Products: len(items), TotalUnits: decimal.Zero}
	for _, it := range items {
		s.TotalUnits = s.TotalUnits.Add(it.Quantity)
		if !it.Quantity.IsPositive() {
			s.OutOfStock++
		}
	}
	s.Critical = CriticalStock(items, CriticalThreshold, CriticalLimit)
	return s
}

// StockReader reads aggregated stock levels
type StockReader interface {
	ProductStocks(ctx context.Context, tenantID uuid.UUID) ([]ProductStock, error)
}
