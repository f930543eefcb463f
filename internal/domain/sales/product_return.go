package sales

import (
	"context"
	"strings"
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductReturn records goods brought back by a customer
type ProductReturn struct {
	shared.TenantEntity
	OrderID   *uuid.UUID
	ProductID *uuid.UUID
	Quantity  decimal.Decimal
	Amount    decimal.Decimal
	Reason    string
}

// NewProductReturn creates a return
func NewProductReturn(tenantID uuid.UUID, quantity, amount decimal.Decimal, reason string) (*ProductReturn, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewValidationError("return quantity must be positive")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("return amount cannot be negative")
	}
	return &ProductReturn{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Quantity:     quantity,
		Amount:       amount,
		Reason:       strings.TrimSpace(reason),
	}, nil
}

// ReturnRepository defines persistence for returns
type ReturnRepository interface {
	Create(ctx context.Context, r *ProductReturn) error
	ListInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]ProductReturn, error)
}
