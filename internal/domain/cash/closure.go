package cash

import (
	"context"
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Closure reconciles a cash drawer for one shift
type Closure struct {
	shared.TenantEntity
	CashierID  uuid.UUID
	OpenedAt   time.Time
	ClosedAt   time.Time
	Expected   decimal.Decimal
	Counted    decimal.Decimal
	Difference decimal.Decimal
	Notes      string
}

// NewClosure creates a closure; Difference is Counted minus Expected
func NewClosure(tenantID, cashierID uuid.UUID, openedAt, closedAt time.Time, expected, counted decimal.Decimal, notes string) (*Closure, error) {
	if !closedAt.After(openedAt) {
		return nil, shared.NewValidationError("closed_at must be after opened_at")
	}
	if counted.IsNegative() {
		return nil, shared.NewValidationError("counted amount cannot be negative")
	}
	return &Closure{
		TenantEntity: shared.NewTenantEntity(tenantID),
		CashierID:    cashierID,
		OpenedAt:     openedAt,
		ClosedAt:     closedAt,
		Expected:     expected,
		Counted:      counted,
		Difference:   counted.Sub(expected),
		Notes:        notes,
	}, nil
}

// Balanced reports whether the drawer matched exactly
func (c *Closure) Balanced() bool {
	return c.Difference.IsZero()
}

// ClosureRepository defines persistence for closures
type ClosureRepository interface {
	Create(ctx context.Context, c *Closure) error
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Closure, error)
	// CashSalesTotal sums cash-paid orders with created_at in [from, to)
	CashSalesTotal(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}
