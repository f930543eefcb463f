// Package cash reconciles cash drawers.
package cash

import (
	"context"
	"fmt"
	"time"

	"github.com/atlas/backend/internal/domain/cash"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CloseInput is the body of a cash closure
type CloseInput struct {
	OpenedAt time.Time       `json:"opened_at" binding:"required"`
	ClosedAt *time.Time      `json:"closed_at"`
	Counted  decimal.Decimal `json:"counted"`
	Notes    string          `json:"notes" binding:"max=2000"`
}

// ClosureResponse is a closure as returned to clients
type ClosureResponse struct {
	ID         uuid.UUID       `json:"id"`
	CashierID  uuid.UUID       `json:"cashier_id"`
	OpenedAt   time.Time       `json:"opened_at"`
	ClosedAt   time.Time       `json:"closed_at"`
	Expected   decimal.Decimal `json:"expected"`
	Counted    decimal.Decimal `json:"counted"`
	Difference decimal.Decimal `json:"difference"`
	Balanced   bool            `json:"balanced"`
	Notes      string          `json:"notes,omitempty"`
}

// ToClosureResponse converts a domain closure
func ToClosureResponse(c *cash.Closure) ClosureResponse {
	return ClosureResponse{
		ID:         c.ID,
		CashierID:  c.CashierID,
		OpenedAt:   c.OpenedAt,
		ClosedAt:   c.ClosedAt,
		Expected:   c.Expected,
		Counted:    c.Counted,
		Difference: c.Difference,
		Balanced:   c.Balanced(),
		Notes:      c.Notes,
	}
}

// ClosureService handles cash closures
type ClosureService struct {
	closures cash.ClosureRepository
	now      func() time.Time
}

// NewClosureService creates a new ClosureService
func NewClosureService(closures cash.ClosureRepository) *ClosureService {
	return &ClosureService{closures: closures, now: time.Now}
}

// List returns a page of closures, newest first
func (s *ClosureService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ClosureResponse, error) {
	list, err := s.closures.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ClosureResponse, 0, len(list))
	for i := range list {
		out = append(out, ToClosureResponse(&list[i]))
	}
	return out, nil
}

// Close reconciles the drawer: the expected amount is the sum of cash
// orders created in [opened_at, closed_at).
func (s *ClosureService) Close(ctx context.Context, tenantID, cashierID uuid.UUID, in CloseInput) (*ClosureResponse, error) {
	closedAt := s.now()
	if in.ClosedAt != nil {
		closedAt = *in.ClosedAt
	}
	if !closedAt.After(in.OpenedAt) {
		return nil, shared.NewValidationError("closed_at must be after opened_at")
	}

	expected, err := s.closures.CashSalesTotal(ctx, tenantID, in.OpenedAt, closedAt)
	if err != nil {
		return nil, fmt.Errorf("sum cash sales: %w", err)
	}

	c, err := cash.NewClosure(tenantID, cashierID, in.OpenedAt, closedAt, expected, in.Counted, in.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.closures.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create closure: %w", err)
	}

	if !c.Balanced() {
		logger.L(ctx).Warn("Cash closure out of balance",
			zap.String("closure_id", c.ID.String()),
			zap.String("expected", c.Expected.String()),
			zap.String("counted", c.Counted.String()),
			zap.String("difference", c.Difference.String()))
	}
	resp := ToClosureResponse(c)
	return &resp, nil
}
