package sales

import (
	"context"
	"fmt"

	"github.com/atlas/backend/internal/domain/sales"
	"github.com/google/uuid"
)

// ReturnService records product returns
type ReturnService struct {
	returns sales.ReturnRepository
}

// NewReturnService creates a new ReturnService
func NewReturnService(returns sales.ReturnRepository) *ReturnService {
	return &ReturnService{returns: returns}
}

// Create stores a return
func (s *ReturnService) Create(ctx context.Context, tenantID uuid.UUID, in CreateReturnInput) (*ReturnResponse, error) {
	ret, err := sales.NewProductReturn(tenantID, in.Quantity, in.Amount, in.Reason)
	if err != nil {
		return nil, err
	}
	ret.OrderID = in.OrderID
	ret.ProductID = in.ProductID

	if err := s.returns.Create(ctx, ret); err != nil {
		return nil, fmt.Errorf("create return: %w", err)
	}
	return &ReturnResponse{
		ID:        ret.ID,
		OrderID:   ret.OrderID,
		ProductID: ret.ProductID,
		Quantity:  ret.Quantity,
		Amount:    ret.Amount,
		Reason:    ret.Reason,
		CreatedAt: ret.CreatedAt,
	}, nil
}
