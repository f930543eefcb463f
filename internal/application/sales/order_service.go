package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/atlas/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order use cases
type OrderService struct {
	orders sales.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orders sales.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// Create records a completed sale for the seller
func (s *OrderService) Create(ctx context.Context, tenantID, sellerID uuid.UUID, in CreateOrderInput) (*OrderResponse, error) {
	lines := make([]sales.LineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, sales.LineInput{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	method := sales.PaymentMethod(strings.ToLower(strings.TrimSpace(in.PaymentMethod)))
	order, err := sales.NewOrder(tenantID, method, lines)
	if err != nil {
		return nil, err
	}
	order.CustomerID = in.CustomerID
	if sellerID != uuid.Nil {
		order.SellerID = &sellerID
	}
	order.CustomerName = strings.TrimSpace(in.CustomerName)
	order.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	order.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)
	order.Notes = in.Notes

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	logger.L(ctx).Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.Total.String()),
		zap.Int("items", len(order.Items)))

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Get returns one order with its items
func (s *OrderService) Get(ctx context.Context, tenantID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List returns a page of orders, newest first
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orders.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i]))
	}
	return out, nil
}

// Delete removes an order: items first, then the order itself. The two
// statements are not atomic; a failure after the first leaves an order
// without items, which a retry completes.
func (s *OrderService) Delete(ctx context.Context, tenantID uuid.UUID, role identity.Role, id uuid.UUID) (*DeleteOrderResult, error) {
	if !role.IsManagerial() {
		return nil, shared.NewDomainError(shared.ErrForbidden.Code, "only admins and managers can delete orders")
	}

	ctx, span := telemetry.StartSpan(ctx, "orders", "delete", telemetry.AttrOrderID, id)
	defer span.End()

	if _, err := s.orders.FindByID(ctx, tenantID, id); err != nil {
		return nil, err
	}

	removed, err := s.orders.DeleteItems(ctx, tenantID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("delete order items: %w", err)
	}
	if err := s.orders.Delete(ctx, tenantID, id); err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("Order items removed but order delete failed",
			zap.String("order_id", id.String()),
			zap.Int64("items_removed", removed),
			zap.Error(err))
		return nil, fmt.Errorf("delete order: %w", err)
	}

	logger.L(ctx).Info("Order deleted", zap.String("order_id", id.String()), zap.Int64("items_removed", removed))
	return &DeleteOrderResult{ID: id, ItemsRemoved: removed}, nil
}
