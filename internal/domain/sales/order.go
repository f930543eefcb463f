package sales

import (
	"context"
	"strings"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how an order was paid
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentQR       PaymentMethod = "qr"
	PaymentCredit   PaymentMethod = "credit"
)

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentQR, PaymentCredit:
		return true
	}
	return false
}

// Order is a completed sale (a ticket)
type Order struct {
	shared.TenantEntity
	CustomerID      *uuid.UUID
	SellerID        *uuid.UUID
	PaymentMethod   PaymentMethod
	Total           decimal.Decimal
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	Notes           string
	Items           []OrderItem
}

// OrderItem is one line of an order
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// LineInput describes a line for NewOrder
type LineInput struct {
	ProductID   *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// NewOrder creates an order. Subtotals are quantity times unit price; the
// total is the sum of subtotals.
func NewOrder(tenantID uuid.UUID, method PaymentMethod, lines []LineInput) (*Order, error) {
	if !method.IsValid() {
		return nil, shared.NewValidationError("payment_method is not valid")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("an order needs at least one item")
	}

	o := &Order{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		PaymentMethod: method,
		Total:         decimal.Zero,
		Items:         make([]OrderItem, 0, len(lines)),
	}
	for _, l := range lines {
		if !l.Quantity.IsPositive() {
			return nil, shared.NewValidationError("item quantity must be positive")
		}
		if l.UnitPrice.IsNegative() {
			return nil, shared.NewValidationError("item unit price cannot be negative")
		}
		if l.ProductID == nil && strings.TrimSpace(l.Description) == "" {
			return nil, shared.NewValidationError("item needs a product or a description")
		}
		sub := l.Quantity.Mul(l.UnitPrice)
		o.Items = append(o.Items, OrderItem{
			ID:          uuid.New(),
			OrderID:     o.ID,
			ProductID:   l.ProductID,
			Description: strings.TrimSpace(l.Description),
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    sub,
		})
		o.Total = o.Total.Add(sub)
	}
	return o, nil
}

// OrderRepository defines persistence for orders
type OrderRepository interface {
	// Create stores the order and its items in one transaction
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)
	DeleteItems(ctx context.Context, tenantID, orderID uuid.UUID) (int64, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
