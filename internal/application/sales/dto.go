package sales

import (
	"time"

	"github.com/atlas/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineInput is one requested order line
type OrderLineInput struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	Description string          `json:"description" binding:"max=300"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderInput is the body of an order creation
type CreateOrderInput struct {
	CustomerID      *uuid.UUID       `json:"customer_id"`
	PaymentMethod   string           `json:"payment_method" binding:"required"`
	CustomerName    string           `json:"customer_name" binding:"max=200"`
	CustomerPhone   string           `json:"customer_phone" binding:"max=40"`
	DeliveryAddress string           `json:"delivery_address" binding:"max=500"`
	Notes           string           `json:"notes" binding:"max=2000"`
	Items           []OrderLineInput `json:"items" binding:"required,min=1,dive"`
}

// OrderItemResponse is an order line as returned to clients
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse is an order as returned to clients
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	CustomerID      *uuid.UUID          `json:"customer_id,omitempty"`
	SellerID        *uuid.UUID          `json:"seller_id,omitempty"`
	PaymentMethod   string              `json:"payment_method"`
	Total           decimal.Decimal     `json:"total"`
	CustomerName    string              `json:"customer_name,omitempty"`
	CustomerPhone   string              `json:"customer_phone,omitempty"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *sales.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		SellerID:        o.SellerID,
		PaymentMethod:   string(o.PaymentMethod),
		Total:           o.Total,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
	}
}

// DeleteOrderResult reports what an order deletion removed
type DeleteOrderResult struct {
	ID           uuid.UUID `json:"id"`
	ItemsRemoved int64     `json:"items_removed"`
}

// CreateReturnInput is the body of a product return
type CreateReturnInput struct {
	OrderID   *uuid.UUID      `json:"order_id"`
	ProductID *uuid.UUID      `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason" binding:"max=500"`
}

// ReturnResponse is a stored return
type ReturnResponse struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   *uuid.UUID      `json:"order_id,omitempty"`
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreatePromoterSaleInput is a promoter's self-reported sale
type CreatePromoterSaleInput struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	ProductName string          `json:"product_name" binding:"required,max=200"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	SoldAt      *time.Time      `json:"sold_at"`
}

// ReviewPromoterSaleInput approves or rejects a promoter sale
type ReviewPromoterSaleInput struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Note   string `json:"note" binding:"max=1000"`
}

// PromoterSaleResponse is a promoter sale as returned to clients
type PromoterSaleResponse struct {
	ID          uuid.UUID       `json:"id"`
	PromoterID  uuid.UUID       `json:"promoter_id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	SoldAt      time.Time       `json:"sold_at"`
	ReviewedBy  *uuid.UUID      `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time      `json:"reviewed_at,omitempty"`
	ReviewNote  string          `json:"review_note,omitempty"`
}

// ToPromoterSaleResponse converts a domain promoter sale
func ToPromoterSaleResponse(s *sales.PromoterSale) PromoterSaleResponse {
	return PromoterSaleResponse{
		ID:          s.ID,
		PromoterID:  s.PromoterID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		Amount:      s.Amount,
		Status:      string(s.Status),
		SoldAt:      s.SoldAt,
		ReviewedBy:  s.ReviewedBy,
		ReviewedAt:  s.ReviewedAt,
		ReviewNote:  s.ReviewNote,
	}
}
