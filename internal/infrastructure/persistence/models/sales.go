package models

import (
	"time"

	"github.com/atlas/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	TenantModel
	CustomerID      *uuid.UUID       `gorm:"type:uuid;index"`
	SellerID        *uuid.UUID       `gorm:"type:uuid;index"`
	PaymentMethod   string           `gorm:"type:varchar(20);not null"`
	Total           decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	CustomerName    string           `gorm:"type:varchar(200)"`
	CustomerPhone   string           `gorm:"type:varchar(50)"`
	DeliveryAddress string           `gorm:"type:varchar(500)"`
	Notes           string           `gorm:"type:text"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity
func (m *OrderModel) ToDomain() *sales.Order {
	o := &sales.Order{
		TenantEntity:    m.TenantModel.ToDomain(),
		CustomerID:      m.CustomerID,
		SellerID:        m.SellerID,
		PaymentMethod:   sales.PaymentMethod(m.PaymentMethod),
		Total:           m.Total,
		CustomerName:    m.CustomerName,
		CustomerPhone:   m.CustomerPhone,
		DeliveryAddress: m.DeliveryAddress,
		Notes:           m.Notes,
		Items:           make([]sales.OrderItem, len(m.Items)),
	}
	for i := range m.Items {
		o.Items[i] = m.Items[i].ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order entity
func (m *OrderModel) FromDomain(o *sales.Order) {
	m.FromDomainTenantEntity(o.TenantEntity)
	m.CustomerID = o.CustomerID
	m.SellerID = o.SellerID
	m.PaymentMethod = string(o.PaymentMethod)
	m.Total = o.Total
	m.CustomerName = o.CustomerName
	m.CustomerPhone = o.CustomerPhone
	m.DeliveryAddress = o.DeliveryAddress
	m.Notes = o.Notes
	m.Items = make([]OrderItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i].FromDomain(o.TenantID, &o.Items[i])
	}
}

// OrderModelFromDomain creates a new persistence model from domain entity
func OrderModelFromDomain(o *sales.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(300)"`
	Quantity    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() sales.OrderItem {
	return sales.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Subtotal:    m.Subtotal,
	}
}

// FromDomain populates the persistence model from a domain OrderItem
func (m *OrderItemModel) FromDomain(tenantID uuid.UUID, it *sales.OrderItem) {
	m.ID = it.ID
	m.TenantID = tenantID
	m.OrderID = it.OrderID
	m.ProductID = it.ProductID
	m.Description = it.Description
	m.Quantity = it.Quantity
	m.UnitPrice = it.UnitPrice
	m.Subtotal = it.Subtotal
}

// ProductReturnModel is the persistence model for the ProductReturn domain entity.
type ProductReturnModel struct {
	TenantModel
	OrderID   *uuid.UUID      `gorm:"type:uuid;index"`
	ProductID *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Reason    string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ProductReturnModel) TableName() string {
	return "product_returns"
}

// ToDomain converts the persistence model to a domain ProductReturn entity
func (m *ProductReturnModel) ToDomain() *sales.ProductReturn {
	return &sales.ProductReturn{
		TenantEntity: m.TenantModel.ToDomain(),
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		Quantity:     m.Quantity,
		Amount:       m.Amount,
		Reason:       m.Reason,
	}
}

// ProductReturnModelFromDomain creates a new persistence model from domain entity
func ProductReturnModelFromDomain(r *sales.ProductReturn) *ProductReturnModel {
	m := &ProductReturnModel{
		OrderID:   r.OrderID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Amount:    r.Amount,
		Reason:    r.Reason,
	}
	m.FromDomainTenantEntity(r.TenantEntity)
	return m
}

// PromoterSaleModel is the persistence model for the PromoterSale domain entity.
type PromoterSaleModel struct {
	TenantModel
	PromoterID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID      `gorm:"type:uuid"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null;index"`
	SoldAt      time.Time       `gorm:"not null;index"`
	ReviewedBy  *uuid.UUID      `gorm:"type:uuid"`
	ReviewedAt  *time.Time
	ReviewNote  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PromoterSaleModel) TableName() string {
	return "promoter_sales"
}

// ToDomain converts the persistence model to a domain PromoterSale entity
func (m *PromoterSaleModel) ToDomain() *sales.PromoterSale {
	return &sales.PromoterSale{
		TenantEntity: m.TenantModel.ToDomain(),
		PromoterID:   m.PromoterID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		Quantity:     m.Quantity,
		Amount:       m.Amount,
		Status:       sales.PromoterSaleStatus(m.Status),
		SoldAt:       m.SoldAt,
		ReviewedBy:   m.ReviewedBy,
		ReviewedAt:   m.ReviewedAt,
		ReviewNote:   m.ReviewNote,
	}
}

// FromDomain populates the persistence model from a domain PromoterSale entity
func (m *PromoterSaleModel) FromDomain(s *sales.PromoterSale) {
	m.FromDomainTenantEntity(s.TenantEntity)
	m.PromoterID = s.PromoterID
	m.ProductID = s.ProductID
	m.ProductName = s.ProductName
	m.Quantity = s.Quantity
	m.Amount = s.Amount
	m.Status = string(s.Status)
	m.SoldAt = s.SoldAt
	m.ReviewedBy = s.ReviewedBy
	m.ReviewedAt = s.ReviewedAt
	m.ReviewNote = s.ReviewNote
}

// PromoterSaleModelFromDomain creates a new persistence model from domain entity
func PromoterSaleModelFromDomain(s *sales.PromoterSale) *PromoterSaleModel {
	m := &PromoterSaleModel{}
	m.FromDomain(s)
	return m
}
