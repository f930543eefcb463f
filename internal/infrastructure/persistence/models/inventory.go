package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is a catalog row. Products are maintained outside this
// service; it only reads them for stock summaries.
type ProductModel struct {
	TenantModel
	SKU    string          `gorm:"type:varchar(100);index"`
	Name   string          `gorm:"type:varchar(200);not null"`
	Price  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Active bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// InventoryStockModel is the quantity of a product held at one location.
type InventoryStockModel struct {
	TenantModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Location  string          `gorm:"type:varchar(100)"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName returns the table name for GORM
func (InventoryStockModel) TableName() string {
	return "inventory_stock"
}
