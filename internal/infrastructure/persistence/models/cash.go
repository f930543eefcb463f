package models

import (
	"time"

	"github.com/atlas/backend/internal/domain/cash"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashClosureModel is the persistence model for the cash Closure domain entity.
type CashClosureModel struct {
	TenantModel
	CashierID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	OpenedAt   time.Time       `gorm:"not null"`
	ClosedAt   time.Time       `gorm:"not null;index"`
	Expected   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Counted    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Difference decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CashClosureModel) TableName() string {
	return "cash_closures"
}

// ToDomain converts the persistence model to a domain Closure entity
func (m *CashClosureModel) ToDomain() *cash.Closure {
	return &cash.Closure{
		TenantEntity: m.TenantModel.ToDomain(),
		CashierID:    m.CashierID,
		OpenedAt:     m.OpenedAt,
		ClosedAt:     m.ClosedAt,
		Expected:     m.Expected,
		Counted:      m.Counted,
		Difference:   m.Difference,
		Notes:        m.Notes,
	}
}

// CashClosureModelFromDomain creates a new persistence model from domain entity
func CashClosureModelFromDomain(c *cash.Closure) *CashClosureModel {
	m := &CashClosureModel{
		CashierID:  c.CashierID,
		OpenedAt:   c.OpenedAt,
		ClosedAt:   c.ClosedAt,
		Expected:   c.Expected,
		Counted:    c.Counted,
		Difference: c.Difference,
		Notes:      c.Notes,
	}
	m.FromDomainTenantEntity(c.TenantEntity)
	return m
}
