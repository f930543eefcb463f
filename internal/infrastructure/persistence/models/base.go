package models

import (
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantModel provides the persistence fields shared by every tenant-scoped table.
// It maps to the domain's TenantEntity.
type TenantModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts TenantModel to domain TenantEntity
func (m *TenantModel) ToDomain() shared.TenantEntity {
	return shared.TenantEntity{
		ID:        m.ID,
		TenantID:  m.TenantID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainTenantEntity populates TenantModel from domain TenantEntity
func (m *TenantModel) FromDomainTenantEntity(e shared.TenantEntity) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// All returns every model, in dependency order, for test schemas.
func All() []any {
	return []any{
		&PersonModel{},
		&CustomerModel{},
		&OpportunityModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ProductReturnModel{},
		&PromoterSaleModel{},
		&ProductModel{},
		&InventoryStockModel{},
		&CashClosureModel{},
		&AttendanceModel{},
		&SurveyLinkModel{},
		&SurveyResponseModel{},
	}
}
