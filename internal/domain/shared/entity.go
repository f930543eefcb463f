package shared

import (
	"time"

	"github.com/google/uuid"
)

// TenantEntity carries the identity and bookkeeping fields every row shares.
type TenantEntity struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTenantEntity creates a new entity with a generated ID
func NewTenantEntity(tenantID uuid.UUID) TenantEntity {
	now := time.Now()
	return TenantEntity{
		ID:        uuid.New(),
		TenantID:  tenantID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps UpdatedAt
func (e *TenantEntity) Touch() {
	e.UpdatedAt = time.Now()
}
