package models

import (
	"time"

	"github.com/atlas/backend/internal/domain/identity"
)

// PersonModel is the persistence model for the Person domain entity.
// The optional login-index columns are written through maps, never through
// this struct, so a deployment without them still reads and writes people.
type PersonModel struct {
	TenantModel
	Name         string `gorm:"type:varchar(200);not null"`
	Username     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(200)"`
	Phone        string `gorm:"type:varchar(50)"`
	Role         string `gorm:"type:varchar(30);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Active       bool   `gorm:"not null"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (PersonModel) TableName() string {
	return "people"
}

// ToDomain converts the persistence model to a domain Person entity.
// Stored role labels are normalized on the way out.
func (m *PersonModel) ToDomain() *identity.Person {
	return &identity.Person{
		TenantEntity: m.TenantModel.ToDomain(),
		Name:         m.Name,
		Username:     m.Username,
		Email:        m.Email,
		Phone:        m.Phone,
		Role:         identity.NormalizeRole(m.Role),
		PasswordHash: m.PasswordHash,
		Active:       m.Active,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain Person entity
func (m *PersonModel) FromDomain(p *identity.Person) {
	m.FromDomainTenantEntity(p.TenantEntity)
	m.Name = p.Name
	m.Username = p.Username
	m.Email = p.Email
	m.Phone = p.Phone
	m.Role = string(p.Role)
	m.PasswordHash = p.PasswordHash
	m.Active = p.Active
	m.LastLoginAt = p.LastLoginAt
}

// Fields returns the column map used for inserts and updates
func (m *PersonModel) Fields() map[string]any {
	return map[string]any{
		"id":            m.ID,
		"tenant_id":     m.TenantID,
		"name":          m.Name,
		"username":      m.Username,
		"email":         m.Email,
		"phone":         m.Phone,
		"role":          m.Role,
		"password_hash": m.PasswordHash,
		"active":        m.Active,
		"last_login_at": m.LastLoginAt,
		"created_at":    m.CreatedAt,
		"updated_at":    m.UpdatedAt,
	}
}

// PersonModelFromDomain creates a new persistence model from domain entity
func PersonModelFromDomain(p *identity.Person) *PersonModel {
	m := &PersonModel{}
	m.FromDomain(p)
	return m
}
