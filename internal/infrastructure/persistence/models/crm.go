package models

import (
	"time"

	"github.com/atlas/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	TenantModel
	Name    string     `gorm:"type:varchar(200);not null"`
	Phone   string     `gorm:"type:varchar(50)"`
	Email   string     `gorm:"type:varchar(200)"`
	Address string     `gorm:"type:varchar(500)"`
	City    string     `gorm:"type:varchar(100)"`
	Lat     *float64   `gorm:"type:double precision"`
	Lng     *float64   `gorm:"type:double precision"`
	Notes   string     `gorm:"type:text"`
	OwnerID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity
func (m *CustomerModel) ToDomain() *crm.Customer {
	return &crm.Customer{
		TenantEntity: m.TenantModel.ToDomain(),
		Name:         m.Name,
		Phone:        m.Phone,
		Email:        m.Email,
		Address:      m.Address,
		City:         m.City,
		Lat:          m.Lat,
		Lng:          m.Lng,
		Notes:        m.Notes,
		OwnerID:      m.OwnerID,
	}
}

// FromDomain populates the persistence model from a domain Customer entity
func (m *CustomerModel) FromDomain(c *crm.Customer) {
	m.FromDomainTenantEntity(c.TenantEntity)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.City = c.City
	m.Lat = c.Lat
	m.Lng = c.Lng
	m.Notes = c.Notes
	m.OwnerID = c.OwnerID
}

// CustomerModelFromDomain creates a new persistence model from domain entity
func CustomerModelFromDomain(c *crm.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// OpportunityModel is the persistence model for the Opportunity domain entity.
type OpportunityModel struct {
	TenantModel
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	OwnerID       *uuid.UUID      `gorm:"type:uuid;index"`
	Title         string          `gorm:"type:varchar(200);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Stage         string          `gorm:"type:varchar(50);not null"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	ExpectedClose *time.Time
	ClosedAt      *time.Time
	Notes         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OpportunityModel) TableName() string {
	return "opportunities"
}

// ToDomain converts the persistence model to a domain Opportunity entity
func (m *OpportunityModel) ToDomain() *crm.Opportunity {
	return &crm.Opportunity{
		TenantEntity:  m.TenantModel.ToDomain(),
		CustomerID:    m.CustomerID,
		OwnerID:       m.OwnerID,
		Title:         m.Title,
		Amount:        m.Amount,
		Stage:         m.Stage,
		Status:        crm.OpportunityStatus(m.Status),
		ExpectedClose: m.ExpectedClose,
		ClosedAt:      m.ClosedAt,
		Notes:         m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Opportunity entity
func (m *OpportunityModel) FromDomain(o *crm.Opportunity) {
	m.FromDomainTenantEntity(o.TenantEntity)
	m.CustomerID = o.CustomerID
	m.OwnerID = o.OwnerID
	m.Title = o.Title
	m.Amount = o.Amount
	m.Stage = o.Stage
	m.Status = string(o.Status)
	m.ExpectedClose = o.ExpectedClose
	m.ClosedAt = o.ClosedAt
	m.Notes = o.Notes
}

// OpportunityModelFromDomain creates a new persistence model from domain entity
func OpportunityModelFromDomain(o *crm.Opportunity) *OpportunityModel {
	m := &OpportunityModel{}
	m.FromDomain(o)
	return m
}
