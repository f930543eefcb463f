package crm

import (
	"time"

	"github.com/atlas/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerInput is the body of a customer creation
type CreateCustomerInput struct {
	Name    string     `json:"name" binding:"required,max=200"`
	Phone   string     `json:"phone" binding:"max=40"`
	Email   string     `json:"email" binding:"omitempty,email,max=200"`
	Address string     `json:"address" binding:"max=500"`
	City    string     `json:"city" binding:"max=100"`
	Lat     *float64   `json:"lat" binding:"omitempty,latitude"`
	Lng     *float64   `json:"lng" binding:"omitempty,longitude"`
	Notes   string     `json:"notes" binding:"max=2000"`
	OwnerID *uuid.UUID `json:"owner_id"`
}

// UpdateCustomerInput carries optional customer changes
type UpdateCustomerInput struct {
	Name    *string    `json:"name" binding:"omitempty,max=200"`
	Phone   *string    `json:"phone" binding:"omitempty,max=40"`
	Email   *string    `json:"email" binding:"omitempty,max=200"`
	Address *string    `json:"address" binding:"omitempty,max=500"`
	City    *string    `json:"city" binding:"omitempty,max=100"`
	Lat     *float64   `json:"lat"`
	Lng     *float64   `json:"lng"`
	Notes   *string    `json:"notes"`
	OwnerID *uuid.UUID `json:"owner_id"`
}

// CustomerResponse is a customer as returned to clients
type CustomerResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	Address   string     `json:"address,omitempty"`
	City      string     `json:"city,omitempty"`
	Lat       *float64   `json:"lat,omitempty"`
	Lng       *float64   `json:"lng,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *crm.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		City:      c.City,
		Lat:       c.Lat,
		Lng:       c.Lng,
		Notes:     c.Notes,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CreateOpportunityInput is the body of an opportunity creation
type CreateOpportunityInput struct {
	Title         string          `json:"title" binding:"required,max=200"`
	Amount        decimal.Decimal `json:"amount"`
	Stage         string          `json:"stage" binding:"max=50"`
	CustomerID    *uuid.UUID      `json:"customer_id"`
	OwnerID       *uuid.UUID      `json:"owner_id"`
	ExpectedClose *time.Time      `json:"expected_close"`
	Notes         string          `json:"notes" binding:"max=2000"`
}

// UpdateOpportunityInput carries optional opportunity changes
type UpdateOpportunityInput struct {
	Title         *string          `json:"title" binding:"omitempty,max=200"`
	Amount        *decimal.Decimal `json:"amount"`
	Stage         *string          `json:"stage" binding:"omitempty,max=50"`
	Status        *string          `json:"status" binding:"omitempty,oneof=open won lost"`
	CustomerID    *uuid.UUID       `json:"customer_id"`
	OwnerID       *uuid.UUID       `json:"owner_id"`
	ExpectedClose *time.Time       `json:"expected_close"`
	Notes         *string          `json:"notes"`
}

// OpportunityResponse is an opportunity as returned to clients
type OpportunityResponse struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Stage         string          `json:"stage"`
	Status        string          `json:"status"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	OwnerID       *uuid.UUID      `json:"owner_id,omitempty"`
	ExpectedClose *time.Time      `json:"expected_close,omitempty"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToOpportunityResponse converts a domain opportunity
func ToOpportunityResponse(o *crm.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:            o.ID,
		Title:         o.Title,
		Amount:        o.Amount,
		Stage:         o.Stage,
		Status:        string(o.Status),
		CustomerID:    o.CustomerID,
		OwnerID:       o.OwnerID,
		ExpectedClose: o.ExpectedClose,
		ClosedAt:      o.ClosedAt,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
