package crm

import (
	"context"
	"strings"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer is a buyer the sales team tracks
type Customer struct {
	shared.TenantEntity
	Name    string
	Phone   string
	Email   string
	Address string
	City    string
	Lat     *float64
	Lng     *float64
	Notes   string
	OwnerID *uuid.UUID
}

// CustomerPatch carries optional field updates; nil means unchanged
type CustomerPatch struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	City    *string
	Lat     *float64
	Lng     *float64
	Notes   *string
	OwnerID *uuid.UUID
}

// NewCustomer creates a customer
func NewCustomer(tenantID uuid.UUID, name string) (*Customer, error) {
	c := &Customer{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := c.rename(name); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("customer name is required")
	}
	if len([]rune(name)) > 200 {
		return shared.NewValidationError("customer name cannot exceed 200 characters")
	}
	c.Name = name
	return nil
}

// Apply merges a patch into the customer
func (c *Customer) Apply(p CustomerPatch) error {
	if p.Name != nil {
		if err := c.rename(*p.Name); err != nil {
			return err
		}
	}
	if p.Phone != nil {
		c.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Email != nil {
		c.Email = strings.TrimSpace(*p.Email)
	}
	if p.Address != nil {
		c.Address = strings.TrimSpace(*p.Address)
	}
	if p.City != nil {
		c.City = strings.TrimSpace(*p.City)
	}
	if (p.Lat == nil) != (p.Lng == nil) {
		return shared.NewValidationError("lat and lng must be set together")
	}
	if p.Lat != nil {
		if *p.Lat < -90 || *p.Lat > 90 || *p.Lng < -180 || *p.Lng > 180 {
			return shared.NewValidationError("coordinates out of range")
		}
		c.Lat, c.Lng = p.Lat, p.Lng
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.OwnerID != nil {
		c.OwnerID = p.OwnerID
	}
	c.Touch()
	return nil
}

// CustomerRepository defines persistence for customers
type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)
}
