// Package crm handles customers and the sales pipeline.
package crm

import (
	"context"
	"fmt"

	"github.com/atlas/backend/internal/domain/crm"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer use cases
type CustomerService struct {
	customers crm.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customers crm.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// List returns a page of customers
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CustomerResponse, error) {
	list, err := s.customers.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerResponse, 0, len(list))
	for i := range list {
		out = append(out, ToCustomerResponse(&list[i]))
	}
	return out, nil
}

// Create stores a new customer. The caller becomes owner unless one is given.
func (s *CustomerService) Create(ctx context.Context, tenantID, actorID uuid.UUID, in CreateCustomerInput) (*CustomerResponse, error) {
	c, err := crm.NewCustomer(tenantID, in.Name)
	if err != nil {
		return nil, err
	}
	owner := in.OwnerID
	if owner == nil && actorID != uuid.Nil {
		owner = &actorID
	}
	patch := crm.CustomerPatch{
		Phone:   &in.Phone,
		Email:   &in.Email,
		Address: &in.Address,
		City:    &in.City,
		Lat:     in.Lat,
		Lng:     in.Lng,
		Notes:   &in.Notes,
		OwnerID: owner,
	}
	if err := c.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// Update patches an existing customer
func (s *CustomerService) Update(ctx context.Context, tenantID, id uuid.UUID, in UpdateCustomerInput) (*CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(crm.CustomerPatch(in)); err != nil {
		return nil, err
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}
