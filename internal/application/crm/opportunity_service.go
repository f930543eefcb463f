package crm

import (
	"context"
	"fmt"
	"strings"

	"github.com/atlas/backend/internal/domain/crm"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// pipelineScanLimit bounds how many opportunities a pipeline reads
const pipelineScanLimit = 1000

const pipelinePageSize = 200

// OpportunityService handles opportunity use cases
type OpportunityService struct {
	opportunities crm.OpportunityRepository
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(opportunities crm.OpportunityRepository) *OpportunityService {
	return &OpportunityService{opportunities: opportunities}
}

// List returns a page of opportunities, optionally filtered by status
func (s *OpportunityService) List(ctx context.Context, tenantID uuid.UUID, status string, filter shared.Filter) ([]OpportunityResponse, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch crm.OpportunityStatus(status) {
	case "", crm.OpportunityOpen, crm.OpportunityWon, crm.OpportunityLost:
	default:
		return nil, shared.NewValidationError("status must be open, won or lost")
	}
	list, err := s.opportunities.List(ctx, tenantID, status, filter)
	if err != nil {
		return nil, err
	}
	out := make([]OpportunityResponse, 0, len(list))
	for i := range list {
		out = append(out, ToOpportunityResponse(&list[i]))
	}
	return out, nil
}

// Create stores a new open opportunity
func (s *OpportunityService) Create(ctx context.Context, tenantID, actorID uuid.UUID, in CreateOpportunityInput) (*OpportunityResponse, error) {
	o, err := crm.NewOpportunity(tenantID, in.Title, in.Amount, in.Stage)
	if err != nil {
		return nil, err
	}
	owner := in.OwnerID
	if owner == nil && actorID != uuid.Nil {
		owner = &actorID
	}
	if err := o.Apply(crm.OpportunityPatch{
		CustomerID:    in.CustomerID,
		OwnerID:       owner,
		ExpectedClose: in.ExpectedClose,
		Notes:         &in.Notes,
	}); err != nil {
		return nil, err
	}
	if err := s.opportunities.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create opportunity: %w", err)
	}
	resp := ToOpportunityResponse(o)
	return &resp, nil
}

// Update patches an opportunity
func (s *OpportunityService) Update(ctx context.Context, tenantID, id uuid.UUID, in UpdateOpportunityInput) (*OpportunityResponse, error) {
	o, err := s.opportunities.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	patch := crm.OpportunityPatch{
		Title:         in.Title,
		Amount:        in.Amount,
		Stage:         in.Stage,
		CustomerID:    in.CustomerID,
		OwnerID:       in.OwnerID,
		ExpectedClose: in.ExpectedClose,
		Notes:         in.Notes,
	}
	if in.Status != nil {
		st := crm.OpportunityStatus(strings.ToLower(strings.TrimSpace(*in.Status)))
		patch.Status = &st
	}
	if err := o.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.opportunities.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update opportunity: %w", err)
	}
	resp := ToOpportunityResponse(o)
	return &resp, nil
}

// Pipeline groups the tenant's opportunities by stage
func (s *OpportunityService) Pipeline(ctx context.Context, tenantID uuid.UUID) (*crm.Pipeline, error) {
	var all []crm.Opportunity
	for page := 1; len(all) < pipelineScanLimit; page++ {
		list, err := s.opportunities.List(ctx, tenantID, "", shared.Filter{Page: page, PageSize: pipelinePageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, list...)
		if len(list) < pipelinePageSize {
			break
		}
	}
	p := crm.BuildPipeline(all)
	return &p, nil
}
