package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PersonLookup resolves promoter names for summaries
type PersonLookup interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.Person, error)
}

// PromoterService handles promoter self-reported sales
type PromoterService struct {
	sales  sales.PromoterSaleRepository
	people PersonLookup
	loc    *time.Location
	now    func() time.Time
}

// NewPromoterService creates a new PromoterService
func NewPromoterService(repo sales.PromoterSaleRepository, people PersonLookup, loc *time.Location) *PromoterService {
	if loc == nil {
		loc = time.UTC
	}
	return &PromoterService{sales: repo, people: people, loc: loc, now: time.Now}
}

// ListMine returns the caller's own reported sales
func (s *PromoterService) ListMine(ctx context.Context, tenantID, promoterID uuid.UUID, filter shared.Filter) ([]PromoterSaleResponse, error) {
	list, err := s.sales.ListByPromoter(ctx, tenantID, promoterID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PromoterSaleResponse, 0, len(list))
	for i := range list {
		out = append(out, ToPromoterSaleResponse(&list[i]))
	}
	return out, nil
}

// Report stores a pending sale for the caller
func (s *PromoterService) Report(ctx context.Context, tenantID, promoterID uuid.UUID, in CreatePromoterSaleInput) (*PromoterSaleResponse, error) {
	var soldAt time.Time
	if in.SoldAt != nil {
		soldAt = *in.SoldAt
	} else {
		soldAt = s.now()
	}
	sale, err := sales.NewPromoterSale(tenantID, promoterID, in.ProductName, in.Quantity, in.Amount, soldAt)
	if err != nil {
		return nil, err
	}
	sale.ProductID = in.ProductID

	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("create promoter sale: %w", err)
	}
	resp := ToPromoterSaleResponse(sale)
	return &resp, nil
}

// Withdraw deletes one of the caller's pending sales
func (s *PromoterService) Withdraw(ctx context.Context, tenantID, promoterID, id uuid.UUID) error {
	sale, err := s.sales.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := sale.DeletableBy(promoterID); err != nil {
		return err
	}
	if err := s.sales.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("delete promoter sale: %w", err)
	}
	return nil
}

// Review approves or rejects a sale; only admins and managers may review
func (s *PromoterService) Review(ctx context.Context, tenantID uuid.UUID, reviewer uuid.UUID, role identity.Role, id uuid.UUID, in ReviewPromoterSaleInput) (*PromoterSaleResponse, error) {
	if !role.IsManagerial() {
		return nil, shared.NewDomainError(shared.ErrForbidden.Code, "only admins and managers can review promoter sales")
	}
	sale, err := s.sales.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := sale.Review(reviewer, sales.PromoterSaleStatus(in.Status), in.Note, s.now()); err != nil {
		return nil, err
	}
	if err := s.sales.Update(ctx, sale); err != nil {
		return nil, fmt.Errorf("update promoter sale: %w", err)
	}

	logger.L(ctx).Info("Promoter sale reviewed",
		zap.String("sale_id", id.String()),
		zap.String("status", string(sale.Status)))

	resp := ToPromoterSaleResponse(sale)
	return &resp, nil
}

// Summary rolls up sales per promoter over a period, defaulting to the
// current month. Names are filled in best-effort.
func (s *PromoterService) Summary(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) ([]sales.PromoterSummary, error) {
	period, err := ResolvePeriod(from, to, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	list, err := s.sales.ListInRange(ctx, tenantID, period.From, period.To)
	if err != nil {
		return nil, err
	}

	summary := sales.SummarizePromoters(list)
	for i := range summary {
		p, err := s.people.FindByID(ctx, tenantID, summary[i].PromoterID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				logger.L(ctx).Warn("Promoter name lookup failed", zap.String("person_id", summary[i].PromoterID.String()), zap.Error(err))
			}
			continue
		}
		summary[i].PromoterName = p.Name
	}
	return summary, nil
}
