package sales

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromoterSaleStatus is the review state of a self-reported sale
type PromoterSaleStatus string

const (
	PromoterSalePending  PromoterSaleStatus = "pending"
	PromoterSaleApproved PromoterSaleStatus = "approved"
	PromoterSaleRejected PromoterSaleStatus = "rejected"
)

// PromoterSale is a sale reported by a field promoter, pending review
type PromoterSale struct {
	shared.TenantEntity
	PromoterID  uuid.UUID
	ProductID   *uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	Amount      decimal.Decimal
	Status      PromoterSaleStatus
	SoldAt      time.Time
	ReviewedBy  *uuid.UUID
	ReviewedAt  *time.Time
	ReviewNote  string
}

// NewPromoterSale creates a pending promoter sale
func NewPromoterSale(tenantID, promoterID uuid.UUID, productName string, quantity, amount decimal.Decimal, soldAt time.Time) (*PromoterSale, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, shared.NewValidationError("product_name is required")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewValidationError("quantity must be positive")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("amount cannot be negative")
	}
	if soldAt.IsZero() {
		soldAt = time.Now()
	}
	return &PromoterSale{
		TenantEntity: shared.NewTenantEntity(tenantID),
		PromoterID:   promoterID,
		ProductName:  productName,
		Quantity:     quantity,
		Amount:       amount,
		Status:       PromoterSalePending,
		SoldAt:       soldAt,
	}, nil
}

// Review moves a pending sale to approved or rejected
func (s *PromoterSale) Review(reviewer uuid.UUID, status PromoterSaleStatus, note string, at time.Time) error {
	if status != PromoterSaleApproved && status != PromoterSaleRejected {
		return shared.NewValidationError("status must be approved or rejected")
	}
	if s.Status == status {
		return nil
	}
	s.Status = status
	s.ReviewedBy = &reviewer
	s.ReviewedAt = &at
	s.ReviewNote = strings.TrimSpace(note)
	s.Touch()
	return nil
}

// DeletableBy reports whether person may withdraw this sale: only the
// promoter who reported it, and only while it is pending.
func (s *PromoterSale) DeletableBy(personID uuid.UUID) error {
	if s.PromoterID != personID {
		return shared.ErrForbidden
	}
	if s.Status != PromoterSalePending {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "only pending sales can be withdrawn")
	}
	return nil
}

// PromoterSummary rolls up one promoter's sales
type PromoterSummary struct {
	PromoterID     uuid.UUID       `json:"promoter_id"`
	PromoterName   string          `json:"promoter_name,omitempty"`
	Pending        int             `json:"pending"`
	Approved       int             `json:"approved"`
	Rejected       int             `json:"rejected"`
	ApprovedUnits  decimal.Decimal `json:"approved_units"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
}

// SummarizePromoters groups sales per promoter, highest approved amount first
func SummarizePromoters(list []PromoterSale) []PromoterSummary {
	idx := make(map[uuid.UUID]*PromoterSummary)
	for _, s := range list {
		sum, ok := idx[s.PromoterID]
		if !ok {
			sum = &PromoterSummary{PromoterID: s.PromoterID, ApprovedUnits: decimal.Zero, ApprovedAmount: decimal.Zero}
			idx[s.PromoterID] = sum
		}
		switch s.Status {
		case PromoterSaleApproved:
			sum.Approved++
			sum.ApprovedUnits = sum.ApprovedUnits.Add(s.Quantity)
			sum.ApprovedAmount = sum.ApprovedAmount.Add(s.Amount)
		case PromoterSaleRejected:
			sum.Rejected++
		default:
			sum.Pending++
		}
	}

	out := make([]PromoterSummary, 0, len(idx))
	for _, s := range idx {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].ApprovedAmount.Cmp(out[j].ApprovedAmount); c != 0 {
			return c > 0
		}
		return out[i].PromoterID.String() < out[j].PromoterID.String()
	})
	return out
}

// PromoterSaleRepository defines persistence for promoter sales
type PromoterSaleRepository interface {
	Create(ctx context.Context, s *PromoterSale) error
	Update(ctx context.Context, s *PromoterSale) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*PromoterSale, error)
	ListByPromoter(ctx context.Context, tenantID, promoterID uuid.UUID, filter shared.Filter) ([]PromoterSale, error)
	ListInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]PromoterSale, error)
}
