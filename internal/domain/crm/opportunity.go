package crm

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpportunityStatus is the outcome of a deal
type OpportunityStatus string

const (
	OpportunityOpen OpportunityStatus = "open"
	OpportunityWon  OpportunityStatus = "won"
	OpportunityLost OpportunityStatus = "lost"
)

// DefaultStage is used when a new opportunity names no stage
const DefaultStage = "prospecting"

// Opportunity is a potential sale moving through the pipeline
type Opportunity struct {
	shared.TenantEntity
	CustomerID    *uuid.UUID
	OwnerID       *uuid.UUID
	Title         string
	Amount        decimal.Decimal
	Stage         string
	Status        OpportunityStatus
	ExpectedClose *time.Time
	ClosedAt      *time.Time
	Notes         string
}

// OpportunityPatch carries optional field updates
type OpportunityPatch struct {
	Title         *string
	Amount        *decimal.Decimal
	Stage         *string
	Status        *OpportunityStatus
	CustomerID    *uuid.UUID
	OwnerID       *uuid.UUID
	ExpectedClose *time.Time
	Notes         *string
}

// NewOpportunity creates an open opportunity
func NewOpportunity(tenantID uuid.UUID, title string, amount decimal.Decimal, stage string) (*Opportunity, error) {
	o := &Opportunity{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Status:       OpportunityOpen,
		Stage:        DefaultStage,
	}
	if err := o.Apply(OpportunityPatch{Title: &title, Amount: &amount, Stage: &stage}); err != nil {
		return nil, err
	}
	return o, nil
}

// Apply merges a patch. Moving to won or lost stamps ClosedAt; reopening clears it.
func (o *Opportunity) Apply(p OpportunityPatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return shared.NewValidationError("opportunity title is required")
		}
		o.Title = title
	}
	if p.Amount != nil {
		if p.Amount.IsNegative() {
			return shared.NewValidationError("amount cannot be negative")
		}
		o.Amount = *p.Amount
	}
	if p.Stage != nil {
		if stage := strings.ToLower(strings.TrimSpace(*p.Stage)); stage != "" {
			o.Stage = stage
		}
	}
	if p.Status != nil {
		switch *p.Status {
		case OpportunityOpen:
			o.ClosedAt = nil
		case OpportunityWon, OpportunityLost:
			if o.Status != *p.Status {
				now := time.Now()
				o.ClosedAt = &now
			}
		default:
			return shared.NewValidationError("status must be open, won or lost")
		}
		o.Status = *p.Status
	}
	if p.CustomerID != nil {
		o.CustomerID = p.CustomerID
	}
	if p.OwnerID != nil {
		o.OwnerID = p.OwnerID
	}
	if p.ExpectedClose != nil {
		o.ExpectedClose = p.ExpectedClose
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
	o.Touch()
	return nil
}

// StageSummary aggregates open opportunities of one stage
type StageSummary struct {
	Stage  string          `json:"stage"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// Pipeline is the open-deal funnel plus closed outcomes
type Pipeline struct {
	Stages     []StageSummary  `json:"stages"`
	OpenCount  int             `json:"open_count"`
	OpenAmount decimal.Decimal `json:"open_amount"`
	WonCount   int             `json:"won_count"`
	WonAmount  decimal.Decimal `json:"won_amount"`
	LostCount  int             `json:"lost_count"`
}

// BuildPipeline groups opportunities by stage, sorted by amount descending
func BuildPipeline(opps []Opportunity) Pipeline {
	byStage := make(map[string]*StageSummary)
	p := Pipeline{OpenAmount: decimal.Zero, WonAmount: decimal.Zero}

	for _, o := range opps {
		switch o.Status {
		case OpportunityWon:
			p.WonCount++
			p.WonAmount = p.WonAmount.Add(o.Amount)
		case OpportunityLost:
			p.LostCount++
		default:
			p.OpenCount++
			p.OpenAmount = p.OpenAmount.Add(o.Amount)
			s, ok := byStage[o.Stage]
			if !ok {
				s = &StageSummary{Stage: o.Stage, Amount: decimal.Zero}
				byStage[o.Stage] = s
			}
			s.Count++
			s.Amount = s.Amount.Add(o.Amount)
		}
	}

	p.Stages = make([]StageSummary, 0, len(byStage))
	for _, s := range byStage {
		p.Stages = append(p.Stages, *s)
	}
	sort.Slice(p.Stages, func(i, j int) bool {
		if c := p.Stages[i].Amount.Cmp(p.Stages[j].Amount); c != 0 {
			return c > 0
		}
		return p.Stages[i].Stage < p.Stages[j].Stage
	})
	return p
}

// OpportunityRepository defines persistence for opportunities
type OpportunityRepository interface {
	Create(ctx context.Context, o *Opportunity) error
	Update(ctx context.Context, o *Opportunity) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Opportunity, error)
	List(ctx context.Context, tenantID uuid.UUID, status string, filter shared.Filter) ([]Opportunity, error)
}
