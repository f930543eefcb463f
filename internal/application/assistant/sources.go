package assistant

import (
	"context"
	"time"

	cashapp "github.com/atlas/backend/internal/application/cash"
	crmapp "github.com/atlas/backend/internal/application/crm"
	"github.com/atlas/backend/internal/domain/assistant"
	"github.com/atlas/backend/internal/domain/crm"
	"github.com/atlas/backend/internal/domain/inventory"
	"github.com/atlas/backend/internal/domain/metrics"
	"github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Context slice names, in the order they appear in the prompt
const (
	SliceSession   = "session"
	SliceOverview  = "overview"
	SliceSales     = "sales_report"
	SliceReturns   = "returns_report"
	SliceCustomers = "customers"
	SliceClosures  = "cash_closures"
	SlicePipeline  = "pipeline"
	SliceInventory = "inventory"
)

// recentLimit caps the customer and closure rows sent to the model
const recentLimit = 20

// OverviewReader reads the dashboard overview
type OverviewReader interface {
	Overview(ctx context.Context, tenantID uuid.UUID) (*metrics.Overview, error)
}

// ReportReader reads the month-to-date reports
type ReportReader interface {
	Sales(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) (*sales.SalesReport, error)
	Returns(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) (*sales.ReturnsReport, error)
}

// CustomerLister lists customers
type CustomerLister interface {
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]crmapp.CustomerResponse, error)
}

// PipelineReader reads the opportunity pipeline
type PipelineReader interface {
	Pipeline(ctx context.Context, tenantID uuid.UUID) (*crm.Pipeline, error)
}

// InventoryReader reads the stock summary
type InventoryReader interface {
	Summary(ctx context.Context, tenantID uuid.UUID) (*inventory.Summary, error)
}

// ClosureLister lists cash closures
type ClosureLister interface {
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]cashapp.ClosureResponse, error)
}

// Readers are the business services the assistant draws context from.
// A nil reader drops its slice.
type Readers struct {
	Overview  OverviewReader
	Reports   ReportReader
	Customers CustomerLister
	Pipeline  PipelineReader
	Inventory InventoryReader
	Closures  ClosureLister
}

type sourceFunc struct {
	name  string
	fetch func(ctx context.Context, req assistant.Request) (any, error)
}

func (s sourceFunc) Name() string { return s.name }

func (s sourceFunc) Fetch(ctx context.Context, req assistant.Request) (any, error) {
	return s.fetch(ctx, req)
}

// tenantScoped parses the request tenant before calling fn
func tenantScoped(name string, fn func(ctx context.Context, tenantID uuid.UUID) (any, error)) assistant.Source {
	return sourceFunc{name: name, fetch: func(ctx context.Context, req assistant.Request) (any, error) {
		tenantID, err := uuid.Parse(req.TenantID)
		if err != nil {
			return nil, shared.NewValidationError("invalid tenant id")
		}
		return fn(ctx, tenantID)
	}}
}

// sessionSource describes who is asking
var sessionSource = sourceFunc{name: SliceSession, fetch: func(_ context.Context, req assistant.Request) (any, error) {
	return map[string]string{
		"name":  req.Name,
		"role":  req.Role,
		"scope": string(req.Scope),
	}, nil
}}

// Sources returns the context sources for scope. Every scope reads the
// same seven slices except cash, which reads recent closures in place of
// customers.
func (r Readers) Sources(scope assistant.Scope) []assistant.Source {
	out := []assistant.Source{sessionSource}

	if r.Overview != nil {
		out = append(out, tenantScoped(SliceOverview, func(ctx context.Context, tenantID uuid.UUID) (any, error) {
			return r.Overview.Overview(ctx, tenantID)
		}))
	}
	if r.Reports != nil {
		out = append(out,
			tenantScoped(SliceSales, func(ctx context.Context, tenantID uuid.UUID) (any, error) {
				return r.Reports.Sales(ctx, tenantID, nil, nil)
			}),
			tenantScoped(SliceReturns, func(ctx context.Context, tenantID uuid.UUID) (any, error) {
				return r.Reports.Returns(ctx, tenantID, nil, nil)
			}),
		)
	}

	recent := shared.Filter{Page: 1, PageSize: recentLimit}
	if scope == assistant.ScopeCash {
		if r.Closures != nil {
			out = append(out, tenantScoped(SliceClosures, func(ctx context.Context, tenantID uuid.UUID) (any, error) {
				return r.Closures.List(ctx, tenantID, recent)
			}))
		}
	} else if r.Customers != nil {
		out = append(out, tenantScoped(SliceCustomers, func(ctx context.Context, tenantID uuid.UUID) (any, error) {
			return r.Customers.List(ctx, tenantID, recent)
		}))
	}

	if r.Pipeline != nil {
		out = append(out, tenantScoped(SlicePipeline, func(ctx context.Context, tenantID uuid.UUID) (any, error) {
			return r.Pipeline.Pipeline(ctx, tenantID)
		}))
	}
	if r.Inventory != nil {
		out = append(out, tenantScoped(SliceInventory, func(ctx context.Context, tenantID uuid.UUID) (any, error) {
			return r.Inventory.Summary(ctx, tenantID)
		}))
	}
	return out
}
