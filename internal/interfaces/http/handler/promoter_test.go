package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/atlas/backend/internal/application/sales"
	"github.com/atlas/backend/internal/domain/identity"
	domainsales "github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPromoterService implements PromoterService for testing
type MockPromoterService struct {
	mock.Mock
}

func (m *MockPromoterService) ListMine(ctx context.Context, tenantID, promoterID uuid.UUID, filter shared.Filter) ([]sales.PromoterSaleResponse, error) {
	args := m.Called(ctx, tenantID, promoterID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.PromoterSaleResponse), args.Error(1)
}

func (m *MockPromoterService) Report(ctx context.Context, tenantID, promoterID uuid.UUID, in sales.CreatePromoterSaleInput) (*sales.PromoterSaleResponse, error) {
	args := m.Called(ctx, tenantID, promoterID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.PromoterSaleResponse), args.Error(1)
}

func (m *MockPromoterService) Withdraw(ctx context.Context, tenantID, promoterID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, promoterID, id)
	return args.Error(0)
}

func (m *MockPromoterService) Review(ctx context.Context, tenantID, reviewer uuid.UUID, role identity.Role, id uuid.UUID, in sales.ReviewPromoterSaleInput) (*sales.PromoterSaleResponse, error) {
	args := m.Called(ctx, tenantID, reviewer, role, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.PromoterSaleResponse), args.Error(1)
}

func (m *MockPromoterService) Summary(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) ([]domainsales.PromoterSummary, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainsales.PromoterSummary), args.Error(1)
}

func TestPromoterHandler_Report(t *testing.T) {
	promoter := newCaller(identity.RolePromoter)
	svc := new(MockPromoterService)
	h := NewPromoterHandler(svc, time.UTC)
	engine := newTestEngine(promoter)
	engine.POST("/my/promoter-sales", h.Report)

	svc.On("Report", mock.Anything, promoter.TenantID, promoter.PersonID, mock.AnythingOfType("sales.CreatePromoterSaleInput")).
		Return(&sales.PromoterSaleResponse{ID: uuid.New(), PromoterID: promoter.PersonID, ProductName: "Shampoo", Status: "pending"}, nil)

	w := performRequest(engine, http.MethodPost, "/my/promoter-sales", map[string]any{"product_name": "Shampoo", "quantity": "2", "amount": "30"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
	in := svc.Calls[0].Arguments.Get(3).(sales.CreatePromoterSaleInput)
	assert.True(t, in.Amount.Equal(decimal.NewFromInt(30)))
}

func TestPromoterHandler_Review(t *testing.T) {
	t.Run("promoter cannot review", func(t *testing.T) {
		promoter := newCaller(identity.RolePromoter)
		svc := new(MockPromoterService)
		h := NewPromoterHandler(svc, time.UTC)
		engine := newTestEngine(promoter)
		engine.PATCH("/promoters/sales/:id", h.Review)

		saleID := uuid.New()
		svc.On("Review", mock.Anything, promoter.TenantID, promoter.PersonID, identity.RolePromoter, saleID,
			sales.ReviewPromoterSaleInput{Status: "approved"}).Return(nil, shared.ErrForbidden)

		w := performRequest(engine, http.MethodPatch, "/promoters/sales/"+saleID.String(), map[string]string{"status": "approved"})

		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		manager := newCaller(identity.RoleManager)
		svc := new(MockPromoterService)
		h := NewPromoterHandler(svc, time.UTC)
		engine := newTestEngine(manager)
		engine.PATCH("/promoters/sales/:id", h.Review)

		w := performRequest(engine, http.MethodPatch, "/promoters/sales/"+uuid.NewString(), map[string]string{"status": "maybe"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
	})
}

func TestPromoterHandler_Withdraw(t *testing.T) {
	promoter := newCaller(identity.RolePromoter)
	svc := new(MockPromoterService)
	h := NewPromoterHandler(svc, time.UTC)
	engine := newTestEngine(promoter)
	engine.DELETE("/my/promoter-sales/:id", h.Withdraw)

	saleID := uuid.New()
	svc.On("Withdraw", mock.Anything, promoter.TenantID, promoter.PersonID, saleID).Return(shared.ErrInvalidState)

	w := performRequest(engine, http.MethodDelete, "/my/promoter-sales/"+saleID.String(), nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPromoterHandler_Summary(t *testing.T) {
	manager := newCaller(identity.RoleManager)
	svc := new(MockPromoterService)
	h := NewPromoterHandler(svc, time.UTC)
	engine := newTestEngine(manager)
	engine.GET("/promoters/summary", h.Summary)

	svc.On("Summary", mock.Anything, manager.TenantID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domainsales.PromoterSummary{{PromoterID: uuid.New(), Approved: 3}}, nil)

	w := performRequest(engine, http.MethodGet, "/promoters/summary", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"approved":3`)
	svc.AssertExpectations(t)
}
