package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/atlas/backend/internal/application/sales"
	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService implements OrderService for testing
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, tenantID, sellerID uuid.UUID, in sales.CreateOrderInput) (*sales.OrderResponse, error) {
	args := m.Called(ctx, tenantID, sellerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.OrderResponse), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, tenantID, id uuid.UUID) (*sales.OrderResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.OrderResponse), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.OrderResponse, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.OrderResponse), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, tenantID uuid.UUID, role identity.Role, id uuid.UUID) (*sales.DeleteOrderResult, error) {
	args := m.Called(ctx, tenantID, role, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.DeleteOrderResult), args.Error(1)
}

// MockReturnService implements ReturnService for testing
type MockReturnService struct {
	mock.Mock
}

func (m *MockReturnService) Create(ctx context.Context, tenantID uuid.UUID, in sales.CreateReturnInput) (*sales.ReturnResponse, error) {
	args := m.Called(ctx, tenantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.ReturnResponse), args.Error(1)
}

func TestOrderHandler_Get(t *testing.T) {
	seller := newCaller(identity.RoleSeller)
	orders := new(MockOrderService)
	h := NewOrderHandler(orders, new(MockReturnService))
	engine := newTestEngine(seller)
	engine.GET("/orders/:id", h.Get)

	orderID := uuid.New()
	orders.On("Get", mock.Anything, seller.TenantID, orderID).
		Return(&sales.OrderResponse{ID: orderID, PaymentMethod: "cash", Total: decimal.NewFromInt(150)}, nil)
	missing := uuid.New()
	orders.On("Get", mock.Anything, seller.TenantID, missing).Return(nil, shared.ErrNotFound)

	w := performRequest(engine, http.MethodGet, "/orders/"+orderID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":"150"`)

	w = performRequest(engine, http.MethodGet, "/orders/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_Delete(t *testing.T) {
	t.Run("seller is forbidden", func(t *testing.T) {
		seller := newCaller(identity.RoleSeller)
		orders := new(MockOrderService)
		h := NewOrderHandler(orders, new(MockReturnService))
		engine := newTestEngine(seller)
		engine.DELETE("/orders/:id", h.Delete)

		orderID := uuid.New()
		orders.On("Delete", mock.Anything, seller.TenantID, identity.RoleSeller, orderID).Return(nil, shared.ErrForbidden)

		w := performRequest(engine, http.MethodDelete, "/orders/"+orderID.String(), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
	})

	t.Run("manager deletes with items", func(t *testing.T) {
		manager := newCaller(identity.RoleManager)
		orders := new(MockOrderService)
		h := NewOrderHandler(orders, new(MockReturnService))
		engine := newTestEngine(manager)
		engine.DELETE("/orders/:id", h.Delete)

		orderID := uuid.New()
		orders.On("Delete", mock.Anything, manager.TenantID, identity.RoleManager, orderID).
			Return(&sales.DeleteOrderResult{ID: orderID, ItemsRemoved: 3}, nil)

		w := performRequest(engine, http.MethodDelete, "/orders/"+orderID.String(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"items_removed":3`)
		orders.AssertExpectations(t)
	})
}

func TestOrderHandler_List(t *testing.T) {
	seller := newCaller(identity.RoleSeller)
	orders := new(MockOrderService)
	h := NewOrderHandler(orders, new(MockReturnService))
	engine := newTestEngine(seller)
	engine.GET("/orders", h.List)

	orders.On("List", mock.Anything, seller.TenantID, shared.Filter{Page: 2, PageSize: 10}).
		Return([]sales.OrderResponse{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	w := performRequest(engine, http.MethodGet, "/orders?page=2&page_size=10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Count)
	assert.Equal(t, 2, resp.Meta.Page)
}

func TestOrderHandler_CreateReturn(t *testing.T) {
	seller := newCaller(identity.RoleSeller)
	returns := new(MockReturnService)
	h := NewOrderHandler(new(MockOrderService), returns)
	engine := newTestEngine(seller)
	engine.POST("/returns", h.CreateReturn)

	returns.On("Create", mock.Anything, seller.TenantID, mock.AnythingOfType("sales.CreateReturnInput")).
		Return(nil, shared.NewValidationError("quantity must be positive"))

	w := performRequest(engine, http.MethodPost, "/returns", map[string]any{"order_id": uuid.NewString()})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantity must be positive")
}
