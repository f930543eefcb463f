package sales

import (
	"context"
	"time"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *sales.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.Order, error) {
	args := m.Called(ctx, tenantID, id)
	o, _ := args.Get(0).(*sales.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Order, error) {
	args := m.Called(ctx, tenantID, filter)
	list, _ := args.Get(0).([]sales.Order)
	return list, args.Error(1)
}

func (m *MockOrderRepository) DeleteItems(ctx context.Context, tenantID, orderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) Create(ctx context.Context, r *sales.ProductReturn) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReturnRepository) ListInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]sales.ProductReturn, error) {
	args := m.Called(ctx, tenantID, from, to)
	list, _ := args.Get(0).([]sales.ProductReturn)
	return list, args.Error(1)
}

type MockPromoterSaleRepository struct {
	mock.Mock
}

func (m *MockPromoterSaleRepository) Create(ctx context.Context, s *sales.PromoterSale) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockPromoterSaleRepository) Update(ctx context.Context, s *sales.PromoterSale) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockPromoterSaleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockPromoterSaleRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.PromoterSale, error) {
	args := m.Called(ctx, tenantID, id)
	s, _ := args.Get(0).(*sales.PromoterSale)
	return s, args.Error(1)
}

func (m *MockPromoterSaleRepository) ListByPromoter(ctx context.Context, tenantID, promoterID uuid.UUID, filter shared.Filter) ([]sales.PromoterSale, error) {
	args := m.Called(ctx, tenantID, promoterID, filter)
	list, _ := args.Get(0).([]sales.PromoterSale)
	return list, args.Error(1)
}

func (m *MockPromoterSaleRepository) ListInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]sales.PromoterSale, error) {
	args := m.Called(ctx, tenantID, from, to)
	list, _ := args.Get(0).([]sales.PromoterSale)
	return list, args.Error(1)
}

type MockReportReader struct {
	mock.Mock
}

func (m *MockReportReader) OrdersInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]sales.OrderRow, error) {
	args := m.Called(ctx, tenantID, from, to)
	rows, _ := args.Get(0).([]sales.OrderRow)
	return rows, args.Error(1)
}

func (m *MockReportReader) TopProducts(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]sales.ProductSales, error) {
	args := m.Called(ctx, tenantID, from, to, limit)
	rows, _ := args.Get(0).([]sales.ProductSales)
	return rows, args.Error(1)
}

type MockPersonLookup struct {
	mock.Mock
}

func (m *MockPersonLookup) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.Person, error) {
	args := m.Called(ctx, tenantID, id)
	p, _ := args.Get(0).(*identity.Person)
	return p, args.Error(1)
}
