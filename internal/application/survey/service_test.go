package survey

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atlas/backend/internal/domain/crm"
	"github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/domain/survey"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memLinks keeps links and responses in memory with the same one-shot
// consume guard the database enforces
type memLinks struct {
	mu        sync.Mutex
	links     map[uuid.UUID]*survey.Link
	responses map[uuid.UUID][]*survey.Response
	updates   int
}

func newMemLinks() *memLinks {
	return &memLinks{links: map[uuid.UUID]*survey.Link{}, responses: map[uuid.UUID][]*survey.Response{}}
}

func (m *memLinks) FindReusable(_ context.Context, tenantID, orderID uuid.UUID) (*survey.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *survey.Link
	for _, l := range m.links {
		if l.TenantID == tenantID && l.OrderID == orderID && l.Reusable() {
			if best == nil || l.CreatedAt.After(best.CreatedAt) {
				best = l
			}
		}
	}
	if best == nil {
		return nil, shared.ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (m *memLinks) FindByToken(_ context.Context, token string) (*survey.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.links {
		if l.Token == token {
			cp := *l
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memLinks) Create(_ context.Context, l *survey.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *l
	m.links[l.ID] = &cp
	return nil
}

func (m *memLinks) Update(_ context.Context, l *survey.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.links[l.ID]
	if !ok {
		return shared.ErrNotFound
	}
	consumed := stored.ConsumedAt
	cp := *l
	cp.ConsumedAt = consumed
	m.links[l.ID] = &cp
	m.updates++
	return nil
}

func (m *memLinks) Consume(_ context.Context, l *survey.Link, r *survey.Response, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.links[l.ID]
	if stored.ConsumedAt != nil {
		return survey.ErrAlreadySubmitted
	}
	stored.ConsumedAt = &at
	stored.Status = survey.StatusCompleted
	m.responses[l.ID] = append(m.responses[l.ID], r)
	return nil
}

func (m *memLinks) CountResponses(_ context.Context, linkID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.responses[linkID])), nil
}

type stubOrders struct {
	order *sales.Order
}

func (s stubOrders) FindByID(_ context.Context, _, id uuid.UUID) (*sales.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, shared.ErrNotFound
	}
	return s.order, nil
}

type stubCustomers struct {
	customer *crm.Customer
}

func (s stubCustomers) FindByID(context.Context, uuid.UUID, uuid.UUID) (*crm.Customer, error) {
	if s.customer == nil {
		return nil, shared.ErrNotFound
	}
	return s.customer, nil
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Send(ctx context.Context, phone, text string) (string, error) {
	args := m.Called(ctx, phone, text)
	return args.String(0), args.Error(1)
}

func newOrder(tenant uuid.UUID) *sales.Order {
	o := &sales.Order{CustomerName: "Ana", CustomerPhone: "70012345"}
	o.ID = uuid.New()
	o.TenantID = tenant
	return o
}

func TestService_IssueSendsAndReuses(t *testing.T) {
	tenant := uuid.New()
	order := newOrder(tenant)
	links := newMemLinks()

	d := new(MockDispatcher)
	d.On("Send", mock.Anything, "70012345", mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Hola Ana") && strings.Contains(text, "https://atlas.example/encuesta/")
	})).Return("wamid.1", nil).Once()

	svc := NewService(links, stubOrders{order: order}, nil, d, Config{BaseURL: "https://atlas.example/"})

	first, err := svc.Issue(context.Background(), tenant, order.ID, IssueInput{})
	require.NoError(t, err)
	assert.Equal(t, "sent", first.Status)
	assert.Equal(t, "wamid.1", first.MessageID)
	assert.False(t, first.Reused)
	assert.Equal(t, "https://atlas.example/encuesta/"+first.Token, first.URL)

	second, err := svc.Issue(context.Background(), tenant, order.ID, IssueInput{})
	require.NoError(t, err)
	assert.True(t, second.Reused)
	assert.Equal(t, first.Token, second.Token)
	d.AssertNumberOfCalls(t, "Send", 1)
}

func TestService_IssueResendMintsNewToken(t *testing.T) {
	tenant := uuid.New()
	order := newOrder(tenant)
	d := new(MockDispatcher)
	d.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("wamid", nil)

	svc := NewService(newMemLinks(), stubOrders{order: order}, nil, d, Config{})
	first, err := svc.Issue(context.Background(), tenant, order.ID, IssueInput{})
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), tenant, order.ID, IssueInput{Resend: true})
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.False(t, second.Reused)
	d.AssertNumberOfCalls(t, "Send", 2)
}

func TestService_IssueDispatchFailureStillReturnsURL(t *testing.T) {
	tenant := uuid.New()
	order := newOrder(tenant)
	links := newMemLinks()
	d := new(MockDispatcher)
	d.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("whatsapp: 401 invalid token"))

	svc := NewService(links, stubOrders{order: order}, nil, d, Config{})
	res, err := svc.Issue(context.Background(), tenant, order.ID, IssueInput{})
	require.NoError(t, err)
	assert.Equal(t, "failed", res.Status)
	assert.Contains(t, res.FailedReason, "invalid token")
	assert.NotEmpty(t, res.URL)

	// a failed link is never reused
	again, err := svc.Issue(context.Background(), tenant, order.ID, IssueInput{})
	require.NoError(t, err)
	assert.NotEqual(t, res.Token, again.Token)
}

func TestService_IssueWithoutDispatcher(t *testing.T) {
	tenant := uuid.New()
	order := newOrder(tenant)

	res, err := NewService(newMemLinks(), stubOrders{order: order}, nil, nil, Config{}).
		Issue(context.Background(), tenant, order.ID, IssueInput{})
	require.NoError(t, err)
	assert.Equal(t, "failed", res.Status)
	assert.Equal(t, shared.ErrNotConfigured.Error(), res.FailedReason)
}

func TestService_IssuePhoneFromCustomer(t *testing.T) {
	tenant := uuid.New()
	order := newOrder(tenant)
	order.CustomerPhone = ""
	customerID := uuid.New()
	order.CustomerID = &customerID

	d := new(MockDispatcher)
	d.On("Send", mock.Anything, "77788899", mock.Anything).Return("wamid", nil)

	svc := NewService(newMemLinks(), stubOrders{order: order}, stubCustomers{customer: &crm.Customer{Phone: "77788899"}}, d, Config{})
	res, err := svc.Issue(context.Background(), tenant, order.ID, IssueInput{})
	require.NoError(t, err)
	assert.Equal(t, "sent", res.Status)
}

func TestService_IssueUnknownOrder(t *testing.T) {
	_, err := NewService(newMemLinks(), stubOrders{}, nil, nil, Config{}).
		Issue(context.Background(), uuid.New(), uuid.New(), IssueInput{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_SubmitOnce(t *testing.T) {
	tenant := uuid.New()
	order := newOrder(tenant)
	links := newMemLinks()
	d := new(MockDispatcher)
	d.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("wamid", nil)

	svc := NewService(links, stubOrders{order: order}, nil, d, Config{})
	issued, err := svc.Issue(context.Background(), tenant, order.ID, IssueInput{})
	require.NoError(t, err)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(context.Background(), SubmitInput{Token: issued.Token, Rating: 5})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, survey.ErrAlreadySubmitted):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)
	n, err := links.CountResponses(context.Background(), issued.LinkID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.Submit(context.Background(), SubmitInput{Token: issued.Token, Rating: 4})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestService_SubmitValidation(t *testing.T) {
	tenant := uuid.New()
	order := newOrder(tenant)
	links := newMemLinks()
	svc := NewService(links, stubOrders{order: order}, nil, nil, Config{})
	issued, err := svc.Issue(context.Background(), tenant, order.ID, IssueInput{})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), SubmitInput{Token: issued.Token, Rating: 9})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Submit(context.Background(), SubmitInput{Token: "missing", Rating: 3})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_ExpiryOnlyWhenEnforced(t *testing.T) {
	tenant := uuid.New()
	order := newOrder(tenant)

	for _, enforce := range []bool{false, true} {
		links := newMemLinks()
		svc := NewService(links, stubOrders{order: order}, nil, nil, Config{EnforceExpiry: enforce})
		issued, err := svc.Issue(context.Background(), tenant, order.ID, IssueInput{})
		require.NoError(t, err)

		svc.now = func() time.Time { return issued.ExpiresAt.Add(time.Hour) }
		view, err := svc.Lookup(context.Background(), issued.Token)
		require.NoError(t, err)
		assert.Equal(t, enforce, view.Expired)
		assert.Equal(t, "Ana", view.CustomerName)

		_, err = svc.Submit(context.Background(), SubmitInput{Token: issued.Token, Rating: 3})
		if enforce {
			assert.ErrorIs(t, err, survey.ErrExpired)
		} else {
			assert.NoError(t, err)
		}
	}
}
