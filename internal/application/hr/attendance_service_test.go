package hr

import (
	"context"
	"testing"
	"time"

	"github.com/atlas/backend/internal/domain/hr"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, a *hr.Attendance) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAttendanceRepository) FindForPerson(ctx context.Context, tenantID, personID uuid.UUID, from, to time.Time) (*hr.Attendance, error) {
	args := m.Called(ctx, tenantID, personID, from, to)
	a, _ := args.Get(0).(*hr.Attendance)
	return a, args.Error(1)
}

func (m *MockAttendanceRepository) ListInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]hr.Attendance, error) {
	args := m.Called(ctx, tenantID, from, to)
	list, _ := args.Get(0).([]hr.Attendance)
	return list, args.Error(1)
}

func TestAttendanceService_CheckIn(t *testing.T) {
	loc := time.FixedZone("BOT", -4*60*60)
	// 01:30 UTC on the 16th is still the 15th in loc
	now := time.Date(2026, 10, 16, 1, 30, 0, 0, time.UTC)
	dayStart := time.Date(2026, 10, 15, 0, 0, 0, 0, loc)
	dayEnd := time.Date(2026, 10, 16, 0, 0, 0, 0, loc)
	tenant, person := uuid.New(), uuid.New()

	t.Run("first check-in of the day is created", func(t *testing.T) {
		repo := new(MockAttendanceRepository)
		repo.On("FindForPerson", mock.Anything, tenant, person, dayStart, dayEnd).Return(nil, shared.ErrNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*hr.Attendance")).Return(nil)

		svc := NewAttendanceService(repo, loc)
		svc.now = func() time.Time { return now }

		res, err := svc.CheckIn(context.Background(), tenant, person, CheckInInput{Note: " early "})
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, "early", res.Attendance.Note)
		repo.AssertExpectations(t)
	})

	t.Run("second check-in returns the first", func(t *testing.T) {
		first := hr.NewAttendance(tenant, person, now.Add(-time.Hour), "")
		repo := new(MockAttendanceRepository)
		repo.On("FindForPerson", mock.Anything, tenant, person, dayStart, dayEnd).Return(first, nil)

		svc := NewAttendanceService(repo, loc)
		svc.now = func() time.Time { return now }

		res, err := svc.CheckIn(context.Background(), tenant, person, CheckInInput{})
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, first.ID, res.Attendance.ID)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAttendanceService_Today(t *testing.T) {
	tenant := uuid.New()
	repo := new(MockAttendanceRepository)
	repo.On("ListInRange", mock.Anything, tenant, mock.Anything, mock.Anything).
		Return([]hr.Attendance{*hr.NewAttendance(tenant, uuid.New(), time.Now(), "")}, nil)

	list, err := NewAttendanceService(repo, nil).Today(context.Background(), tenant)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
