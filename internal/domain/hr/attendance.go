package hr

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Attendance is one check-in of a person
type Attendance struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	PersonID    uuid.UUID
	CheckedInAt time.Time
	Note        string
	CreatedAt   time.Time
}

// NewAttendance creates a check-in at the given instant
func NewAttendance(tenantID, personID uuid.UUID, at time.Time, note string) *Attendance {
	return &Attendance{
		ID:          uuid.New(),
		TenantID:    tenantID,
		PersonID:    personID,
		CheckedInAt: at,
		Note:        note,
		CreatedAt:   time.Now(),
	}
}

// AttendanceRepository defines persistence for attendance
type AttendanceRepository interface {
	Create(ctx context.Context, a *Attendance) error
	// FindForPerson returns the first check-in of person within [from, to), or shared.ErrNotFound
	FindForPerson(ctx context.Context, tenantID, personID uuid.UUID, from, to time.Time) (*Attendance, error)
	ListInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Attendance, error)
}
