// Package hr records staff attendance.
package hr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atlas/backend/internal/domain/hr"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CheckInInput is the body of a check-in
type CheckInInput struct {
	Note string `json:"note" binding:"max=500"`
}

// AttendanceResponse is a check-in as returned to clients
type AttendanceResponse struct {
	ID          uuid.UUID `json:"id"`
	PersonID    uuid.UUID `json:"person_id"`
	CheckedInAt time.Time `json:"checked_in_at"`
	Note        string    `json:"note,omitempty"`
}

// CheckInResult tells whether the check-in was new
type CheckInResult struct {
	Attendance AttendanceResponse `json:"attendance"`
	Created    bool               `json:"created"`
}

func toResponse(a *hr.Attendance) AttendanceResponse {
	return AttendanceResponse{ID: a.ID, PersonID: a.PersonID, CheckedInAt: a.CheckedInAt, Note: a.Note}
}

// AttendanceService handles check-ins
type AttendanceService struct {
	attendance hr.AttendanceRepository
	loc        *time.Location
	now        func() time.Time
}

// NewAttendanceService creates a service whose day boundaries follow loc
func NewAttendanceService(repo hr.AttendanceRepository, loc *time.Location) *AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{attendance: repo, loc: loc, now: time.Now}
}

func (s *AttendanceService) today() (time.Time, time.Time) {
	y, m, d := s.now().In(s.loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 0, 1)
}

// CheckIn records the caller's attendance. A second check-in on the same
// business day returns the first one.
func (s *AttendanceService) CheckIn(ctx context.Context, tenantID, personID uuid.UUID, in CheckInInput) (*CheckInResult, error) {
	from, to := s.today()
	existing, err := s.attendance.FindForPerson(ctx, tenantID, personID, from, to)
	if err == nil {
		return &CheckInResult{Attendance: toResponse(existing)}, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	a := hr.NewAttendance(tenantID, personID, s.now(), strings.TrimSpace(in.Note))
	if err := s.attendance.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	return &CheckInResult{Attendance: toResponse(a), Created: true}, nil
}

// Today lists the check-ins of the current business day
func (s *AttendanceService) Today(ctx context.Context, tenantID uuid.UUID) ([]AttendanceResponse, error) {
	from, to := s.today()
	list, err := s.attendance.ListInRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]AttendanceResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	return out, nil
}
