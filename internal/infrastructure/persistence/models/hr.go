package models

import (
	"time"

	"github.com/atlas/backend/internal/domain/hr"
	"github.com/google/uuid"
)

// AttendanceModel is one check-in row.
type AttendanceModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	PersonID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CheckedInAt time.Time `gorm:"not null;index"`
	Note        string    `gorm:"type:varchar(300)"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AttendanceModel) TableName() string {
	return "attendance"
}

// ToDomain converts the persistence model to a domain Attendance entity
func (m *AttendanceModel) ToDomain() *hr.Attendance {
	return &hr.Attendance{
		ID:          m.ID,
		TenantID:    m.TenantID,
		PersonID:    m.PersonID,
		CheckedInAt: m.CheckedInAt,
		Note:        m.Note,
		CreatedAt:   m.CreatedAt,
	}
}

// AttendanceModelFromDomain creates a new persistence model from domain entity
func AttendanceModelFromDomain(a *hr.Attendance) *AttendanceModel {
	return &AttendanceModel{
		ID:          a.ID,
		TenantID:    a.TenantID,
		PersonID:    a.PersonID,
		CheckedInAt: a.CheckedInAt,
		Note:        a.Note,
		CreatedAt:   a.CreatedAt,
	}
}
