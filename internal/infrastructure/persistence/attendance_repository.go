package persistence

import (
	"context"
	"time"

	"github.com/atlas/backend/internal/domain/hr"
	"github.com/atlas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttendanceRepository implements hr.AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// Create inserts a check-in
func (r *GormAttendanceRepository) Create(ctx context.Context, a *hr.Attendance) error {
	return translate(r.db.WithContext(ctx).Create(models.AttendanceModelFromDomain(a)).Error)
}

// FindForPerson returns the earliest check-in of a person in [from, to)
func (r *GormAttendanceRepository) FindForPerson(ctx context.Context, tenantID, personID uuid.UUID, from, to time.Time) (*hr.Attendance, error) {
	var model models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND person_id = ? AND checked_in_at >= ? AND checked_in_at < ?", tenantID, personID, from.UTC(), to.UTC()).
		Order("checked_in_at ASC").
		Take(&model).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// ListInRange returns every check-in in [from, to), earliest first
func (r *GormAttendanceRepository) ListInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]hr.Attendance, error) {
	var rows []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND checked_in_at >= ? AND checked_in_at < ?", tenantID, from.UTC(), to.UTC()).
		Order("checked_in_at ASC").
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	out := make([]hr.Attendance, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}
