package persistence

import (
	"context"
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/domain/survey"
	"github.com/atlas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSurveyRepository implements survey.Repository using GORM
type GormSurveyRepository struct {
	db *gorm.DB
}

// NewGormSurveyRepository creates a new GormSurveyRepository
func NewGormSurveyRepository(db *gorm.DB) *GormSurveyRepository {
	return &GormSurveyRepository{db: db}
}

// FindReusable returns the newest unconsumed, non-failed link of an order
func (r *GormSurveyRepository) FindReusable(ctx context.Context, tenantID, orderID uuid.UUID) (*survey.Link, error) {
	var model models.SurveyLinkModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ? AND consumed_at IS NULL AND status <> ?",
			tenantID, orderID, string(survey.StatusFailed)).
		Order("created_at DESC").
		Take(&model).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// FindByToken looks a link up by its public token
func (r *GormSurveyRepository) FindByToken(ctx context.Context, token string) (*survey.Link, error) {
	return WithRetry(ctx, DefaultRetryPolicy, func(ctx context.Context) (*survey.Link, error) {
		var model models.SurveyLinkModel
		if err := r.db.WithContext(ctx).
			Where("token = ?", token).
			Take(&model).Error; err != nil {
			return nil, translate(err)
		}
		return model.ToDomain(), nil
	})
}

// Create inserts a link
func (r *GormSurveyRepository) Create(ctx context.Context, l *survey.Link) error {
	return translate(r.db.WithContext(ctx).Create(models.SurveyLinkModelFromDomain(l)).Error)
}

// Update writes the dispatch state of a link. consumed_at is owned by
// Consume and never written here.
func (r *GormSurveyRepository) Update(ctx context.Context, l *survey.Link) error {
	res := r.db.WithContext(ctx).
		Model(&models.SurveyLinkModel{}).
		Where("id = ? AND tenant_id = ?", l.ID, l.TenantID).
		Updates(map[string]any{
			"phone":         l.Phone,
			"status":        string(l.Status),
			"message_id":    l.MessageID,
			"failed_reason": l.FailedReason,
			"sent_at":       l.SentAt,
			"updated_at":    l.UpdatedAt,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Consume stamps consumed_at only while it is still NULL and stores the
// response in the same transaction. Losing the race, or hitting the unique
// link_id, yields survey.ErrAlreadySubmitted.
func (r *GormSurveyRepository) Consume(ctx context.Context, l *survey.Link, resp *survey.Response, at time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.SurveyLinkModel{}).
			Where("id = ? AND consumed_at IS NULL", l.ID).
			Updates(map[string]any{
				"consumed_at": at,
				"status":      string(survey.StatusCompleted),
				"updated_at":  at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return survey.ErrAlreadySubmitted
		}
		if err := tx.Create(models.SurveyResponseModelFromDomain(resp)).Error; err != nil {
			if isUniqueViolation(err) {
				return survey.ErrAlreadySubmitted
			}
			return err
		}
		return nil
	})
	if err != nil {
		return translate(err)
	}

	l.ConsumedAt = &at
	l.Status = survey.StatusCompleted
	l.UpdatedAt = at
	return nil
}

// CountResponses returns how many responses a link holds
func (r *GormSurveyRepository) CountResponses(ctx context.Context, linkID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.SurveyResponseModel{}).
		Where("link_id = ?", linkID).
		Count(&n).Error
	return n, translate(err)
}
