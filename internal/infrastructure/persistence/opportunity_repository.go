package persistence

import (
	"context"

	"github.com/atlas/backend/internal/domain/crm"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOpportunityRepository implements crm.OpportunityRepository using GORM
type GormOpportunityRepository struct {
	db *gorm.DB
}

// NewGormOpportunityRepository creates a new GormOpportunityRepository
func NewGormOpportunityRepository(db *gorm.DB) *GormOpportunityRepository {
	return &GormOpportunityRepository{db: db}
}

// Create inserts an opportunity
func (r *GormOpportunityRepository) Create(ctx context.Context, o *crm.Opportunity) error {
	return translate(r.db.WithContext(ctx).Create(models.OpportunityModelFromDomain(o)).Error)
}

// Update rewrites every mutable column of an opportunity
func (r *GormOpportunityRepository) Update(ctx context.Context, o *crm.Opportunity) error {
	m := models.OpportunityModelFromDomain(o)
	res := r.db.WithContext(ctx).Model(m).
		Where("tenant_id = ?", o.TenantID).
		Select("*").Omit("id", "tenant_id", "created_at").
		Updates(m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an opportunity by ID within a tenant
func (r *GormOpportunityRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*crm.Opportunity, error) {
	var model models.OpportunityModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// List returns opportunities newest first, optionally narrowed to one status
func (r *GormOpportunityRepository) List(ctx context.Context, tenantID uuid.UUID, status string, filter shared.Filter) ([]crm.Opportunity, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []models.OpportunityModel
	if err := query.
		Scopes(search(filter.Search, "title", "stage"), paginate(filter)).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	opps := make([]crm.Opportunity, len(rows))
	for i := range rows {
		opps[i] = *rows[i].ToDomain()
	}
	return opps, nil
}
