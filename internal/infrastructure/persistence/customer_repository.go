package persistence

import (
	"context"

	"github.com/atlas/backend/internal/domain/crm"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements crm.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Create inserts a customer
func (r *GormCustomerRepository) Create(ctx context.Context, c *crm.Customer) error {
	return translate(r.db.WithContext(ctx).Create(models.CustomerModelFromDomain(c)).Error)
}

// Update rewrites every mutable column of a customer
func (r *GormCustomerRepository) Update(ctx context.Context, c *crm.Customer) error {
	m := models.CustomerModelFromDomain(c)
	res := r.db.WithContext(ctx).Model(m).
		Where("tenant_id = ?", c.TenantID).
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

// FindByID finds a customer by ID within a tenant
func (r *GormCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*crm.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// List returns the customers of a tenant ordered by name
func (r *GormCustomerRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]crm.Customer, error) {
	var rows []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Scopes(search(filter.Search, "name", "phone", "email", "city"), paginate(filter)).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	customers := make([]crm.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, nil
}
