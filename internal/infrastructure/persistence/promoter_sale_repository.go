package persistence

import (
	"context"
	"time"

	"github.com/atlas/backend/internal/domain/sales"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPromoterSaleRepository implements sales.PromoterSaleRepository using GORM
type GormPromoterSaleRepository struct {
	db *gorm.DB
}

// NewGormPromoterSaleRepository creates a new GormPromoterSaleRepository
func NewGormPromoterSaleRepository(db *gorm.DB) *GormPromoterSaleRepository {
	return &GormPromoterSaleRepository{db: db}
}

// Create inserts a promoter sale
func (r *GormPromoterSaleRepository) Create(ctx context.Context, s *sales.PromoterSale) error {
	return translate(r.db.WithContext(ctx).Create(models.PromoterSaleModelFromDomain(s)).Error)
}

// Update rewrites every mutable column of a promoter sale
func (r *GormPromoterSaleRepository) Update(ctx context.Context, s *sales.PromoterSale) error {
	m := models.PromoterSaleModelFromDomain(s)
	res := r.db.WithContext(ctx).Model(m).
		Where("tenant_id = ?", s.TenantID).
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

// Delete removes a promoter sale
func (r *GormPromoterSaleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.PromoterSaleModel{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a promoter sale by ID within a tenant
func (r *GormPromoterSaleRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.PromoterSale, error) {
	var model models.PromoterSaleModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// ListByPromoter returns one promoter's sales, newest first
func (r *GormPromoterSaleRepository) ListByPromoter(ctx context.Context, tenantID, promoterID uuid.UUID, filter shared.Filter) ([]sales.PromoterSale, error) {
	var rows []models.PromoterSaleModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND promoter_id = ?", tenantID, promoterID).
		Scopes(search(filter.Search, "product_name"), paginate(filter)).
		Order("sold_at DESC").
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return promoterSalesToDomain(rows), nil
}

// ListInRange returns every sale with sold_at in [from, to)
func (r *GormPromoterSaleRepository) ListInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]sales.PromoterSale, error) {
	var rows []models.PromoterSaleModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sold_at >= ? AND sold_at < ?", tenantID, from.UTC(), to.UTC()).
		Order("sold_at ASC").
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return promoterSalesToDomain(rows), nil
}

func promoterSalesToDomain(rows []models.PromoterSaleModel) []sales.PromoterSale {
	out := make([]sales.PromoterSale, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}
