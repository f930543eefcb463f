package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const peopleTable = "people"

// GormPersonRepository implements identity.PersonRepository using GORM.
// Writes go through the login-index adapter so the optional normalized
// columns are filled when the schema has them.
type GormPersonRepository struct {
	db    *gorm.DB
	index *LoginIndexAdapter
}

// NewGormPersonRepository creates a new GormPersonRepository
func NewGormPersonRepository(db *gorm.DB, index *LoginIndexAdapter) *GormPersonRepository {
	if index == nil {
		index = NewLoginIndexAdapter(nil)
	}
	return &GormPersonRepository{db: db, index: index}
}

// Create inserts a person
func (r *GormPersonRepository) Create(ctx context.Context, p *identity.Person) error {
	m := models.PersonModelFromDomain(p)
	err := r.index.Write(ctx, m.Fields(), p.LoginIndex(), func(ctx context.Context, fields map[string]any) error {
		return r.db.WithContext(ctx).Table(peopleTable).Create(fields).Error
	})
	return translate(err)
}

// Update rewrites a person's mutable fields
func (r *GormPersonRepository) Update(ctx context.Context, p *identity.Person) error {
	m := models.PersonModelFromDomain(p)
	base := m.Fields()
	delete(base, "id")
	delete(base, "tenant_id")
	delete(base, "created_at")

	var affected int64
	err := r.index.Write(ctx, base, p.LoginIndex(), func(ctx context.Context, fields map[string]any) error {
		res := r.db.WithContext(ctx).Table(peopleTable).
			Where("tenant_id = ? AND id = ?", p.TenantID, p.ID).
			Updates(fields)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return translate(err)
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a person
func (r *GormPersonRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.PersonModel{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a person by ID within a tenant
func (r *GormPersonRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.Person, error) {
	var model models.PersonModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// FindByLogin resolves a username or email. It tries the normalized index,
// then the flat index, then lower() over the raw columns for rows written
// before the index existed. The login request carries no tenant, so the
// search spans every tenant and the oldest account wins a collision.
func (r *GormPersonRepository) FindByLogin(ctx context.Context, login string) (*identity.Person, error) {
	norm := identity.NormLogin(login)
	if norm == "" {
		return nil, shared.ErrNotFound
	}
	flat := identity.FlatLogin(login)

	return WithRetry(ctx, DefaultRetryPolicy, func(ctx context.Context) (*identity.Person, error) {
		steps := []struct {
			cols  []string
			value string
		}{
			{[]string{ColUsernameNorm, ColEmailNorm}, norm},
			{[]string{ColUsernameFlat, ColEmailFlat}, flat},
		}
		for _, step := range steps {
			if step.value == "" {
				continue
			}
			var model models.PersonModel
			err := r.index.Lookup(ctx, step.cols, func(ctx context.Context, cols []string) error {
				return r.firstMatch(ctx, cols, step.value, &model)
			})
			switch {
			case err == nil:
				return model.ToDomain(), nil
			case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, errNoIndex):
				continue
			default:
				return nil, err
			}
		}

		var model models.PersonModel
		err := r.firstMatch(ctx, []string{"lower(username)", "lower(email)"}, norm, &model)
		if err != nil {
			return nil, translate(err)
		}
		return model.ToDomain(), nil
	})
}

func (r *GormPersonRepository) firstMatch(ctx context.Context, cols []string, value string, dest *models.PersonModel) error {
	clauses := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		clauses[i] = c + " = ?"
		args[i] = value
	}
	return r.db.WithContext(ctx).
		Where(strings.Join(clauses, " OR "), args...).
		Order("created_at ASC").
		Take(dest).Error
}

// List returns the people of a tenant ordered by name
func (r *GormPersonRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.Person, error) {
	var rows []models.PersonModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Scopes(search(filter.Search, "name", "username", "email"), paginate(filter)).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	people := make([]identity.Person, len(rows))
	for i := range rows {
		people[i] = *rows[i].ToDomain()
	}
	return people, nil
}
