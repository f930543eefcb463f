package identity

import (
	"context"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PersonRepository defines persistence for people
type PersonRepository interface {
	Create(ctx context.Context, p *Person) error
	Update(ctx context.Context, p *Person) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Person, error)
	// FindByLogin resolves a username or email across tenants
	FindByLogin(ctx context.Context, login string) (*Person, error)
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Person, error)
}
