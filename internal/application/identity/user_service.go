package identity

import (
	"context"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService manages the console users of a tenant
type UserService struct {
	people identity.PersonRepository
}

// NewUserService creates a new user service
func NewUserService(people identity.PersonRepository) *UserService {
	return &UserService{people: people}
}

// parseRole accepts any known spelling; unknown labels are rejected on write
func parseRole(raw string) (identity.Role, error) {
	role := identity.NormalizeRole(raw)
	if role == identity.RoleUnknown {
		return "", shared.NewValidationError("role is not recognized")
	}
	return role, nil
}

// List returns people of the tenant
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PersonResponse, error) {
	list, err := s.people.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PersonResponse, 0, len(list))
	for i := range list {
		out = append(out, ToPersonResponse(&list[i]))
	}
	return out, nil
}

// Get returns one person
func (s *UserService) Get(ctx context.Context, tenantID, id uuid.UUID) (*PersonResponse, error) {
	p, err := s.people.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPersonResponse(p)
	return &resp, nil
}

// Create adds a person with an initial password
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, in CreatePersonInput) (*PersonResponse, error) {
	role, err := parseRole(in.Role)
	if err != nil {
		return nil, err
	}
	p, err := identity.NewPerson(tenantID, in.Name, in.Username, in.Email, role)
	if err != nil {
		return nil, err
	}
	p.Phone = in.Phone
	if err := p.SetPassword(in.Password); err != nil {
		return nil, err
	}
	if err := s.people.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Person created", zap.String("person_id", p.ID.String()), zap.String("role", role.String()))
	resp := ToPersonResponse(p)
	return &resp, nil
}

// Update patches a person. A person cannot deactivate themselves.
func (s *UserService) Update(ctx context.Context, tenantID, actorID, id uuid.UUID, in UpdatePersonInput) (*PersonResponse, error) {
	p, err := s.people.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := p.SetName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Username != nil || in.Email != nil {
		username, email := p.Username, p.Email
		if in.Username != nil {
			username = *in.Username
		}
		if in.Email != nil {
			email = *in.Email
		}
		if err := p.SetLogin(username, email); err != nil {
			return nil, err
		}
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Role != nil {
		role, err := parseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		p.Role = role
	}
	if in.Active != nil {
		if !*in.Active && id == actorID {
			return nil, shared.NewValidationError("you cannot deactivate your own account")
		}
		p.Active = *in.Active
	}
	p.Touch()

	if err := s.people.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := ToPersonResponse(p)
	return &resp, nil
}

// SetPassword replaces a person's password
func (s *UserService) SetPassword(ctx context.Context, tenantID, id uuid.UUID, password string) error {
	p, err := s.people.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := p.SetPassword(password); err != nil {
		return err
	}
	return s.people.Update(ctx, p)
}

// Delete removes a person. A person cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, tenantID, actorID, id uuid.UUID) error {
	if id == actorID {
		return shared.NewValidationError("you cannot delete your own account")
	}
	if err := s.people.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	logger.L(ctx).Info("Person deleted", zap.String("person_id", id.String()))
	return nil
}
