package identity

import (
	"context"
	"testing"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPersonRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*identity.Person")).Return(nil)
	svc := NewUserService(repo)

	resp, err := svc.Create(ctx, testTenant, CreatePersonInput{
		Name: "Marco Rojas", Username: "marco", Role: "Vendedor", Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, identity.RoleSeller, resp.Role)
	assert.True(t, resp.Active)

	created := repo.Calls[0].Arguments.Get(1).(*identity.Person)
	assert.True(t, created.VerifyPassword("longenough"))
}

func TestUserService_CreateValidation(t *testing.T) {
	svc := NewUserService(new(MockPersonRepository))
	ctx := context.Background()

	_, err := svc.Create(ctx, testTenant, CreatePersonInput{Name: "X", Username: "xavier", Role: "astronaut", Password: "longenough"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Create(ctx, testTenant, CreatePersonInput{Name: "X", Username: "xavier", Role: "admin", Password: "short"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	p := newPerson(t, identity.RoleSeller, "longenough")
	actor := uuid.New()

	repo := new(MockPersonRepository)
	repo.On("FindByID", ctx, testTenant, p.ID).Return(p, nil)
	repo.On("Update", ctx, p).Return(nil)
	svc := NewUserService(repo)

	role := "GERENTE"
	email := "lucia.q@example.com"
	inactive := false
	resp, err := svc.Update(ctx, testTenant, actor, p.ID, UpdatePersonInput{Role: &role, Email: &email, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, identity.RoleManager, resp.Role)
	assert.Equal(t, "lucia", resp.Username)
	assert.Equal(t, email, resp.Email)
	assert.False(t, resp.Active)

	_, err = svc.Update(ctx, testTenant, p.ID, p.ID, UpdatePersonInput{Active: &inactive})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPersonRepository)
	id := uuid.New()
	repo.On("Delete", ctx, testTenant, id).Return(shared.ErrNotFound)
	svc := NewUserService(repo)

	assert.ErrorIs(t, svc.Delete(ctx, testTenant, uuid.New(), id), shared.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, testTenant, id, id), shared.ErrInvalidInput)
}

func TestUserService_SetPassword(t *testing.T) {
	ctx := context.Background()
	p := newPerson(t, identity.RoleHR, "first-password")
	repo := new(MockPersonRepository)
	repo.On("FindByID", ctx, testTenant, p.ID).Return(p, nil)
	repo.On("Update", ctx, p).Return(nil)

	require.NoError(t, NewUserService(repo).SetPassword(ctx, testTenant, p.ID, "second-password"))
	assert.True(t, p.VerifyPassword("second-password"))
	assert.False(t, p.VerifyPassword("first-password"))
}
