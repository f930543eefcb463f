package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTenant = uuid.MustParse("6f1c2d3e-0000-4000-8000-000000000001")

func newTestPerson(t *testing.T, name, username, email string) *identity.Person {
	t.Helper()
	p, err := identity.NewPerson(testTenant, name, username, email, identity.RoleSeller)
	require.NoError(t, err)
	return p
}

func TestGormPersonRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPersonRepository(db, NewLoginIndexAdapter(nil))
	ctx := context.Background()

	p := newTestPerson(t, "Ana López", "ana.lopez", "ana@example.com")
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.FindByID(ctx, testTenant, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana López", got.Name)
	assert.Equal(t, identity.RoleSeller, got.Role)
	assert.True(t, got.Active)

	_, err = repo.FindByID(ctx, uuid.New(), p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPersonRepository_FindByLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the normalized columns when present", func(t *testing.T) {
		db := newTestDB(t)
		addIndexColumns(t, db, LoginIndexColumns...)
		repo := NewGormPersonRepository(db, NewLoginIndexAdapter(nil))

		p := newTestPerson(t, "Ana", "Ana.Lopez", "Ana@Example.com")
		require.NoError(t, repo.Create(ctx, p))

		got, err := repo.FindByLogin(ctx, "  ANA@example.COM ")
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
	})

	t.Run("falls back to the flat columns", func(t *testing.T) {
		db := newTestDB(t)
		addIndexColumns(t, db, LoginIndexColumns...)
		repo := NewGormPersonRepository(db, NewLoginIndexAdapter(nil))

		p := newTestPerson(t, "José", "jose.perez", "")
		require.NoError(t, repo.Create(ctx, p))

		got, err := repo.FindByLogin(ctx, "José Pérez")
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
	})

	t.Run("works without any index column", func(t *testing.T) {
		db := newTestDB(t)
		adapter := NewLoginIndexAdapter(nil)
		repo := NewGormPersonRepository(db, adapter)

		p := newTestPerson(t, "Ana", "ana.lopez", "ana@example.com")
		require.NoError(t, repo.Create(ctx, p))

		got, err := repo.FindByLogin(ctx, "ANA.LOPEZ")
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		for _, c := range LoginIndexColumns {
			assert.False(t, adapter.Supported(c))
		}
	})

	t.Run("unknown login", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormPersonRepository(db, nil)

		_, err := repo.FindByLogin(ctx, "nobody")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByLogin(ctx, "   ")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPersonRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	addIndexColumns(t, db, LoginIndexColumns...)
	repo := NewGormPersonRepository(db, NewLoginIndexAdapter(nil))
	ctx := context.Background()

	p := newTestPerson(t, "Ana", "ana", "")
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, p.SetLogin("ana.maria", "ana.maria@example.com"))
	p.Role = identity.RoleManager
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.FindByLogin(ctx, "ana.maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleManager, got.Role)

	missing := newTestPerson(t, "Ghost", "ghost", "")
	assert.ErrorIs(t, repo.Update(ctx, missing), shared.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, testTenant, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, testTenant, p.ID), shared.ErrNotFound)
}

func TestGormPersonRepository_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPersonRepository(db, nil)
	ctx := context.Background()

	for _, name := range []string{"Carla", "ana", "Beto"} {
		require.NoError(t, repo.Create(ctx, newTestPerson(t, name, name+"1", "")))
	}
	other, err := identity.NewPerson(uuid.New(), "Zed", "zed", "", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	people, err := repo.List(ctx, testTenant, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, people, 3)

	filtered, err := repo.List(ctx, testTenant, shared.Filter{Search: "BET"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Beto", filtered[0].Name)
}

func TestGormPersonRepository_CreateDuplicate(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPersonRepository(db, NewLoginIndexAdapter(nil))

	mock.ExpectExec(`INSERT INTO "people"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), newTestPerson(t, "Ana", "ana", ""))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPersonRepository_FindByLoginAcrossTenants(t *testing.T) {
	db := newTestDB(t)
	addIndexColumns(t, db, LoginIndexColumns...)
	repo := NewGormPersonRepository(db, NewLoginIndexAdapter(nil))
	ctx := context.Background()

	later := newTestPerson(t, "Ana (sucursal)", "ana", "")
	older, err := identity.NewPerson(uuid.New(), "Ana", "ana", "", identity.RoleManager)
	require.NoError(t, err)
	older.CreatedAt = later.CreatedAt.Add(-time.Hour)
	older.UpdatedAt = older.CreatedAt

	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, older))

	got, err := repo.FindByLogin(ctx, "ANA")
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)
	assert.Equal(t, older.TenantID, got.TenantID)
}
