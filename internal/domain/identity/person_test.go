package identity

import (
	"testing"
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	PasswordCost = bcrypt.MinCost
}

func TestNewPerson(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active person", func(t *testing.T) {
		p, err := NewPerson(tenantID, " Ana Lía ", "ana.lia", "ana@example.com", RoleSeller)
		require.NoError(t, err)
		assert.Equal(t, tenantID, p.TenantID)
		assert.Equal(t, "Ana Lía", p.Name)
		assert.True(t, p.Active)
		assert.NotEqual(t, uuid.Nil, p.ID)
	})

	t.Run("email only is enough", func(t *testing.T) {
		_, err := NewPerson(tenantID, "Ana", "", "ana@example.com", RoleHR)
		assert.NoError(t, err)
	})

	tests := []struct {
		name     string
		pName    string
		username string
		email    string
		role     Role
	}{
		{"missing name", "", "ana", "", RoleSeller},
		{"missing login", "Ana", "", "", RoleSeller},
		{"short username", "Ana", "an", "", RoleSeller},
		{"username with spaces", "Ana", "ana lia", "", RoleSeller},
		{"bad email", "Ana", "", "not-an-email", RoleSeller},
		{"bad role", "Ana", "ana", "", Role("root")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPerson(tenantID, tt.pName, tt.username, tt.email, tt.role)
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}
}

func TestPerson_Password(t *testing.T) {
	p, err := NewPerson(uuid.New(), "Ana", "ana", "", RoleSeller)
	require.NoError(t, err)

	assert.False(t, p.VerifyPassword("anything"))
	assert.Error(t, p.SetPassword("short"))

	require.NoError(t, p.SetPassword("correct-horse"))
	assert.True(t, p.VerifyPassword("correct-horse"))
	assert.False(t, p.VerifyPassword("wrong-horse"))
}

func TestPerson_RecordLogin(t *testing.T) {
	p := &Person{}
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	p.RecordLogin(now)
	require.NotNil(t, p.LastLoginAt)
	assert.Equal(t, now, *p.LastLoginAt)
}
