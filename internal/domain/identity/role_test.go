package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"Administrador", RoleAdmin},
		{"  ADMINISTRADORA ", RoleAdmin},
		{"Dueño", RoleAdmin},
		{"GERENTE", RoleManager},
		{"Supervisor", RoleManager},
		{"vendedora", RoleSeller},
		{"Sales", RoleSeller},
		{"Promotora", RolePromoter},
		{"Cajero", RoleCashier},
		{"RRHH", RoleHR},
		{"RR.HH.", RoleHR},
		{"Recursos   Humanos", RoleHR},
		{"almacén", RoleWarehouse},
		{"Encargado de Almacén", RoleWarehouse},
		{"warehouse", RoleWarehouse},
		{"", RoleUnknown},
		{"astronaut", RoleUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRole(tt.in))
		})
	}
}

func TestRole_IsManagerial(t *testing.T) {
	assert.True(t, RoleAdmin.IsManagerial())
	assert.True(t, RoleManager.IsManagerial())
	assert.False(t, RoleSeller.IsManagerial())
	assert.False(t, RoleUnknown.IsManagerial())
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, r.IsValid())
	}
	assert.True(t, RoleUnknown.IsValid())
	assert.False(t, Role("root").IsValid())
}
