package identity

import "strings"

// Module is a named feature area of the console
type Module string

const (
	ModuleDashboard     Module = "dashboard"
	ModuleSales         Module = "sales"
	ModuleInventory     Module = "inventory"
	ModuleHR            Module = "hr"
	ModuleProductivity  Module = "productivity"
	ModuleCash          Module = "cash"
	ModuleConfiguration Module = "configuration"
)

// AllModules lists every module in navigation order
var AllModules = []Module{
	ModuleDashboard,
	ModuleSales,
	ModuleInventory,
	ModuleHR,
	ModuleProductivity,
	ModuleCash,
	ModuleConfiguration,
}

// rolePermissions is the static visibility table. Admin and unknown are
// absent because they see every module.
var rolePermissions = map[Role][]Module{
	RoleManager:   {ModuleDashboard, ModuleSales, ModuleInventory, ModuleHR, ModuleProductivity, ModuleCash},
	RoleSeller:    {ModuleDashboard, ModuleSales, ModuleProductivity},
	RolePromoter:  {ModuleSales, ModuleProductivity},
	RoleCashier:   {ModuleCash, ModuleSales},
	RoleHR:        {ModuleHR, ModuleDashboard},
	RoleWarehouse: {ModuleInventory},
}

// ParseModule returns the module named s
func ParseModule(s string) (Module, bool) {
	m := Module(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllModules {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// CanAccessModule reports whether role may see module according to the
// static table. Unrecognized roles are open: an account whose role label
// cannot be classified keeps full navigation.
func CanAccessModule(role Role, module Module) bool {
	if role == RoleAdmin {
		return true
	}
	allowed, ok := rolePermissions[role]
	if !ok {
		return true
	}
	for _, m := range allowed {
		if m == module {
			return true
		}
	}
	return false
}

// ModuleAccess combines the role table with global on/off flags
type ModuleAccess struct {
	disabled map[Module]bool
}

// NewModuleAccess builds a ModuleAccess. Unknown module names are ignored.
func NewModuleAccess(disabled []string) *ModuleAccess {
	ma := &ModuleAccess{disabled: make(map[Module]bool)}
	for _, name := range disabled {
		if m, ok := ParseModule(name); ok {
			ma.disabled[m] = true
		}
	}
	return ma
}

// Enabled reports whether the module is globally switched on
func (a *ModuleAccess) Enabled(m Module) bool {
	return !a.disabled[m]
}

// Allows reports whether role can use module right now
func (a *ModuleAccess) Allows(role Role, m Module) bool {
	return a.Enabled(m) && CanAccessModule(role, m)
}

// Visible returns the modules role can see, in navigation order
func (a *ModuleAccess) Visible(role Role) []Module {
	out := make([]Module, 0, len(AllModules))
	for _, m := range AllModules {
		if a.Allows(role, m) {
			out = append(out, m)
		}
	}
	return out
}
