package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Role is one of the coarse-grained roles the console understands
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleSeller    Role = "seller"
	RolePromoter  Role = "promoter"
	RoleCashier   Role = "cashier"
	RoleHR        Role = "hr"
	RoleWarehouse Role = "warehouse"
	RoleUnknown   Role = "unknown"
)

// AllRoles lists every role except unknown
var AllRoles = []Role{RoleAdmin, RoleManager, RoleSeller, RolePromoter, RoleCashier, RoleHR, RoleWarehouse}

// roleAliases maps folded spellings (lower case, no accents, single spaces)
// to the canonical role. Spanish and English labels both appear in stored rows.
var roleAliases = map[string]Role{
	"admin":                RoleAdmin,
	"administrator":        RoleAdmin,
	"administrador":        RoleAdmin,
	"administradora":       RoleAdmin,
	"superadmin":           RoleAdmin,
	"super admin":          RoleAdmin,
	"owner":                RoleAdmin,
	"dueno":                RoleAdmin,
	"duena":                RoleAdmin,
	"propietario":          RoleAdmin,
	"manager":              RoleManager,
	"gerente":              RoleManager,
	"gerencia":             RoleManager,
	"supervisor":           RoleManager,
	"supervisora":          RoleManager,
	"encargado":            RoleManager,
	"encargada":            RoleManager,
	"jefe":                 RoleManager,
	"jefa":                 RoleManager,
	"seller":               RoleSeller,
	"sales":                RoleSeller,
	"salesperson":          RoleSeller,
	"vendedor":             RoleSeller,
	"vendedora":            RoleSeller,
	"ventas":               RoleSeller,
	"asesor":               RoleSeller,
	"asesora":              RoleSeller,
	"promoter":             RolePromoter,
	"promotor":             RolePromoter,
	"promotora":            RolePromoter,
	"impulsador":           RolePromoter,
	"impulsadora":          RolePromoter,
	"cashier":              RoleCashier,
	"cajero":               RoleCashier,
	"cajera":               RoleCashier,
	"caja":                 RoleCashier,
	"hr":                   RoleHR,
	"rrhh":                 RoleHR,
	"rr hh":                RoleHR,
	"recursos humanos":     RoleHR,
	"human resources":      RoleHR,
	"talento humano":       RoleHR,
	"warehouse":            RoleWarehouse,
	"almacen":              RoleWarehouse,
	"almacenero":           RoleWarehouse,
	"almacenera":           RoleWarehouse,
	"bodega":               RoleWarehouse,
	"bodeguero":            RoleWarehouse,
	"deposito":             RoleWarehouse,
	"inventario":           RoleWarehouse,
	"inventory":            RoleWarehouse,
	"encargado almacen":    RoleWarehouse,
	"encargada almacen":    RoleWarehouse,
	"encargado de almacen": RoleWarehouse,
	"encargada de almacen": RoleWarehouse,
}

// NormalizeRole folds a stored role label into the closed role set.
// Case, accents, punctuation and repeated whitespace are ignored.
func NormalizeRole(raw string) Role {
	key := foldLabel(raw)
	if key == "" {
		return RoleUnknown
	}
	if r, ok := roleAliases[key]; ok {
		return r
	}
	return RoleUnknown
}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return r == RoleUnknown
}

// IsManagerial reports whether r may approve or delete on behalf of others
func (r Role) IsManagerial() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r Role) String() string {
	return string(r)
}

func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// foldLabel lowercases, strips accents and collapses separators to single spaces
func foldLabel(s string) string {
	folded, _, err := transform.String(stripMarks(), strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		folded = strings.ToLower(strings.TrimSpace(s))
	}
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}
