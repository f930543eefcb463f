package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used for new hashes
var PasswordCost = bcrypt.DefaultCost

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.\-]{3,60}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
)

// Person is a console user (staff member) of one tenant
type Person struct {
	shared.TenantEntity
	Name         string
	Username     string
	Email        string
	Phone        string
	Role         Role
	PasswordHash string
	Active       bool
	LastLoginAt  *time.Time
}

// NewPerson creates an active person. At least one of username or email is required.
func NewPerson(tenantID uuid.UUID, name, username, email string, role Role) (*Person, error) {
	p := &Person{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Role:         role,
		Active:       true,
	}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	if err := p.SetLogin(username, email); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("role is not recognized")
	}
	return p, nil
}

// SetName validates and sets the display name
func (p *Person) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name is required")
	}
	if len([]rune(name)) > 120 {
		return shared.NewValidationError("name cannot exceed 120 characters")
	}
	p.Name = name
	p.Touch()
	return nil
}

// SetLogin validates and sets the login identifiers
func (p *Person) SetLogin(username, email string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" && email == "" {
		return shared.NewValidationError("username or email is required")
	}
	if username != "" && !usernamePattern.MatchString(username) {
		return shared.NewValidationError("username must be 3-60 letters, digits, dots, dashes or underscores")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return shared.NewValidationError("email is not valid")
	}
	p.Username = username
	p.Email = email
	p.Touch()
	return nil
}

// SetPassword hashes and stores a new password
func (p *Person) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewValidationError("password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewValidationError("password cannot exceed 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hash)
	p.Touch()
	return nil
}

// VerifyPassword reports whether password matches the stored hash
func (p *Person) VerifyPassword(password string) bool {
	if p.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps a successful login
func (p *Person) RecordLogin(at time.Time) {
	p.LastLoginAt = &at
}

// LoginIndex returns the normalized lookup keys for this person
func (p *Person) LoginIndex() LoginIndex {
	return BuildLoginIndex(p.Username, p.Email)
}
