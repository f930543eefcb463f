package identity

import (
	"time"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput is a username-or-email login
type LoginInput struct {
	Login    string
	Password string
}

// LoginResult carries the session token and who it belongs to
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      PersonResponse
	Modules   []identity.Module
}

// MeResponse describes the current session
type MeResponse struct {
	PersonID  uuid.UUID         `json:"person_id"`
	TenantID  uuid.UUID         `json:"tenant_id"`
	Name      string            `json:"name"`
	Role      identity.Role     `json:"role"`
	Modules   []identity.Module `json:"modules"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// PersonResponse is a person as returned by the API; it never carries the hash
type PersonResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Username    string        `json:"username,omitempty"`
	Email       string        `json:"email,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Role        identity.Role `json:"role"`
	Active      bool          `json:"active"`
	LastLoginAt *time.Time    `json:"last_login_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ToPersonResponse converts a domain person
func ToPersonResponse(p *identity.Person) PersonResponse {
	return PersonResponse{
		ID:          p.ID,
		Name:        p.Name,
		Username:    p.Username,
		Email:       p.Email,
		Phone:       p.Phone,
		Role:        p.Role,
		Active:      p.Active,
		LastLoginAt: p.LastLoginAt,
		CreatedAt:   p.CreatedAt,
	}
}

// CreatePersonInput creates a console user
type CreatePersonInput struct {
	Name     string
	Username string
	Email    string
	Phone    string
	Role     string
	Password string
}

// UpdatePersonInput patches a console user; nil fields are unchanged
type UpdatePersonInput struct {
	Name     *string
	Username *string
	Email    *string
	Phone    *string
	Role     *string
	Active   *bool
}
