package handler

import (
	"time"

	"github.com/atlas/backend/internal/application/identity"
	domainIdentity "github.com/atlas/backend/internal/domain/identity"
)

// LoginRequest is a username-or-email login
type LoginRequest struct {
	Login    string `json:"login" binding:"required,max=200"`
	Password string `json:"password" binding:"required,max=200"`
}

// LoginResponse describes the session just opened. The token itself only
// travels in the cookie.
type LoginResponse struct {
	User      identity.PersonResponse `json:"user"`
	Modules   []domainIdentity.Module `json:"modules"`
	ExpiresAt time.Time               `json:"expires_at"`
}

// CreateUserRequest creates a console user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Username string `json:"username" binding:"max=100"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	Phone    string `json:"phone" binding:"max=40"`
	Role     string `json:"role" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UpdateUserRequest patches a console user
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=200"`
	Username *string `json:"username" binding:"omitempty,max=100"`
	Email    *string `json:"email" binding:"omitempty,max=200"`
	Phone    *string `json:"phone" binding:"omitempty,max=40"`
	Role     *string `json:"role" binding:"omitempty,max=50"`
	Active   *bool   `json:"active"`
}

// SetPasswordRequest replaces a user's password
type SetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8,max=72"`
}
