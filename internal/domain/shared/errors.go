package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so that wrapped copies with a
// different message still compare equal to the sentinel.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound       = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists  = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput   = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConflict       = NewDomainError("CONFLICT", "Resource is in a conflicting state")
	ErrUnauthorized   = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden      = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState   = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnavailable    = NewDomainError("UNAVAILABLE", "Service temporarily unavailable, retry later")
	ErrNotConfigured  = NewDomainError("NOT_CONFIGURED", "Required integration is not configured")
	ErrUpstream       = NewDomainError("UPSTREAM_ERROR", "Upstream provider returned an error")
	ErrBadCredentials = NewDomainError(ErrUnauthorized.Code, "Invalid login or password")
)

// NewValidationError returns an invalid-input error carrying a message that
// is shown to the caller verbatim.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrInvalidInput.Code, message)
}
