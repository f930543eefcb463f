package dto

import "net/http"

// Error codes, formatted ERR_<CATEGORY>
const (
	ErrCodeInternal        = "ERR_INTERNAL"
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeUnauthorized    = "ERR_UNAUTHORIZED"
	ErrCodeForbidden       = "ERR_FORBIDDEN"
	ErrCodeNotFound        = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists   = "ERR_ALREADY_EXISTS"
	ErrCodeConflict        = "ERR_CONFLICT"
	ErrCodeInvalidState    = "ERR_INVALID_STATE"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeUpstream        = "ERR_UPSTREAM"
	ErrCodeUnavailable     = "ERR_UNAVAILABLE"
	ErrCodeNotConfigured   = "ERR_NOT_CONFIGURED"
	ErrCodeModuleDisabled  = "ERR_MODULE_DISABLED"
	ErrCodeSessionRequired = "ERR_SESSION_REQUIRED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeSessionRequired: http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeModuleDisabled:  http.StatusForbidden,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeAlreadyExists:   http.StatusConflict,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeInvalidState:    http.StatusConflict,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeUpstream:        http.StatusBadGateway,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,
	ErrCodeNotConfigured:   http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// or 500 when the code is unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainCodes maps shared.DomainError codes onto API codes
var domainCodes = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ALREADY_EXISTS": ErrCodeAlreadyExists,
	"INVALID_INPUT":  ErrCodeInvalidInput,
	"CONFLICT":       ErrCodeConflict,
	"UNAUTHORIZED":   ErrCodeUnauthorized,
	"FORBIDDEN":      ErrCodeForbidden,
	"INVALID_STATE":  ErrCodeInvalidState,
	"UNAVAILABLE":    ErrCodeUnavailable,
	"NOT_CONFIGURED": ErrCodeNotConfigured,
	"UPSTREAM_ERROR": ErrCodeUpstream,
}

// NormalizeErrorCode converts a domain error code to its API form.
// Codes already in API form pass through.
func NormalizeErrorCode(code string) string {
	if c, ok := domainCodes[code]; ok {
		return c
	}
	return code
}
