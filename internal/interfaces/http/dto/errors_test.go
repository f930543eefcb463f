package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeSessionRequired, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeModuleDisabled, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeUpstream, http.StatusBadGateway},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{ErrCodeNotConfigured, http.StatusServiceUnavailable},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeUnavailable, NormalizeErrorCode("UNAVAILABLE"))
	assert.Equal(t, ErrCodeUpstream, NormalizeErrorCode("UPSTREAM_ERROR"))
	assert.Equal(t, ErrCodeConflict, NormalizeErrorCode(ErrCodeConflict))
}

func TestResponseEnvelope(t *testing.T) {
	t.Run("success omits error", func(t *testing.T) {
		raw, err := json.Marshal(NewSuccessResponse(map[string]int{"n": 1}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true,"data":{"n":1}}`, string(raw))
	})

	t.Run("error omits data", func(t *testing.T) {
		raw, err := json.Marshal(NewErrorResponse(ErrCodeConflict, "already submitted", "req-1"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":false,"error":{"code":"ERR_CONFLICT","message":"already submitted"},"request_id":"req-1"}`, string(raw))
	})

	t.Run("list carries meta", func(t *testing.T) {
		resp := NewListResponse([]int{1, 2}, 2, 1, 50)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 2, resp.Meta.Count)
	})
}
