package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"71234567", "59171234567"},
		{"+591 7123-4567", "59171234567"},
		{"(712) 34 567", "59171234567"},
		{"0071234567", "59171234567"},
		{"5491122334455", "5491122334455"},
		{"", ""},
		{"n/a", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.raw, "591"))
		})
	}
}

func TestClient_Send(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v19.0/12345/messages", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"messaging_product":"whatsapp","messages":[{"id":"wamid.ABC"}]}`))
	}))
	defer srv.Close()

	c := New(config.WhatsAppConfig{
		Token: "tok", PhoneNumberID: "12345", BaseURL: srv.URL, DefaultCountryCode: "591", Timeout: time.Second,
	}, false, nil)

	id, err := c.Send(context.Background(), "7123 4567", "hola")
	require.NoError(t, err)
	assert.Equal(t, "wamid.ABC", id)
	assert.Equal(t, "59171234567", body["to"])
	assert.Equal(t, "hola", body["text"].(map[string]any)["body"])
}

func TestClient_SendErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100}}`))
	}))
	defer srv.Close()

	cfg := config.WhatsAppConfig{Token: "tok", PhoneNumberID: "1", BaseURL: srv.URL, DefaultCountryCode: "591"}

	_, err := New(cfg, false, nil).Send(context.Background(), "71234567", "x")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Invalid parameter"))

	_, err = New(cfg, false, nil).Send(context.Background(), "  ", "x")
	assert.ErrorIs(t, err, ErrMissingPhone)

	_, err = New(config.WhatsAppConfig{}, false, nil).Send(context.Background(), "71234567", "x")
	assert.ErrorIs(t, err, shared.ErrNotConfigured)
}

func TestClient_DemoMode(t *testing.T) {
	c := New(config.WhatsAppConfig{}, true, nil)
	assert.True(t, c.Configured())

	id, err := c.Send(context.Background(), "71234567", "x")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "demo-"))
}
