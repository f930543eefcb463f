// Package whatsapp sends text messages through the WhatsApp Business Cloud API.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/domain/survey"
	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrMissingPhone means the recipient has no usable number
var ErrMissingPhone = shared.NewValidationError("recipient phone number is missing")

// Client is a WhatsApp Cloud API sender. Sends are paced by a token bucket
// shared by every caller of the client.
type Client struct {
	token         string
	phoneNumberID string
	baseURL       string
	apiVersion    string
	countryCode   string
	demo          bool
	http          *http.Client
	limiter       *rate.Limiter
	logger        *zap.Logger
}

// New creates a client from configuration. In demo mode no request leaves
// the process and every send succeeds with a synthetic message id.
func New(cfg config.WhatsAppConfig, demo bool, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://graph.facebook.com"
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "v19.0"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	perSecond := cfg.MessagesPerSecond
	if perSecond <= 0 {
		perSecond = 20
	}
	return &Client{
		token:         cfg.Token,
		phoneNumberID: cfg.PhoneNumberID,
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiVersion:    apiVersion,
		countryCode:   cfg.DefaultCountryCode,
		demo:          demo,
		http:          &http.Client{Timeout: timeout},
		limiter:       rate.NewLimiter(rate.Limit(perSecond), 1),
		logger:        logger,
	}
}

// Configured reports whether credentials are present
func (c *Client) Configured() bool {
	return c.demo || (c.token != "" && c.phoneNumberID != "")
}

// Send delivers text to phone and returns the provider message id
func (c *Client) Send(ctx context.Context, phone, text string) (string, error) {
	to := NormalizePhone(phone, c.countryCode)
	if to == "" {
		return "", ErrMissingPhone
	}
	if c.demo {
		id := "demo-" + uuid.NewString()
		c.logger.Info("Demo mode, WhatsApp message not sent", zap.String("to", to), zap.String("message_id", id))
		return id, nil
	}
	if !c.Configured() {
		return "", shared.ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("whatsapp: rate limiter: %w", err)
	}

	payload, err := json.Marshal(map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "text",
		"text":              map[string]any{"preview_url": true, "body": text},
	})
	if err != nil {
		return "", fmt.Errorf("whatsapp: encode payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.apiVersion, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("whatsapp: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("whatsapp: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("whatsapp: read body: %w", err)
	}
	doc := gjson.ParseBytes(body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := doc.Get("error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("whatsapp: status %d: %s", resp.StatusCode, msg)
	}

	id := doc.Get("messages.0.id").String()
	if id == "" {
		return "", fmt.Errorf("whatsapp: response without message id")
	}
	return id, nil
}

// NormalizePhone strips formatting and prefixes countryCode to local
// 8-digit mobile numbers. It returns "" when no digits remain.
func NormalizePhone(raw, countryCode string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, raw)
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return ""
	}
	if countryCode != "" && len(digits) == 8 {
		return countryCode + digits
	}
	return digits
}

var _ survey.Dispatcher = (*Client)(nil)
