// Package llm talks to an OpenAI-compatible chat-completions endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/atlas/backend/internal/domain/assistant"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/tidwall/gjson"
)

// Client implements assistant.Completer
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// New creates a client. An empty API key yields a client whose Complete
// always fails with shared.ErrNotConfigured.
func New(cfg config.LLMConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type chatRequest struct {
	Model       string              `json:"model"`
	Messages    []assistant.Message `json:"messages"`
	Temperature float64             `json:"temperature"`
}

// Complete returns the text of the first choice
func (c *Client) Complete(ctx context.Context, messages []assistant.Message, temperature float64) (string, error) {
	if !c.Configured() {
		return "", shared.ErrNotConfigured
	}

	payload, err := json.Marshal(chatRequest{Model: c.model, Messages: messages, Temperature: temperature})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("llm: read body: %w", err)
	}
	doc := gjson.ParseBytes(body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("llm: status %d: %s", resp.StatusCode, doc.Get("error.message").String())
	}

	content := doc.Get("choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("llm: response without choices")
	}
	return content.String(), nil
}

var _ assistant.Completer = (*Client)(nil)
