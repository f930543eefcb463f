// Package geocoding holds the HTTP geocoding providers and the map
// short-link expander.
package geocoding

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const maxResponseBytes = 1 << 20

// ErrStatus is returned when a provider answers with a non-2xx status
type ErrStatus struct {
	Provider string
	Code     int
}

func (e *ErrStatus) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Provider, e.Code)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET and returns the parsed body
func getJSON(ctx context.Context, client *http.Client, provider, url string, header http.Header) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: build request: %w", provider, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: %w", provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: read body: %w", provider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, &ErrStatus{Provider: provider, Code: resp.StatusCode}
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%s: invalid JSON response", provider)
	}
	return gjson.ParseBytes(body), nil
}
