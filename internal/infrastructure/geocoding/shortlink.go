package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ShortLinkExpander resolves a map short link by reading one redirect
type ShortLinkExpander struct {
	client *http.Client
}

// NewShortLinkExpander creates an expander that never follows redirects
func NewShortLinkExpander(timeout time.Duration) *ShortLinkExpander {
	return &ShortLinkExpander{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Expand returns the Location of the first redirect. A response without one
// yields the original link.
func (e *ShortLinkExpander) Expand(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("short link: build request: %w", err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("short link: %w", err)
	}
	defer resp.Body.Close()

	loc := resp.Header.Get("Location")
	if loc == "" {
		return link, nil
	}
	target, err := resp.Request.URL.Parse(loc)
	if err != nil {
		return "", fmt.Errorf("short link: bad location %q: %w", loc, err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return "", fmt.Errorf("short link: unexpected scheme %q", target.Scheme)
	}
	if strings.HasPrefix(loc, target.Scheme+"://") {
		return loc, nil
	}
	return target.String(), nil
}
