package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atlas/backend/internal/domain/geo"
	"github.com/tidwall/gjson"
)

// SourceGoogle tags places resolved by the Google Geocoding API
const SourceGoogle = "google"

// Google is the paid geocoding provider
type Google struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
}

// NewGoogle creates a Google geocoder. baseURL defaults to the public API.
func NewGoogle(apiKey, baseURL, language string, timeout time.Duration) *Google {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api"
	}
	return &Google{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		client:   newHTTPClient(timeout),
	}
}

func (g *Google) Name() string { return SourceGoogle }

// Forward geocodes an address or place name
func (g *Google) Forward(ctx context.Context, query string) (*geo.Place, error) {
	q := url.Values{}
	q.Set("address", query)
	return g.lookup(ctx, q)
}

// Reverse names a point
func (g *Google) Reverse(ctx context.Context, c geo.Coordinates) (*geo.Place, error) {
	q := url.Values{}
	q.Set("latlng", c.String())
	return g.lookup(ctx, q)
}

func (g *Google) lookup(ctx context.Context, q url.Values) (*geo.Place, error) {
	q.Set("key", g.apiKey)
	if g.language != "" {
		q.Set("language", g.language)
	}

	doc, err := getJSON(ctx, g.client, SourceGoogle, g.baseURL+"/geocode/json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	switch status := doc.Get("status").String(); status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, geo.ErrNoResult
	default:
		return nil, fmt.Errorf("google: status %s: %s", status, doc.Get("error_message").String())
	}

	first := doc.Get("results.0")
	if !first.Exists() {
		return nil, geo.ErrNoResult
	}

	p := &geo.Place{
		FormattedAddress: first.Get("formatted_address").String(),
		Lat:              first.Get("geometry.location.lat").Float(),
		Lng:              first.Get("geometry.location.lng").Float(),
		Source:           SourceGoogle,
	}
	first.Get("address_components").ForEach(func(_, comp gjson.Result) bool {
		for _, t := range comp.Get("types").Array() {
			switch t.String() {
			case "locality":
				p.City = comp.Get("long_name").String()
			case "administrative_area_level_1":
				if p.City == "" {
					p.City = comp.Get("long_name").String()
				}
			case "country":
				p.Country = comp.Get("long_name").String()
				p.CountryCode = strings.ToUpper(comp.Get("short_name").String())
			}
		}
		return true
	})
	return p, nil
}

var _ geo.Geocoder = (*Google)(nil)
