package geo

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoResult means a provider answered but found nothing
var ErrNoResult = errors.New("geocoder returned no result")

// Source tags how a place was resolved
const (
	SourceFallback = "fallback"
)

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point is inside lat/lng bounds
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// Place is a resolved, normalized address
type Place struct {
	FormattedAddress string  `json:"formatted_address"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	City             string  `json:"city,omitempty"`
	Country          string  `json:"country,omitempty"`
	CountryCode      string  `json:"country_code,omitempty"`
	Source           string  `json:"source"`
}

// Coordinates returns the place's point
func (p Place) Coordinates() Coordinates {
	return Coordinates{Lat: p.Lat, Lng: p.Lng}
}

// BarePlace wraps coordinates that no provider could name
func BarePlace(c Coordinates) *Place {
	return &Place{
		FormattedAddress: c.String(),
		Lat:              c.Lat,
		Lng:              c.Lng,
		Source:           SourceFallback,
	}
}

// Geocoder is one geocoding provider
type Geocoder interface {
	Name() string
	Forward(ctx context.Context, query string) (*Place, error)
	Reverse(ctx context.Context, c Coordinates) (*Place, error)
}

// PlaceCache stores successful resolutions keyed by the trimmed input.
// A miss returns (nil, false, nil).
type PlaceCache interface {
	Get(ctx context.Context, key string) (*Place, bool, error)
	Set(ctx context.Context, key string, p *Place) error
}
