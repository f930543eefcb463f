package geocoding

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/atlas/backend/internal/domain/geo"
	"github.com/tidwall/gjson"
)

// SourceNominatim tags places resolved by OpenStreetMap Nominatim
const SourceNominatim = "nominatim"

// Nominatim is the free geocoding provider. Its usage policy requires an
// identifying User-Agent.
type Nominatim struct {
	baseURL   string
	userAgent string
	language  string
	client    *http.Client
}

// NewNominatim creates a Nominatim geocoder
func NewNominatim(baseURL, userAgent, language string, timeout time.Duration) *Nominatim {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	if userAgent == "" {
		userAgent = "atlas-backend/1.0"
	}
	return &Nominatim{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		language:  language,
		client:    newHTTPClient(timeout),
	}
}

func (n *Nominatim) Name() string { return SourceNominatim }

// Forward geocodes free text, keeping the best match
func (n *Nominatim) Forward(ctx context.Context, query string) (*geo.Place, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", "1")

	doc, err := n.get(ctx, "/search", q)
	if err != nil {
		return nil, err
	}
	first := doc.Get("0")
	if !first.Exists() {
		return nil, geo.ErrNoResult
	}
	return n.place(first), nil
}

// Reverse names a point
func (n *Nominatim) Reverse(ctx context.Context, c geo.Coordinates) (*geo.Place, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Lng, 'f', -1, 64))

	doc, err := n.get(ctx, "/reverse", q)
	if err != nil {
		return nil, err
	}
	if doc.Get("error").Exists() || !doc.Get("display_name").Exists() {
		return nil, geo.ErrNoResult
	}
	return n.place(doc), nil
}

func (n *Nominatim) get(ctx context.Context, path string, q url.Values) (gjson.Result, error) {
	q.Set("format", "jsonv2")
	q.Set("addressdetails", "1")
	if n.language != "" {
		q.Set("accept-language", n.language)
	}
	header := http.Header{}
	header.Set("User-Agent", n.userAgent)
	return getJSON(ctx, n.client, SourceNominatim, n.baseURL+path+"?"+q.Encode(), header)
}

func (n *Nominatim) place(r gjson.Result) *geo.Place {
	addr := r.Get("address")
	city := ""
	for _, key := range []string{"city", "town", "village", "municipality", "county", "state"} {
		if v := addr.Get(key).String(); v != "" {
			city = v
			break
		}
	}
	return &geo.Place{
		FormattedAddress: r.Get("display_name").String(),
		Lat:              r.Get("lat").Float(),
		Lng:              r.Get("lon").Float(),
		City:             city,
		Country:          addr.Get("country").String(),
		CountryCode:      strings.ToUpper(addr.Get("country_code").String()),
		Source:           SourceNominatim,
	}
}

var _ geo.Geocoder = (*Nominatim)(nil)
