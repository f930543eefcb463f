package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atlas/backend/internal/domain/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const googleCochabamba = `{
  "status": "OK",
  "results": [{
    "formatted_address": "Cochabamba, Bolivia",
    "geometry": {"location": {"lat": -17.3895, "lng": -66.1568}},
    "address_components": [
      {"long_name": "Cochabamba", "short_name": "Cochabamba", "types": ["locality", "political"]},
      {"long_name": "Bolivia", "short_name": "BO", "types": ["country", "political"]}
    ]
  }]
}`

func TestGoogle_Forward(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/json", r.URL.Path)
		gotQuery = map[string]string{
			"address":  r.URL.Query().Get("address"),
			"key":      r.URL.Query().Get("key"),
			"language": r.URL.Query().Get("language"),
		}
		_, _ = w.Write([]byte(googleCochabamba))
	}))
	defer srv.Close()

	g := NewGoogle("secret", srv.URL, "es", time.Second)
	p, err := g.Forward(context.Background(), "cochabamba")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"address": "cochabamba", "key": "secret", "language": "es"}, gotQuery)
	assert.Equal(t, "Cochabamba, Bolivia", p.FormattedAddress)
	assert.InDelta(t, -17.3895, p.Lat, 1e-9)
	assert.InDelta(t, -66.1568, p.Lng, 1e-9)
	assert.Equal(t, "Cochabamba", p.City)
	assert.Equal(t, "Bolivia", p.Country)
	assert.Equal(t, "BO", p.CountryCode)
	assert.Equal(t, SourceGoogle, p.Source)
}

func TestGoogle_Statuses(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		body     string
		noResult bool
	}{
		{"zero results", http.StatusOK, `{"status":"ZERO_RESULTS","results":[]}`, true},
		{"denied", http.StatusOK, `{"status":"REQUEST_DENIED","error_message":"bad key"}`, false},
		{"http error", http.StatusInternalServerError, `oops`, false},
		{"invalid json", http.StatusOK, `{`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGoogle("k", srv.URL, "", time.Second).Reverse(context.Background(), geo.Coordinates{Lat: 1, Lng: 2})
			require.Error(t, err)
			assert.Equal(t, tt.noResult, errors.Is(err, geo.ErrNoResult))
		})
	}
}

func TestNominatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "atlas-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("q") == "nowhere" {
				_, _ = w.Write([]byte(`[]`))
				return
			}
			_, _ = w.Write([]byte(`[{"display_name":"La Paz, Bolivia","lat":"-16.4955","lon":"-68.1336",
				"address":{"city":"La Paz","country":"Bolivia","country_code":"bo"}}]`))
		case "/reverse":
			if r.URL.Query().Get("lat") == "0" {
				_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
				return
			}
			_, _ = w.Write([]byte(`{"display_name":"Sacaba, Cochabamba, Bolivia","lat":"-17.40","lon":"-66.04",
				"address":{"town":"Sacaba","country":"Bolivia","country_code":"bo"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	n := NewNominatim(srv.URL, "atlas-test", "es", time.Second)
	ctx := context.Background()

	p, err := n.Forward(ctx, "la paz")
	require.NoError(t, err)
	assert.Equal(t, "La Paz", p.City)
	assert.Equal(t, "BO", p.CountryCode)
	assert.InDelta(t, -68.1336, p.Lng, 1e-9)
	assert.Equal(t, SourceNominatim, p.Source)

	_, err = n.Forward(ctx, "nowhere")
	assert.ErrorIs(t, err, geo.ErrNoResult)

	p, err = n.Reverse(ctx, geo.Coordinates{Lat: -17.4, Lng: -66.04})
	require.NoError(t, err)
	assert.Equal(t, "Sacaba", p.City)

	_, err = n.Reverse(ctx, geo.Coordinates{})
	assert.ErrorIs(t, err, geo.ErrNoResult)
}

func TestShortLinkExpander(t *testing.T) {
	target := "https://www.google.com/maps/place/Cristo+de+la+Concordia/@-17.3841,-66.1347,17z"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/abc":
			http.Redirect(w, r, target, http.StatusFound)
		case "/relative":
			http.Redirect(w, r, "/maps/place/x", http.StatusMovedPermanently)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	e := NewShortLinkExpander(time.Second)
	ctx := context.Background()

	got, err := e.Expand(ctx, srv.URL+"/abc")
	require.NoError(t, err)
	assert.Equal(t, target, got)

	got, err = e.Expand(ctx, srv.URL+"/relative")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/maps/place/x", got)

	got, err = e.Expand(ctx, srv.URL+"/plain")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/plain", got)
}
