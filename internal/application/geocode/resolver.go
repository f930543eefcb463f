// Package geocode turns free-form location input into a normalized place.
package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/atlas/backend/internal/domain/geo"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/atlas/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// MaxInputLength bounds the accepted input
const MaxInputLength = 2048

var (
	// ErrNoLocation is returned when the providers found nothing
	ErrNoLocation = shared.NewDomainError(shared.ErrNotFound.Code, "No location found for the given input")
	// ErrProvidersFailed is returned when every provider failed outright
	ErrProvidersFailed = shared.NewDomainError(shared.ErrUpstream.Code, "Geocoding providers are unavailable, try again later")
)

// LinkExpander resolves a map short link to its target URL
type LinkExpander interface {
	Expand(ctx context.Context, link string) (string, error)
}

// ResolveInput is the body of a geocode request
type ResolveInput struct {
	Input string `json:"input" binding:"required"`
}

// Resolver runs the geocoding cascade over an ordered provider list
type Resolver struct {
	providers []geo.Geocoder
	expander  LinkExpander
	cache     geo.PlaceCache
}

// Option configures a Resolver
type Option func(*Resolver)

// WithCache stores successful resolutions in cache
func WithCache(cache geo.PlaceCache) Option {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// NewResolver creates a resolver. Providers are tried in order; the paid
// provider goes first when configured.
func NewResolver(expander LinkExpander, providers []geo.Geocoder, opts ...Option) *Resolver {
	r := &Resolver{providers: providers, expander: expander}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the cascade: short link expansion, map URL parsing,
// literal coordinates, then free-text search.
func (r *Resolver) Resolve(ctx context.Context, input string) (*geo.Place, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, shared.NewValidationError("input is required")
	}
	if len(input) > MaxInputLength {
		return nil, shared.NewValidationError("input is too long")
	}

	ctx, span := telemetry.StartSpan(ctx, "geocode", "resolve")
	defer span.End()

	if r.cache != nil {
		cached, ok, err := r.cache.Get(ctx, input)
		if err != nil {
			logger.L(ctx).Warn("Geocode cache read failed", zap.Error(err))
		}
		if ok {
			telemetry.SetAttributes(span, telemetry.AttrGeocodeHit, true, telemetry.AttrProvider, cached.Source)
			return cached, nil
		}
	}
	telemetry.SetAttributes(span, telemetry.AttrGeocodeHit, false)

	place, err := r.cascade(ctx, input)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrProvider, place.Source)

	if r.cache != nil && place.Source != geo.SourceFallback {
		if err := r.cache.Set(ctx, input, place); err != nil {
			logger.L(ctx).Warn("Geocode cache write failed", zap.Error(err))
		}
	}
	return place, nil
}

func (r *Resolver) cascade(ctx context.Context, input string) (*geo.Place, error) {
	target := input
	if link, ok := geo.ShortLinkURL(input); ok && r.expander != nil {
		expanded, err := r.expander.Expand(ctx, link)
		if err != nil {
			logger.L(ctx).Info("Short link expansion failed", zap.String("link", link), zap.Error(err))
		} else {
			target = expanded
		}
	}

	if geo.IsURL(target) {
		info := geo.ParseMapURL(target)
		if info.Coordinates != nil {
			return r.fromCoordinates(ctx, *info.Coordinates, info.PlaceName)
		}
		if info.PlaceName != "" {
			return r.forward(ctx, info.PlaceName)
		}
	}

	if c, ok := geo.ParseCoordinatePair(input); ok {
		return r.fromCoordinates(ctx, c, "")
	}

	return r.forward(ctx, input)
}

// fromCoordinates reverse geocodes c, then forward geocodes name, then
// falls back to the bare point.
func (r *Resolver) fromCoordinates(ctx context.Context, c geo.Coordinates, name string) (*geo.Place, error) {
	if place, err := r.reverse(ctx, c); err == nil {
		return place, nil
	}
	if name != "" {
		if place, err := r.forward(ctx, name); err == nil {
			return place, nil
		}
	}
	return geo.BarePlace(c), nil
}

func (r *Resolver) reverse(ctx context.Context, c geo.Coordinates) (*geo.Place, error) {
	return r.try(ctx, "reverse", func(ctx context.Context, g geo.Geocoder) (*geo.Place, error) {
		return g.Reverse(ctx, c)
	})
}

func (r *Resolver) forward(ctx context.Context, query string) (*geo.Place, error) {
	return r.try(ctx, "forward", func(ctx context.Context, g geo.Geocoder) (*geo.Place, error) {
		return g.Forward(ctx, query)
	})
}

// try asks each provider in turn. Provider errors only move on to the next
// provider. Once all are exhausted the result is ErrProvidersFailed if every
// provider errored, otherwise ErrNoLocation.
func (r *Resolver) try(ctx context.Context, op string, call func(context.Context, geo.Geocoder) (*geo.Place, error)) (*geo.Place, error) {
	failed := 0
	for _, g := range r.providers {
		ctx, span := telemetry.StartSpan(ctx, "geocode", op, telemetry.AttrProvider, g.Name())
		place, err := call(ctx, g)
		if err == nil && place != nil {
			span.End()
			return place, nil
		}
		if err != nil && !errors.Is(err, geo.ErrNoResult) {
			failed++
			telemetry.RecordError(span, err)
			logger.L(ctx).Warn("Geocoding provider failed",
				zap.String("provider", g.Name()),
				zap.String("op", op),
				zap.Error(err))
		}
		span.End()
	}
	if failed > 0 && failed == len(r.providers) {
		return nil, ErrProvidersFailed
	}
	return nil, ErrNoLocation
}
