// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geocode resolves free-text addresses to coordinates within one
// target country.
//
// Resolution is best effort. A provider failure, an empty answer and a match
// outside the target country all look the same to the caller: no location.
package geocode

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/npi-locator/pkg/types"
)

// DefaultLimit bounds multi-match resolution when the caller passes zero.
const DefaultLimit = 5

// Location is a verified geocoding match.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// Candidate is an unverified match as returned by a provider.
type Candidate struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Options narrows a provider request.
type Options struct {
	// CountryCode restricts or biases results (ISO 3166-1 alpha-2, lower case).
	CountryCode string

	// Limit is the maximum number of candidates to request.
	Limit int
}

// Provider queries one geocoding service. Candidates come back in the
// service's relevance order.
type Provider interface {
	Name() string
	Geocode(ctx context.Context, query string, opts Options) ([]Candidate, error)
}

// Country is the verification target. A candidate belongs to the country
// when its display string contains Name or one of Aliases.
type Country struct {
	Code    string
	Name    string
	Aliases []string
}

// UnitedStates is the default target country.
var UnitedStates = Country{Code: "us", Name: "United States"}

// Contains reports whether display mentions the country. The check is a
// plain case-sensitive substring match on the display string.
func (c Country) Contains(display string) bool {
	if c.Name != "" && strings.Contains(display, c.Name) {
		return true
	}
	for _, a := range c.Aliases {
		if a != "" && strings.Contains(display, a) {
			return true
		}
	}
	return false
}

// providerAliases lists country spellings a provider uses in its display
// strings that differ from the configured name, keyed by provider and
// lower-case country code.
var providerAliases = map[types.GeocoderProvider]map[string][]string{
	types.ProviderGoogle: {"us": {"USA"}},
}

// CountryFromConfig builds the verification target from configuration,
// falling back to UnitedStates for empty fields. Aliases the configured
// provider is known to use for the country are added.
func CountryFromConfig(cfg types.GeocodeConfig) Country {
	c := Country{Code: cfg.CountryCode, Name: cfg.CountryName}
	if c.Code == "" {
		c.Code = UnitedStates.Code
	}
	if c.Name == "" {
		c.Name = UnitedStates.Name
	}
	c.Aliases = append(c.Aliases, cfg.CountryAliases...)
	for _, a := range providerAliases[cfg.Provider][strings.ToLower(c.Code)] {
		if !slices.Contains(c.Aliases, a) {
			c.Aliases = append(c.Aliases, a)
		}
	}
	return c
}

// Resolver verifies provider candidates against a target country.
type Resolver struct {
	Provider Provider
	Country  Country
	Log      zerolog.Logger
}

// NewResolver returns a Resolver for p and country that logs to log.
func NewResolver(p Provider, country Country, log zerolog.Logger) *Resolver {
	return &Resolver{Provider: p, Country: country, Log: log}
}

// ResolveOne returns the best match for query, if the provider's first
// answer lies in the target country.
func (r *Resolver) ResolveOne(ctx context.Context, query string) (Location, bool) {
	locs := r.resolve(ctx, query, 1)
	if len(locs) == 0 {
		return Location{}, false
	}
	return locs[0], true
}

// ResolveMany returns up to limit matches for query in provider order,
// dropping those outside the target country. A non-positive limit means
// DefaultLimit. The result is never nil.
func (r *Resolver) ResolveMany(ctx context.Context, query string, limit int) []Location {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return r.resolve(ctx, query, limit)
}

func (r *Resolver) resolve(ctx context.Context, query string, limit int) []Location {
	out := []Location{}
	if strings.TrimSpace(query) == "" {
		return out
	}

	cands, err := r.Provider.Geocode(ctx, query, Options{CountryCode: r.Country.Code, Limit: limit})
	if err != nil {
		r.Log.Warn().
			Err(err).
			Str("provider", r.Provider.Name()).
			Str("query", query).
			Msg("geocoding failed")
		return out
	}

	for _, c := range cands {
		if len(out) == limit {
			break
		}
		if !r.Country.Contains(c.DisplayName) {
			r.Log.Debug().
				Str("query", query).
				Str("display_name", c.DisplayName).
				Msg("dropping match outside target country")
			continue
		}
		out = append(out, Location{Latitude: c.Latitude, Longitude: c.Longitude, Address: c.DisplayName})
	}
	return out
}
