// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geocode

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/npi-locator/pkg/types"
)

// --- mock provider ---

type mockProvider struct {
	cands []Candidate
	err   error
	calls []Options
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Geocode(_ context.Context, _ string, opts Options) ([]Candidate, error) {
	m.calls = append(m.calls, opts)
	return m.cands, m.err
}

func us(display string) Candidate {
	return Candidate{Latitude: 40.0, Longitude: -75.0, DisplayName: display + ", United States"}
}

func TestResolveOneCountryMismatch(t *testing.T) {
	p := &mockProvider{cands: []Candidate{{Latitude: 43.6, Longitude: -79.4, DisplayName: "123 Fake St, Springfield, Ontario, Canada"}}}
	r := NewResolver(p, UnitedStates, zerolog.Nop())

	_, ok := r.ResolveOne(context.Background(), "123 Fake St, Springfield")
	assert.False(t, ok)
	require.Len(t, p.calls, 1)
	assert.Equal(t, Options{CountryCode: "us", Limit: 1}, p.calls[0])
}

func TestResolveOneMatch(t *testing.T) {
	p := &mockProvider{cands: []Candidate{us("100 Main St, Springfield, Illinois")}}
	r := NewResolver(p, UnitedStates, zerolog.Nop())

	loc, ok := r.ResolveOne(context.Background(), "100 Main St, Springfield, IL")
	require.True(t, ok)
	assert.Equal(t, 40.0, loc.Latitude)
	assert.Equal(t, -75.0, loc.Longitude)
	assert.Equal(t, "100 Main St, Springfield, Illinois, United States", loc.Address)
}

func TestResolveManyFiltersCountry(t *testing.T) {
	p := &mockProvider{cands: []Candidate{
		us("General Hospital A"),
		{DisplayName: "General Hospital, Toronto, Canada"},
		us("General Hospital B"),
		{DisplayName: "General Hospital, Mexico City, México"},
		us("General Hospital C"),
	}}
	r := NewResolver(p, UnitedStates, zerolog.Nop())

	locs := r.ResolveMany(context.Background(), "General Hospital, 90210", 5)
	require.Len(t, locs, 3)
	assert.Equal(t, "General Hospital A, United States", locs[0].Address)
	assert.Equal(t, "General Hospital B, United States", locs[1].Address)
	assert.Equal(t, "General Hospital C, United States", locs[2].Address)
	assert.Equal(t, 5, p.calls[0].Limit)
}

func TestResolveManyTruncatesToLimit(t *testing.T) {
	p := &mockProvider{cands: []Candidate{us("a"), us("b"), us("c")}}
	r := NewResolver(p, UnitedStates, zerolog.Nop())

	locs := r.ResolveMany(context.Background(), "q", 2)
	assert.Len(t, locs, 2)
}

func TestResolveManyDefaultLimit(t *testing.T) {
	p := &mockProvider{}
	r := NewResolver(p, UnitedStates, zerolog.Nop())

	locs := r.ResolveMany(context.Background(), "q", 0)
	assert.NotNil(t, locs)
	assert.Empty(t, locs)
	assert.Equal(t, DefaultLimit, p.calls[0].Limit)
}

func TestResolveProviderErrorIsSilent(t *testing.T) {
	var logBuf bytes.Buffer
	p := &mockProvider{err: errors.New("timed out")}
	r := NewResolver(p, UnitedStates, zerolog.New(&logBuf))

	_, ok := r.ResolveOne(context.Background(), "somewhere")
	assert.False(t, ok)
	assert.Empty(t, r.ResolveMany(context.Background(), "somewhere", 5))
	assert.Contains(t, logBuf.String(), "geocoding failed")
	assert.Contains(t, logBuf.String(), "timed out")
}

func TestResolveBlankQuerySkipsProvider(t *testing.T) {
	p := &mockProvider{cands: []Candidate{us("x")}}
	r := NewResolver(p, UnitedStates, zerolog.Nop())

	_, ok := r.ResolveOne(context.Background(), "   ")
	assert.False(t, ok)
	assert.Empty(t, p.calls)
}

func TestCountryContains(t *testing.T) {
	c := Country{Code: "us", Name: "United States", Aliases: []string{"USA"}}
	tests := []struct {
		display string
		want    bool
	}{
		{"1 Main St, Boston, MA 02108, United States", true},
		{"1 Main St, Boston, MA 02108, USA", true},
		{"1 Main St, Toronto, ON, Canada", false},
		{"1 Main St, Boston, united states", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Contains(tt.display))
		})
	}
}

func TestCountryFromConfig(t *testing.T) {
	assert.Equal(t, UnitedStates, CountryFromConfig(types.GeocodeConfig{}))

	got := CountryFromConfig(types.GeocodeConfig{CountryCode: "ca", CountryName: "Canada", CountryAliases: []string{"CA"}})
	assert.Equal(t, Country{Code: "ca", Name: "Canada", Aliases: []string{"CA"}}, got)

	got = CountryFromConfig(types.GeocodeConfig{Provider: types.ProviderGoogle})
	assert.Equal(t, []string{"USA"}, got.Aliases)
	assert.True(t, got.Contains("Mountain View, CA 94043, USA"))

	got = CountryFromConfig(types.GeocodeConfig{Provider: types.ProviderGoogle, CountryAliases: []string{"USA"}})
	assert.Equal(t, []string{"USA"}, got.Aliases, "no duplicate alias")

	got = CountryFromConfig(types.GeocodeConfig{Provider: types.ProviderGoogle, CountryCode: "ca", CountryName: "Canada"})
	assert.Empty(t, got.Aliases)

	assert.Empty(t, CountryFromConfig(types.GeocodeConfig{Provider: types.ProviderNominatim}).Aliases)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(types.GeocodeConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "nominatim", p.Name())

	p, err = NewProvider(types.GeocodeConfig{Provider: types.ProviderGoogle, APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "google_maps", p.Name())

	_, err = NewProvider(types.GeocodeConfig{Provider: "bing"}, nil)
	assert.Error(t, err)
}
