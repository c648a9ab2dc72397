// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// NominatimBase is the public OpenStreetMap Nominatim endpoint.
const NominatimBase = "https://nominatim.openstreetmap.org"

// Nominatim queries an OpenStreetMap Nominatim instance.
type Nominatim struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
}

// Name returns the provider identifier.
func (n *Nominatim) Name() string { return "nominatim" }

// Geocode runs a free-form search. Candidates whose coordinates do not parse
// are skipped.
func (n *Nominatim) Geocode(ctx context.Context, query string, opts Options) ([]Candidate, error) {
	base := n.BaseURL
	if base == "" {
		base = NominatimBase
	}

	params := url.Values{
		"q":      {query},
		"format": {"json"},
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.CountryCode != "" {
		params.Set("countrycodes", strings.ToLower(opts.CountryCode))
	}
	reqURL := strings.TrimRight(base, "/") + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if n.UserAgent != "" {
		req.Header.Set("User-Agent", n.UserAgent)
	}

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned HTTP %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decoding nominatim response: %w", err)
	}

	var out []Candidate
	for _, p := range places {
		lat, errLat := strconv.ParseFloat(p.Lat, 64)
		lon, errLon := strconv.ParseFloat(p.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		out = append(out, Candidate{Latitude: lat, Longitude: lon, DisplayName: p.DisplayName})
	}
	return out, nil
}

// nominatimPlace is one element of the jsonv1 search response.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
