// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// GoogleMapsBase is the Google Maps Platform API root.
const GoogleMapsBase = "https://maps.googleapis.com"

// ErrMissingAPIKey is returned by GoogleMaps when no key is configured.
var ErrMissingAPIKey = errors.New("google maps API key not configured")

// GoogleMaps queries the Google Maps Geocoding API. Results are restricted
// to the requested country with a components filter.
type GoogleMaps struct {
	Client    *http.Client
	BaseURL   string
	APIKey    string
	UserAgent string
}

// Name returns the provider identifier.
func (g *GoogleMaps) Name() string { return "google_maps" }

// Geocode runs an address search. ZERO_RESULTS is an empty answer; any other
// non-OK status is an error.
func (g *GoogleMaps) Geocode(ctx context.Context, query string, opts Options) ([]Candidate, error) {
	if g.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	base := g.BaseURL
	if base == "" {
		base = GoogleMapsBase
	}

	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.APIKey)
	if opts.CountryCode != "" {
		params.Set("components", "country:"+strings.ToUpper(opts.CountryCode))
		params.Set("region", strings.ToLower(opts.CountryCode))
	}
	reqURL := strings.TrimRight(base, "/") + "/maps/api/geocode/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if g.UserAgent != "" {
		req.Header.Set("User-Agent", g.UserAgent)
	}

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google maps returned status %d", resp.StatusCode)
	}

	var gm googleMapsResponse
	if err := json.NewDecoder(resp.Body).Decode(&gm); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	switch gm.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		if gm.ErrorMessage != "" {
			return nil, fmt.Errorf("google maps status %s: %s", gm.Status, gm.ErrorMessage)
		}
		return nil, fmt.Errorf("google maps status: %s", gm.Status)
	}

	out := make([]Candidate, 0, len(gm.Results))
	for _, r := range gm.Results {
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
		out = append(out, Candidate{
			Latitude:    r.Geometry.Location.Lat,
			Longitude:   r.Geometry.Location.Lng,
			DisplayName: r.FormattedAddress,
		})
	}
	return out, nil
}

type googleMapsResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}
