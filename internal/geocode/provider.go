// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geocode

import (
	"fmt"
	"net/http"

	"github.com/pdiddy/npi-locator/pkg/types"
)

// NewProvider builds the provider named by cfg.Provider. An empty name
// selects Nominatim.
func NewProvider(cfg types.GeocodeConfig, client *http.Client) (Provider, error) {
	switch cfg.Provider {
	case types.ProviderNominatim, "":
		return &Nominatim{Client: client, BaseURL: cfg.BaseURL, UserAgent: cfg.UserAgent}, nil
	case types.ProviderGoogle:
		return &GoogleMaps{Client: client, BaseURL: cfg.BaseURL, APIKey: cfg.APIKey, UserAgent: cfg.UserAgent}, nil
	default:
		return nil, fmt.Errorf("unknown geocoding provider %q (want nominatim or google)", cfg.Provider)
	}
}
