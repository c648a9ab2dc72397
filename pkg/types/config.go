// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the configuration shared by the npi-locator pipelines.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by every outbound client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Nominatim
	// rejects requests without one.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// RegistryConfig holds settings for the provider-registry client.
type RegistryConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// LookupURL is the single-identifier endpoint. The literal "{}" is
	// replaced by the identifier.
	LookupURL string `json:"lookup_url" yaml:"lookup_url" mapstructure:"lookup_url"`

	// SearchURL is the base of the multi-field search endpoint. Criteria are
	// appended as "&key=value".
	SearchURL string `json:"search_url" yaml:"search_url" mapstructure:"search_url"`

	// SearchLimit caps the records requested by a multi-field search (registry max 200).
	SearchLimit int `json:"search_limit" yaml:"search_limit" mapstructure:"search_limit"`
}

// GeocoderProvider names a geocoding backend.
type GeocoderProvider string

const (
	ProviderNominatim GeocoderProvider = "nominatim"
	ProviderGoogle    GeocoderProvider = "google"
)

// GeocodeConfig holds settings for the geocoding resolver.
type GeocodeConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the geocoding backend: nominatim or google.
	Provider GeocoderProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// BaseURL overrides the provider endpoint root.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// APIKey authenticates against providers that need one (google).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// CountryCode biases every request to one country (ISO 3166-1 alpha-2).
	CountryCode string `json:"country_code" yaml:"country_code" mapstructure:"country_code"`

	// CountryName must appear in a result's display address for it to be kept.
	CountryName string `json:"country_name" yaml:"country_name" mapstructure:"country_name"`

	// CountryAliases are extra accepted spellings of CountryName (e.g. "USA").
	CountryAliases []string `json:"country_aliases,omitempty" yaml:"country_aliases,omitempty" mapstructure:"country_aliases"`

	// MaxResults bounds multi-match resolution (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Pretty switches to the human-readable console writer.
	Pretty bool `json:"pretty" yaml:"pretty" mapstructure:"pretty"`
}

// LocatorConfig groups every section of the configuration file.
type LocatorConfig struct {
	Registry RegistryConfig `json:"registry" yaml:"registry" mapstructure:"registry"`
	Geocode  GeocodeConfig  `json:"geocode" yaml:"geocode" mapstructure:"geocode"`
	Server   ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultUserAgent identifies npi-locator to the remote services.
const DefaultUserAgent = "npi-locator/0.1"

// DefaultConfig returns the configuration used when no file or env overrides it.
func DefaultConfig() LocatorConfig {
	return LocatorConfig{
		Registry: RegistryConfig{
			HTTPConfig:  HTTPConfig{UserAgent: DefaultUserAgent},
			LookupURL:   "https://npiregistry.cms.hhs.gov/api/?version=2.1&number={}",
			SearchURL:   "https://npiregistry.cms.hhs.gov/api/?version=2.1",
			SearchLimit: 10,
		},
		Geocode: GeocodeConfig{
			HTTPConfig:  HTTPConfig{UserAgent: "aic_npi_locator"},
			Provider:    ProviderNominatim,
			CountryCode: "us",
			CountryName: "United States",
			MaxResults:  5,
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
	}
}
