// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file is one secret: the filename is the key name and the trimmed
// contents are the value.
//
// Supported key files: google-maps-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/npi-locator/pkg/types"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// GoogleMapsKey names the Google Maps Geocoding API key file.
const GoogleMapsKey = "google-maps-api-key"

// Store maps key names to values.
type Store map[string]string

// Get returns the value for key, or "" when absent.
func (s Store) Get(key string) string { return s[key] }

// Apply fills configuration fields that are still empty from the store.
// Values already set by file, environment or flag win.
func (s Store) Apply(cfg *types.LocatorConfig) {
	if cfg.Geocode.APIKey == "" {
		cfg.Geocode.APIKey = s.Get(GoogleMapsKey)
	}
}

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error and yields an empty store. Unreadable files are logged and
// skipped.
func Load(dir string, log zerolog.Logger) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := Store{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			store[name] = value
		}
	}
	return store, nil
}

// Redact masks a secret for display, keeping the last four characters of
// long values.
func Redact(v string) string {
	switch {
	case v == "":
		return ""
	case len(v) <= 8:
		return "****"
	default:
		return "****" + v[len(v)-4:]
	}
}
