// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/npi-locator/pkg/types"
)

func TestSetDefaultsRoundTrip(t *testing.T) {
	v := viper.New()
	setDefaults(v, types.DefaultConfig())

	var got types.LocatorConfig
	require.NoError(t, v.Unmarshal(&got))
	assert.Equal(t, types.DefaultConfig().Registry, got.Registry)
	assert.Equal(t, types.DefaultConfig().Server, got.Server)
	assert.Equal(t, types.ProviderNominatim, got.Geocode.Provider)
	assert.Equal(t, "United States", got.Geocode.CountryName)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("NPI_LOCATOR_GEOCODE_PROVIDER", "google")
	t.Setenv("NPI_LOCATOR_GEOCODE_API_KEY", "env-key")
	t.Setenv("NPI_LOCATOR_REGISTRY_TIMEOUT", "15s")

	v := viper.New()
	setDefaults(v, types.DefaultConfig())
	v.SetEnvPrefix("NPI_LOCATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var got types.LocatorConfig
	require.NoError(t, v.Unmarshal(&got))
	assert.Equal(t, types.ProviderGoogle, got.Geocode.Provider)
	assert.Equal(t, "env-key", got.Geocode.APIKey)
	assert.Equal(t, 15*time.Second, got.Registry.Timeout)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "npi-locator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
geocode:
  provider: google
  country_aliases: [USA]
  max_results: 3
server:
  addr: ":9090"
`), 0o644))

	v := viper.New()
	setDefaults(v, types.DefaultConfig())
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	got := types.DefaultConfig()
	require.NoError(t, v.Unmarshal(&got))
	assert.Equal(t, []string{"USA"}, got.Geocode.CountryAliases)
	assert.Equal(t, 3, got.Geocode.MaxResults)
	assert.Equal(t, ":9090", got.Server.Addr)
	assert.Equal(t, "aic_npi_locator", got.Geocode.UserAgent)
}

func TestWriteConfigRedactsKey(t *testing.T) {
	c := types.DefaultConfig()
	c.Geocode.APIKey = "AIza1234567890"

	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, c))
	assert.NotContains(t, buf.String(), "AIza1234567890")
	assert.Contains(t, buf.String(), "****7890")

	var back types.LocatorConfig
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, c.Registry.LookupURL, back.Registry.LookupURL)
	assert.Equal(t, "AIza1234567890", c.Geocode.APIKey, "caller's config must not change")
}

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ids.csv")
	require.NoError(t, os.WriteFile(path, []byte("NPI\n1987654321\n"), 0o644))

	var msg bytes.Buffer
	assert.Equal(t, []string{"1234567893"}, readInputs(&msg, []string{"1234567893"}, ""))
	assert.Equal(t, []string{"1234567893", "1987654321"}, readInputs(&msg, []string{"1234567893"}, path))
	assert.Empty(t, msg.String())

	got := readInputs(&msg, []string{"1234567893"}, filepath.Join(dir, "missing.csv"))
	assert.Empty(t, got)
	assert.Contains(t, msg.String(), "Error reading file:")
}

func TestWriteVersion(t *testing.T) {
	var buf bytes.Buffer
	writeVersion(&buf, "v1.2.3")
	assert.Equal(t, "npi-locator v1.2.3 ("+runtime.Version()+" "+runtime.GOOS+"/"+runtime.GOARCH+")\n", buf.String())
}
