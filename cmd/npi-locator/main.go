// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the npi-locator CLI.
//
// npi-locator looks providers up in the NPPES NPI registry, geocodes their
// practice addresses, and resolves free-text facility queries to candidate
// addresses. Results are written as CSV, JSON or GeoJSON.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/npi-locator/internal/logger"
	"github.com/pdiddy/npi-locator/internal/secrets"
	"github.com/pdiddy/npi-locator/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the effective configuration, resolved in PersistentPreRunE.
	cfg types.LocatorConfig

	// log is the process logger, built from cfg.Log.
	log = zerolog.Nop()

	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets secrets.Store
)

// rootCmd is the base command for the npi-locator CLI.
var rootCmd = &cobra.Command{
	Use:   "npi-locator",
	Short: "Look up NPI providers and locate them on a map",
	Long: `npi-locator queries the NPPES NPI registry for provider records, flattens
them into tables, geocodes their first practice address, and resolves free-text
AIC names and ZIP codes to candidate addresses.

Each workflow is a subcommand: npi, aic, and search. The serve command exposes
the same pipelines over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		log, err = logger.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}

		s, err := secrets.Load(secrets.DefaultDir, log)
		if err != nil {
			return err
		}
		loadedSecrets = s
		loadedSecrets.Apply(&cfg)
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./npi-locator.yaml or ~/.config/npi-locator/npi-locator.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Bool("log-pretty", false, "human-readable log output")
	pf.Bool("trace", false, "dump every HTTP exchange to stderr")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.pretty", pf.Lookup("log-pretty"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("npi-locator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "npi-locator"))
		}
	}

	setDefaults(viper.GetViper(), types.DefaultConfig())

	viper.SetEnvPrefix("NPI_LOCATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every configuration key so that environment
// variables can override keys absent from the config file.
func setDefaults(v *viper.Viper, d types.LocatorConfig) {
	v.SetDefault("registry.timeout", d.Registry.Timeout)
	v.SetDefault("registry.user_agent", d.Registry.UserAgent)
	v.SetDefault("registry.lookup_url", d.Registry.LookupURL)
	v.SetDefault("registry.search_url", d.Registry.SearchURL)
	v.SetDefault("registry.search_limit", d.Registry.SearchLimit)

	v.SetDefault("geocode.timeout", d.Geocode.Timeout)
	v.SetDefault("geocode.user_agent", d.Geocode.UserAgent)
	v.SetDefault("geocode.provider", string(d.Geocode.Provider))
	v.SetDefault("geocode.base_url", d.Geocode.BaseURL)
	v.SetDefault("geocode.api_key", d.Geocode.APIKey)
	v.SetDefault("geocode.country_code", d.Geocode.CountryCode)
	v.SetDefault("geocode.country_name", d.Geocode.CountryName)
	v.SetDefault("geocode.country_aliases", d.Geocode.CountryAliases)
	v.SetDefault("geocode.max_results", d.Geocode.MaxResults)

	v.SetDefault("server.addr", d.Server.Addr)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.pretty", d.Log.Pretty)
}

// loadConfig decodes the viper state over the built-in defaults.
func loadConfig() (types.LocatorConfig, error) {
	c := types.DefaultConfig()
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding configuration: %w", err)
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
