// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/npi-locator/internal/locator"
	"github.com/pdiddy/npi-locator/internal/metrics"
	"github.com/pdiddy/npi-locator/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the NPI and AIC pipelines over HTTP",
	Long: `serve exposes the pipelines as HTTP endpoints:

  GET /healthz
  GET /npi?id=...&id=...&format=csv|json|geojson
  GET /aic?q=...&limit=5&format=csv|json|geojson
  GET /metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().Duration("request-timeout", 5*time.Minute, "upper bound on one request")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("request-timeout")

	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}
	s := &server.Server{
		NPI:     &locator.NPI{Registry: newRegistryClient(cmd), Geocoder: resolver},
		AIC:     &locator.AIC{Geocoder: resolver, Limit: cfg.Geocode.MaxResults},
		Metrics: metrics.New(),
		Log:     log,
		Timeout: timeout,
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
