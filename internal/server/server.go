// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the NPI and AIC pipelines over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pdiddy/npi-locator/internal/locator"
	"github.com/pdiddy/npi-locator/internal/mapview"
	"github.com/pdiddy/npi-locator/internal/metrics"
	"github.com/pdiddy/npi-locator/internal/table"
)

// Download names for CSV responses.
const (
	NPIFilename = "npi_details.csv"
	AICFilename = "aic_addresses.csv"
)

// Server routes requests to the pipelines.
type Server struct {
	NPI     *locator.NPI
	AIC     *locator.AIC
	Metrics *metrics.Metrics
	Log     zerolog.Logger

	// Timeout bounds one request, including every upstream call it makes.
	Timeout time.Duration
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	if s.Timeout > 0 {
		r.Use(middleware.Timeout(s.Timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "ok")
	})
	r.Get("/npi", s.handleNPI)
	r.Get("/aic", s.handleAIC)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}
	return r
}

func (s *Server) handleNPI(w http.ResponseWriter, r *http.Request) {
	ids := values(r, "id")
	if len(ids) == 0 {
		http.Error(w, "Please enter at least one NPI ID (id parameter)", http.StatusBadRequest)
		return
	}
	format, ok := parseFormat(w, r)
	if !ok {
		return
	}

	p := *s.NPI
	p.Log = s.Log
	if s.Metrics != nil {
		p.Recorder = s.Metrics
		s.Metrics.RecordRun("npi")
	}
	res := p.Run(r.Context(), ids)
	if s.expired(w, r) {
		return
	}
	s.write(w, format, res.Export, res.Points, NPIFilename)
}

func (s *Server) handleAIC(w http.ResponseWriter, r *http.Request) {
	queries := values(r, "q")
	if len(queries) == 0 {
		http.Error(w, "Please enter at least one AIC name and location/ZIP (q parameter)", http.StatusBadRequest)
		return
	}
	format, ok := parseFormat(w, r)
	if !ok {
		return
	}

	p := *s.AIC
	p.Log = s.Log
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		p.Limit = n
	}
	if s.Metrics != nil {
		p.Recorder = s.Metrics
		s.Metrics.RecordRun("aic")
	}
	res := p.Run(r.Context(), queries)
	if s.expired(w, r) {
		return
	}
	s.write(w, format, res.Results, res.Points, AICFilename)
}

type format string

const (
	formatCSV     format = "csv"
	formatJSON    format = "json"
	formatGeoJSON format = "geojson"
)

func parseFormat(w http.ResponseWriter, r *http.Request) (format, bool) {
	switch f := format(strings.ToLower(r.URL.Query().Get("format"))); f {
	case "", formatCSV:
		return formatCSV, true
	case formatJSON, formatGeoJSON:
		return f, true
	default:
		http.Error(w, fmt.Sprintf("unknown format %q (want csv, json or geojson)", f), http.StatusBadRequest)
		return "", false
	}
}

func (s *Server) write(w http.ResponseWriter, f format, t *table.Table, points []mapview.Point, filename string) {
	var err error
	switch f {
	case formatJSON:
		w.Header().Set("Content-Type", "application/json")
		err = t.WriteJSON(w)
	case formatGeoJSON:
		w.Header().Set("Content-Type", "application/geo+json")
		err = mapview.WriteGeoJSON(w, points)
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		err = t.WriteCSV(w, table.CSVOptions{})
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("writing response")
	}
}

// expired reports whether the request context ended while the pipeline
// ran. The rows of such a run are cancellation errors, so no table is
// written: a deadline answers 504 and a client disconnect gets nothing.
func (s *Server) expired(w http.ResponseWriter, r *http.Request) bool {
	err := r.Context().Err()
	if err == nil {
		return false
	}
	s.Log.Warn().
		Err(err).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("path", r.URL.Path).
		Msg("request ended before the pipeline finished")
	if errors.Is(err, context.DeadlineExceeded) {
		http.Error(w, "request timed out", http.StatusGatewayTimeout)
	}
	return true
}

// values returns the non-blank, trimmed values of a repeated query parameter.
func values(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
