// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes prometheus counters for registry lookups and
// geocoding attempts.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/npi-locator/internal/registry"
)

// Metrics holds the npi-locator collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	LookupsTotal  *prometheus.CounterVec
	GeocodesTotal *prometheus.CounterVec
	RunsTotal     *prometheus.CounterVec
}

// New creates the collectors and registers them, plus the Go and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "npi_locator_registry_lookups_total",
				Help: "Registry lookups by outcome.",
			},
			[]string{"outcome"},
		),
		GeocodesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "npi_locator_geocodes_total",
				Help: "Geocoding attempts by pipeline and result.",
			},
			[]string{"pipeline", "result"},
		),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "npi_locator_runs_total",
				Help: "Pipeline runs started.",
			},
			[]string{"pipeline"},
		),
	}
	m.Registry.MustRegister(
		m.LookupsTotal,
		m.GeocodesTotal,
		m.RunsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordLookup counts one registry lookup.
func (m *Metrics) RecordLookup(outcome registry.Outcome) {
	m.LookupsTotal.WithLabelValues(outcome.String()).Inc()
}

// RecordGeocode counts one geocoding attempt.
func (m *Metrics) RecordGeocode(pipeline string, found bool) {
	result := "miss"
	if found {
		result = "hit"
	}
	m.GeocodesTotal.WithLabelValues(pipeline, result).Inc()
}

// RecordRun counts one pipeline run.
func (m *Metrics) RecordRun(pipeline string) {
	m.RunsTotal.WithLabelValues(pipeline).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
