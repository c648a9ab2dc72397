// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/npi-locator/internal/geocode"
	"github.com/pdiddy/npi-locator/internal/locator"
	"github.com/pdiddy/npi-locator/internal/metrics"
	"github.com/pdiddy/npi-locator/internal/registry"
)

type stubRegistry struct{}

func (stubRegistry) Lookup(_ context.Context, id string) registry.Result {
	if id != "1234567893" {
		return registry.Result{Query: id, Outcome: registry.OutcomeNotFound, Status: registry.StatusNotFound}
	}
	return registry.Result{
		Query:   id,
		Outcome: registry.OutcomeFound,
		Status:  registry.StatusFound,
		Record: registry.Record{
			Number:    "1234567893",
			Addresses: []registry.Address{{Address1: "100 MAIN ST", City: "SPRINGFIELD", State: "IL", PostalCode: "62701"}},
		},
	}
}

type stubResolver struct{}

func (stubResolver) ResolveOne(_ context.Context, q string) (geocode.Location, bool) {
	return geocode.Location{Latitude: 39.78, Longitude: -89.65, Address: q + ", United States"}, true
}

func (stubResolver) ResolveMany(_ context.Context, q string, limit int) []geocode.Location {
	if q == "nowhere" {
		return []geocode.Location{}
	}
	out := []geocode.Location{}
	for i := 0; i < limit && i < 3; i++ {
		out = append(out, geocode.Location{Latitude: 34, Longitude: -118, Address: q + ", United States"})
	}
	return out
}

func newTestServer() (*Server, *metrics.Metrics) {
	m := metrics.New()
	return &Server{
		NPI:     &locator.NPI{Registry: stubRegistry{}, Geocoder: stubResolver{}},
		AIC:     &locator.AIC{Geocoder: stubResolver{}},
		Metrics: m,
		Log:     zerolog.Nop(),
	}, m
}

func do(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestExpiredRequestWritesNoTable(t *testing.T) {
	s, _ := newTestServer()
	for _, target := range []string{"/npi?id=1234567893", "/aic?q=clinic"} {
		t.Run(target, func(t *testing.T) {
			ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
			defer cancel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(ctx)
			s.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
			assert.Empty(t, rec.Header().Get("Content-Disposition"))
			assert.NotContains(t, rec.Body.String(), "Status")
		})
	}
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer()
	rec := do(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestNPICSV(t *testing.T) {
	s, _ := newTestServer()
	rec := do(t, s, "/npi?id=1234567893&id=0000000000")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="npi_details.csv"`, rec.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	header := records[0]
	assert.Contains(t, header, "NPI ID")
	assert.Contains(t, header, "Latitude")

	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("missing column %q", name)
		return -1
	}
	assert.Equal(t, "Found", records[1][col("Status")])
	assert.Equal(t, "39.78", records[1][col("Latitude")])
	assert.Equal(t, "Not Found", records[2][col("Status")])
	assert.Equal(t, "0000000000", records[2][col("Query")])
}

func TestNPIGeoJSON(t *testing.T) {
	s, _ := newTestServer()
	rec := do(t, s, "/npi?id=1234567893&format=geojson")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, 1)
}

func TestNPIMissingIDs(t *testing.T) {
	s, _ := newTestServer()
	rec := do(t, s, "/npi?id=%20")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter")
}

func TestUnknownFormat(t *testing.T) {
	s, _ := newTestServer()
	rec := do(t, s, "/npi?id=1&format=xml")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAICJSON(t *testing.T) {
	s, _ := newTestServer()
	rec := do(t, s, "/aic?q=General+Hospital&q=nowhere&limit=2&format=json")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "General Hospital", rows[0][locator.ColAICQuery])
	assert.Equal(t, "Found", rows[1][locator.ColStatus])
	assert.Equal(t, "Not Found", rows[2][locator.ColStatus])
}

func TestAICBadLimit(t *testing.T) {
	s, _ := newTestServer()
	for _, target := range []string{"/aic?q=x&limit=zero", "/aic?q=x&limit=0", "/aic"} {
		rec := do(t, s, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer()
	do(t, s, "/npi?id=1234567893")

	rec := do(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `npi_locator_registry_lookups_total{outcome="found"} 1`), body)
	assert.Contains(t, body, `npi_locator_runs_total{pipeline="npi"} 1`)
}
