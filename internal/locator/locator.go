// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package locator composes the registry client, flattener, geocoding
// resolver and result table into the two batch pipelines: NPI lookup with
// address geocoding, and AIC free-text location search.
//
// Both pipelines process their input sequentially in input order. A single
// item's failure never aborts the batch; it shows up as a status in the
// result table instead.
package locator

import (
	"context"

	"github.com/google/uuid"

	"github.com/pdiddy/npi-locator/internal/flatten"
	"github.com/pdiddy/npi-locator/internal/geocode"
	"github.com/pdiddy/npi-locator/internal/registry"
)

// Column names added by the pipelines.
const (
	ColFullAddress     = "Full Address"
	ColLatitude        = "Latitude"
	ColLongitude       = "Longitude"
	ColGeocodedAddress = "Geocoded Address"
	ColAICQuery        = "AIC Name and Location/ZIP"
	ColAddress         = "Address"
	ColStatus          = flatten.ColStatus
)

// Pipeline phases reported to an Observer.
const (
	PhaseLookup  = "lookup"
	PhaseGeocode = "geocode"
	PhaseSearch  = "search"
)

// Lookuper resolves one registry identifier.
type Lookuper interface {
	Lookup(ctx context.Context, id string) registry.Result
}

// Resolver turns free text into verified locations.
type Resolver interface {
	ResolveOne(ctx context.Context, query string) (geocode.Location, bool)
	ResolveMany(ctx context.Context, query string, limit int) []geocode.Location
}

// Observer follows pipeline progress. Start is called once per phase with
// the number of steps to come; Step once per processed item.
type Observer interface {
	Start(phase string, total int)
	Step(query string)
}

// Recorder counts per-item outcomes, typically into metrics.
type Recorder interface {
	RecordLookup(outcome registry.Outcome)
	RecordGeocode(pipeline string, found bool)
}

type nopObserver struct{}

func (nopObserver) Start(string, int) {}
func (nopObserver) Step(string)       {}

type nopRecorder struct{}

func (nopRecorder) RecordLookup(registry.Outcome) {}
func (nopRecorder) RecordGeocode(string, bool)    {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

func newRunID() string { return uuid.NewString() }
