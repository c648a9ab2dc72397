// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package locator

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pdiddy/npi-locator/internal/flatten"
	"github.com/pdiddy/npi-locator/internal/mapview"
	"github.com/pdiddy/npi-locator/internal/registry"
	"github.com/pdiddy/npi-locator/internal/table"
)

// Address columns of the first registry address, used to build the
// geocoding query and as map hover data.
var (
	colAddress1   = flatten.Column(flatten.GroupAddress, 1, "Address1")
	colCity       = flatten.Column(flatten.GroupAddress, 1, "City")
	colState      = flatten.Column(flatten.GroupAddress, 1, "State")
	colPostalCode = flatten.Column(flatten.GroupAddress, 1, "Postal Code")
)

// NPI looks up registry identifiers and geocodes the first address of
// every record found.
type NPI struct {
	Registry Lookuper
	Geocoder Resolver
	Log      zerolog.Logger
	Observer Observer
	Recorder Recorder
}

// NPIResult holds the tables produced by one NPI run.
type NPIResult struct {
	RunID string

	// Registry has one row per input identifier, in input order.
	Registry *table.Table

	// Located has one row per found record, carrying the geocoding columns.
	Located *table.Table

	// Export is Registry with found rows replaced by their Located version.
	Export *table.Table

	// Points are the located rows that resolved to coordinates.
	Points []mapview.Point

	Found    int
	NotFound int
	Failed   int
	Geocoded int
}

// Total returns the number of identifiers processed.
func (r *NPIResult) Total() int {
	return r.Found + r.NotFound + r.Failed
}

// HasFailures reports whether any lookup ended in an error.
func (r *NPIResult) HasFailures() bool {
	return r.Failed > 0
}

// Run processes ids in order.
func (p *NPI) Run(ctx context.Context, ids []string) *NPIResult {
	res := &NPIResult{
		RunID:    newRunID(),
		Registry: table.New(),
		Located:  table.New(),
		Export:   table.New(),
	}
	log := p.Log.With().Str("run", res.RunID).Str("pipeline", "npi").Logger()
	obs := observerOrNop(p.Observer)
	rec := recorderOrNop(p.Recorder)

	obs.Start(PhaseLookup, len(ids))
	for _, id := range ids {
		r := p.Registry.Lookup(ctx, id)
		rec.RecordLookup(r.Outcome)
		switch r.Outcome {
		case registry.OutcomeFound:
			res.Found++
			log.Debug().Str("npi", id).Msg("record found")
		case registry.OutcomeNotFound:
			res.NotFound++
			log.Debug().Str("npi", id).Msg("record not found")
		default:
			res.Failed++
			log.Warn().Err(r.Err).Str("npi", id).Msg("registry lookup failed")
		}
		res.Registry.Append(flatten.Result(r))
		obs.Step(id)
	}

	found := res.Registry.FilterEq(flatten.ColStatus, registry.StatusFound)
	obs.Start(PhaseGeocode, found.Len())
	for _, row := range found.Rows() {
		located, point, ok := p.locate(ctx, row)
		res.Located.Append(located)
		if ok {
			res.Geocoded++
			res.Points = append(res.Points, point)
		} else {
			log.Debug().Str("npi", row.Value(flatten.ColNPI)).Msg("address not geocoded")
		}
		obs.Step(row.Value(flatten.ColNPI))
	}

	next := 0
	for _, row := range res.Registry.Rows() {
		if row.Value(flatten.ColStatus) == registry.StatusFound && next < res.Located.Len() {
			res.Export.Append(res.Located.Row(next))
			next++
			continue
		}
		res.Export.Append(row)
	}

	log.Info().
		Int("total", res.Total()).
		Int("found", res.Found).
		Int("not_found", res.NotFound).
		Int("failed", res.Failed).
		Int("geocoded", res.Geocoded).
		Msg("npi run complete")
	return res
}

// locate extends a found row with its geocoding columns. Rows without a
// first street address are not sent to the geocoder.
func (p *NPI) locate(ctx context.Context, row table.Row) (table.Row, mapview.Point, bool) {
	out := row.Clone()
	full := FullAddress(row)
	out.Set(ColFullAddress, full)
	out.Set(ColLatitude, "")
	out.Set(ColLongitude, "")
	out.Set(ColGeocodedAddress, "")

	if full == "" {
		return out, mapview.Point{}, false
	}
	loc, ok := p.Geocoder.ResolveOne(ctx, full)
	recorderOrNop(p.Recorder).RecordGeocode("npi", ok)
	if !ok {
		return out, mapview.Point{}, false
	}

	out.Set(ColLatitude, formatCoord(loc.Latitude))
	out.Set(ColLongitude, formatCoord(loc.Longitude))
	out.Set(ColGeocodedAddress, loc.Address)

	point := mapview.Point{
		Lat:   loc.Latitude,
		Lon:   loc.Longitude,
		Label: row.Value(flatten.ColNPI),
	}
	for _, col := range []string{colAddress1, colCity, colState, colPostalCode} {
		point.Details = append(point.Details, mapview.Detail{Name: col, Value: row.Value(col)})
	}
	return out, point, true
}

// FullAddress joins the first registry address as
// "Address1, City, State Postal Code". It returns "" when the row has no
// first street address.
func FullAddress(row table.Row) string {
	street := row.Value(colAddress1)
	if street == "" {
		return ""
	}
	return street + ", " + row.Value(colCity) + ", " + row.Value(colState) + " " + row.Value(colPostalCode)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
