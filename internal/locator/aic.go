// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package locator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pdiddy/npi-locator/internal/geocode"
	"github.com/pdiddy/npi-locator/internal/mapview"
	"github.com/pdiddy/npi-locator/internal/registry"
	"github.com/pdiddy/npi-locator/internal/table"
)

// AIC resolves free-text facility names and ZIP codes to candidate
// addresses.
type AIC struct {
	Geocoder Resolver

	// Limit caps the matches kept per query. Zero means geocode.DefaultLimit.
	Limit int

	Log      zerolog.Logger
	Observer Observer
	Recorder Recorder
}

// AICResult holds the tables produced by one AIC run.
type AICResult struct {
	RunID string

	// Results has one row per match, or one "Not Found" row per query
	// without matches, in input order.
	Results *table.Table

	// Found is Results restricted to matched rows.
	Found *table.Table

	Points []mapview.Point

	Matched   int
	Unmatched int
}

// Total returns the number of queries processed.
func (r *AICResult) Total() int {
	return r.Matched + r.Unmatched
}

// Run processes queries in order.
func (p *AIC) Run(ctx context.Context, queries []string) *AICResult {
	res := &AICResult{RunID: newRunID(), Results: table.New()}
	log := p.Log.With().Str("run", res.RunID).Str("pipeline", "aic").Logger()
	obs := observerOrNop(p.Observer)
	rec := recorderOrNop(p.Recorder)

	limit := p.Limit
	if limit <= 0 {
		limit = geocode.DefaultLimit
	}

	obs.Start(PhaseSearch, len(queries))
	for _, q := range queries {
		locs := p.Geocoder.ResolveMany(ctx, q, limit)
		rec.RecordGeocode("aic", len(locs) > 0)
		if len(locs) == 0 {
			res.Unmatched++
			log.Debug().Str("query", q).Msg("no matches")
			res.Results.Append(notFoundRow(q))
			obs.Step(q)
			continue
		}

		res.Matched++
		log.Debug().Str("query", q).Int("matches", len(locs)).Msg("matches found")
		for _, loc := range locs {
			res.Results.Append(table.RowOf(
				ColAICQuery, q,
				ColAddress, loc.Address,
				ColLatitude, formatCoord(loc.Latitude),
				ColLongitude, formatCoord(loc.Longitude),
				ColStatus, registry.StatusFound,
			))
			res.Points = append(res.Points, mapview.Point{
				Lat:     loc.Latitude,
				Lon:     loc.Longitude,
				Label:   q,
				Details: []mapview.Detail{{Name: ColAddress, Value: loc.Address}},
			})
		}
		obs.Step(q)
	}
	res.Found = res.Results.FilterEq(ColStatus, registry.StatusFound)

	log.Info().
		Int("total", res.Total()).
		Int("matched", res.Matched).
		Int("unmatched", res.Unmatched).
		Int("locations", res.Found.Len()).
		Msg("aic run complete")
	return res
}

func notFoundRow(q string) table.Row {
	return table.RowOf(
		ColAICQuery, q,
		ColAddress, "",
		ColLatitude, "",
		ColLongitude, "",
		ColStatus, registry.StatusNotFound,
	)
}
