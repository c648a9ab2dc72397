// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mapview projects located rows onto map points and writes them
// as GeoJSON for an external renderer.
package mapview

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Renderer hints carried in the collection's foreign members.
const (
	DefaultZoom = 3
	Style       = "open-street-map"
)

// Detail is one hover field shown alongside a point's label.
type Detail struct {
	Name  string
	Value string
}

// Point is one marker on the map.
type Point struct {
	Lat     float64
	Lon     float64
	Label   string
	Details []Detail
}

// Center returns the arithmetic mean of the points' coordinates. It
// reports false when there are no points.
func Center(points []Point) (lat, lon float64, ok bool) {
	if len(points) == 0 {
		return 0, 0, false
	}
	for _, p := range points {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(points))
	return lat / n, lon / n, true
}

// FeatureCollection converts points into a GeoJSON collection.
func FeatureCollection(points []Point) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		f := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
		f.Properties["label"] = p.Label
		for _, d := range p.Details {
			f.Properties[d.Name] = d.Value
		}
		fc.Append(f)
	}

	fc.ExtraMembers = geojson.Properties{
		"zoom":  DefaultZoom,
		"style": Style,
	}
	if lat, lon, ok := Center(points); ok {
		fc.ExtraMembers["center"] = []float64{lon, lat}
	}
	return fc
}

// WriteGeoJSON writes points as an indented FeatureCollection.
func WriteGeoJSON(w io.Writer, points []Point) error {
	data, err := json.MarshalIndent(FeatureCollection(points), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing geojson: %w", err)
	}
	return nil
}
