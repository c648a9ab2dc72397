// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapview

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter(t *testing.T) {
	_, _, ok := Center(nil)
	assert.False(t, ok)

	lat, lon, ok := Center([]Point{{Lat: 40, Lon: -80}, {Lat: 42, Lon: -70}})
	require.True(t, ok)
	assert.InDelta(t, 41.0, lat, 1e-9)
	assert.InDelta(t, -75.0, lon, 1e-9)
}

func TestWriteGeoJSON(t *testing.T) {
	points := []Point{
		{Lat: 39.78, Lon: -89.65, Label: "1234567893", Details: []Detail{
			{Name: "Address_1_City", Value: "SPRINGFIELD"},
		}},
		{Lat: 34.09, Lon: -118.40, Label: "General Hospital, 90210"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, points))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	assert.Equal(t, orb.Point{-89.65, 39.78}, fc.Features[0].Geometry)
	assert.Equal(t, "1234567893", fc.Features[0].Properties.MustString("label"))
	assert.Equal(t, "SPRINGFIELD", fc.Features[0].Properties.MustString("Address_1_City"))
	assert.Equal(t, "General Hospital, 90210", fc.Features[1].Properties.MustString("label"))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "open-street-map", raw["style"])
	assert.Equal(t, float64(DefaultZoom), raw["zoom"])
	assert.Len(t, raw["center"], 2)
}

func TestWriteGeoJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, nil))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "FeatureCollection", raw["type"])
	assert.Empty(t, raw["features"])
	assert.NotContains(t, raw, "center")
}
