package memory

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailsketch/trailsketch/internal/config"
	"github.com/trailsketch/trailsketch/internal/geo"
	"github.com/trailsketch/trailsketch/internal/geojson"
	"github.com/trailsketch/trailsketch/internal/route"
)

func testResult() *route.Result {
	line := geo.Polyline{
		{Lon: -111.575, Lat: 40.0},
		{Lon: -111.55, Lat: 40.0},
		{Lon: -111.525, Lat: 40.0},
	}
	return &route.Result{
		Line: line,
		Vertices: []route.Vertex{
			{Coordinate: line.First(), Snapped: true, Type: route.PointRoute},
			{Coordinate: line.Last(), Snapped: true, Type: route.PointRoute},
		},
		Segments:       []route.Segment{{Coordinates: line, TrailSnapped: true}},
		MainDistanceMi: line.LengthMiles(),
	}
}

func newTestBackend(t *testing.T, compress bool) *Backend {
	b := New(config.MemoryConfig{OutputDir: t.TempDir(), CompressOutput: compress})
	b.now = func() time.Time {
		return time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)
	}
	require.NoError(t, b.Init())
	return b
}

func TestBackend_SaveRouteExportsGeoJSON(t *testing.T) {
	b := newTestBackend(t, false)

	require.NoError(t, b.SaveRoute(testResult(), "morning loop"))

	path := b.GetExportedFilePath()
	require.NotEmpty(t, path)
	assert.Equal(t, "morning_loop_20260825_093000.geojson", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fc geojson.FeatureCollection
	require.NoError(t, json.Unmarshal(data, &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.NotEmpty(t, fc.Features)
	assert.Equal(t, "LineString", fc.Features[0].Geometry.Type)
}

func TestBackend_SaveRouteCompressed(t *testing.T) {
	b := newTestBackend(t, true)

	require.NoError(t, b.SaveRoute(testResult(), "morning loop"))

	path := b.GetExportedFilePath()
	assert.Equal(t, ".gz", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	var fc geojson.FeatureCollection
	require.NoError(t, json.NewDecoder(gz).Decode(&fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
}

func TestBackend_RecordsRoutes(t *testing.T) {
	b := newTestBackend(t, false)

	require.NoError(t, b.SaveRoute(testResult(), "first"))
	require.NoError(t, b.SaveRoute(testResult(), "second"))

	records := b.Routes()
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Name)
	assert.Equal(t, "second", records[1].Name)
	assert.NotEmpty(t, records[1].FilePath)
	assert.Equal(t, records[1].FilePath, b.GetExportedFilePath())

	require.NoError(t, b.Close())
}
