package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailsketch/trailsketch/internal/geo"
)

func sampleResult() *Result {
	line := geo.Polyline{
		{Lon: -111.575, Lat: 40.0},
		{Lon: -111.57, Lat: 40.0},
		{Lon: -111.525, Lat: 40.0},
	}
	spur := geo.Polyline{
		{Lon: -111.525, Lat: 40.0},
		{Lon: -111.55, Lat: 40.02},
	}
	return &Result{
		Line: line,
		Vertices: []Vertex{
			{Coordinate: line[0], Snapped: true, Type: PointRoute},
			{Coordinate: line[2], Snapped: true, Type: PointCamp},
			{Coordinate: spur[1], Snapped: false, Type: PointDayhike},
		},
		Segments:          []Segment{{Coordinates: line, TrailSnapped: true}},
		Spurs:             []DayhikeSpur{{FromVertex: 1, Coordinates: spur, DistanceMiles: spur.LengthMiles()}},
		MainDistanceMi:    line.LengthMiles(),
		DayhikeDistanceMi: 2 * spur.LengthMiles(),
		Dates:             map[int]string{1: "2026-08-25"},
	}
}

func TestResult_FeatureCollection(t *testing.T) {
	r := sampleResult()
	fc := r.FeatureCollection()

	assert.Equal(t, "FeatureCollection", fc.Type)
	// Route line, one spur, camp point, dayhike point.
	require.Len(t, fc.Features, 4)

	routeFeature := fc.Features[0]
	assert.Equal(t, "LineString", routeFeature.Geometry.Type)
	assert.Equal(t, r.MainDistanceMi, routeFeature.Properties["main_route_distance_mi"])
	assert.Equal(t, r.DayhikeDistanceMi, routeFeature.Properties["dayhike_distance_mi"])
	assert.Equal(t, []string{"route", "camp", "dayhike"}, routeFeature.Properties["vertex_types"])
	assert.Equal(t, []bool{true, true, false}, routeFeature.Properties["vertex_snapped"])

	pairs, err := routeFeature.Geometry.LineString()
	require.NoError(t, err)
	assert.Len(t, pairs, 3)

	spurFeature := fc.Features[1]
	assert.Equal(t, "dayhike_spur", spurFeature.Properties["kind"])
	assert.Equal(t, 1, spurFeature.Properties["from_vertex"])
	assert.Equal(t, r.Spurs[0].DistanceMiles, spurFeature.Properties["distance_mi"])

	campFeature := fc.Features[2]
	assert.Equal(t, "Point", campFeature.Geometry.Type)
	assert.Equal(t, "camp", campFeature.Properties["kind"])
	assert.Equal(t, 1, campFeature.Properties["vertex_index"])
	assert.Equal(t, "2026-08-25", campFeature.Properties["date"])

	dayhikeFeature := fc.Features[3]
	assert.Equal(t, "dayhike", dayhikeFeature.Properties["kind"])
	_, hasDate := dayhikeFeature.Properties["date"]
	assert.False(t, hasDate)
}

func TestPointType_RoundTrip(t *testing.T) {
	for _, pt := range []PointType{PointRoute, PointCamp, PointDayhike, PointRest} {
		parsed, err := ParsePointType(pt.String())
		require.NoError(t, err)
		assert.Equal(t, pt, parsed)
	}

	parsed, err := ParsePointType("")
	require.NoError(t, err)
	assert.Equal(t, PointRoute, parsed)

	_, err = ParsePointType("summit")
	assert.Error(t, err)
}
