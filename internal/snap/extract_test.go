package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailsketch/trailsketch/internal/geo"
)

// ridgeLine builds a west-east trail along latitude 40 with the given number
// of vertices, 0.01 degrees of longitude apart starting at -111.60.
func ridgeLine(n int) geo.Polyline {
	line := make(geo.Polyline, n)
	for i := range line {
		line[i] = geo.Coordinate{Lon: -111.60 + 0.01*float64(i), Lat: 40.0}
	}
	return line
}

func TestSliceByIndex_Forward(t *testing.T) {
	line := ridgeLine(12)
	start := geo.Coordinate{Lon: -111.5485, Lat: 40.0}
	end := geo.Coordinate{Lon: -111.5095, Lat: 40.0}

	got, err := SliceByIndex(line, start, 5, end, 9)
	require.NoError(t, err)

	want := geo.Polyline{start, line[6], line[7], line[8], end}
	assert.Equal(t, want, got)
}

func TestSliceByIndex_Backward(t *testing.T) {
	line := ridgeLine(12)
	start := geo.Coordinate{Lon: -111.5095, Lat: 40.0}
	end := geo.Coordinate{Lon: -111.5485, Lat: 40.0}

	got, err := SliceByIndex(line, start, 9, end, 5)
	require.NoError(t, err)

	want := geo.Polyline{start, line[8], line[7], line[6], end}
	assert.Equal(t, want, got)
}

func TestSliceByIndex_ExtractionSymmetry(t *testing.T) {
	line := ridgeLine(12)
	a := geo.Coordinate{Lon: -111.577, Lat: 40.0}
	b := geo.Coordinate{Lon: -111.523, Lat: 40.0}

	forward, err := SliceByIndex(line, a, 2, b, 7)
	require.NoError(t, err)
	backward, err := SliceByIndex(line, b, 7, a, 2)
	require.NoError(t, err)

	assert.Equal(t, forward.Reversed(), backward)
}

func TestSliceByIndex_SameSegment(t *testing.T) {
	line := ridgeLine(12)
	a := geo.Coordinate{Lon: -111.568, Lat: 40.0}
	b := geo.Coordinate{Lon: -111.563, Lat: 40.0}

	got, err := SliceByIndex(line, a, 3, b, 3)
	require.NoError(t, err)
	assert.Equal(t, geo.Polyline{a, b}, got)
}

func TestSliceByIndex_EndpointsVerbatim(t *testing.T) {
	line := ridgeLine(12)
	start := geo.Coordinate{Lon: -111.5485, Lat: 40.000013}
	end := geo.Coordinate{Lon: -111.5095, Lat: 39.999987}

	got, err := SliceByIndex(line, start, 5, end, 9)
	require.NoError(t, err)
	assert.Equal(t, start, got.First())
	assert.Equal(t, end, got.Last())
}

func TestSliceByIndex_Degenerate(t *testing.T) {
	_, err := SliceByIndex(geo.Polyline{{Lon: 0, Lat: 0}}, geo.Coordinate{}, 0, geo.Coordinate{}, 0)
	assert.ErrorIs(t, err, geo.ErrDegeneratePolyline)
}

func TestSliceByIndex_IndexOutOfRange(t *testing.T) {
	line := ridgeLine(4)

	_, err := SliceByIndex(line, geo.Coordinate{}, -1, geo.Coordinate{}, 2)
	assert.Error(t, err)
	_, err = SliceByIndex(line, geo.Coordinate{}, 0, geo.Coordinate{}, 4)
	assert.Error(t, err)
}

func TestSliceByPosition(t *testing.T) {
	proj := geo.NewProjector(15)
	line := ridgeLine(12)
	start := geo.Coordinate{Lon: -111.575, Lat: 40.0}
	end := geo.Coordinate{Lon: -111.525, Lat: 40.0}

	got, err := SliceByPosition(proj, line, start, end)
	require.NoError(t, err)

	assert.Equal(t, start, got.First())
	assert.Equal(t, end, got.Last())
	// Interior vertices come from the line between the two positions.
	require.Len(t, got, 6)
	assert.Equal(t, line[3], got[1])
	assert.Equal(t, line[6], got[4])
}
