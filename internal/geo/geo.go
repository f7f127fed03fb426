package geo

import (
	"errors"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
)

// GEO PRIMITIVES
// All coordinates are stored as EPSG:4326 lon/lat pairs. Projection into
// EPSG:3857 (and from there into zoom-relative pixel space) happens only
// through a Projector so that every comparison within one event uses the
// same projection.

// ErrDegeneratePolyline is returned when an operation needs at least two
// coordinates and the input has fewer.
var ErrDegeneratePolyline = errors.New("polyline must have at least 2 coordinates")

const (
	earthRadiusM = 6371008.8
	metersPerMi  = 1609.344
)

// Coordinate is a geographic position, longitude first.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Equal reports exact coordinate equality.
func (c Coordinate) Equal(o Coordinate) bool {
	return c.Lon == o.Lon && c.Lat == o.Lat
}

// EqualWithin reports equality under a per-axis epsilon.
func (c Coordinate) EqualWithin(o Coordinate, eps float64) bool {
	return math.Abs(c.Lon-o.Lon) <= eps && math.Abs(c.Lat-o.Lat) <= eps
}

// Polyline is an ordered sequence of coordinates.
type Polyline []Coordinate

// Clone returns a copy of the polyline.
func (p Polyline) Clone() Polyline {
	out := make(Polyline, len(p))
	copy(out, p)
	return out
}

// Reversed returns a reversed copy of the polyline.
func (p Polyline) Reversed() Polyline {
	out := make(Polyline, len(p))
	for i, c := range p {
		out[len(p)-1-i] = c
	}
	return out
}

// First returns the first coordinate. Zero value for an empty polyline.
func (p Polyline) First() Coordinate {
	if len(p) == 0 {
		return Coordinate{}
	}
	return p[0]
}

// Last returns the last coordinate. Zero value for an empty polyline.
func (p Polyline) Last() Coordinate {
	if len(p) == 0 {
		return Coordinate{}
	}
	return p[len(p)-1]
}

// DistanceMeters returns the haversine great-circle distance between two
// coordinates in meters.
func DistanceMeters(a, b Coordinate) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := latB - latA
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLon*sinLon
	return 2 * earthRadiusM * math.Asin(math.Min(1, math.Sqrt(h)))
}

// MilesFromMeters converts meters to statute miles.
func MilesFromMeters(m float64) float64 {
	return m / metersPerMi
}

// LengthMeters returns the geodesic length of the polyline in meters.
func (p Polyline) LengthMeters() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += DistanceMeters(p[i-1], p[i])
	}
	return total
}

// LengthMiles returns the geodesic length of the polyline in miles.
func (p Polyline) LengthMiles() float64 {
	return MilesFromMeters(p.LengthMeters())
}

// LineString converts the polyline to a simplefeatures LineString for
// storage and WKB serialization.
func (p Polyline) LineString() (geom.LineString, error) {
	if len(p) < 2 {
		return geom.LineString{}, ErrDegeneratePolyline
	}
	flat := make([]float64, 0, len(p)*2)
	for _, c := range p {
		flat = append(flat, c.Lon, c.Lat)
	}
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
}

// PolylineFromLineString converts a simplefeatures LineString back into a
// Polyline.
func PolylineFromLineString(ls geom.LineString) Polyline {
	seq := ls.Coordinates()
	out := make(Polyline, 0, seq.Length())
	for i := 0; i < seq.Length(); i++ {
		xy := seq.GetXY(i)
		out = append(out, Coordinate{Lon: xy.X, Lat: xy.Y})
	}
	return out
}
