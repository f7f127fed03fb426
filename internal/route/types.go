// Package route maintains the drawing session: the ordered vertex/segment
// chain, dayhike spurs, preview output and the finished route features.
package route

import (
	"fmt"

	"github.com/trailsketch/trailsketch/internal/geo"
	"github.com/trailsketch/trailsketch/internal/snap"
)

// PointType describes what a placed vertex represents.
type PointType int

const (
	PointRoute PointType = iota
	PointCamp
	PointDayhike
	PointRest
)

// String returns the point type name.
func (t PointType) String() string {
	switch t {
	case PointCamp:
		return "camp"
	case PointDayhike:
		return "dayhike"
	case PointRest:
		return "rest"
	default:
		return "route"
	}
}

// ParsePointType parses a point type name.
func ParsePointType(s string) (PointType, error) {
	switch s {
	case "route", "":
		return PointRoute, nil
	case "camp":
		return PointCamp, nil
	case "dayhike":
		return PointDayhike, nil
	case "rest":
		return PointRest, nil
	}
	return PointRoute, fmt.Errorf("unknown point type %q", s)
}

// Vertex is one user-placed point.
type Vertex struct {
	Coordinate geo.Coordinate
	Snapped    bool
	Type       PointType
	Ref        *snap.TrailRef
}

// Segment is the connecting geometry between two consecutive main-route
// vertices. Its first and last coordinates always equal the vertex
// coordinates they connect.
type Segment struct {
	Coordinates  geo.Polyline
	TrailSnapped bool
}

// DayhikeSpur is an out-and-back branch from a main-route vertex.
// DistanceMiles is the one-way length; the route total doubles it.
type DayhikeSpur struct {
	FromVertex    int
	Coordinates   geo.Polyline
	DistanceMiles float64
}

// Marker is a vertex as exposed to the render layer.
type Marker struct {
	Coordinate geo.Coordinate
	Snapped    bool
	Type       PointType
}

// Preview is the live feed re-emitted after every event.
type Preview struct {
	Main    geo.Polyline
	Spurs   []geo.Polyline
	Markers []Marker
}
