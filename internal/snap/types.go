// Package snap aligns user-placed points to trail geometry and finds the
// trail-following geometry connecting consecutive aligned points.
package snap

import (
	"github.com/trailsketch/trailsketch/internal/geo"
)

// Trail is one candidate polyline returned by a spatial trail source.
type Trail struct {
	ID   string
	Name string
	Line geo.Polyline
}

// TrailSource is the spatial index collaborator. Implementations must
// tolerate queries that match nothing and should return fresh Trail values
// on every call; callers compare trails by content, never by identity.
type TrailSource interface {
	QueryLines(b geo.BBox, layer string) []Trail
}

// TrailRef is an immutable snapshot of the trail a point snapped to. The
// source may hand out new instances for the same logical trail on each
// query, so trails are compared structurally.
type TrailRef struct {
	TrailID   string
	TrailName string
	// Coordinates is the full queried polyline at the time of the snap.
	Coordinates geo.Polyline
	// ParametricIndex is the segment index along Coordinates nearest the
	// snapped point.
	ParametricIndex int
}

// SnapResult is the outcome of aligning one point against the candidate set.
// Ref is non-nil exactly when Snapped is true.
type SnapResult struct {
	Coordinate geo.Coordinate
	Snapped    bool
	Ref        *TrailRef
}
