package snap

import (
	"github.com/trailsketch/trailsketch/internal/geo"
)

// Locator projects a query point onto the closest candidate trail within a
// fixed pixel radius. All comparisons happen in pixel space so snapping
// behaves the same at every latitude and zoom.
type Locator struct {
	proj     *geo.Projector
	radiusPx float64
}

// NewLocator creates a locator with the given snap radius in pixels.
func NewLocator(proj *geo.Projector, radiusPx float64) *Locator {
	return &Locator{proj: proj, radiusPx: radiusPx}
}

// RadiusPx returns the configured snap radius in pixels.
func (l *Locator) RadiusPx() float64 {
	return l.radiusPx
}

// Snap finds the candidate trail closest to c and returns the projected
// point when it lies within the snap radius. With bypass set, or when no
// candidate qualifies, the original coordinate is returned unsnapped.
// Ties go to the first candidate seen.
func (l *Locator) Snap(c geo.Coordinate, candidates []Trail, bypass bool) SnapResult {
	unsnapped := SnapResult{Coordinate: c}
	if bypass {
		return unsnapped
	}

	best := unsnapped
	bestDist := l.radiusPx
	for _, t := range candidates {
		if len(t.Line) < 2 {
			continue
		}
		nearest, idx, dist, err := l.proj.NearestOnPolyline(c, t.Line)
		if err != nil || dist > l.radiusPx {
			continue
		}
		if best.Snapped && dist >= bestDist {
			continue
		}
		bestDist = dist
		best = SnapResult{
			Coordinate: nearest,
			Snapped:    true,
			Ref: &TrailRef{
				TrailID:         t.ID,
				TrailName:       t.Name,
				Coordinates:     t.Line.Clone(),
				ParametricIndex: idx,
			},
		}
	}
	return best
}
