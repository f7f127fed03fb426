package snap

import (
	"github.com/trailsketch/trailsketch/internal/geo"
)

// MergeFragments joins two fragments of one logical trail that the tile
// pipeline split apart. Four endpoint pairings are tested in order against
// the gap tolerance (geodesic meters between the candidate endpoints); the
// first within tolerance wins. The second fragment is reversed when its
// orientation opposes the first. A false return means no pairing qualified
// and the caller should fall through to the corridor connector.
func MergeFragments(a, b geo.Polyline, gapToleranceM float64) (geo.Polyline, bool) {
	if len(a) < 2 || len(b) < 2 {
		return nil, false
	}

	switch {
	case geo.DistanceMeters(a.Last(), b.First()) <= gapToleranceM:
		return joined(a, b), true
	case geo.DistanceMeters(a.Last(), b.Last()) <= gapToleranceM:
		return joined(a, b.Reversed()), true
	case geo.DistanceMeters(b.Last(), a.First()) <= gapToleranceM:
		return joined(b, a), true
	case geo.DistanceMeters(b.First(), a.First()) <= gapToleranceM:
		return joined(b.Reversed(), a), true
	}
	return nil, false
}

func joined(head, tail geo.Polyline) geo.Polyline {
	out := make(geo.Polyline, 0, len(head)+len(tail))
	out = append(out, head...)
	return append(out, tail...)
}
