package route

import (
	"github.com/trailsketch/trailsketch/internal/geo"
)

// AssembleLine concatenates main-chain segments into one display polyline.
// When a segment starts where the previous one ended (within eps, to absorb
// benign float drift) the duplicated coordinate is dropped so the rendered
// line has no doubled vertices.
func AssembleLine(segments []Segment, eps float64) geo.Polyline {
	var out geo.Polyline
	for _, seg := range segments {
		coords := seg.Coordinates
		if len(out) > 0 && len(coords) > 0 && out.Last().EqualWithin(coords.First(), eps) {
			coords = coords[1:]
		}
		out = append(out, coords...)
	}
	return out
}

// MainDistanceMiles sums the geodesic lengths of the main-chain segments.
func MainDistanceMiles(segments []Segment) float64 {
	var total float64
	for _, seg := range segments {
		total += seg.Coordinates.LengthMiles()
	}
	return total
}

// DayhikeDistanceMiles sums spur lengths doubled; spurs are out-and-back.
func DayhikeDistanceMiles(spurs []DayhikeSpur) float64 {
	var total float64
	for _, spur := range spurs {
		total += 2 * spur.DistanceMiles
	}
	return total
}
