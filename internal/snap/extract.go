package snap

import (
	"fmt"

	"github.com/trailsketch/trailsketch/internal/geo"
)

// SliceByIndex extracts the sub-polyline between two parametric segment
// indices. The provided start and end coordinates become the first and last
// elements verbatim, so segment endpoints always match the vertex markers
// they connect instead of re-projected values. Direction follows index
// order: start index <= end index walks forward, otherwise backward.
//
// Index-based slicing is used instead of slicing by geographic position
// because position-based slicing can mis-resolve on switchbacks, where
// points far apart along the trail are geographically close.
func SliceByIndex(line geo.Polyline, start geo.Coordinate, startIdx int, end geo.Coordinate, endIdx int) (geo.Polyline, error) {
	if len(line) < 2 {
		return nil, geo.ErrDegeneratePolyline
	}
	if startIdx < 0 || startIdx >= len(line) || endIdx < 0 || endIdx >= len(line) {
		return nil, fmt.Errorf("segment index out of range: %d..%d on %d vertices", startIdx, endIdx, len(line))
	}

	out := geo.Polyline{start}
	if startIdx <= endIdx {
		for i := startIdx + 1; i < endIdx; i++ {
			out = append(out, line[i])
		}
	} else {
		for i := startIdx; i > endIdx+1; i-- {
			out = append(out, line[i-1])
		}
	}
	return append(out, end), nil
}

// SliceByPosition slices a polyline between two coordinates by locating
// each one's nearest parametric index first. It exists for merged fragments,
// whose vertices no longer correspond to either original fragment's indices.
// The canonical start and end coordinates overwrite the slice endpoints.
func SliceByPosition(proj *geo.Projector, line geo.Polyline, start, end geo.Coordinate) (geo.Polyline, error) {
	_, startIdx, _, err := proj.NearestOnPolyline(start, line)
	if err != nil {
		return nil, err
	}
	_, endIdx, _, err := proj.NearestOnPolyline(end, line)
	if err != nil {
		return nil, err
	}
	return SliceByIndex(line, start, startIdx, end, endIdx)
}
