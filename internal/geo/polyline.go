package geo

import (
	"encoding/json"
	"fmt"
)

// ParsePolyline parses a JSON array of coordinates into a Polyline.
// Input format: "[[lon1,lat1],[lon2,lat2],...]"
func ParsePolyline(input string) (Polyline, error) {
	var coords [][]float64
	if err := json.Unmarshal([]byte(input), &coords); err != nil {
		return nil, fmt.Errorf("failed to parse polyline JSON: %w", err)
	}
	return PolylineFromPairs(coords)
}

// PolylineFromPairs converts [lon,lat] pairs into a Polyline.
func PolylineFromPairs(coords [][]float64) (Polyline, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("polyline must have at least 2 points, got %d", len(coords))
	}
	polyline := make(Polyline, len(coords))
	for i, coord := range coords {
		if len(coord) < 2 {
			return nil, fmt.Errorf("coordinate %d has insufficient values", i)
		}
		polyline[i] = Coordinate{Lon: coord[0], Lat: coord[1]}
	}
	return polyline, nil
}

// Pairs converts the polyline back into [lon,lat] pairs for JSON output.
func (p Polyline) Pairs() [][]float64 {
	out := make([][]float64, len(p))
	for i, c := range p {
		out[i] = []float64{c.Lon, c.Lat}
	}
	return out
}
