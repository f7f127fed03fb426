package route

import (
	"github.com/trailsketch/trailsketch/internal/geo"
	"github.com/trailsketch/trailsketch/internal/geojson"
)

// Result is a finished route ready for the store: the assembled display
// line, the committed vertices/segments/spurs and the derived distances.
type Result struct {
	Line              geo.Polyline
	Vertices          []Vertex
	Segments          []Segment
	Spurs             []DayhikeSpur
	MainDistanceMi    float64
	DayhikeDistanceMi float64

	// Dates optionally assigns a date (by vertex index) to camp and rest
	// points; the trip planner fills this in before export.
	Dates map[int]string
}

// FeatureCollection renders the result as GeoJSON: one route LineString,
// one LineString per dayhike spur and one Point per non-route vertex.
func (r *Result) FeatureCollection() geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	types := make([]string, len(r.Vertices))
	snapped := make([]bool, len(r.Vertices))
	coords := make([][]float64, len(r.Vertices))
	for i, v := range r.Vertices {
		types[i] = v.Type.String()
		snapped[i] = v.Snapped
		coords[i] = []float64{v.Coordinate.Lon, v.Coordinate.Lat}
	}

	fc.Features = append(fc.Features, geojson.Feature{
		Type: "Feature",
		Properties: map[string]any{
			"vertex_types":           types,
			"vertex_snapped":         snapped,
			"vertex_coords":          coords,
			"main_route_distance_mi": r.MainDistanceMi,
			"dayhike_distance_mi":    r.DayhikeDistanceMi,
		},
		Geometry: geojson.LineStringGeometry(r.Line.Pairs()),
	})

	for _, spur := range r.Spurs {
		fc.Features = append(fc.Features, geojson.Feature{
			Type: "Feature",
			Properties: map[string]any{
				"kind":        "dayhike_spur",
				"from_vertex": spur.FromVertex,
				"distance_mi": spur.DistanceMiles,
			},
			Geometry: geojson.LineStringGeometry(spur.Coordinates.Pairs()),
		})
	}

	for i, v := range r.Vertices {
		if v.Type == PointRoute {
			continue
		}
		props := map[string]any{
			"kind":         v.Type.String(),
			"vertex_index": i,
		}
		if date, ok := r.Dates[i]; ok {
			props["date"] = date
		}
		fc.Features = append(fc.Features, geojson.Feature{
			Type:       "Feature",
			Properties: props,
			Geometry:   geojson.PointGeometry(v.Coordinate.Lon, v.Coordinate.Lat),
		})
	}

	return fc
}
