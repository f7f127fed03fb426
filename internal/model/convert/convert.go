// Package convert translates finished route results into GORM models.
package convert

import (
	"encoding/json"
	"fmt"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"

	"github.com/trailsketch/trailsketch/internal/geo"
	"github.com/trailsketch/trailsketch/internal/model"
	"github.com/trailsketch/trailsketch/internal/route"
)

// coordinateToPoint converts a geo.Coordinate to a geom.Point.
func coordinateToPoint(c geo.Coordinate) geom.Point {
	p, _ := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: c.Lon, Y: c.Lat}})
	return p
}

// toJSON marshals a value into a datatypes.JSON column, empty array on nil.
func toJSON(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

// ResultToRoute converts a finished drawing result into a Route model with
// its points and dayhike legs attached.
func ResultToRoute(r *route.Result, name string, drawnAt time.Time) (model.Route, error) {
	line, err := r.Line.LineString()
	if err != nil {
		return model.Route{}, fmt.Errorf("route geometry: %w", err)
	}

	types := make([]string, len(r.Vertices))
	snapped := make([]bool, len(r.Vertices))
	coords := make([][]float64, len(r.Vertices))
	for i, v := range r.Vertices {
		types[i] = v.Type.String()
		snapped[i] = v.Snapped
		coords[i] = []float64{v.Coordinate.Lon, v.Coordinate.Lat}
	}

	out := model.Route{
		Name:              name,
		DrawnAt:           drawnAt,
		Geometry:          line,
		VertexTypes:       toJSON(types),
		VertexSnapped:     toJSON(snapped),
		VertexCoords:      toJSON(coords),
		MainDistanceMi:    r.MainDistanceMi,
		DayhikeDistanceMi: r.DayhikeDistanceMi,
	}

	for i, v := range r.Vertices {
		if v.Type == route.PointRoute {
			continue
		}
		out.Points = append(out.Points, model.RoutePoint{
			VertexIndex: i,
			PointType:   v.Type.String(),
			Snapped:     v.Snapped,
			Date:        r.Dates[i],
			Location:    coordinateToPoint(v.Coordinate),
		})
	}

	for _, spur := range r.Spurs {
		legLine, err := spur.Coordinates.LineString()
		if err != nil {
			// Degenerate spur geometry is dropped rather than failing the save.
			continue
		}
		out.DayhikeLegs = append(out.DayhikeLegs, model.DayhikeLeg{
			FromVertex: spur.FromVertex,
			DistanceMi: spur.DistanceMiles,
			Geometry:   legLine,
		})
	}

	return out, nil
}
