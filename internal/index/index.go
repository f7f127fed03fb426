// Package index provides the in-memory spatial trail index the engine
// queries for candidate geometry around a point or corridor.
package index

import (
	"fmt"
	"sync"

	"github.com/trailsketch/trailsketch/internal/geo"
	"github.com/trailsketch/trailsketch/internal/geojson"
	"github.com/trailsketch/trailsketch/internal/snap"
)

type entry struct {
	trail snap.Trail
	layer string
	box   geo.BBox
}

// Index holds trail polylines with precomputed pixel bounding boxes.
// Queries return fresh Trail values so callers can never alias the stored
// geometry; trails are compared by content downstream.
type Index struct {
	proj *geo.Projector

	mu      sync.RWMutex
	entries []entry
}

// New creates an empty index using the given projector for bounding boxes.
func New(proj *geo.Projector) *Index {
	return &Index{proj: proj}
}

// Add registers one trail under a layer name.
func (ix *Index) Add(t snap.Trail, layer string) error {
	if len(t.Line) < 2 {
		return geo.ErrDegeneratePolyline
	}

	pixels := make([]geo.Pixel, len(t.Line))
	for i, c := range t.Line {
		pixels[i] = ix.proj.ToPixel(c)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = append(ix.entries, entry{
		trail: snap.Trail{ID: t.ID, Name: t.Name, Line: t.Line.Clone()},
		layer: layer,
		box:   geo.BBoxAround(0, pixels...),
	})
	return nil
}

// Len returns the number of registered trails.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// QueryLines returns every trail whose bounding box intersects b. An empty
// layer matches all layers. A query that matches nothing returns an empty
// slice, never an error.
func (ix *Index) QueryLines(b geo.BBox, layer string) []snap.Trail {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var out []snap.Trail
	for _, e := range ix.entries {
		if layer != "" && e.layer != layer {
			continue
		}
		if !e.box.Intersects(b) {
			continue
		}
		out = append(out, snap.Trail{
			ID:   e.trail.ID,
			Name: e.trail.Name,
			Line: e.trail.Line.Clone(),
		})
	}
	return out
}

// LoadFeatureCollection registers every LineString and MultiLineString
// feature in the collection under the given layer. MultiLineStrings are
// split into one trail per part, mirroring how tiled sources hand out
// fragments. Returns the number of trails added.
func (ix *Index) LoadFeatureCollection(fc geojson.FeatureCollection, layer string) (int, error) {
	added := 0
	for i, f := range fc.Features {
		id := f.StringProp("id")
		name := f.StringProp("name")

		var lines [][][]float64
		switch f.Geometry.Type {
		case "LineString":
			pairs, err := f.Geometry.LineString()
			if err != nil {
				return added, fmt.Errorf("feature %d: %w", i, err)
			}
			lines = [][][]float64{pairs}
		case "MultiLineString":
			parts, err := f.Geometry.MultiLineString()
			if err != nil {
				return added, fmt.Errorf("feature %d: %w", i, err)
			}
			lines = parts
		default:
			continue
		}

		for _, pairs := range lines {
			line, err := geo.PolylineFromPairs(pairs)
			if err != nil {
				continue
			}
			if err := ix.Add(snap.Trail{ID: id, Name: name, Line: line}, layer); err != nil {
				continue
			}
			added++
		}
	}
	return added, nil
}
