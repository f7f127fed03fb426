// Package geojson holds the minimal GeoJSON structures the engine exchanges
// with its host: trail networks in, finished routes out.
package geojson

import (
	"encoding/json"
	"fmt"
)

// FeatureCollection is a standard GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewFeatureCollection creates an empty collection.
func NewFeatureCollection() FeatureCollection {
	return FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// Geometry keeps coordinates raw so Point and LineString features can share
// one struct in both directions.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// LineStringGeometry builds a LineString geometry from [lon,lat] pairs.
func LineStringGeometry(pairs [][]float64) Geometry {
	raw, _ := json.Marshal(pairs)
	return Geometry{Type: "LineString", Coordinates: raw}
}

// PointGeometry builds a Point geometry.
func PointGeometry(lon, lat float64) Geometry {
	raw, _ := json.Marshal([]float64{lon, lat})
	return Geometry{Type: "Point", Coordinates: raw}
}

// LineString decodes the coordinates of a LineString geometry.
func (g Geometry) LineString() ([][]float64, error) {
	if g.Type != "LineString" {
		return nil, fmt.Errorf("geometry is %q, not LineString", g.Type)
	}
	var pairs [][]float64
	if err := json.Unmarshal(g.Coordinates, &pairs); err != nil {
		return nil, fmt.Errorf("failed to decode LineString coordinates: %w", err)
	}
	return pairs, nil
}

// MultiLineString decodes the coordinates of a MultiLineString geometry.
func (g Geometry) MultiLineString() ([][][]float64, error) {
	if g.Type != "MultiLineString" {
		return nil, fmt.Errorf("geometry is %q, not MultiLineString", g.Type)
	}
	var lines [][][]float64
	if err := json.Unmarshal(g.Coordinates, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode MultiLineString coordinates: %w", err)
	}
	return lines, nil
}

// StringProp returns a string property by key, tolerating numeric ids.
func (f Feature) StringProp(key string) string {
	v, ok := f.Properties[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return fmt.Sprintf("%.0f", s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
