package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// Geometry columns hold EPSG:4326 lon/lat and serialize as WKB, so SQLite
// can round-trip them without spatial awareness.

// DatabaseModels is a list of all the structs exported here which represent
// tables in the database schema
var DatabaseModels = []interface{}{
	&Route{},
	&RoutePoint{},
	&DayhikeLeg{},
}

// Route is one finished sketched route.
type Route struct {
	gorm.Model
	Name    string    `json:"name" gorm:"size:200"`
	DrawnAt time.Time `json:"drawnAt" gorm:"type:timestamptz;index:idx_route_drawn_at"`

	// Geometry is the assembled main-route LineString.
	Geometry geom.LineString `json:"geometry"`

	// Per-vertex state, index-aligned with the drawn vertices.
	VertexTypes   datatypes.JSON `json:"vertexTypes"`
	VertexSnapped datatypes.JSON `json:"vertexSnapped"`
	VertexCoords  datatypes.JSON `json:"vertexCoords"`

	MainDistanceMi    float64 `json:"mainRouteDistanceMi"`
	DayhikeDistanceMi float64 `json:"dayhikeDistanceMi"`

	Points      []RoutePoint `json:"points"`
	DayhikeLegs []DayhikeLeg `json:"dayhikeLegs"`
}

func (*Route) TableName() string {
	return "routes"
}

// RoutePoint is a non-route-typed vertex (camp, dayhike or rest) promoted to
// its own feature.
type RoutePoint struct {
	gorm.Model
	RouteID     uint       `json:"routeId" gorm:"index:idx_routepoint_route_id"`
	VertexIndex int        `json:"vertexIndex"`
	PointType   string     `json:"pointType" gorm:"size:16"`
	Snapped     bool       `json:"snapped"`
	Date        string     `json:"date,omitempty" gorm:"size:32"`
	Location    geom.Point `json:"location"`
}

func (*RoutePoint) TableName() string {
	return "route_points"
}

// DayhikeLeg is the one-way geometry of an out-and-back spur.
type DayhikeLeg struct {
	gorm.Model
	RouteID    uint            `json:"routeId" gorm:"index:idx_dayhikeleg_route_id"`
	FromVertex int             `json:"fromVertex"`
	DistanceMi float64         `json:"distanceMi"`
	Geometry   geom.LineString `json:"geometry"`
}

func (*DayhikeLeg) TableName() string {
	return "dayhike_legs"
}
