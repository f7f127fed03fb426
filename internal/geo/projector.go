package geo

import (
	"math"

	"github.com/wroge/wgs84"
)

// Web-Mercator ground resolution at the equator for zoom 0, in EPSG:3857
// meters per pixel.
const zoomZeroResolution = 156543.03392804097

// Pixel is a position in zoom-relative screen space.
type Pixel struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean pixel distance to another pixel.
func (p Pixel) DistanceTo(o Pixel) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Projector converts between geographic coordinates and a fixed pixel space.
// The pixel space is EPSG:3857 scaled by the ground resolution of a single
// zoom level, so pixel distances are comparable across the whole of one
// event's processing. A Projector must not be rebuilt mid-computation.
type Projector struct {
	resolution float64
	forward    wgs84.Func
	inverse    wgs84.Func
}

// NewProjector creates a projector for the given Web-Mercator zoom level.
func NewProjector(zoom float64) *Projector {
	epsg := wgs84.EPSG()
	return &Projector{
		resolution: zoomZeroResolution / math.Pow(2, zoom),
		forward:    epsg.Transform(4326, 3857),
		inverse:    epsg.Transform(3857, 4326),
	}
}

// ToPixel projects a geographic coordinate into pixel space.
func (pr *Projector) ToPixel(c Coordinate) Pixel {
	x, y, _ := pr.forward(c.Lon, c.Lat, 0)
	return Pixel{X: x / pr.resolution, Y: y / pr.resolution}
}

// FromPixel unprojects a pixel back into a geographic coordinate.
func (pr *Projector) FromPixel(p Pixel) Coordinate {
	lon, lat, _ := pr.inverse(p.X*pr.resolution, p.Y*pr.resolution, 0)
	return Coordinate{Lon: lon, Lat: lat}
}

// PixelDistance returns the pixel-space distance between two coordinates.
func (pr *Projector) PixelDistance(a, b Coordinate) float64 {
	return pr.ToPixel(a).DistanceTo(pr.ToPixel(b))
}

// ProjectOntoSegment returns the nearest point to p on the segment a-b and
// the parametric position of that point (0 at a, 1 at b).
func ProjectOntoSegment(p, a, b Pixel) (Pixel, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a, 0
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t <= 0 {
		return a, 0
	}
	if t >= 1 {
		return b, 1
	}
	return Pixel{X: a.X + t*dx, Y: a.Y + t*dy}, t
}

// NearestOnPolyline finds the point on the polyline nearest to c. It returns
// the nearest coordinate, the index of the segment it lies on, and the pixel
// distance from c. When the nearest point is an original vertex the vertex
// coordinate is returned verbatim, avoiding projection round-trip drift.
func (pr *Projector) NearestOnPolyline(c Coordinate, line Polyline) (Coordinate, int, float64, error) {
	if len(line) < 2 {
		return Coordinate{}, 0, 0, ErrDegeneratePolyline
	}

	query := pr.ToPixel(c)
	best := math.Inf(1)
	bestIdx := 0
	var bestCoord Coordinate

	prev := pr.ToPixel(line[0])
	for i := 1; i < len(line); i++ {
		cur := pr.ToPixel(line[i])
		nearest, t := ProjectOntoSegment(query, prev, cur)
		if d := query.DistanceTo(nearest); d < best {
			best = d
			bestIdx = i - 1
			switch {
			case t <= 0:
				bestCoord = line[i-1]
			case t >= 1:
				bestCoord = line[i]
			default:
				bestCoord = pr.FromPixel(nearest)
			}
		}
		prev = cur
	}
	return bestCoord, bestIdx, best, nil
}

// BBox is an axis-aligned rectangle in pixel space.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// BBoxAround returns the bounding box spanning the given pixels, padded on
// all sides.
func BBoxAround(pad float64, pts ...Pixel) BBox {
	b := BBox{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range pts {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	b.MinX -= pad
	b.MinY -= pad
	b.MaxX += pad
	b.MaxY += pad
	return b
}

// Intersects reports whether two boxes overlap.
func (b BBox) Intersects(o BBox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Contains reports whether the pixel lies inside the box.
func (b BBox) Contains(p Pixel) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}
