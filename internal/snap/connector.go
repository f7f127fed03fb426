package snap

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/trailsketch/trailsketch/internal/geo"
)

// Connector finds trail-following geometry between two points whose snapped
// trails are unrelated (or whose fragment merge failed). It never reports an
// error for a missing connection: absence of a path is a normal outcome and
// the caller draws a straight line instead.
type Connector struct {
	proj   *geo.Projector
	source TrailSource
	log    zerolog.Logger

	// radiusPx pads the corridor query box; widenedPx is the acceptance
	// tolerance for bridging trails, looser than the snap radius because a
	// bridging trail need not pass through either endpoint exactly.
	radiusPx     float64
	widenedPx    float64
	junctionGapM float64
	layer        string
}

// NewConnector creates a corridor connector.
func NewConnector(proj *geo.Projector, source TrailSource, radiusPx, widenedPx, junctionGapM float64, layer string, log zerolog.Logger) *Connector {
	return &Connector{
		proj:         proj,
		source:       source,
		log:          log,
		radiusPx:     radiusPx,
		widenedPx:    widenedPx,
		junctionGapM: junctionGapM,
		layer:        layer,
	}
}

// Connect attempts single-trail bridging first, then a two-hop junction
// search. The returned polyline starts at from and ends at to. A false
// return means neither strategy found trail geometry.
func (c *Connector) Connect(from, to geo.Coordinate) (geo.Polyline, bool) {
	if line, ok := c.bridge(from, to); ok {
		return line, true
	}
	return c.twoHop(from, to)
}

// projection is one endpoint projected onto a candidate trail.
type projection struct {
	trail Trail
	coord geo.Coordinate
	idx   int
	dist  float64
}

// bridge re-queries a corridor spanning both endpoints for a single trail
// passing near both of them and slices it between the two projections.
func (c *Connector) bridge(from, to geo.Coordinate) (geo.Polyline, bool) {
	pxFrom := c.proj.ToPixel(from)
	pxTo := c.proj.ToPixel(to)
	corridor := geo.BBoxAround(c.radiusPx, pxFrom, pxTo)

	for _, t := range c.source.QueryLines(corridor, c.layer) {
		if len(t.Line) < 2 {
			continue
		}
		// Coarse prefilter before paying for two projections.
		box := c.trailBBox(t.Line, c.widenedPx)
		if !box.Contains(pxFrom) || !box.Contains(pxTo) {
			continue
		}

		_, startIdx, startDist, err := c.proj.NearestOnPolyline(from, t.Line)
		if err != nil || startDist > c.widenedPx {
			continue
		}
		_, endIdx, endDist, err := c.proj.NearestOnPolyline(to, t.Line)
		if err != nil || endDist > c.widenedPx {
			continue
		}

		line, err := SliceByIndex(t.Line, from, startIdx, to, endIdx)
		if err != nil {
			c.log.Debug().Err(err).Str("trail", t.Name).Msg("bridge slice failed, trying next candidate")
			continue
		}
		return line, true
	}
	return nil, false
}

// twoHop looks for a junction between a trail near the start and a trail
// near the end, then stitches start->junction and junction->end together.
// The vertex scan is brute-force over all coordinate pairs; candidate trail
// fragments are short in practice.
func (c *Connector) twoHop(from, to geo.Coordinate) (geo.Polyline, bool) {
	startSide := c.trailsNear(from)
	if len(startSide) == 0 {
		return nil, false
	}
	endSide := c.trailsNear(to)
	if len(endSide) == 0 {
		return nil, false
	}

	for _, sp := range startSide {
		for _, ep := range endSide {
			line, ok := c.stitchAtJunction(from, sp, to, ep)
			if ok {
				return line, true
			}
		}
	}
	return nil, false
}

// trailsNear collects trails passing within the widened tolerance of the
// coordinate, along with the projection of the coordinate onto each.
func (c *Connector) trailsNear(coord geo.Coordinate) []projection {
	px := c.proj.ToPixel(coord)
	box := geo.BBoxAround(c.widenedPx, px)

	var out []projection
	for _, t := range c.source.QueryLines(box, c.layer) {
		if len(t.Line) < 2 {
			continue
		}
		nearest, idx, dist, err := c.proj.NearestOnPolyline(coord, t.Line)
		if err != nil || dist > c.widenedPx {
			continue
		}
		out = append(out, projection{trail: t, coord: nearest, idx: idx, dist: dist})
	}
	return out
}

// stitchAtJunction scans the two trails for a vertex pair within the
// junction gap and, on the first hit, concatenates the two legs with the
// duplicated junction coordinate dropped.
func (c *Connector) stitchAtJunction(from geo.Coordinate, sp projection, to geo.Coordinate, ep projection) (geo.Polyline, bool) {
	for i, va := range sp.trail.Line {
		for j, vb := range ep.trail.Line {
			if geo.DistanceMeters(va, vb) > c.junctionGapM {
				continue
			}

			leg1, err := SliceByIndex(sp.trail.Line, from, sp.idx, va, segmentIndex(i, len(sp.trail.Line)))
			if err != nil {
				continue
			}
			leg2, err := SliceByIndex(ep.trail.Line, vb, segmentIndex(j, len(ep.trail.Line)), to, ep.idx)
			if err != nil {
				continue
			}

			// Keep the start-side junction vertex, drop the end side's.
			stitched := make(geo.Polyline, 0, len(leg1)+len(leg2)-1)
			stitched = append(stitched, leg1...)
			stitched = append(stitched, leg2[1:]...)
			return stitched, true
		}
	}
	return nil, false
}

// trailBBox computes the padded pixel bounding box of a polyline.
func (c *Connector) trailBBox(line geo.Polyline, pad float64) geo.BBox {
	box := geo.BBox{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, coord := range line {
		px := c.proj.ToPixel(coord)
		box.MinX = math.Min(box.MinX, px.X)
		box.MinY = math.Min(box.MinY, px.Y)
		box.MaxX = math.Max(box.MaxX, px.X)
		box.MaxY = math.Max(box.MaxY, px.Y)
	}
	box.MinX -= pad
	box.MinY -= pad
	box.MaxX += pad
	box.MaxY += pad
	return box
}

// segmentIndex clamps a vertex index to a valid parametric segment index.
func segmentIndex(vertexIdx, lineLen int) int {
	if vertexIdx >= lineLen-1 {
		return lineLen - 2
	}
	return vertexIdx
}
