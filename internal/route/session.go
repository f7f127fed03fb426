package route

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/trailsketch/trailsketch/internal/geo"
	"github.com/trailsketch/trailsketch/internal/snap"
)

// ErrNotDrawing is returned when an event arrives outside a drawing session.
var ErrNotDrawing = errors.New("no drawing session active")

// Config holds the tunables of the snapping/stitching pipeline.
type Config struct {
	// SnapRadiusPx is the pixel acceptance radius for point snapping.
	SnapRadiusPx float64
	// WidenedRadiusPx is the looser tolerance for corridor bridging.
	WidenedRadiusPx float64
	// GapToleranceM is the geodesic gap, in meters, for fragment merging
	// and junction detection.
	GapToleranceM float64
	// DedupEpsilon absorbs float drift when deduplicating assembly joints.
	DedupEpsilon float64
	// Layer restricts spatial queries to one index layer; empty means all.
	Layer string
}

// Session is one drawing interaction. It exists from start to finish or
// cancel and has no state outside that window. Events are processed to
// completion one at a time; the mutex serializes hosts that deliver events
// from their own goroutines.
type Session struct {
	proj      *geo.Projector
	source    snap.TrailSource
	locator   *snap.Locator
	connector *snap.Connector
	cfg       Config
	log       zerolog.Logger

	mu         sync.Mutex
	drawing    bool
	activeType PointType
	vertices   []Vertex
	segments   []Segment
	spurs      []DayhikeSpur
}

// NewSession creates a session over the given trail source.
func NewSession(proj *geo.Projector, source snap.TrailSource, cfg Config, log zerolog.Logger) *Session {
	return &Session{
		proj:      proj,
		source:    source,
		locator:   snap.NewLocator(proj, cfg.SnapRadiusPx),
		connector: snap.NewConnector(proj, source, cfg.SnapRadiusPx, cfg.WidenedRadiusPx, cfg.GapToleranceM, cfg.Layer, log),
		cfg:       cfg,
		log:       log,
	}
}

// Start begins a new drawing session, discarding any prior one.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.drawing = true
	s.log.Debug().Msg("drawing session started")
}

// Drawing reports whether a session is active.
func (s *Session) Drawing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing
}

// SetActiveType changes how subsequently placed vertices connect.
func (s *Session) SetActiveType(t PointType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeType = t
}

// Click commits a vertex at c, snapping it to nearby trail geometry unless
// bypass is set, and extends the main chain or records a dayhike spur.
func (s *Session) Click(c geo.Coordinate, bypass bool) (Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drawing {
		return Preview{}, ErrNotDrawing
	}

	res := s.snapPoint(c, bypass)
	v := Vertex{Coordinate: res.Coordinate, Snapped: res.Snapped, Type: s.activeType, Ref: res.Ref}

	if s.activeType == PointDayhike {
		anchor := s.lastMainIndexLocked()
		if anchor < 0 {
			// Nothing to branch from yet; keep the vertex, no spur.
			s.log.Warn().Msg("dayhike point placed before any main-route vertex")
			s.vertices = append(s.vertices, v)
			return s.previewLocked(), nil
		}
		seg := s.connect(s.vertices[anchor], res)
		s.vertices = append(s.vertices, v)
		s.spurs = append(s.spurs, DayhikeSpur{
			FromVertex:    anchor,
			Coordinates:   seg.Coordinates,
			DistanceMiles: seg.Coordinates.LengthMiles(),
		})
		return s.previewLocked(), nil
	}

	prev := s.lastMainIndexLocked()
	s.vertices = append(s.vertices, v)
	if prev >= 0 {
		s.segments = append(s.segments, s.connect(s.vertices[prev], res))
	}
	return s.previewLocked(), nil
}

// Move recomputes the live preview extended to the cursor position without
// mutating committed state.
func (s *Session) Move(c geo.Coordinate, bypass bool) (Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drawing {
		return Preview{}, ErrNotDrawing
	}

	p := s.previewLocked()
	anchor := s.lastMainIndexLocked()
	if anchor < 0 {
		return p, nil
	}

	res := s.snapPoint(c, bypass)
	ext := s.connect(s.vertices[anchor], res)
	if s.activeType == PointDayhike {
		p.Spurs = append(p.Spurs, ext.Coordinates)
	} else {
		coords := ext.Coordinates
		if len(p.Main) > 0 && p.Main.Last().EqualWithin(coords.First(), s.cfg.DedupEpsilon) {
			coords = coords[1:]
		}
		p.Main = append(p.Main, coords...)
	}
	return p, nil
}

// Finish ends the session and assembles the result. With fewer than two
// committed main-route vertices it behaves as a cancel and returns ok=false.
func (s *Session) Finish() (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drawing {
		return nil, false
	}
	if s.mainVertexCountLocked() < 2 {
		s.log.Debug().Msg("finish with fewer than 2 route vertices, cancelling")
		s.resetLocked()
		return nil, false
	}

	r := &Result{
		Line:              AssembleLine(s.segments, s.cfg.DedupEpsilon),
		Vertices:          append([]Vertex(nil), s.vertices...),
		Segments:          append([]Segment(nil), s.segments...),
		Spurs:             append([]DayhikeSpur(nil), s.spurs...),
		MainDistanceMi:    MainDistanceMiles(s.segments),
		DayhikeDistanceMi: DayhikeDistanceMiles(s.spurs),
	}
	s.resetLocked()
	s.log.Info().
		Int("vertices", len(r.Vertices)).
		Float64("distanceMi", r.MainDistanceMi).
		Msg("drawing session finished")
	return r, true
}

// Cancel discards all session state unconditionally.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Preview returns the committed state as a render feed.
func (s *Session) Preview() Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewLocked()
}

func (s *Session) resetLocked() {
	s.drawing = false
	s.activeType = PointRoute
	s.vertices = nil
	s.segments = nil
	s.spurs = nil
}

// lastMainIndexLocked returns the index of the nearest preceding main-route
// vertex, skipping dayhike vertices. -1 when none exists.
func (s *Session) lastMainIndexLocked() int {
	for i := len(s.vertices) - 1; i >= 0; i-- {
		if s.vertices[i].Type != PointDayhike {
			return i
		}
	}
	return -1
}

func (s *Session) mainVertexCountLocked() int {
	n := 0
	for _, v := range s.vertices {
		if v.Type != PointDayhike {
			n++
		}
	}
	return n
}

// snapPoint queries candidates around c and snaps to the closest. The
// bypass flag skips the query entirely.
func (s *Session) snapPoint(c geo.Coordinate, bypass bool) snap.SnapResult {
	if bypass {
		return snap.SnapResult{Coordinate: c}
	}
	box := geo.BBoxAround(s.cfg.SnapRadiusPx, s.proj.ToPixel(c))
	candidates := s.source.QueryLines(box, s.cfg.Layer)
	return s.locator.Snap(c, candidates, false)
}

// connect produces the geometry between the previous vertex and a new snap
// result. Every strategy that fails falls through to the next; the final
// fallback is always a straight line, so connect cannot fail.
func (s *Session) connect(prev Vertex, cur snap.SnapResult) Segment {
	straight := Segment{
		Coordinates:  geo.Polyline{prev.Coordinate, cur.Coordinate},
		TrailSnapped: false,
	}
	if !prev.Snapped || !cur.Snapped {
		return straight
	}

	rel := snap.Classify(prev.Ref, cur.Ref)
	switch rel.Kind {
	case snap.Same:
		line, err := snap.SliceByIndex(
			prev.Ref.Coordinates,
			prev.Coordinate, prev.Ref.ParametricIndex,
			cur.Coordinate, cur.Ref.ParametricIndex,
		)
		if err == nil {
			return Segment{Coordinates: line, TrailSnapped: true}
		}
		s.log.Debug().Err(err).Msg("same-trail slice failed, trying connector")

	case snap.Related:
		if merged, ok := snap.MergeFragments(prev.Ref.Coordinates, cur.Ref.Coordinates, s.cfg.GapToleranceM); ok {
			line, err := snap.SliceByPosition(s.proj, merged, prev.Coordinate, cur.Coordinate)
			if err == nil {
				return Segment{Coordinates: line, TrailSnapped: true}
			}
			s.log.Debug().Err(err).Str("trail", rel.SharedKey).Msg("merged slice failed, trying connector")
		}
	}

	if line, ok := s.connector.Connect(prev.Coordinate, cur.Coordinate); ok {
		return Segment{Coordinates: line, TrailSnapped: true}
	}
	return straight
}

func (s *Session) previewLocked() Preview {
	p := Preview{Main: AssembleLine(s.segments, s.cfg.DedupEpsilon)}
	for _, spur := range s.spurs {
		p.Spurs = append(p.Spurs, spur.Coordinates)
	}
	for _, v := range s.vertices {
		p.Markers = append(p.Markers, Marker{Coordinate: v.Coordinate, Snapped: v.Snapped, Type: v.Type})
	}
	return p
}
