// Package engine wires the drawing session, storage backend and telemetry
// behind the host event dispatcher.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/trailsketch/trailsketch/internal/dispatcher"
	"github.com/trailsketch/trailsketch/internal/geo"
	"github.com/trailsketch/trailsketch/internal/route"
	"github.com/trailsketch/trailsketch/internal/storage"
	"github.com/trailsketch/trailsketch/internal/telemetry"
	"github.com/trailsketch/trailsketch/internal/util"
)

// Commands understood by the engine.
const (
	CmdStart     = "sketch:start"
	CmdPointType = "sketch:point-type"
	CmdClick     = "sketch:click"
	CmdMove      = "sketch:move"
	CmdFinish    = "sketch:finish"
	CmdCancel    = "sketch:cancel"
)

// Dependencies holds all dependencies for the engine manager
type Dependencies struct {
	Session   *route.Session
	Telemetry *telemetry.Manager // optional
	Log       zerolog.Logger
}

// Manager connects host events to the drawing session.
type Manager struct {
	deps    Dependencies
	backend storage.Backend

	sessionStart time.Time
}

// NewManager creates a new engine manager.
func NewManager(deps Dependencies, backend storage.Backend) *Manager {
	return &Manager{deps: deps, backend: backend}
}

// RegisterHandlers registers all event handlers with the dispatcher.
// Click and move are serialized so an asynchronous host cannot interleave
// them; each vertex's connection logic must see the previous one committed.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(CmdStart, m.handleStart, dispatcher.Logged())
	d.Register(CmdPointType, m.handlePointType, dispatcher.Logged())
	d.Register(CmdClick, m.handleClick, dispatcher.Serialized(), dispatcher.Logged())
	d.Register(CmdMove, m.handleMove, dispatcher.Serialized())
	d.Register(CmdFinish, m.handleFinish, dispatcher.Serialized(), dispatcher.Logged())
	d.Register(CmdCancel, m.handleCancel, dispatcher.Logged())
}

func (m *Manager) handleStart(e dispatcher.Event) (any, error) {
	m.deps.Session.Start()
	m.sessionStart = time.Now()
	return "started", nil
}

func (m *Manager) handlePointType(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, fmt.Errorf("point-type needs a type argument")
	}
	t, err := route.ParsePointType(util.TrimQuotes(e.Args[0]))
	if err != nil {
		return nil, err
	}
	m.deps.Session.SetActiveType(t)
	return t.String(), nil
}

// coordArgs decodes the common "lon,lat" plus optional bypass-flag args.
func coordArgs(args []string) (geo.Coordinate, bool, error) {
	if len(args) < 1 {
		return geo.Coordinate{}, false, fmt.Errorf("missing coordinate argument")
	}
	c, err := geo.CoordinateFromString(util.TrimQuotes(args[0]))
	if err != nil {
		return geo.Coordinate{}, false, err
	}
	bypass := false
	if len(args) > 1 {
		bypass = util.ParseFlag(args[1])
	}
	return c, bypass, nil
}

func (m *Manager) handleClick(e dispatcher.Event) (any, error) {
	c, bypass, err := coordArgs(e.Args)
	if err != nil {
		return nil, err
	}
	preview, err := m.deps.Session.Click(c, bypass)
	if err != nil {
		return nil, err
	}
	return preview, nil
}

func (m *Manager) handleMove(e dispatcher.Event) (any, error) {
	c, bypass, err := coordArgs(e.Args)
	if err != nil {
		return nil, err
	}
	preview, err := m.deps.Session.Move(c, bypass)
	if err != nil {
		return nil, err
	}
	return preview, nil
}

func (m *Manager) handleFinish(e dispatcher.Event) (any, error) {
	res, ok := m.deps.Session.Finish()
	if !ok {
		// Under two committed vertices a finish is an implicit cancel.
		return "cancelled", nil
	}

	name := ""
	if len(e.Args) > 0 {
		name = util.TrimQuotes(e.Args[0])
	}
	if name == "" {
		name = fmt.Sprintf("route_%s", time.Now().Format("20060102_150405"))
	}

	if err := m.backend.SaveRoute(res, name); err != nil {
		m.deps.Log.Error().Err(err).Str("name", name).Msg("failed to save route")
		return nil, err
	}
	if m.deps.Telemetry != nil {
		m.deps.Telemetry.RecordSession(res, time.Since(m.sessionStart))
	}
	return res, nil
}

func (m *Manager) handleCancel(e dispatcher.Event) (any, error) {
	m.deps.Session.Cancel()
	return "cancelled", nil
}
