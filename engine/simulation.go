// Package engine runs the idea network: Simulation owns one graph generation and advances it a
// frame at a time; Loop drives a Simulation against a terminal on a fixed frame interval.
package engine

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/ideanet/activation"
	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/input"
	"github.com/lixenwraith/ideanet/physics"
	"github.com/lixenwraith/ideanet/render"
	"github.com/lixenwraith/ideanet/status"
	"github.com/lixenwraith/ideanet/vmath"
)

// Options is the fully resolved simulation setup
type Options struct {
	Variant string

	Build   graph.BuildConfig
	Physics physics.Params
	Mapper  input.MapperConfig

	// Activation is skipped entirely when disabled (particle variant)
	ActivationEnabled bool
	Activation        activation.Config

	HeartbeatInterval    time.Duration
	HeartbeatProbability float64

	Palette    render.Palette
	HUDVisible bool
	Labels     []string
}

// TickResult reports what happened in one frame, for cues and logging
type TickResult struct {
	Stepped   bool
	Heartbeat string // id of the node lit by the heartbeat, empty if none
	Hovered   int
}

// Simulation owns the current store and every per-frame component
// All methods must be called from one goroutine
type Simulation struct {
	opts  Options
	rng   *rand.Rand
	clock *PausableClock
	log   *slog.Logger

	builder   *graph.Builder
	stepper   *physics.Stepper
	prop      *activation.Propagator
	heartbeat *activation.Heartbeat
	mapper    *input.Mapper
	scene     *render.Scene
	hud       *render.HUD

	store    *graph.Store
	frames   uint64
	rebuilds uint64
}

// NewSimulation wires the components; no graph exists until the first Resize
func NewSimulation(opts Options, rng *rand.Rand, tp TimeProvider, log *slog.Logger) *Simulation {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	clock := NewPausableClock(tp)

	s := &Simulation{
		opts:      opts,
		rng:       rng,
		clock:     clock,
		log:       log,
		builder:   graph.NewBuilder(opts.Build, rng),
		stepper:   physics.NewStepper(opts.Physics),
		prop:      activation.NewPropagator(opts.Activation, rng),
		heartbeat: activation.NewHeartbeat(opts.HeartbeatInterval, opts.HeartbeatProbability, clock.Now()),
		mapper:    input.NewMapper(opts.Mapper, rng),
		scene:     render.NewScene(opts.Palette),
		hud:       render.NewHUD(opts.HUDVisible),
	}
	s.builder.SetLabels(opts.Labels)
	s.scene.Register(s.hud, render.PriorityHUD)
	return s
}

// Resize rebuilds the graph for a width x height container
// A zero-sized container keeps the current graph and returns false
func (s *Simulation) Resize(width, height float64) bool {
	store, err := s.builder.Build(width, height)
	if err != nil {
		if errors.Is(err, graph.ErrEmptyContainer) {
			s.log.Debug("resize skipped", "width", width, "height", height)
			return false
		}
		s.log.Error("rebuild failed", "error", err)
		return false
	}

	// Swap first so no stale id can reach the new generation
	s.store = store
	s.prop.Reset()
	s.heartbeat.Reset(s.clock.Now())
	s.rebuilds++

	s.log.Info("graph rebuilt",
		"nodes", store.Len(), "edges", len(store.Edges),
		"width", width, "height", height)
	return true
}

// Rebuild regenerates the graph at the current size
func (s *Simulation) Rebuild() bool {
	if s.store == nil {
		return false
	}
	return s.Resize(s.store.Width, s.store.Height)
}

// Store returns the current generation, nil before the first successful Resize
func (s *Simulation) Store() *graph.Store {
	return s.store
}

// Tick advances one frame: pointer sparks, physics, propagation, heartbeat
func (s *Simulation) Tick() TickResult {
	var res TickResult
	if s.store == nil || s.clock.IsPaused() {
		return res
	}

	if s.opts.ActivationEnabled {
		res.Hovered = s.mapper.Hover(s.store, s.prop)
	}

	s.stepper.Step(s.store, s.mapper.Pointer())

	if s.opts.ActivationEnabled {
		s.prop.Tick(s.store)
		if s.store.Len() > 0 && s.heartbeat.Fire(s.clock.Now(), s.rng) {
			res.Heartbeat = s.randomNode()
			s.prop.Activate(res.Heartbeat, 0)
		}
	}

	s.frames++
	res.Stepped = true
	return res
}

func (s *Simulation) randomNode() string {
	return s.store.Nodes[s.rng.IntN(s.store.Len())].ID
}

// Pulse lights a random node immediately; returns its id or empty when nothing can pulse
func (s *Simulation) Pulse() string {
	if !s.opts.ActivationEnabled || s.store == nil || s.store.Len() == 0 {
		return ""
	}
	id := s.randomNode()
	s.prop.Activate(id, 0)
	return id
}

// Activate enqueues an activation for id
func (s *Simulation) Activate(id string, delay int) {
	if s.opts.ActivationEnabled {
		s.prop.Activate(id, delay)
	}
}

// PointerMove sets the attraction point in container pixels
func (s *Simulation) PointerMove(p vmath.Vec2) {
	s.mapper.Move(p)
}

// PointerClick starts a ripple at p; returns the number of nodes enqueued
func (s *Simulation) PointerClick(p vmath.Vec2) int {
	if s.store == nil {
		return 0
	}
	if !s.opts.ActivationEnabled {
		s.mapper.Move(p)
		return 0
	}
	return s.mapper.Click(p, s.store, s.prop)
}

// PointerLeave removes the pointer and releases every node back to free drift
func (s *Simulation) PointerLeave() {
	if s.store == nil {
		return
	}
	s.mapper.Leave(s.store)
}

// TogglePause freezes or resumes the simulation and returns true when now paused
func (s *Simulation) TogglePause() bool {
	if s.clock.IsPaused() {
		s.clock.Resume()
		return false
	}
	s.clock.Pause()
	return true
}

// Paused reports whether frames are frozen
func (s *Simulation) Paused() bool {
	return s.clock.IsPaused()
}

// ToggleHUD flips the status line and returns its new visibility
func (s *Simulation) ToggleHUD() bool {
	return s.hud.Toggle()
}

// Active returns the lit set for this frame; callers must not modify it
func (s *Simulation) Active() map[string]struct{} {
	return s.prop.ActiveSet()
}

// Label returns the label of the node nearest the pointer, or of the first lit node
func (s *Simulation) Label() string {
	if s.store == nil {
		return ""
	}
	if n, ok := s.mapper.Nearest(s.store, s.opts.Mapper.HoverRadius); ok && n.Label != "" {
		return n.Label
	}
	for _, id := range s.prop.Active() {
		if n, ok := s.store.Lookup(id); ok && n.Label != "" {
			return n.Label
		}
	}
	return ""
}

// Snapshot reports the counters published as metrics
func (s *Simulation) Snapshot() status.Snapshot {
	snap := status.Snapshot{
		Active:      s.prop.ActiveCount(),
		Queued:      s.prop.QueueLen(),
		Activations: s.prop.Fired(),
		Rebuilds:    s.rebuilds,
	}
	if s.store != nil {
		snap.Nodes = s.store.Len()
		snap.Edges = len(s.store.Edges)
	}
	return snap
}

// Frames returns the number of frames stepped
func (s *Simulation) Frames() uint64 {
	return s.frames
}

// Status assembles the HUD line for this frame
func (s *Simulation) Status(fps float64, muted bool) render.HUDStatus {
	snap := s.Snapshot()
	return render.HUDStatus{
		Variant: s.opts.Variant,
		Nodes:   snap.Nodes,
		Edges:   snap.Edges,
		Active:  snap.Active,
		Queued:  snap.Queued,
		FPS:     fps,
		Paused:  s.Paused(),
		Muted:   muted,
		Label:   s.Label(),
	}
}

// Draw renders the current frame onto surface; hud may be nil
func (s *Simulation) Draw(surface render.Surface, hud *render.HUDStatus) {
	s.scene.DrawFrame(surface, render.FrameContext{
		Store:  s.store,
		Active: s.prop.ActiveSet(),
		HUD:    hud,
	})
}
