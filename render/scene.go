// Package render draws the idea graph onto a Surface.
//
// A Scene clears the surface and runs its layers in priority order: connections first, then
// nodes, then overlays such as the HUD. Two surfaces exist: CellCanvas composites into a terminal
// RenderBuffer and SVGCanvas streams an SVG document. Rendering never mutates the graph.
package render

import (
	"github.com/lixenwraith/ideanet/graph"
)

// Priority determines layer order. Lower values render first
type Priority int

const (
	PriorityEdges Priority = iota
	PriorityNodes
	PriorityOverlay
	PriorityHUD
)

// FrameContext is the read-only state a layer draws from, passed by value
type FrameContext struct {
	Store   *graph.Store
	Active  map[string]struct{}
	Palette Palette
	HUD     *HUDStatus // nil hides the status line
}

// IsActive reports whether id is lit this frame
func (c FrameContext) IsActive(id string) bool {
	_, ok := c.Active[id]
	return ok
}

// Layer is implemented by anything with visual output
type Layer interface {
	Render(ctx FrameContext, s Surface)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}

type layerEntry struct {
	layer    Layer
	priority Priority
	index    int // registration order for stable sort
}

// Scene coordinates the render pipeline
type Scene struct {
	palette  Palette
	layers   []layerEntry
	regCount int
}

// NewScene creates a scene with the connection and node layers registered
func NewScene(p Palette) *Scene {
	s := &Scene{palette: p, layers: make([]layerEntry, 0, 4)}
	s.Register(EdgeLayer{}, PriorityEdges)
	s.Register(NodeLayer{}, PriorityNodes)
	return s
}

// Palette returns the scene colors
func (s *Scene) Palette() Palette {
	return s.palette
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (s *Scene) Register(l Layer, priority Priority) {
	entry := layerEntry{layer: l, priority: priority, index: s.regCount}
	s.regCount++

	pos := len(s.layers)
	for i, e := range s.layers {
		if priority < e.priority {
			pos = i
			break
		}
	}
	s.layers = append(s.layers, layerEntry{})
	copy(s.layers[pos+1:], s.layers[pos:])
	s.layers[pos] = entry
}

// Draw renders one frame of store with the given active set
func (s *Scene) Draw(surface Surface, store *graph.Store, active map[string]struct{}) {
	s.DrawFrame(surface, FrameContext{Store: store, Active: active})
}

// DrawFrame executes the pipeline: clear, then every visible layer in priority order
// A nil surface draws nothing
func (s *Scene) DrawFrame(surface Surface, ctx FrameContext) {
	if surface == nil {
		return
	}
	ctx.Palette = s.palette
	surface.Clear(s.palette.Background)
	if ctx.Store == nil {
		return
	}
	for _, e := range s.layers {
		if vt, ok := e.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		e.layer.Render(ctx, surface)
	}
}
