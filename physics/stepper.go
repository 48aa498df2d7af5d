// Package physics advances node positions, pulses and rotations by one discrete frame.
package physics

import (
	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/vmath"
)

// Params tunes the per-frame integration
type Params struct {
	AttractionRadius   float64
	AttractionStrength float64
	Smoothing          float64 // fraction of the gap to target closed per frame
	BounceLead         float64 // frames of velocity the target is placed ahead after a bounce
	DriftScale         float64 // share of velocity applied per frame when a node has no target

	PulseSpeed   float64
	PulseMin     float64
	PulseMax     float64
	RotationStep float64
}

// Pointer is the attraction source for the next step
type Pointer struct {
	Pos    vmath.Vec2
	Active bool
}

// Stepper integrates one frame; stateless apart from its parameters
type Stepper struct {
	params Params
}

// NewStepper creates a stepper with the given parameters
func NewStepper(p Params) *Stepper {
	return &Stepper{params: p}
}

// Params returns the stepper configuration
func (s *Stepper) Params() Params {
	return s.params
}

// Step advances every node in the store by one frame
func (s *Stepper) Step(store *graph.Store, ptr Pointer) {
	if store == nil {
		return
	}
	for i := range store.Nodes {
		s.stepNode(&store.Nodes[i], store.Width, store.Height, ptr)
	}
}

func (s *Stepper) stepNode(n *graph.Node, width, height float64, ptr Pointer) {
	p := &s.params

	// Target selection
	attracted := false
	if ptr.Active && p.AttractionRadius > 0 {
		dist := vmath.V2Dist(n.Pos, ptr.Pos)
		if dist < p.AttractionRadius {
			force := (1 - dist/p.AttractionRadius) * p.AttractionStrength
			n.SetTarget(vmath.V2Add(n.Pos, vmath.V2Scale(vmath.V2Sub(ptr.Pos, n.Pos), force)))
			attracted = true
		}
	}
	if !attracted && (ptr.Active || n.Target != nil) {
		n.SetTarget(vmath.V2Add(n.Pos, n.Vel))
	}

	// Integration: ease toward target, else free drift
	if n.Target != nil {
		n.Pos = vmath.V2Lerp(n.Pos, *n.Target, p.Smoothing)
	} else {
		n.Pos = vmath.V2Add(n.Pos, vmath.V2Scale(n.Vel, p.DriftScale))
	}

	ReflectBounds(n, width, height, p.BounceLead)

	// Pulse oscillation, clamped so float overshoot never leaves the band
	n.Pulse += p.PulseSpeed * n.PulseDir
	if n.Pulse >= p.PulseMax {
		n.Pulse = p.PulseMax
		n.PulseDir = -1
	} else if n.Pulse <= p.PulseMin {
		n.Pulse = p.PulseMin
		n.PulseDir = 1
	}

	n.Rotation += p.RotationStep * n.PulseDir
}
