package input

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/physics"
	"github.com/lixenwraith/ideanet/vmath"
)

// Activator receives activations produced by pointer interaction
type Activator interface {
	Activate(id string, delay int)
}

// MapperConfig tunes pointer interaction, distances in container pixels
type MapperConfig struct {
	Interactive       bool
	HoverRadius       float64
	HoverProbability  float64 // per node per frame while under the pointer
	ClickRadiusFactor float64 // click radius as a fraction of AttractionRadius
	AttractionRadius  float64
	ClickDelayDivisor float64 // click ripple delay is floor(distance / divisor) frames
}

// Mapper tracks the pointer and converts its activity into targets and activations
type Mapper struct {
	cfg    MapperConfig
	rng    *rand.Rand
	pos    vmath.Vec2
	inside bool
}

// NewMapper creates a mapper with no pointer present
func NewMapper(cfg MapperConfig, rng *rand.Rand) *Mapper {
	return &Mapper{cfg: cfg, rng: rng}
}

// CellCenter converts a terminal cell coordinate to the pixel centre of that cell
func CellCenter(x, y int, cellW, cellH float64) vmath.Vec2 {
	return vmath.Vec2{X: (float64(x) + 0.5) * cellW, Y: (float64(y) + 0.5) * cellH}
}

// Move records the pointer position
func (m *Mapper) Move(p vmath.Vec2) {
	if !m.cfg.Interactive {
		return
	}
	m.pos = p
	m.inside = true
}

// Leave removes the pointer and clears every node's target so nodes resume free drift
func (m *Mapper) Leave(store *graph.Store) {
	m.inside = false
	store.ClearTargets()
}

// Click activates every node inside the click radius, delayed by distance; returns the count
func (m *Mapper) Click(p vmath.Vec2, store *graph.Store, act Activator) int {
	if !m.cfg.Interactive || store == nil {
		return 0
	}
	m.Move(p)

	radius := m.cfg.ClickRadiusFactor * m.cfg.AttractionRadius
	n := 0
	for i := range store.Nodes {
		node := &store.Nodes[i]
		d := vmath.V2Dist(node.Pos, p)
		if d >= radius {
			continue
		}
		act.Activate(node.ID, m.clickDelay(d))
		n++
	}
	return n
}

func (m *Mapper) clickDelay(d float64) int {
	if m.cfg.ClickDelayDivisor <= 0 {
		return 0
	}
	return int(math.Floor(d / m.cfg.ClickDelayDivisor))
}

// Hover randomly sparks nodes near the pointer; called once per frame
func (m *Mapper) Hover(store *graph.Store, act Activator) int {
	if !m.inside || store == nil || m.cfg.HoverProbability <= 0 {
		return 0
	}
	r2 := m.cfg.HoverRadius * m.cfg.HoverRadius
	n := 0
	for i := range store.Nodes {
		node := &store.Nodes[i]
		if vmath.V2DistSq(node.Pos, m.pos) >= r2 {
			continue
		}
		if m.rng.Float64() < m.cfg.HoverProbability {
			act.Activate(node.ID, 0)
			n++
		}
	}
	return n
}

// Pointer returns the attraction source for the physics stepper
func (m *Mapper) Pointer() physics.Pointer {
	return physics.Pointer{Pos: m.pos, Active: m.inside}
}

// Nearest returns the node closest to the pointer within maxDist
func (m *Mapper) Nearest(store *graph.Store, maxDist float64) (*graph.Node, bool) {
	if !m.inside || store == nil {
		return nil, false
	}
	var best *graph.Node
	bestD := maxDist * maxDist
	for i := range store.Nodes {
		d := vmath.V2DistSq(store.Nodes[i].Pos, m.pos)
		if d < bestD {
			best, bestD = &store.Nodes[i], d
		}
	}
	return best, best != nil
}
