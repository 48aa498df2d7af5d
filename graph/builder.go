package graph

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/lixenwraith/ideanet/vmath"
)

// ErrEmptyContainer is returned when the container has no area to lay nodes out in
var ErrEmptyContainer = errors.New("graph: container has zero area")

// BuildConfig parameterizes node generation and the proximity graph
type BuildConfig struct {
	Count          int
	MaxDistance    float64 // D: candidates must be strictly closer
	MaxConnections int     // K: per-node edge cap
	MaxSpeed       float64

	MinSize float64
	MaxSize float64

	BaseActiveProbability float64
	PulseMin              float64
	PulseMax              float64

	// Kinds drawn uniformly at creation; empty means circles only
	Kinds []Kind
}

// Builder produces fresh stores; ids are unique across every store it builds
type Builder struct {
	cfg    BuildConfig
	rng    *rand.Rand
	labels []string
	nextID uint64
}

// NewBuilder creates a builder drawing randomness from rng
func NewBuilder(cfg BuildConfig, rng *rand.Rand) *Builder {
	return &Builder{cfg: cfg, rng: rng}
}

// SetLabels assigns labels to nodes round-robin on the next builds
func (b *Builder) SetLabels(labels []string) {
	b.labels = append(b.labels[:0], labels...)
}

// Config returns the active build configuration
func (b *Builder) Config() BuildConfig {
	return b.cfg
}

// Build lays out Count nodes inside width x height and connects them
func (b *Builder) Build(width, height float64) (*Store, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("build %gx%g: %w", width, height, ErrEmptyContainer)
	}

	nodes := make([]Node, max(b.cfg.Count, 0))
	for i := range nodes {
		nodes[i] = b.newNode(i, width, height)
	}

	edges := b.connect(nodes)
	return NewStore(width, height, nodes, edges), nil
}

func (b *Builder) newNode(i int, width, height float64) Node {
	rng := b.rng

	size := b.cfg.MinSize
	if span := b.cfg.MaxSize - b.cfg.MinSize; span > 0 {
		size += rng.Float64() * span
	}
	// Keep [size, dim-size] non-empty
	size = math.Min(size, math.Min(width, height)/2)

	pos := vmath.Vec2{
		X: size + rng.Float64()*(width-2*size),
		Y: size + rng.Float64()*(height-2*size),
	}
	vel := vmath.Vec2{
		X: (rng.Float64() - 0.5) * b.cfg.MaxSpeed,
		Y: (rng.Float64() - 0.5) * b.cfg.MaxSpeed,
	}

	kind := KindCircle
	if len(b.cfg.Kinds) > 0 {
		kind = b.cfg.Kinds[rng.IntN(len(b.cfg.Kinds))]
	}

	pulse := b.cfg.PulseMin
	if span := b.cfg.PulseMax - b.cfg.PulseMin; span > 0 {
		pulse += rng.Float64() * span
	}
	dir := 1.0
	if rng.Float64() < 0.5 {
		dir = -1
	}

	n := Node{
		ID:       fmt.Sprintf("node-%d", b.nextID),
		Kind:     kind,
		Size:     size,
		Pos:      pos,
		Vel:      vmath.ClampMagnitude2(vel, b.cfg.MaxSpeed),
		Pulse:    pulse,
		PulseDir: dir,
		Rotation: rng.Float64() * 2 * math.Pi,
	}
	b.nextID++

	if len(b.labels) > 0 {
		n.Label = b.labels[i%len(b.labels)]
	}
	return n
}

// connect links each node to its nearest neighbours within MaxDistance
// An edge is added only when the pair is new and both ends are below the cap
func (b *Builder) connect(nodes []Node) []Edge {
	k := b.cfg.MaxConnections
	maxDist := b.cfg.MaxDistance
	if len(nodes) < 2 || maxDist <= 0 || k <= 0 {
		return nil
	}

	points := make(nodePoints, len(nodes))
	for i := range nodes {
		points[i] = nodePoint{idx: i, x: nodes[i].Pos.X, y: nodes[i].Pos.Y}
	}
	// Tree construction reorders its input; queries use a separate copy
	queries := make([]nodePoint, len(points))
	copy(queries, points)
	tree := kdtree.New(points, false)

	degree := make([]int, len(nodes))
	seen := make(map[pairKey]struct{})
	var edges []Edge

	for _, q := range queries {
		candidates := nearestWithin(tree, q, maxDist)
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].distSq != candidates[j].distSq {
				return candidates[i].distSq < candidates[j].distSq
			}
			return candidates[i].idx < candidates[j].idx
		})
		if len(candidates) > k {
			candidates = candidates[:k]
		}

		a := q.idx
		for _, c := range candidates {
			key := makePairKey(nodes[a].ID, nodes[c.idx].ID)
			if _, dup := seen[key]; dup {
				continue
			}
			if degree[a] >= k || degree[c.idx] >= k {
				continue
			}
			seen[key] = struct{}{}
			degree[a]++
			degree[c.idx]++

			edges = append(edges, Edge{
				A:          nodes[a].ID,
				B:          nodes[c.idx].ID,
				Strength:   1 - math.Sqrt(c.distSq)/maxDist,
				BaseActive: b.rng.Float64() < b.cfg.BaseActiveProbability,
			})
		}
	}

	return edges
}
