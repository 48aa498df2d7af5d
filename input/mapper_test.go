package input

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/vmath"
)

type recordedActivation struct {
	id    string
	delay int
}

type recorder struct {
	calls []recordedActivation
}

func (r *recorder) Activate(id string, delay int) {
	r.calls = append(r.calls, recordedActivation{id, delay})
}

func defaultMapperConfig() MapperConfig {
	return MapperConfig{
		Interactive:       true,
		HoverRadius:       50,
		HoverProbability:  0.02,
		ClickRadiusFactor: 0.7,
		AttractionRadius:  200,
		ClickDelayDivisor: 10,
	}
}

func storeAt(positions map[string]vmath.Vec2) *graph.Store {
	nodes := make([]graph.Node, 0, len(positions))
	for id, p := range positions {
		nodes = append(nodes, graph.Node{ID: id, Pos: p, Size: 5})
	}
	return graph.NewStore(1000, 1000, nodes, nil)
}

func TestClickRipple(t *testing.T) {
	click := vmath.Vec2{X: 500, Y: 500}
	store := storeAt(map[string]vmath.Vec2{
		"center": {X: 500, Y: 500},
		"near":   {X: 535, Y: 500},
		"edge":   {X: 500, Y: 639.9},
		"border": {X: 640, Y: 500},
		"far":    {X: 900, Y: 900},
	})
	m := NewMapper(defaultMapperConfig(), rand.New(rand.NewPCG(1, 2)))
	rec := &recorder{}

	n := m.Click(click, store, rec)

	want := map[string]int{"center": 0, "near": 3, "edge": 13}
	if n != len(want) || len(rec.calls) != len(want) {
		t.Fatalf("Activated %d nodes %v, want %v", n, rec.calls, want)
	}
	for _, c := range rec.calls {
		delay, ok := want[c.id]
		if !ok {
			t.Errorf("Node %s outside the 140px radius was activated", c.id)
			continue
		}
		if c.delay != delay {
			t.Errorf("Node %s delay %d, want %d", c.id, c.delay, delay)
		}
	}
}

func TestClickDelayIsFloorOfDistance(t *testing.T) {
	m := NewMapper(defaultMapperConfig(), nil)
	for _, d := range []float64{0, 9.99, 10, 55.5, 139} {
		if got, want := m.clickDelay(d), int(math.Floor(d/10)); got != want {
			t.Errorf("clickDelay(%f) = %d, want %d", d, got, want)
		}
	}
}

func TestNonInteractiveIgnoresPointer(t *testing.T) {
	cfg := defaultMapperConfig()
	cfg.Interactive = false
	m := NewMapper(cfg, rand.New(rand.NewPCG(1, 2)))
	store := storeAt(map[string]vmath.Vec2{"a": {X: 10, Y: 10}})
	rec := &recorder{}

	m.Move(vmath.Vec2{X: 10, Y: 10})
	if m.Pointer().Active {
		t.Error("Pointer became active while non-interactive")
	}
	if m.Click(vmath.Vec2{X: 10, Y: 10}, store, rec) != 0 || len(rec.calls) != 0 {
		t.Error("Click activated nodes while non-interactive")
	}
}

func TestLeaveClearsTargets(t *testing.T) {
	store := storeAt(map[string]vmath.Vec2{"a": {X: 10, Y: 10}, "b": {X: 20, Y: 20}})
	for i := range store.Nodes {
		store.Nodes[i].SetTarget(vmath.Vec2{X: 1, Y: 1})
	}
	m := NewMapper(defaultMapperConfig(), nil)
	m.Move(vmath.Vec2{X: 5, Y: 5})
	m.Leave(store)

	if m.Pointer().Active {
		t.Error("Pointer still active after Leave")
	}
	for _, n := range store.Nodes {
		if n.Target != nil {
			t.Errorf("Node %s kept its target", n.ID)
		}
	}
}

func TestHoverOnlyNearPointer(t *testing.T) {
	cfg := defaultMapperConfig()
	cfg.HoverProbability = 1
	store := storeAt(map[string]vmath.Vec2{
		"under": {X: 100, Y: 100},
		"close": {X: 130, Y: 130},
		"away":  {X: 200, Y: 100},
	})
	m := NewMapper(cfg, rand.New(rand.NewPCG(3, 4)))
	rec := &recorder{}

	if m.Hover(store, rec) != 0 {
		t.Fatal("Hover without a pointer activated nodes")
	}

	m.Move(vmath.Vec2{X: 100, Y: 100})
	m.Hover(store, rec)
	got := make(map[string]bool)
	for _, c := range rec.calls {
		got[c.id] = true
		if c.delay != 0 {
			t.Errorf("Hover activation of %s has delay %d", c.id, c.delay)
		}
	}
	if !got["under"] || !got["close"] || got["away"] {
		t.Errorf("Hover activated %v", got)
	}
}

func TestNearest(t *testing.T) {
	store := storeAt(map[string]vmath.Vec2{"a": {X: 10, Y: 10}, "b": {X: 40, Y: 10}})
	m := NewMapper(defaultMapperConfig(), nil)

	if _, ok := m.Nearest(store, 100); ok {
		t.Error("Nearest found a node without a pointer")
	}
	m.Move(vmath.Vec2{X: 35, Y: 10})
	n, ok := m.Nearest(store, 100)
	if !ok || n.ID != "b" {
		t.Errorf("Nearest = %v, want b", n)
	}
	if _, ok := m.Nearest(store, 1); ok {
		t.Error("Nearest ignored maxDist")
	}
}

func TestCellCenter(t *testing.T) {
	got := CellCenter(3, 2, 8, 16)
	if got != (vmath.Vec2{X: 28, Y: 40}) {
		t.Errorf("CellCenter = %v, want {28 40}", got)
	}
}
