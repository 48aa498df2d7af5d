package activation

import (
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/ideanet/graph"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 7))
}

func defaultConfig() Config {
	return Config{
		MaxPerTick:       3,
		MaxFanout:        2,
		MinDelay:         10,
		MaxDelay:         40,
		DecayProbability: 0.02,
		MaxDepth:         3,
	}
}

// chain builds n nodes linked a-b-c-... on a 500x500 container
func chain(n int) *graph.Store {
	nodes := make([]graph.Node, n)
	edges := make([]graph.Edge, 0, n)
	for i := range nodes {
		nodes[i] = graph.Node{ID: nodeID(i)}
		if i > 0 {
			edges = append(edges, graph.Edge{A: nodeID(i - 1), B: nodeID(i)})
		}
	}
	return graph.NewStore(500, 500, nodes, edges)
}

func nodeID(i int) string {
	return "node-" + string(rune('a'+i))
}

func TestActivateIsolatedNode(t *testing.T) {
	s := graph.NewStore(500, 500, []graph.Node{{ID: "node-0"}}, nil)
	cfg := defaultConfig()
	cfg.DecayProbability = 0
	p := NewPropagator(cfg, testRand(1))

	p.Activate("node-0", 0)
	p.Tick(s)

	got := p.Active()
	if len(got) != 1 || got[0] != "node-0" {
		t.Fatalf("Active = %v, want [node-0]", got)
	}
	if p.QueueLen() != 0 {
		t.Errorf("Isolated node queued %d entries: %v", p.QueueLen(), p.Pending())
	}
	if p.Fired() != 1 {
		t.Errorf("Fired = %d, want 1", p.Fired())
	}
}

func TestFreshActivationSurvivesItsTick(t *testing.T) {
	s := graph.NewStore(500, 500, []graph.Node{{ID: "node-0"}}, nil)
	cfg := defaultConfig()
	cfg.DecayProbability = 1
	p := NewPropagator(cfg, testRand(2))

	p.Activate("node-0", 0)
	p.Tick(s)
	if !p.IsActive("node-0") {
		t.Fatal("Node must be visible for the frame it fired in")
	}
	p.Tick(s)
	if p.IsActive("node-0") {
		t.Error("Node should decay on the following frame with probability 1")
	}
}

func TestPerTickBackpressure(t *testing.T) {
	nodes := make([]graph.Node, 10)
	for i := range nodes {
		nodes[i] = graph.Node{ID: nodeID(i)}
	}
	s := graph.NewStore(500, 500, nodes, nil)
	cfg := defaultConfig()
	cfg.DecayProbability = 0
	p := NewPropagator(cfg, testRand(3))

	for i := range nodes {
		p.Activate(nodeID(i), 0)
	}

	tests := []struct {
		active  int
		pending int
	}{
		{3, 7},
		{6, 4},
		{9, 1},
		{10, 0},
	}
	for tick, tt := range tests {
		p.Tick(s)
		if p.ActiveCount() != tt.active || p.QueueLen() != tt.pending {
			t.Fatalf("Tick %d: active %d pending %d, want %d/%d",
				tick, p.ActiveCount(), p.QueueLen(), tt.active, tt.pending)
		}
	}
}

func TestUnboundedPerTick(t *testing.T) {
	nodes := make([]graph.Node, 8)
	for i := range nodes {
		nodes[i] = graph.Node{ID: nodeID(i)}
	}
	s := graph.NewStore(500, 500, nodes, nil)
	cfg := defaultConfig()
	cfg.MaxPerTick = 0
	cfg.DecayProbability = 0
	p := NewPropagator(cfg, testRand(4))
	for i := range nodes {
		p.Activate(nodeID(i), 0)
	}
	p.Tick(s)
	if p.ActiveCount() != len(nodes) {
		t.Errorf("ActiveCount = %d, want %d", p.ActiveCount(), len(nodes))
	}
}

func TestDelayCountsDown(t *testing.T) {
	s := graph.NewStore(500, 500, []graph.Node{{ID: "node-0"}}, nil)
	cfg := defaultConfig()
	cfg.DecayProbability = 0
	p := NewPropagator(cfg, testRand(5))

	p.Activate("node-0", 3)
	for tick := 0; tick < 3; tick++ {
		p.Tick(s)
		if p.IsActive("node-0") {
			t.Fatalf("Tick %d: fired before delay elapsed", tick)
		}
		pending := p.Pending()
		if len(pending) != 1 || pending[0].Delay != 2-tick {
			t.Fatalf("Tick %d: pending %v", tick, pending)
		}
	}
	p.Tick(s)
	if !p.IsActive("node-0") {
		t.Error("Expected activation once delay reached zero")
	}
}

func TestFanoutAndDelayRange(t *testing.T) {
	// Star: hub connected to five leaves
	nodes := []graph.Node{{ID: "hub"}}
	var edges []graph.Edge
	for i := 0; i < 5; i++ {
		nodes = append(nodes, graph.Node{ID: nodeID(i)})
		edges = append(edges, graph.Edge{A: "hub", B: nodeID(i)})
	}
	s := graph.NewStore(500, 500, nodes, edges)
	cfg := defaultConfig()
	cfg.DecayProbability = 0

	for seed := uint64(0); seed < 20; seed++ {
		p := NewPropagator(cfg, testRand(seed))
		p.Activate("hub", 0)
		p.Tick(s)

		pending := p.Pending()
		if len(pending) != cfg.MaxFanout {
			t.Fatalf("Seed %d: queued %d neighbours, want %d", seed, len(pending), cfg.MaxFanout)
		}
		seen := make(map[string]bool)
		for _, e := range pending {
			if e.NodeID == "hub" || seen[e.NodeID] {
				t.Errorf("Seed %d: bad neighbour entry %+v", seed, e)
			}
			seen[e.NodeID] = true
			if e.Delay < cfg.MinDelay || e.Delay > cfg.MaxDelay {
				t.Errorf("Seed %d: delay %d outside [%d, %d]", seed, e.Delay, cfg.MinDelay, cfg.MaxDelay)
			}
			if e.Depth != 1 {
				t.Errorf("Seed %d: depth %d, want 1", seed, e.Depth)
			}
		}
	}
}

func TestDepthCap(t *testing.T) {
	s := chain(8)
	cfg := defaultConfig()
	cfg.MinDelay, cfg.MaxDelay = 0, 0
	cfg.DecayProbability = 0
	cfg.MaxPerTick = 0
	cfg.MaxDepth = 2
	p := NewPropagator(cfg, testRand(6))

	p.Activate(nodeID(0), 0)
	for tick := 0; tick < 20; tick++ {
		p.Tick(s)
	}
	for i := 3; i < 8; i++ {
		if p.IsActive(nodeID(i)) {
			t.Errorf("Node %s is %d hops away but activated with MaxDepth 2", nodeID(i), i)
		}
	}
	for i := 0; i < 3; i++ {
		if !p.IsActive(nodeID(i)) {
			t.Errorf("Node %s within depth should be active", nodeID(i))
		}
	}
}

func TestCascadeTerminates(t *testing.T) {
	cfg := graph.BuildConfig{
		Count:          25,
		MaxDistance:    200,
		MaxConnections: 3,
		MaxSpeed:       0.3,
		MinSize:        16,
		MaxSize:        24,
		PulseMin:       0.4,
		PulseMax:       0.6,
		Kinds:          graph.AllKinds,
	}
	s, err := graph.NewBuilder(cfg, testRand(7)).Build(800, 600)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	p := NewPropagator(defaultConfig(), testRand(8))
	p.Activate(s.Nodes[0].ID, 0)
	for tick := 0; tick < 5000; tick++ {
		p.Tick(s)
		if p.QueueLen() == 0 && p.ActiveCount() == 0 {
			return
		}
	}
	t.Fatalf("Cascade still running after 5000 ticks: %d pending, %d active", p.QueueLen(), p.ActiveCount())
}

func TestResetClearsState(t *testing.T) {
	s := chain(4)
	p := NewPropagator(defaultConfig(), testRand(9))
	p.Activate(nodeID(0), 0)
	p.Activate(nodeID(1), 5)
	p.Tick(s)

	p.Reset()
	if p.ActiveCount() != 0 || p.QueueLen() != 0 {
		t.Errorf("Reset left %d active and %d pending", p.ActiveCount(), p.QueueLen())
	}
}

func TestStaleIDsDropped(t *testing.T) {
	old := chain(3)
	cfg := defaultConfig()
	cfg.DecayProbability = 0
	p := NewPropagator(cfg, testRand(10))
	p.Activate(nodeID(0), 0)
	p.Tick(old)
	p.Activate("ghost", 0)

	rebuilt := graph.NewStore(500, 500, []graph.Node{{ID: "fresh"}}, nil)
	p.Tick(rebuilt)

	if p.ActiveCount() != 0 {
		t.Errorf("Ids missing from the store stayed active: %v", p.Active())
	}
	if p.QueueLen() != 0 {
		t.Errorf("Entries for unknown ids were kept: %v", p.Pending())
	}
}
