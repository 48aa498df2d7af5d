package physics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/vmath"
)

func defaultParams() Params {
	return Params{
		AttractionRadius:   200,
		AttractionStrength: 0.03,
		Smoothing:          0.1,
		BounceLead:         10,
		DriftScale:         0.5,
		PulseSpeed:         0.002,
		PulseMin:           0.4,
		PulseMax:           0.6,
		RotationStep:       0.0002,
	}
}

func buildStore(t *testing.T, seed uint64, count int, w, h float64) *graph.Store {
	t.Helper()
	cfg := graph.BuildConfig{
		Count:          count,
		MaxDistance:    100,
		MaxConnections: 3,
		MaxSpeed:       3, // fast enough to hit walls often
		MinSize:        10,
		MaxSize:        16,
		PulseMin:       0.4,
		PulseMax:       0.6,
		Kinds:          graph.AllKinds,
	}
	s, err := graph.NewBuilder(cfg, rand.New(rand.NewPCG(seed, 1))).Build(w, h)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return s
}

func assertContained(t *testing.T, s *graph.Store, tick int) {
	t.Helper()
	for _, n := range s.Nodes {
		if n.Pos.X < n.Size || n.Pos.X > s.Width-n.Size || n.Pos.Y < n.Size || n.Pos.Y > s.Height-n.Size {
			t.Fatalf("Tick %d: node %s at %v escaped bounds (size %f, container %fx%f)",
				tick, n.ID, n.Pos, n.Size, s.Width, s.Height)
		}
	}
}

func TestBoundaryContainmentFreeDrift(t *testing.T) {
	s := buildStore(t, 1, 10, 500, 500)
	st := NewStepper(defaultParams())

	for tick := 0; tick < 1000; tick++ {
		st.Step(s, Pointer{})
		assertContained(t, s, tick)
	}
}

func TestBoundaryContainmentWithPointer(t *testing.T) {
	s := buildStore(t, 2, 40, 300, 200)
	st := NewStepper(defaultParams())

	corners := []vmath.Vec2{{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 200}, {X: 0, Y: 200}, {X: -50, Y: 100}}
	for tick := 0; tick < 2000; tick++ {
		ptr := Pointer{Pos: corners[(tick/100)%len(corners)], Active: tick%300 < 250}
		st.Step(s, ptr)
		assertContained(t, s, tick)
	}
}

func TestPulseBoundedness(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"Idea network band", defaultParams()},
		{"Coarse step", func() Params { p := defaultParams(); p.PulseSpeed = 0.07; return p }()},
		{"Full band", func() Params {
			p := defaultParams()
			p.PulseMin, p.PulseMax, p.PulseSpeed = 0, 1, 0.01
			return p
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buildStore(t, 3, 15, 400, 400)
			st := NewStepper(tt.params)
			for tick := 0; tick < 5000; tick++ {
				st.Step(s, Pointer{})
				for _, n := range s.Nodes {
					if n.Pulse < tt.params.PulseMin || n.Pulse > tt.params.PulseMax {
						t.Fatalf("Tick %d: node %s pulse %f outside [%f, %f]",
							tick, n.ID, n.Pulse, tt.params.PulseMin, tt.params.PulseMax)
					}
				}
			}
		})
	}
}

func TestPulseDirectionFlips(t *testing.T) {
	n := graph.Node{ID: "n", Size: 5, Pos: vmath.Vec2{X: 50, Y: 50}, Pulse: 0.599, PulseDir: 1}
	s := graph.NewStore(100, 100, []graph.Node{n}, nil)
	st := NewStepper(defaultParams())

	st.Step(s, Pointer{})
	got := s.Nodes[0]
	if got.Pulse != 0.6 || got.PulseDir != -1 {
		t.Errorf("Expected pulse clamped to 0.6 with dir -1, got %f dir %f", got.Pulse, got.PulseDir)
	}
	if math.Abs(got.Rotation-(-0.0002)) > 1e-12 {
		t.Errorf("Rotation should follow pulse direction, got %g", got.Rotation)
	}
}

func TestPointerAttraction(t *testing.T) {
	n := graph.Node{ID: "n", Size: 5, Pos: vmath.Vec2{X: 100, Y: 100}, PulseDir: 1, Pulse: 0.5}
	s := graph.NewStore(400, 400, []graph.Node{n}, nil)
	st := NewStepper(defaultParams())

	ptr := Pointer{Pos: vmath.Vec2{X: 200, Y: 100}, Active: true}
	st.Step(s, ptr)

	got := s.Nodes[0]
	// force = (1 - 100/200) * 0.03 = 0.015 -> target.x = 101.5, eased by 0.1 -> 100.15
	if got.Target == nil {
		t.Fatal("Expected target to be set")
	}
	if math.Abs(got.Target.X-101.5) > 1e-9 {
		t.Errorf("Target.X = %f, want 101.5", got.Target.X)
	}
	if math.Abs(got.Pos.X-100.15) > 1e-9 || got.Pos.Y != 100 {
		t.Errorf("Pos = %v, want {100.15 100}", got.Pos)
	}
}

func TestPointerOutsideRadiusDrifts(t *testing.T) {
	n := graph.Node{ID: "n", Size: 5, Pos: vmath.Vec2{X: 50, Y: 50}, Vel: vmath.Vec2{X: 1, Y: 0}, PulseDir: 1, Pulse: 0.5}
	s := graph.NewStore(1000, 1000, []graph.Node{n}, nil)
	st := NewStepper(defaultParams())

	st.Step(s, Pointer{Pos: vmath.Vec2{X: 900, Y: 900}, Active: true})
	got := s.Nodes[0]
	if got.Target == nil || got.Target.X != 51 {
		t.Fatalf("Expected drift target at x=51, got %v", got.Target)
	}
	if math.Abs(got.Pos.X-50.1) > 1e-9 {
		t.Errorf("Pos.X = %f, want 50.1", got.Pos.X)
	}
}

func TestFreeDriftWithoutTarget(t *testing.T) {
	n := graph.Node{ID: "n", Size: 5, Pos: vmath.Vec2{X: 50, Y: 50}, Vel: vmath.Vec2{X: 0.5, Y: -0.25}, PulseDir: 1, Pulse: 0.5}
	s := graph.NewStore(100, 100, []graph.Node{n}, nil)
	NewStepper(defaultParams()).Step(s, Pointer{})

	got := s.Nodes[0]
	if got.Target != nil {
		t.Error("Free drift should not create a target")
	}
	if got.Pos != (vmath.Vec2{X: 50.25, Y: 49.875}) {
		t.Errorf("Pos = %v, want {50.25 49.875}", got.Pos)
	}
}

func TestReflectBounds(t *testing.T) {
	tests := []struct {
		name    string
		pos     vmath.Vec2
		vel     vmath.Vec2
		wantPos vmath.Vec2
		wantVel vmath.Vec2
		hit     bool
	}{
		{"Inside", vmath.Vec2{X: 50, Y: 50}, vmath.Vec2{X: 1, Y: 1}, vmath.Vec2{X: 50, Y: 50}, vmath.Vec2{X: 1, Y: 1}, false},
		{"Left wall", vmath.Vec2{X: 2, Y: 50}, vmath.Vec2{X: -1, Y: 1}, vmath.Vec2{X: 10, Y: 50}, vmath.Vec2{X: 1, Y: 1}, true},
		{"Right wall", vmath.Vec2{X: 95, Y: 50}, vmath.Vec2{X: 1, Y: 1}, vmath.Vec2{X: 90, Y: 50}, vmath.Vec2{X: -1, Y: 1}, true},
		{"Top wall", vmath.Vec2{X: 50, Y: 0}, vmath.Vec2{X: 1, Y: -2}, vmath.Vec2{X: 50, Y: 10}, vmath.Vec2{X: 1, Y: 2}, true},
		{"Corner", vmath.Vec2{X: 100, Y: 100}, vmath.Vec2{X: 1, Y: 1}, vmath.Vec2{X: 90, Y: 90}, vmath.Vec2{X: -1, Y: -1}, true},
		{"Wall but moving away", vmath.Vec2{X: 10, Y: 50}, vmath.Vec2{X: 1, Y: 0}, vmath.Vec2{X: 10, Y: 50}, vmath.Vec2{X: 1, Y: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := graph.Node{Size: 10, Pos: tt.pos, Vel: tt.vel}
			n.SetTarget(tt.pos)
			hit := ReflectBounds(&n, 100, 100, 10)
			if hit != tt.hit {
				t.Errorf("hit = %v, want %v", hit, tt.hit)
			}
			if n.Pos != tt.wantPos || n.Vel != tt.wantVel {
				t.Errorf("pos %v vel %v, want pos %v vel %v", n.Pos, n.Vel, tt.wantPos, tt.wantVel)
			}
			if tt.hit {
				want := vmath.V2Add(n.Pos, vmath.V2Scale(n.Vel, 10))
				// At least the reflected axis must point along the new velocity
				if n.Target.X != want.X && n.Target.Y != want.Y {
					t.Errorf("Target %v not re-aimed toward %v", *n.Target, want)
				}
			}
		})
	}
}
