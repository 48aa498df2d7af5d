package render

import (
	"math"
	"reflect"
	"testing"

	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/vmath"
)

type drawCall struct {
	op     string
	kind   graph.Kind
	radius float64
	alpha  float64
	line   LineStyle
}

// recordingSurface logs every draw call; glyphs lists kinds it has assets for
type recordingSurface struct {
	calls  []drawCall
	glyphs map[graph.Kind]bool
}

func (r *recordingSurface) Size() (float64, float64) { return 500, 500 }
func (r *recordingSurface) Clear(RGB)                { r.calls = append(r.calls, drawCall{op: "clear"}) }
func (r *recordingSurface) Line(_, _ vmath.Vec2, st LineStyle) {
	r.calls = append(r.calls, drawCall{op: "line", line: st})
}
func (r *recordingSurface) Glow(_ vmath.Vec2, radius float64, _ RGB, alpha float64) {
	r.calls = append(r.calls, drawCall{op: "glow", radius: radius, alpha: alpha})
}
func (r *recordingSurface) Glyph(kind graph.Kind, _ vmath.Vec2, size, _ float64, _ RGB, alpha float64) bool {
	if !r.glyphs[kind] {
		return false
	}
	r.calls = append(r.calls, drawCall{op: "glyph", kind: kind, radius: size, alpha: alpha})
	return true
}
func (r *recordingSurface) Disc(_ vmath.Vec2, radius float64, _ RGB, alpha float64) {
	r.calls = append(r.calls, drawCall{op: "disc", radius: radius, alpha: alpha})
}
func (r *recordingSurface) Text(vmath.Vec2, string, RGB) {
	r.calls = append(r.calls, drawCall{op: "text"})
}

func (r *recordingSurface) ops() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.op
	}
	return out
}

func sampleStore() *graph.Store {
	nodes := []graph.Node{
		{ID: "a", Kind: graph.KindStar, Size: 10, Pos: vmath.Vec2{X: 100, Y: 100}, Pulse: 0.5},
		{ID: "b", Kind: graph.KindCircle, Size: 10, Pos: vmath.Vec2{X: 150, Y: 100}, Pulse: 0.5},
		{ID: "c", Kind: graph.KindNote, Size: 20, Pos: vmath.Vec2{X: 150, Y: 150}, Pulse: 0.4},
	}
	edges := []graph.Edge{
		{A: "a", B: "b", Strength: 0.5},
		{A: "b", B: "c", Strength: 0.5, BaseActive: true},
	}
	return graph.NewStore(500, 500, nodes, edges)
}

func TestDrawOrder(t *testing.T) {
	surf := &recordingSurface{glyphs: map[graph.Kind]bool{graph.KindStar: true, graph.KindNote: true}}
	NewScene(DefaultPalette).Draw(surf, sampleStore(), nil)

	want := []string{"clear", "line", "line", "glow", "glyph", "glow", "disc", "glow", "glyph"}
	if got := surf.ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("Draw order %v, want %v", got, want)
	}
}

func TestMissingGlyphFallsBackToDisc(t *testing.T) {
	surf := &recordingSurface{glyphs: map[graph.Kind]bool{}}
	NewScene(DefaultPalette).Draw(surf, sampleStore(), nil)

	discs := 0
	for _, c := range surf.calls {
		if c.op == "glyph" {
			t.Fatal("Glyph drawn by a surface with no assets")
		}
		if c.op == "disc" {
			discs++
		}
	}
	if discs != 3 {
		t.Errorf("Expected 3 fallback discs, got %d", discs)
	}
}

func TestEdgeStyles(t *testing.T) {
	surf := &recordingSurface{}
	active := map[string]struct{}{"a": {}}
	store := sampleStore()
	store.Edges = append(store.Edges, graph.Edge{A: "a", B: "c"})
	store.Edges[1].BaseActive = false
	NewScene(DefaultPalette).Draw(surf, store, active)

	var lines []LineStyle
	for _, c := range surf.calls {
		if c.op == "line" {
			lines = append(lines, c.line)
		}
	}
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	tests := []struct {
		name   string
		st     LineStyle
		dashed bool
	}{
		{"Endpoint a active", lines[0], true},
		{"Neither active", lines[1], false},
		{"Other endpoint active", lines[2], true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.st.Dashed != tt.dashed {
				t.Errorf("Dashed = %v, want %v", tt.st.Dashed, tt.dashed)
			}
			if tt.dashed && (tt.st.Alpha != edgeAlphaActive || tt.st.Width != edgeWidthActive) {
				t.Errorf("Active edge style %+v", tt.st)
			}
			if !tt.dashed && (tt.st.Alpha != edgeAlphaIdle || tt.st.Width != edgeWidthIdle) {
				t.Errorf("Idle edge style %+v", tt.st)
			}
		})
	}
}

func TestBaseActiveEdgeIsLit(t *testing.T) {
	st := EdgeStyle(DefaultPalette, graph.Edge{A: "x", B: "y", BaseActive: true}, FrameContext{})
	if !st.Dashed {
		t.Error("BaseActive edge drawn as idle")
	}
}

func TestStyleNode(t *testing.T) {
	n := &graph.Node{Size: 10, Pulse: 0.6}

	idle := StyleNode(DefaultPalette, n, false)
	lit := StyleNode(DefaultPalette, n, true)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Idle glow radius", idle.GlowRadius, 15},
		{"Active glow radius", lit.GlowRadius, 18},
		{"Idle alpha", idle.Alpha, 0.7},
		{"Active alpha", lit.Alpha, 0.9},
		{"Idle draw size", idle.DrawSize, 8},
		{"Idle disc pulses", idle.DiscRadius, 8 * 1.03},
		{"Active disc pulses", lit.DiscRadius, 9.6 * 1.03},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s = %f, want %f", tt.name, tt.got, tt.want)
		}
	}
	if lit.Color != DefaultPalette.Primary || idle.Color != DefaultPalette.Secondary {
		t.Error("Active nodes use primary, idle nodes secondary")
	}
}

func TestDrawDoesNotMutate(t *testing.T) {
	store := sampleStore()
	before := make([]graph.Node, len(store.Nodes))
	copy(before, store.Nodes)

	NewScene(DefaultPalette).Draw(&recordingSurface{}, store, map[string]struct{}{"b": {}})

	if !reflect.DeepEqual(before, store.Nodes) {
		t.Error("Rendering changed node state")
	}
}

func TestNilSurfaceAndStore(t *testing.T) {
	scene := NewScene(DefaultPalette)
	scene.Draw(nil, sampleStore(), nil)

	surf := &recordingSurface{}
	scene.Draw(surf, nil, nil)
	if got := surf.ops(); !reflect.DeepEqual(got, []string{"clear"}) {
		t.Errorf("Nil store should only clear, got %v", got)
	}
}

func TestLayerPriorityAndVisibility(t *testing.T) {
	scene := NewScene(DefaultPalette)
	hud := NewHUD(true)
	scene.Register(hud, PriorityHUD)

	surf := &recordingSurface{}
	scene.DrawFrame(surf, FrameContext{Store: sampleStore(), HUD: &HUDStatus{Variant: "network"}})
	ops := surf.ops()
	if ops[len(ops)-1] != "text" {
		t.Errorf("HUD should draw last, got %v", ops)
	}

	hud.Toggle()
	surf = &recordingSurface{}
	scene.DrawFrame(surf, FrameContext{Store: sampleStore(), HUD: &HUDStatus{}})
	for _, op := range surf.ops() {
		if op == "text" {
			t.Error("Hidden HUD was drawn")
		}
	}
}
