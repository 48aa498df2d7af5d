package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/terminal"
	"github.com/lixenwraith/ideanet/vmath"
)

func TestBlendOps(t *testing.T) {
	black, white := RGB{}, RGB{R: 255, G: 255, B: 255}
	tests := []struct {
		name string
		got  RGB
		want RGB
	}{
		{"Blend zero alpha", Blend(black, white, 0), black},
		{"Blend full alpha", Blend(black, white, 1), white},
		{"Blend half", Blend(black, RGB{R: 200}, 0.5), RGB{R: 100}},
		{"Screen with black is identity", Screen(RGB{R: 80, G: 90, B: 100}, black, 1), RGB{R: 80, G: 90, B: 100}},
		{"Screen with white is white", Screen(RGB{R: 80}, white, 1), white},
		{"Screen half", Screen(black, RGB{R: 200}, 0.5), RGB{R: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestRenderBufferSet(t *testing.T) {
	buf := NewRenderBuffer(4, 3)
	buf.Clear(RGB{R: 10})

	buf.SetFgOnly(1, 1, 'x', RGB{G: 255}, terminal.AttrBold)
	c := buf.Cell(1, 1)
	if c.Rune != 'x' || c.Fg != (RGB{G: 255}) || c.Bg != (RGB{R: 10}) || c.Attrs != terminal.AttrBold {
		t.Errorf("SetFgOnly produced %+v", c)
	}

	buf.BlendBg(1, 1, RGB{B: 200}, BlendAlpha, 0.5)
	c = buf.Cell(1, 1)
	if c.Rune != 'x' || c.Fg != (RGB{G: 255}) || c.Bg != (RGB{R: 5, B: 100}) {
		t.Errorf("Alpha bg produced %+v", c)
	}

	buf.BlendBg(1, 1, RGB{R: 255, G: 255, B: 255}, BlendScreen, 1)
	if c = buf.Cell(1, 1); c.Bg != (RGB{R: 255, G: 255, B: 255}) || c.Rune != 'x' {
		t.Errorf("Screen bg produced %+v", c)
	}

	// Out of bounds writes are ignored
	buf.BlendBg(9, 9, RGB{}, BlendAlpha, 1)
	buf.SetFgOnly(-1, 0, 'y', RGB{}, terminal.AttrNone)

	buf.Resize(2, 2)
	if w, h := buf.Size(); w != 2 || h != 2 || len(buf.Cells()) != 4 {
		t.Errorf("Resize to 2x2 gave %dx%d with %d cells", w, h, len(buf.Cells()))
	}
}

func TestLineRune(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		faint  bool
		want   rune
	}{
		{"Horizontal", 10, 1, false, '─'},
		{"Vertical", 1, 10, false, '│'},
		{"Down right", 10, 10, false, '╲'},
		{"Up right", 10, -10, false, '╱'},
		{"Faint", 10, 0, true, '·'},
	}
	for _, tt := range tests {
		if got := lineRune(tt.dx, tt.dy, tt.faint); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCellCanvasDashedLine(t *testing.T) {
	buf := NewRenderBuffer(20, 1)
	cv := NewCellCanvas(buf, 10, 20, GlyphsUnicode)
	cv.Clear(RGB{})

	cv.Line(vmath.Vec2{X: 5, Y: 5}, vmath.Vec2{X: 195, Y: 5}, LineStyle{Color: RGB{R: 255}, Alpha: 0.4, Width: 1, Dashed: true})

	var pattern strings.Builder
	for x := 0; x < 20; x++ {
		if buf.Cell(x, 0).Rune == '─' {
			pattern.WriteByte('#')
		} else {
			pattern.WriteByte('.')
		}
	}
	if got, want := pattern.String(), "####..####..####..##"; got != want {
		t.Errorf("Dash pattern %s, want %s", got, want)
	}
}

func TestCellCanvasGlyphAndFallback(t *testing.T) {
	tests := []struct {
		name   string
		set    GlyphSet
		kind   graph.Kind
		wantOK bool
	}{
		{"Unicode star", GlyphsUnicode, graph.KindStar, true},
		{"Unicode circle", GlyphsUnicode, graph.KindCircle, false},
		{"ASCII note missing", GlyphsASCII, graph.KindNote, false},
		{"None set", GlyphsNone, graph.KindBulb, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewRenderBuffer(10, 10)
			cv := NewCellCanvas(buf, 10, 10, tt.set)
			ok := cv.Glyph(tt.kind, vmath.Vec2{X: 55, Y: 55}, 8, 0, RGB{G: 255}, 0.9)
			if ok != tt.wantOK {
				t.Fatalf("Glyph returned %v, want %v", ok, tt.wantOK)
			}
			r := buf.Cell(5, 5).Rune
			if ok && r == 0 {
				t.Error("Glyph reported drawn but cell is empty")
			}
			if !ok && r != 0 {
				t.Errorf("Failed glyph still wrote %q", r)
			}
		})
	}
}

func TestCellCanvasGlowBrightensCentre(t *testing.T) {
	buf := NewRenderBuffer(11, 11)
	cv := NewCellCanvas(buf, 10, 10, GlyphsUnicode)
	cv.Clear(RGB{R: 20, G: 20, B: 20})

	cv.Glow(vmath.Vec2{X: 55, Y: 55}, 40, RGB{B: 255}, 0.5)

	centre, edge, outside := buf.Cell(5, 5).Bg, buf.Cell(8, 5).Bg, buf.Cell(0, 0).Bg
	if centre.B <= edge.B {
		t.Errorf("Centre %v should be brighter than edge %v", centre, edge)
	}
	if outside != (RGB{R: 20, G: 20, B: 20}) {
		t.Errorf("Glow leaked outside its radius: %v", outside)
	}
}

func TestCellCanvasSize(t *testing.T) {
	cv := NewCellCanvas(NewRenderBuffer(80, 24), 8, 16, GlyphsUnicode)
	if w, h := cv.Size(); w != 640 || h != 384 {
		t.Errorf("Size = %fx%f, want 640x384", w, h)
	}
}

func TestFrameIndex(t *testing.T) {
	tests := []struct {
		rot  float64
		n    int
		want int
	}{
		{0, 4, 0},
		{1.6, 4, 1},
		{-0.1, 4, 3},
		{7, 4, 0},
		{3, 1, 0},
	}
	for _, tt := range tests {
		if got := frameIndex(tt.rot, tt.n); got != tt.want {
			t.Errorf("frameIndex(%f, %d) = %d, want %d", tt.rot, tt.n, got, tt.want)
		}
	}
}

func TestSVGCanvas(t *testing.T) {
	var out bytes.Buffer
	cv := NewSVGCanvas(&out, 500, 500)
	scene := NewScene(DefaultPalette)
	scene.Draw(cv, sampleStore(), map[string]struct{}{"a": {}})
	cv.Close()

	doc := out.String()
	for _, want := range []string{"<svg", "radialGradient", "stroke-dasharray:4,2", "<path", "</svg>"} {
		if !strings.Contains(doc, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
	// Two glow colors (primary for a, secondary for b and c) share gradients
	if n := strings.Count(doc, "<radialGradient"); n != 2 {
		t.Errorf("Expected 2 gradient definitions, got %d", n)
	}
}

func TestPNGCanvas(t *testing.T) {
	cv := NewPNGCanvas(200, 100)
	NewScene(DefaultPalette).Draw(cv, sampleStore(), nil)

	var out bytes.Buffer
	if err := cv.Encode(&out); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("PNG bounds %v", b)
	}
}

func TestParseColorAndPalette(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"#000f9f", RGB{B: 159, G: 15}, true},
		{"#fff", RGB{R: 255, G: 255, B: 255}, true},
		{"blue", RGB{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok || (tt.ok && got != tt.want) {
			t.Errorf("ParseColor(%q) = %v, %v", tt.in, got, err)
		}
	}

	p, err := NewPalette(PaletteSpec{Primary: "#000f9f"})
	if err != nil || p.Primary != (RGB{G: 15, B: 159}) || p.Secondary != DefaultPalette.Secondary {
		t.Errorf("NewPalette override = %+v, %v", p, err)
	}
	if _, err := NewPalette(PaletteSpec{Primary: "nope", Text: "#zz"}); err == nil ||
		!strings.Contains(err.Error(), "primary") || !strings.Contains(err.Error(), "text") {
		t.Errorf("Expected joined error naming both fields, got %v", err)
	}
}

func TestHUDStatusString(t *testing.T) {
	s := HUDStatus{Variant: "network", Nodes: 25, Edges: 30, Active: 2, Queued: 4, FPS: 59.7, Paused: true, Label: "Solar benches"}.String()
	for _, want := range []string{"network", "nodes 25", "edges 30", "lit 2", "queued 4", "60fps", "[paused]", "Solar benches"} {
		if !strings.Contains(s, want) {
			t.Errorf("HUD line %q missing %q", s, want)
		}
	}
}
