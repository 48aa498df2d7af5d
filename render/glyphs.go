package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/lixenwraith/ideanet/graph"
)

// GlyphSet selects the terminal symbols used for node kinds
type GlyphSet uint8

const (
	GlyphsUnicode GlyphSet = iota
	GlyphsASCII
	GlyphsNone // every node falls back to a disc
)

var glyphSetNames = [...]string{
	GlyphsUnicode: "unicode",
	GlyphsASCII:   "ascii",
	GlyphsNone:    "none",
}

// String returns the config name of the set
func (g GlyphSet) String() string {
	if int(g) < len(glyphSetNames) {
		return glyphSetNames[g]
	}
	return "unknown"
}

// ParseGlyphSet resolves a config name
func ParseGlyphSet(name string) (GlyphSet, bool) {
	for i, n := range glyphSetNames {
		if strings.EqualFold(n, name) {
			return GlyphSet(i), true
		}
	}
	return GlyphsUnicode, false
}

// Rotation frames per kind; the frame shown is picked from the node's rotation angle
// Circles have no glyph on purpose: they draw as a pulsing disc
var unicodeFrames = map[graph.Kind][]rune{
	graph.KindBulb: {'✺', '✹', '✸', '✷'},
	graph.KindStar: {'★', '✦', '✧', '✶'},
	graph.KindNote: {'✎', '✐', '✏', '✍'},
}

// ASCII has no note symbol, notes fall back to a disc
var asciiFrames = map[graph.Kind][]rune{
	graph.KindBulb: {'o', 'O'},
	graph.KindStar: {'*', '+', 'x', '+'},
}

// Frames returns the rotation frames for kind, nil when the set has none
func (g GlyphSet) Frames(kind graph.Kind) []rune {
	switch g {
	case GlyphsUnicode:
		return unicodeFrames[kind]
	case GlyphsASCII:
		return asciiFrames[kind]
	}
	return nil
}

// frameIndex maps a rotation angle onto n evenly spaced frames
func frameIndex(rotation float64, n int) int {
	if n <= 1 {
		return 0
	}
	a := math.Mod(rotation, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return int(a/(2*math.Pi)*float64(n)) % n
}

// Glyph outlines on a 24x24 viewbox centred at (12,12), drawn stroked
var svgGlyphPaths = map[graph.Kind]string{
	graph.KindBulb: "M9 18h6v3a2 2 0 0 1-2 2h-2a2 2 0 0 1-2-2v-3z M6 18a6 6 0 1 1 12 0H6z M12 2v1 " +
		"M4 4.92l1 1.72 M20 4.92l-1 1.72 M2 12h1 M21 12h-1 M4.2 19.78l1-1.72 M18.8 19.78l-1-1.72",
	graph.KindStar: starPath(),
	graph.KindNote: "M14 2H8a2 2 0 0 0-2 2v16a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2V8l-6-6z M14 2 L14 8 L20 8 " +
		"M9 10 L15 10 M9 14 L15 14",
}

// starPoints is the star outline on the glyph box
var starPoints = [][2]float64{
	{12, 2}, {13.99, 8.267}, {20, 9.274}, {15.945, 13.53}, {16.961, 20},
	{12, 16.897}, {7.039, 20}, {8.055, 13.53}, {4, 9.274}, {10.01, 8.267},
}

// bulbRays are the light strokes around the bulb as x1,y1,x2,y2
var bulbRays = [][4]float64{
	{12, 2, 12, 3}, {4, 4.92, 5, 6.64}, {20, 4.92, 19, 6.64}, {2, 12, 3, 12}, {21, 12, 20, 12},
}

func starPath() string {
	var b strings.Builder
	for i, p := range starPoints {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(strconv.FormatFloat(p[0], 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p[1], 'f', -1, 64))
	}
	b.WriteString(" Z")
	return b.String()
}
