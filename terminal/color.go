package terminal

import (
	"os"
	"slices"
	"strings"
)

// ColorMode is the palette the backend renders with.
type ColorMode uint8

const (
	ColorMode256 ColorMode = iota
	ColorModeTrueColor
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

var RGBBlack = RGB{}

func (c RGB) Equal(other RGB) bool { return c == other }

// xterm 6x6x6 cube levels, palette indices 16-231.
var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// cubeStep returns the index of the cube level nearest v.
func cubeStep(v int) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	}
	return (v - 35) / 40
}

func sqDist(c RGB, r, g, b int) int {
	dr, dg, db := int(c.R)-r, int(c.G)-g, int(c.B)-b
	return dr*dr + dg*dg + db*db
}

// RGBTo256 maps c to the nearest xterm-256 index, trying both the color
// cube and the 24-step gray ramp (232-255). Ties go to the cube.
func RGBTo256(c RGB) uint8 {
	r, g, b := cubeStep(int(c.R)), cubeStep(int(c.G)), cubeStep(int(c.B))
	cube := 16 + 36*r + 6*g + b
	cubeErr := sqDist(c, cubeLevels[r], cubeLevels[g], cubeLevels[b])

	mean := (int(c.R) + int(c.G) + int(c.B)) / 3
	step := min(max((mean-3)/10, 0), 23)
	level := 8 + 10*step
	if sqDist(c, level, level, level) < cubeErr {
		return uint8(232 + step)
	}
	return uint8(cube)
}

// Environment variables set only by terminals known to render 24-bit color.
var trueColorMarkers = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"WEZTERM_PANE",
}

// DetectColorMode guesses the palette from COLORTERM, TERM and
// terminal-specific environment markers.
func DetectColorMode() ColorMode {
	switch os.Getenv("COLORTERM") {
	case "truecolor", "24bit":
		return ColorModeTrueColor
	}
	if slices.ContainsFunc(trueColorMarkers, func(k string) bool { return os.Getenv(k) != "" }) {
		return ColorModeTrueColor
	}
	term := strings.ToLower(os.Getenv("TERM"))
	for _, s := range []string{"truecolor", "24bit", "direct"} {
		if strings.Contains(term, s) {
			return ColorModeTrueColor
		}
	}
	return ColorMode256
}

// ParseColorMode resolves a config value. "auto" or empty defers to DetectColorMode.
func ParseColorMode(name string) (ColorMode, bool) {
	switch strings.ToLower(name) {
	case "", "auto":
		return DetectColorMode(), true
	case "truecolor", "24bit":
		return ColorModeTrueColor, true
	case "256":
		return ColorMode256, true
	}
	return ColorMode256, false
}
