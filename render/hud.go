package render

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/ideanet/vmath"
)

// HUDStatus is the data shown on the status line
type HUDStatus struct {
	Variant string
	Nodes   int
	Edges   int
	Active  int
	Queued  int
	FPS     float64
	Paused  bool
	Muted   bool
	Label   string // idea title of the node under the pointer
}

// String formats the status line
func (h HUDStatus) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, " %s  nodes %d  edges %d  lit %d  queued %d  %.0ffps",
		h.Variant, h.Nodes, h.Edges, h.Active, h.Queued, h.FPS)
	if h.Paused {
		b.WriteString("  [paused]")
	}
	if h.Muted {
		b.WriteString("  [muted]")
	}
	if h.Label != "" {
		b.WriteString("  » ")
		b.WriteString(h.Label)
	}
	return b.String()
}

// HUD draws the status line along the bottom edge
type HUD struct {
	visible bool
}

// NewHUD creates a HUD layer
func NewHUD(visible bool) *HUD {
	return &HUD{visible: visible}
}

// IsVisible implements VisibilityToggle
func (h *HUD) IsVisible() bool { return h.visible }

// Toggle flips visibility and returns the new state
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// hudInset keeps the line clear of the bottom edge in pixels
const hudInset = 4

// Render implements Layer
func (h *HUD) Render(ctx FrameContext, s Surface) {
	if ctx.HUD == nil {
		return
	}
	_, height := s.Size()
	s.Text(vmath.Vec2{X: hudInset, Y: height - hudInset}, ctx.HUD.String(), ctx.Palette.Text)
}
