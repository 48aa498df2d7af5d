package render

import (
	"github.com/lixenwraith/ideanet/terminal"
)

// RenderBuffer holds one frame of cells in the row-major layout
// terminal.Flush expects, so a finished frame is handed over without copying.
type RenderBuffer struct {
	cells         []terminal.Cell
	width, height int
}

func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize reshapes the buffer, reusing its backing array when large enough,
// and clears it to black.
func (b *RenderBuffer) Resize(width, height int) {
	b.width, b.height = max(width, 0), max(height, 0)
	n := b.width * b.height
	if cap(b.cells) >= n {
		b.cells = b.cells[:n]
	} else {
		b.cells = make([]terminal.Cell, n)
	}
	b.Clear(terminal.RGBBlack)
}

func (b *RenderBuffer) Size() (int, int) { return b.width, b.height }

// Clear blanks every cell onto bg.
func (b *RenderBuffer) Clear(bg RGB) {
	blank := terminal.Cell{Fg: bg, Bg: bg}
	for i := range b.cells {
		b.cells[i] = blank
	}
}

// at returns the cell at x,y or nil off screen.
func (b *RenderBuffer) at(x, y int) *terminal.Cell {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return nil
	}
	return &b.cells[y*b.width+x]
}

// Cell returns a copy of the cell at x,y, the zero Cell off screen.
func (b *RenderBuffer) Cell(x, y int) terminal.Cell {
	if c := b.at(x, y); c != nil {
		return *c
	}
	return terminal.Cell{}
}

// BlendBg composites bg onto the background of the cell at x,y, leaving
// glyph, foreground and attrs alone.
func (b *RenderBuffer) BlendBg(x, y int, bg RGB, mode BlendMode, alpha float64) {
	if dst := b.at(x, y); dst != nil {
		dst.Bg = mode.apply(dst.Bg, bg, alpha)
	}
}

// SetFgOnly replaces glyph, foreground and attrs, keeping the background.
func (b *RenderBuffer) SetFgOnly(x, y int, r rune, fg RGB, attrs terminal.Attr) {
	if dst := b.at(x, y); dst != nil {
		dst.Rune, dst.Fg, dst.Attrs = r, fg, attrs
	}
}

func (b *RenderBuffer) Cells() []terminal.Cell { return b.cells }

func (b *RenderBuffer) FlushToTerminal(term terminal.Terminal) {
	term.Flush(b.cells, b.width, b.height)
}
