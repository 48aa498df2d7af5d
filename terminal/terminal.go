package terminal

// Attr is a bitmask of text styles.
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << iota
	AttrDim
	AttrReverse
)

// Cell is one screen position: a glyph with its colors and style.
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Terminal is the screen the animation draws on and reads input from.
type Terminal interface {
	// Init takes over the screen. Fini gives it back and may be called more than once.
	Init() error
	Fini()

	Size() (width, height int)
	ColorMode() ColorMode

	// Flush paints a row-major frame of width*height cells. Frames that no
	// longer match the screen size are dropped.
	Flush(cells []Cell, width, height int)
	Sync()

	// PollEvent blocks for the next event. PostEvent queues a synthetic one.
	PollEvent() Event
	PostEvent(Event)

	SetMouseMode(mode MouseMode) error
}
