package terminal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// tcellTerminal implements Terminal on a tcell screen
type tcellTerminal struct {
	screen    tcell.Screen
	colorMode ColorMode

	mu          sync.Mutex
	initialized bool
	finalized   bool
	mouseMode   MouseMode

	// Button mask of the previous mouse event, used to derive press/release edges
	// Only touched by the PollEvent goroutine
	lastButtons tcell.ButtonMask
}

// New creates a Terminal on the process tty
func New(colorMode ...ColorMode) (Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	c := DetectColorMode()
	if len(colorMode) > 0 {
		c = colorMode[0]
	}
	return NewWithScreen(screen, c), nil
}

// NewWithScreen wraps an existing tcell screen, such as a simulation screen in tests
func NewWithScreen(screen tcell.Screen, colorMode ColorMode) Terminal {
	return &tcellTerminal{screen: screen, colorMode: colorMode}
}

// Init enters raw mode and sets up terminal
func (t *tcellTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.HideCursor()
	t.screen.EnableFocus()
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	t.screen.Clear()

	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *tcellTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	if t.mouseMode != MouseModeNone {
		t.screen.DisableMouse()
	}
	t.screen.DisableFocus()
	t.screen.Fini()
	t.finalized = true
}

// Size returns current terminal dimensions
func (t *tcellTerminal) Size() (int, int) {
	return t.screen.Size()
}

// ColorMode returns detected color capability
func (t *tcellTerminal) ColorMode() ColorMode {
	return t.colorMode
}

// Flush writes cell buffer to terminal
// Frames composed for a stale size are dropped to avoid resize tearing
func (t *tcellTerminal) Flush(cells []Cell, width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	currW, currH := t.screen.Size()
	if currW != width || currH != height || len(cells) < width*height {
		return
	}

	for y := 0; y < height; y++ {
		row := cells[y*width : (y+1)*width]
		for x, c := range row {
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			t.screen.SetContent(x, y, r, nil, t.style(c))
		}
	}
	t.screen.Show()
}

func (t *tcellTerminal) style(c Cell) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(t.color(c.Fg)).
		Background(t.color(c.Bg))
	if c.Attrs == AttrNone {
		return st
	}
	return st.
		Bold(c.Attrs&AttrBold != 0).
		Dim(c.Attrs&AttrDim != 0).
		Reverse(c.Attrs&AttrReverse != 0)
}

func (t *tcellTerminal) color(c RGB) tcell.Color {
	if t.colorMode == ColorModeTrueColor {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.PaletteColor(int(RGBTo256(c)))
}

// Sync forces full redraw
func (t *tcellTerminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.screen.Sync()
}

// PollEvent blocks until next input event
func (t *tcellTerminal) PollEvent() Event {
	for {
		raw := t.screen.PollEvent()
		if raw == nil {
			return Event{Type: EventClosed}
		}
		if ev, ok := t.convert(raw); ok {
			return ev
		}
	}
}

// convert maps a tcell event, returns false for events with no counterpart
func (t *tcellTerminal) convert(raw tcell.Event) (Event, bool) {
	switch ev := raw.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true

	case *tcell.EventKey:
		return convertKey(ev), true

	case *tcell.EventMouse:
		return t.convertMouse(ev), true

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: ev.Focused}, true

	case *tcell.EventInterrupt:
		if posted, ok := ev.Data().(Event); ok {
			return posted, true
		}

	case *tcell.EventError:
		return Event{Type: EventError, Err: errors.New(ev.Error())}, true
	}
	return Event{}, false
}

// tcellKeys maps tcell special keys to Key
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyCtrlC:      KeyCtrlC,
	tcell.KeyCtrlL:      KeyCtrlL,
	tcell.KeyCtrlQ:      KeyCtrlQ,
	tcell.KeyCtrlR:      KeyCtrlR,
	tcell.KeyCtrlS:      KeyCtrlS,
}

func convertKey(ev *tcell.EventKey) Event {
	out := Event{Type: EventKey, Modifiers: convertMods(ev.Modifiers())}
	if ev.Key() == tcell.KeyRune {
		out.Key = KeyRune
		out.Rune = ev.Rune()
		return out
	}
	out.Key = tcellKeys[ev.Key()]
	return out
}

func convertMods(m tcell.ModMask) Modifier {
	var out Modifier
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	return out
}

// convertMouse derives press/release/drag/move from consecutive button masks
func (t *tcellTerminal) convertMouse(ev *tcell.EventMouse) Event {
	x, y := ev.Position()
	out := Event{Type: EventMouse, MouseX: x, MouseY: y, Modifiers: convertMods(ev.Modifiers())}

	btns := ev.Buttons()
	prev := t.lastButtons
	t.lastButtons = btns & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	switch {
	case btns&tcell.WheelUp != 0:
		out.MouseBtn, out.MouseAction = MouseBtnWheelUp, MouseActionPress
	case btns&tcell.WheelDown != 0:
		out.MouseBtn, out.MouseAction = MouseBtnWheelDown, MouseActionPress
	default:
		out.MouseBtn, out.MouseAction = buttonEdge(prev, btns)
	}
	return out
}

var buttonOrder = []struct {
	mask tcell.ButtonMask
	btn  MouseButton
}{
	{tcell.Button1, MouseBtnLeft},
	{tcell.Button3, MouseBtnMiddle},
	{tcell.Button2, MouseBtnRight},
}

func buttonEdge(prev, cur tcell.ButtonMask) (MouseButton, MouseAction) {
	for _, b := range buttonOrder {
		was, is := prev&b.mask != 0, cur&b.mask != 0
		switch {
		case is && !was:
			return b.btn, MouseActionPress
		case was && !is:
			return b.btn, MouseActionRelease
		case is:
			return b.btn, MouseActionDrag
		}
	}
	return MouseBtnNone, MouseActionMove
}

// PostEvent injects a synthetic event
func (t *tcellTerminal) PostEvent(ev Event) {
	// Queue full drops the event
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(ev))
}

// SetMouseMode enables or disables mouse reporting
func (t *tcellTerminal) SetMouseMode(mode MouseMode) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	t.mouseMode = mode
	if mode == MouseModeNone {
		t.screen.DisableMouse()
		return nil
	}

	var flags tcell.MouseFlags
	if mode&MouseModeClick != 0 {
		flags |= tcell.MouseButtonEvents
	}
	if mode&MouseModeDrag != 0 {
		flags |= tcell.MouseDragEvents
	}
	if mode&MouseModeMotion != 0 {
		flags |= tcell.MouseMotionEvents
	}
	t.screen.EnableMouse(flags)
	return nil
}
