package input

import "github.com/lixenwraith/ideanet/terminal"

// Machine parses terminal.Event into semantic Intent
type Machine struct {
	keyTable *KeyTable
}

// NewMachine creates a machine over the given bindings, nil uses the defaults
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt}
}

// Process parses a terminal event and returns an Intent
// Returns nil for events with no binding
func (m *Machine) Process(ev terminal.Event) *Intent {
	switch ev.Type {
	case terminal.EventResize:
		return &Intent{Type: IntentResize, Width: ev.Width, Height: ev.Height}
	case terminal.EventKey:
		return m.processKey(ev)
	case terminal.EventMouse:
		return m.processMouse(ev)
	case terminal.EventFocus:
		if !ev.Focused {
			return &Intent{Type: IntentPointerLeave}
		}
	case terminal.EventClosed, terminal.EventError:
		return &Intent{Type: IntentQuit}
	}
	return nil
}

func (m *Machine) processKey(ev terminal.Event) *Intent {
	var it IntentType
	var ok bool
	if ev.Key == terminal.KeyRune {
		it, ok = m.keyTable.Runes[ev.Rune]
	} else {
		it, ok = m.keyTable.Keys[ev.Key]
	}
	if !ok || it == IntentNone {
		return nil
	}
	return &Intent{Type: it}
}

func (m *Machine) processMouse(ev terminal.Event) *Intent {
	switch {
	case ev.MouseBtn == terminal.MouseBtnLeft && ev.MouseAction == terminal.MouseActionPress:
		return &Intent{Type: IntentPointerClick, X: ev.MouseX, Y: ev.MouseY}
	case ev.MouseAction == terminal.MouseActionMove,
		ev.MouseAction == terminal.MouseActionDrag,
		ev.MouseAction == terminal.MouseActionRelease:
		return &Intent{Type: IntentPointerMove, X: ev.MouseX, Y: ev.MouseY}
	}
	// Wheel and other buttons ignored
	return nil
}
