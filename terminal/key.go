package terminal

import "strings"

// Key is a special (non-printable) key. KeyRune means Event.Rune holds the character.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune

	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyF1
	KeyF2
	KeyF3
	KeyF4

	KeyCtrlC
	KeyCtrlL
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
)

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// keyNames lists the config name of every special key. The first name for a
// key is canonical; later entries are accepted aliases.
var keyNames = []struct {
	key  Key
	name string
}{
	{KeyEscape, "escape"}, {KeyEscape, "esc"},
	{KeyEnter, "enter"},
	{KeyTab, "tab"},
	{KeyBacktab, "backtab"},
	{KeyBackspace, "backspace"},
	{KeyDelete, "delete"},
	{KeyUp, "up"},
	{KeyDown, "down"},
	{KeyLeft, "left"},
	{KeyRight, "right"},
	{KeyHome, "home"},
	{KeyEnd, "end"},
	{KeyPageUp, "page_up"},
	{KeyPageDown, "page_down"},
	{KeyF1, "f1"}, {KeyF2, "f2"}, {KeyF3, "f3"}, {KeyF4, "f4"},
	{KeyCtrlC, "ctrl_c"},
	{KeyCtrlL, "ctrl_l"},
	{KeyCtrlQ, "ctrl_q"},
	{KeyCtrlR, "ctrl_r"},
	{KeyCtrlS, "ctrl_s"},
}

func (k Key) String() string {
	if k == KeyRune {
		return "rune"
	}
	for _, kn := range keyNames {
		if kn.key == k {
			return kn.name
		}
	}
	return "none"
}

// ParseKey resolves a config key name, ignoring case.
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(name)
	for _, kn := range keyNames {
		if kn.name == name {
			return kn.key, true
		}
	}
	return KeyNone, false
}
