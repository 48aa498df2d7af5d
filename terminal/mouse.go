package terminal

// MouseButton identifies the button behind a mouse event. Wheel ticks are
// reported as presses of the two wheel pseudo-buttons.
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

func (b MouseButton) String() string {
	return nameOf(b, "None", "Left", "Middle", "Right", "WheelUp", "WheelDown")
}

// MouseAction is the edge a mouse event reports. Move carries no button;
// Drag is motion with a button held.
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

func (a MouseAction) String() string {
	return nameOf(a, "None", "Press", "Release", "Move", "Drag")
}

// MouseMode selects which mouse events the backend reports.
type MouseMode uint8

const (
	MouseModeNone  MouseMode = 0
	MouseModeClick MouseMode = 1 << (iota - 1)
	MouseModeDrag
	MouseModeMotion
)

func nameOf[T ~uint8](v T, names ...string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return names[0]
}
