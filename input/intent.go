// Package input turns terminal events into simulation intents and maps pointer activity onto the
// graph: attraction target, hover sparks and click ripples.
package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit   // q, Esc, Ctrl+C
	IntentResize // Terminal resize event
	IntentRedraw // Ctrl+L

	// Simulation
	IntentRebuild   // r, Ctrl+R: rebuild graph at current size
	IntentPulse     // space: activate a random node
	IntentPause     // p: freeze physics and propagation
	IntentToggleHUD // h, F1
	IntentToggleMute

	// Pointer
	IntentPointerMove  // Motion or drag, cell coordinates in X/Y
	IntentPointerClick // Left press edge
	IntentPointerLeave // Focus lost
)

// Intent represents a parsed semantic action
// Pure data struct with no engine dependencies
type Intent struct {
	Type   IntentType
	X, Y   int // Cell coordinates for pointer intents
	Width  int // For IntentResize
	Height int
}
