package input

import (
	"fmt"
	"maps"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/ideanet/terminal"
)

// KeyTable maps keys to intents
type KeyTable struct {
	Keys  map[terminal.Key]IntentType
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[terminal.Key]IntentType{
			terminal.KeyEscape: IntentQuit,
			terminal.KeyCtrlC:  IntentQuit,
			terminal.KeyCtrlQ:  IntentQuit,
			terminal.KeyCtrlL:  IntentRedraw,
			terminal.KeyCtrlR:  IntentRebuild,
			terminal.KeyCtrlS:  IntentToggleMute,
			terminal.KeyF1:     IntentToggleHUD,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'r': IntentRebuild,
			' ': IntentPulse,
			'p': IntentPause,
			'h': IntentToggleHUD,
			'm': IntentToggleMute,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{Keys: maps.Clone(kt.Keys), Runes: maps.Clone(kt.Runes)}
}

// actionRegistry maps config action names to intents; "none" unbinds
var actionRegistry = map[string]IntentType{
	"none":        IntentNone,
	"quit":        IntentQuit,
	"redraw":      IntentRedraw,
	"rebuild":     IntentRebuild,
	"pulse":       IntentPulse,
	"pause":       IntentPause,
	"toggle_hud":  IntentToggleHUD,
	"toggle_mute": IntentToggleMute,
}

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// LoadKeyConfig parses a TOML keymap and merges it over base
// The document holds a [keys] table of key name to action name, e.g. `space = "pulse"`
func LoadKeyConfig(data []byte, base *KeyTable) (*KeyTable, error) {
	var doc struct {
		Keys map[string]string `toml:"keys"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	return MergeBindings(base, doc.Keys)
}

// MergeBindings applies name -> action overrides to a copy of base
// Single characters and rune aliases bind runes; anything else must be a terminal key name
func MergeBindings(base *KeyTable, bindings map[string]string) (*KeyTable, error) {
	result := base.Clone()
	for keyStr, actionName := range bindings {
		intent, ok := actionRegistry[strings.ToLower(strings.TrimSpace(actionName))]
		if !ok {
			return nil, fmt.Errorf("key %q: unknown action: %q", keyStr, actionName)
		}

		if r, ok := resolveRune(keyStr); ok {
			bind(result.Runes, r, intent)
			continue
		}
		k, ok := terminal.ParseKey(keyStr)
		if !ok {
			return nil, fmt.Errorf("unknown key name: %q", keyStr)
		}
		bind(result.Keys, k, intent)
	}
	return result, nil
}

func bind[K comparable](m map[K]IntentType, k K, intent IntentType) {
	if intent == IntentNone {
		delete(m, k)
		return
	}
	m[k] = intent
}

func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}
