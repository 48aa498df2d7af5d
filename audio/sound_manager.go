// Package audio plays short synthesized cues for simulation events through the beep speaker.
// Audio is optional: when the device cannot be opened the manager stays silent.
package audio

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Cue identifies a sound event
type Cue int

const (
	CueRipple  Cue = iota // pointer click lit one or more nodes
	CuePulse              // heartbeat or manual pulse
	CueRebuild            // graph rebuilt
	cueCount
)

var cueNames = [cueCount]string{"ripple", "pulse", "rebuild"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return fmt.Sprintf("cue(%d)", int(c))
	}
	return cueNames[c]
}

// ParseCue resolves a cue by name
func ParseCue(name string) (Cue, bool) {
	for i, n := range cueNames {
		if strings.EqualFold(n, name) {
			return Cue(i), true
		}
	}
	return 0, false
}

// Player is what the frame loop needs from audio
type Player interface {
	Play(Cue)
	ToggleMute() bool // returns true when now muted
	Muted() bool
}

// Nop is a Player that never makes a sound
type Nop struct {
	muted atomic.Bool
}

func (n *Nop) Play(Cue) {}

func (n *Nop) ToggleMute() bool {
	v := !n.muted.Load()
	n.muted.Store(v)
	return v
}

func (n *Nop) Muted() bool { return n.muted.Load() }

// Config controls the sound manager
type Config struct {
	Enabled bool
	Volume  float64 // 0..1
	// Minimum spacing between two plays of the same cue
	Cooldown time.Duration
}

// device is the audio output the manager drives
type device struct {
	init         func(beep.SampleRate, int) error
	play         func(...beep.Streamer)
	lock, unlock func()
	close        func()
}

var speakerDevice = device{
	init:   speaker.Init,
	play:   speaker.Play,
	lock:   speaker.Lock,
	unlock: speaker.Unlock,
	close:  speaker.Close,
}

// SoundManager mixes cue streamers into the speaker
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	out         device
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool
	lastPlayed  [cueCount]time.Time
	now         func() time.Time
}

// NewSoundManager creates a manager; nothing plays until Initialize succeeds
func NewSoundManager(cfg Config) *SoundManager {
	sm := &SoundManager{cfg: cfg, out: speakerDevice, mixer: &beep.Mixer{}, now: time.Now}
	sm.muted.Store(!cfg.Enabled)
	return sm
}

// Initialize opens the speaker. Repeated calls are no-ops
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := sm.out.init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	sm.out.play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer and closes the audio device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.out.lock()
	sm.mixer.Clear()
	sm.out.unlock()
	sm.out.close()
	sm.initialized = false
}

// Play queues cue unless muted, uninitialized or still cooling down
func (sm *SoundManager) Play(c Cue) {
	if c < 0 || c >= cueCount || sm.muted.Load() {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.ready(c) {
		return
	}
	s := CueStreamer(c, sampleRate, sm.cfg.Volume)
	sm.out.lock()
	sm.mixer.Add(s)
	sm.out.unlock()
}

// ready applies the per-cue cooldown and records the play; caller holds mu
func (sm *SoundManager) ready(c Cue) bool {
	now := sm.now()
	if sm.cfg.Cooldown > 0 && now.Sub(sm.lastPlayed[c]) < sm.cfg.Cooldown {
		return false
	}
	sm.lastPlayed[c] = now
	return true
}

// ToggleMute flips mute and returns true when now muted
func (sm *SoundManager) ToggleMute() bool {
	v := !sm.muted.Load()
	sm.muted.Store(v)
	return v
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}
