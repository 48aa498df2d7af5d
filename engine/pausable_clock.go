package engine

import (
	"sync"
	"time"
)

// PausableClock derives simulation time from a source clock, frozen while paused
// The heartbeat reads this clock so a paused network does not fire on resume
type PausableClock struct {
	mu     sync.RWMutex
	source TimeProvider

	start      time.Time // source time at creation
	paused     bool
	pauseStart time.Time     // source time when the current pause began
	pausedFor  time.Duration // cumulative completed pauses
}

// NewPausableClock starts a running clock on source
func NewPausableClock(source TimeProvider) *PausableClock {
	return &PausableClock{source: source, start: source.Now()}
}

// Now returns simulation time: source time minus every paused interval
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	now := pc.source.Now()
	if pc.paused {
		now = pc.pauseStart
	}
	return now.Add(-pc.pausedFor)
}

// Pause freezes simulation time. No-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.source.Now()
}

// Resume continues simulation time from where it froze
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.pausedFor += pc.source.Now().Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	total := pc.pausedFor
	if pc.paused {
		total += pc.source.Now().Sub(pc.pauseStart)
	}
	return total
}
