package activation

import (
	"math/rand/v2"
	"time"
)

// Heartbeat fires at most once per Interval, each due beat passing with Probability
type Heartbeat struct {
	Interval    time.Duration
	Probability float64

	last time.Time
}

// NewHeartbeat creates a heartbeat whose first beat is due one interval after start
func NewHeartbeat(interval time.Duration, probability float64, start time.Time) *Heartbeat {
	return &Heartbeat{Interval: interval, Probability: probability, last: start}
}

// Fire reports whether a beat should trigger at now
// A due beat resets the interval whether or not the probability roll succeeds
func (h *Heartbeat) Fire(now time.Time, rng *rand.Rand) bool {
	if h.Interval <= 0 || h.Probability <= 0 {
		return false
	}
	if now.Sub(h.last) < h.Interval {
		return false
	}
	h.last = now
	return rng.Float64() < h.Probability
}

// Reset restarts the interval at now
func (h *Heartbeat) Reset(now time.Time) {
	h.last = now
}
