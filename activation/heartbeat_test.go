package activation

import (
	"testing"
	"time"
)

func TestHeartbeatInterval(t *testing.T) {
	start := time.Unix(1000, 0)
	h := NewHeartbeat(3*time.Second, 1, start)
	rng := testRand(11)

	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"Before interval", 2 * time.Second, false},
		{"At interval", 3 * time.Second, true},
		{"Right after beat", 4 * time.Second, false},
		{"Next interval", 6 * time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Fire(start.Add(tt.offset), rng); got != tt.want {
				t.Errorf("Fire at +%v = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestHeartbeatProbability(t *testing.T) {
	start := time.Unix(0, 0)
	rng := testRand(12)

	never := NewHeartbeat(time.Second, 0, start)
	for i := 1; i <= 50; i++ {
		if never.Fire(start.Add(time.Duration(i)*time.Second), rng) {
			t.Fatal("Zero probability heartbeat fired")
		}
	}

	h := NewHeartbeat(time.Second, 0.3, start)
	fired := 0
	for i := 1; i <= 2000; i++ {
		if h.Fire(start.Add(time.Duration(i)*time.Second), rng) {
			fired++
		}
	}
	if fired < 450 || fired > 750 {
		t.Errorf("Fired %d of 2000 beats at p=0.3", fired)
	}
}

func TestHeartbeatDisabled(t *testing.T) {
	start := time.Unix(0, 0)
	h := NewHeartbeat(0, 1, start)
	if h.Fire(start.Add(time.Hour), testRand(13)) {
		t.Error("Zero interval heartbeat fired")
	}
}

func TestHeartbeatReset(t *testing.T) {
	start := time.Unix(0, 0)
	h := NewHeartbeat(time.Second, 1, start)
	h.Reset(start.Add(5 * time.Second))
	if h.Fire(start.Add(5500*time.Millisecond), testRand(14)) {
		t.Error("Heartbeat fired before interval after reset")
	}
}
