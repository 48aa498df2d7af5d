package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects the oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sample returns the wave value at phase in [0,1).
func (w WaveType) sample(phase float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveNoise:
		return rng.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * phase)
}

// NewOscillator streams duration worth of a mono wave at freq Hz.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	var (
		phase float64
		left  = rate.N(duration)
		step  = freq / float64(rate)
		rng   = rand.New(rand.NewPCG(uint64(freq*1000), 0x1dea))
	)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n := min(len(samples), left)
		for i := range n {
			v := wave.sample(phase, rng)
			samples[i] = [2]float64{v, v}
			phase = math.Mod(phase+step, 1)
		}
		left -= n
		return n, n > 0
	})
}

// envelope fades a stream in over attack samples and out over release samples.
type envelope struct {
	src             beep.Streamer
	pos, total      int
	attack, release int
}

// NewEnvelope bounds s to duration and applies a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		src:     s,
		total:   rate.N(duration),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (e *envelope) gain() float64 {
	if e.attack > 0 && e.pos < e.attack {
		return float64(e.pos) / float64(e.attack)
	}
	if tail := e.total - e.pos; e.release > 0 && tail <= e.release && e.pos >= e.attack {
		return float64(tail) / float64(e.release)
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.total {
		return 0, false
	}
	n, ok := e.src.Stream(samples[:min(len(samples), e.total-e.pos)])
	for i := range n {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.src.Err() }

// newVolume scales s linearly. Zero or less is silent since Log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

const (
	rippleDuration = 450 * time.Millisecond
	pulseDuration  = 220 * time.Millisecond
	sweepDuration  = 300 * time.Millisecond
)

// tone is an enveloped oscillator.
func tone(freq float64, wave WaveType, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// CueStreamer returns a fresh streamer for c at volume, or nil for an unknown cue.
func CueStreamer(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueRipple:
		// two partials, the octave decaying faster
		s = beep.Mix(
			newVolume(tone(660, WaveSine, rippleDuration, 5*time.Millisecond, 400*time.Millisecond, rate), 0.7),
			newVolume(tone(1320, WaveSine, rippleDuration, 5*time.Millisecond, 200*time.Millisecond, rate), 0.3),
		)
	case CuePulse:
		s = tone(220, WaveSine, pulseDuration, 10*time.Millisecond, 180*time.Millisecond, rate)
	case CueRebuild:
		s = newVolume(tone(0, WaveNoise, sweepDuration, 100*time.Millisecond, 180*time.Millisecond, rate), 0.25)
	default:
		return nil
	}
	return newVolume(s, volume)
}
