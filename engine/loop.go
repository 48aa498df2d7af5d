package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/lixenwraith/ideanet/audio"
	"github.com/lixenwraith/ideanet/input"
	"github.com/lixenwraith/ideanet/render"
	"github.com/lixenwraith/ideanet/status"
	"github.com/lixenwraith/ideanet/terminal"
)

// fpsSmoothing is the EMA weight of one frame in the displayed frame rate
const fpsSmoothing = 0.1

// LoopConfig sets the terminal mapping and frame rate
type LoopConfig struct {
	FrameInterval time.Duration
	CellWidth     float64 // container pixels per terminal column
	CellHeight    float64 // container pixels per terminal row
	Glyphs        render.GlyphSet
	KeyTable      *input.KeyTable // nil uses the default bindings
}

// Loop drives a Simulation on a fixed frame interval and feeds it terminal input
// One goroutine owns the simulation; a second only forwards terminal events
type Loop struct {
	cfg     LoopConfig
	term    terminal.Terminal
	sim     *Simulation
	machine *input.Machine
	sound   audio.Player
	metrics *status.Metrics
	log     *slog.Logger

	buf    *render.RenderBuffer
	canvas *render.CellCanvas

	fps       status.AtomicFloat
	lastFrame time.Time

	events   chan terminal.Event
	done     chan struct{}
	quitOnce sync.Once

	life     sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool

	// crash reporting, replaced in tests
	stderr io.Writer
	exit   func(int)
}

// NewLoop creates a stopped loop; sound and metrics may be nil
func NewLoop(cfg LoopConfig, term terminal.Terminal, sim *Simulation, sound audio.Player, metrics *status.Metrics, log *slog.Logger) *Loop {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = time.Second / 60
	}
	if sound == nil {
		sound = &audio.Nop{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	buf := render.NewRenderBuffer(0, 0)
	return &Loop{
		cfg:     cfg,
		term:    term,
		sim:     sim,
		machine: input.NewMachine(cfg.KeyTable),
		sound:   sound,
		metrics: metrics,
		log:     log,
		buf:     buf,
		canvas:  render.NewCellCanvas(buf, cfg.CellWidth, cfg.CellHeight, cfg.Glyphs),
		events:  make(chan terminal.Event, 64),
		done:    make(chan struct{}),
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// Start sizes the graph to the terminal and begins the frame and event goroutines
// Starting a running loop is a no-op; a stopped loop may be started again
func (l *Loop) Start() {
	l.life.Lock()
	defer l.life.Unlock()
	if l.running {
		return
	}
	l.running = true
	l.stopChan = make(chan struct{})

	w, h := l.term.Size()
	l.resize(w, h)
	l.log.Info("loop started", "cols", w, "rows", h, "interval", l.cfg.FrameInterval)

	l.wg.Add(2)
	go l.readEvents(l.stopChan)
	go l.run(l.stopChan)
}

// Stop halts both goroutines and waits for them. Stopping a loop that is not running is a no-op
func (l *Loop) Stop() {
	l.life.Lock()
	defer l.life.Unlock()
	if !l.running {
		return
	}
	l.running = false
	close(l.stopChan)
	// Wake the reader out of PollEvent
	l.term.PostEvent(terminal.Event{Type: terminal.EventClosed})
	l.wg.Wait()
	l.log.Info("loop stopped", "frames", l.sim.Frames())
}

// recoverCrash gives the terminal back before a panic in a loop goroutine ends the process
func (l *Loop) recoverCrash(where string) {
	r := recover()
	if r == nil {
		return
	}
	l.term.Fini()
	l.log.Error("loop crashed", "goroutine", where, "panic", r)
	fmt.Fprintf(l.stderr, "\r\nideanet %s crashed: %v\r\nStack Trace:\r\n%s\r\n", where, r, debug.Stack())
	l.exit(1)
}

// Done is closed when the user asks to quit or the terminal closes
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) quit() {
	l.quitOnce.Do(func() { close(l.done) })
}

// readEvents forwards terminal events until stopped or the terminal closes
func (l *Loop) readEvents(stop <-chan struct{}) {
	defer l.wg.Done()
	defer l.recoverCrash("event reader")
	for {
		ev := l.term.PollEvent()
		select {
		case l.events <- ev:
		case <-stop:
			return
		}
		if ev.Type == terminal.EventClosed {
			return
		}
	}
}

// run owns the simulation: every input event and every frame happen here
func (l *Loop) run(stop <-chan struct{}) {
	defer l.wg.Done()
	defer l.recoverCrash("frame loop")

	ticker := time.NewTicker(l.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case ev := <-l.events:
			if it := l.machine.Process(ev); it != nil {
				if !l.handle(*it) {
					l.quit()
					return
				}
			}
		case now := <-ticker.C:
			l.frame(now)
		}
	}
}

// handle applies one intent; returns false on quit
func (l *Loop) handle(it input.Intent) bool {
	switch it.Type {
	case input.IntentQuit:
		return false
	case input.IntentResize:
		l.resize(it.Width, it.Height)
	case input.IntentRedraw:
		l.term.Sync()
	case input.IntentRebuild:
		if l.sim.Rebuild() {
			l.sound.Play(audio.CueRebuild)
		}
	case input.IntentPulse:
		if l.sim.Pulse() != "" {
			l.sound.Play(audio.CuePulse)
		}
	case input.IntentPause:
		paused := l.sim.TogglePause()
		l.log.Debug("pause toggled", "paused", paused)
	case input.IntentToggleHUD:
		l.sim.ToggleHUD()
	case input.IntentToggleMute:
		l.sound.ToggleMute()
	case input.IntentPointerMove:
		l.sim.PointerMove(input.CellCenter(it.X, it.Y, l.cfg.CellWidth, l.cfg.CellHeight))
	case input.IntentPointerClick:
		if l.sim.PointerClick(input.CellCenter(it.X, it.Y, l.cfg.CellWidth, l.cfg.CellHeight)) > 0 {
			l.sound.Play(audio.CueRipple)
		}
	case input.IntentPointerLeave:
		l.sim.PointerLeave()
	}
	return true
}

// resize matches the buffer to the terminal and rebuilds the graph in pixel space
func (l *Loop) resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		l.log.Debug("terminal has no area", "cols", cols, "rows", rows)
		return
	}
	l.buf.Resize(cols, rows)
	l.sim.Resize(float64(cols)*l.cfg.CellWidth, float64(rows)*l.cfg.CellHeight)
}

// frame steps, draws and flushes once
func (l *Loop) frame(now time.Time) {
	start := time.Now()

	res := l.sim.Tick()
	if res.Heartbeat != "" {
		l.sound.Play(audio.CuePulse)
	}

	if !l.lastFrame.IsZero() {
		if dt := now.Sub(l.lastFrame).Seconds(); dt > 0 {
			l.metrics.SetFPS(l.fps.Smooth(1/dt, fpsSmoothing))
		}
	}
	l.lastFrame = now

	hud := l.sim.Status(l.fps.Get(), l.sound.Muted())
	l.sim.Draw(l.canvas, &hud)
	l.buf.FlushToTerminal(l.term)

	l.metrics.ObserveFrame(time.Since(start), l.sim.Snapshot())
}
