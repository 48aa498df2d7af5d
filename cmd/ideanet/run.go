package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ideanet/audio"
	"github.com/lixenwraith/ideanet/config"
	"github.com/lixenwraith/ideanet/engine"
	"github.com/lixenwraith/ideanet/input"
	"github.com/lixenwraith/ideanet/render"
	"github.com/lixenwraith/ideanet/status"
	"github.com/lixenwraith/ideanet/terminal"
)

// runFlags override config values; nil fields were not given
type runFlags struct {
	fps         *int
	glyphs      *string
	colorMode   *string
	audio       *bool
	metricsAddr *string
	noHUD       *bool
}

func (f runFlags) apply(cfg *config.Config) {
	if f.fps != nil {
		cfg.Display.FPS = *f.fps
	}
	if f.glyphs != nil {
		cfg.Display.Glyphs = *f.glyphs
	}
	if f.colorMode != nil {
		cfg.Display.ColorMode = *f.colorMode
	}
	if f.audio != nil {
		cfg.Audio.Enabled = *f.audio
	}
	if f.metricsAddr != nil {
		cfg.Metrics.Addr = *f.metricsAddr
	}
	if f.noHUD != nil && *f.noHUD {
		cfg.Display.HUD = false
	}
}

func (a *app) runCmd() *cobra.Command {
	var (
		fps         int
		glyphs      string
		colorMode   string
		sound       bool
		metricsAddr string
		noHUD       bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Animate the idea network in the terminal (default)",
		Long: "Animate the idea network in the terminal.\n\n" +
			"Keys: space pulse, r rebuild, p pause, m mute, h status line, q quit.\n" +
			"Mouse: hover attracts nearby nodes, click sends a ripple.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rf runFlags
			fl := cmd.Flags()
			if fl.Changed("fps") {
				rf.fps = &fps
			}
			if fl.Changed("glyphs") {
				rf.glyphs = &glyphs
			}
			if fl.Changed("color") {
				rf.colorMode = &colorMode
			}
			if fl.Changed("audio") {
				rf.audio = &sound
			}
			if fl.Changed("metrics-addr") {
				rf.metricsAddr = &metricsAddr
			}
			if fl.Changed("no-hud") {
				rf.noHUD = &noHUD
			}
			return a.run(cmd.Context(), rf)
		},
	}
	f := cmd.Flags()
	f.IntVar(&fps, "fps", 30, "frames per second")
	f.StringVar(&glyphs, "glyphs", "unicode", "node symbols: unicode, ascii, none")
	f.StringVar(&colorMode, "color", "auto", "color mode: auto, truecolor, 256")
	f.BoolVar(&sound, "audio", false, "play ripple and pulse cues")
	f.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9464")
	f.BoolVar(&noHUD, "no-hud", false, "start with the status line hidden")
	return cmd
}

// run owns the terminal from Init to Fini. Panics on this goroutine are recovered here;
// the loop goroutines recover their own
func (a *app) run(ctx context.Context, rf runFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	rf.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags:\n%w", err)
	}

	ir, _, err := a.repositories()
	if err != nil {
		return err
	}
	opts, err := simulationOptions(cfg, ir.Titles())
	if err != nil {
		return err
	}
	keys, err := loadKeys(cfg.Keymap)
	if err != nil {
		return err
	}

	mode, _ := terminal.ParseColorMode(cfg.Display.ColorMode)
	glyphs, _ := render.ParseGlyphSet(cfg.Display.Glyphs)

	term, err := terminal.New(mode)
	if err != nil {
		return err
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer term.Fini()
	defer func() {
		if r := recover(); r != nil {
			term.Fini()
			fmt.Fprintf(a.stderr, "\n%s %v\nStack Trace:\n%s\n", bad.Sprint("ideanet crashed:"), r, debug.Stack())
			os.Exit(1)
		}
	}()

	if cfg.Pointer.Interactive {
		if err := term.SetMouseMode(terminal.MouseModeClick | terminal.MouseModeMotion); err != nil {
			a.log.Warn("mouse reporting unavailable", "error", err)
		}
	}

	player := a.startAudio(cfg)
	if sm, ok := player.(*audio.SoundManager); ok {
		defer sm.Cleanup()
	}

	metrics := status.NewMetrics()
	if cfg.Metrics.Addr != "" {
		stop, err := a.serveMetrics(cfg.Metrics.Addr, metrics)
		if err != nil {
			return err
		}
		defer stop()
	}

	rng, seed := newRand(cfg.Seed)
	a.log.Info("starting", "variant", cfg.Variant, "seed", seed, "nodes", cfg.Graph.Count, "fps", cfg.Display.FPS)

	sim := engine.NewSimulation(opts, rng, engine.NewMonotonicTimeProvider(), a.log)
	loop := engine.NewLoop(engine.LoopConfig{
		FrameInterval: cfg.FrameInterval(),
		CellWidth:     cfg.Display.CellWidth,
		CellHeight:    cfg.Display.CellHeight,
		Glyphs:        glyphs,
		KeyTable:      keys,
	}, term, sim, player, metrics, a.log)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loop.Start()
	defer loop.Stop()

	select {
	case <-loop.Done():
		a.log.Info("quit", "frames", sim.Frames())
	case <-ctx.Done():
		a.log.Info("signal", "frames", sim.Frames())
	}
	return nil
}

// startAudio falls back to silent cues when audio is off or the device cannot open
func (a *app) startAudio(cfg config.Config) audio.Player {
	if !cfg.Audio.Enabled {
		return &audio.Nop{}
	}
	sm := audio.NewSoundManager(cfg.AudioSettings())
	if err := sm.Initialize(); err != nil {
		a.log.Warn("audio initialization failed, continuing without audio", "error", err)
		return &audio.Nop{}
	}
	return sm
}

// serveMetrics listens before returning so a bad address fails the run up front
func (a *app) serveMetrics(addr string, m *status.Metrics) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server", "error", err)
		}
	}()
	a.log.Info("metrics listening", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}, nil
}

// loadKeys merges a TOML keymap file over the default bindings
func loadKeys(path string) (*input.KeyTable, error) {
	keys := input.DefaultKeyTable()
	if path == "" {
		return keys, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	return input.LoadKeyConfig(data, keys)
}
