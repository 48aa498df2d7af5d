// Package config defines every tunable of the idea network and resolves it from presets, files,
// environment variables and flags, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/ideanet/activation"
	"github.com/lixenwraith/ideanet/audio"
	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/input"
	"github.com/lixenwraith/ideanet/physics"
	"github.com/lixenwraith/ideanet/render"
	"github.com/lixenwraith/ideanet/terminal"
)

// Variant names
const (
	VariantNetwork  = "network"
	VariantNeural   = "neural"
	VariantParticle = "particle"
)

var (
	ErrUnknownVariant = errors.New("config: unknown variant")
	ErrUnknownFormat  = errors.New("config: unknown file format")
)

// Config is the complete, serialisable setup
type Config struct {
	Variant string `toml:"variant" yaml:"variant" env:"VARIANT"`
	Seed    uint64 `toml:"seed" yaml:"seed" env:"SEED"` // 0 draws a random seed
	Keymap  string `toml:"keymap" yaml:"keymap" env:"KEYMAP"`

	Graph      GraphConfig      `toml:"graph" yaml:"graph" envPrefix:"GRAPH_"`
	Physics    PhysicsConfig    `toml:"physics" yaml:"physics" envPrefix:"PHYSICS_"`
	Activation ActivationConfig `toml:"activation" yaml:"activation" envPrefix:"ACTIVATION_"`
	Pointer    PointerConfig    `toml:"pointer" yaml:"pointer" envPrefix:"POINTER_"`
	Colors     ColorConfig      `toml:"colors" yaml:"colors" envPrefix:"COLOR_"`
	Display    DisplayConfig    `toml:"display" yaml:"display" envPrefix:"DISPLAY_"`
	Audio      AudioConfig      `toml:"audio" yaml:"audio" envPrefix:"AUDIO_"`
	Metrics    MetricsConfig    `toml:"metrics" yaml:"metrics" envPrefix:"METRICS_"`
}

// GraphConfig shapes node generation and the proximity graph
type GraphConfig struct {
	Count                 int      `toml:"count" yaml:"count" env:"COUNT"`
	MaxDistance           float64  `toml:"max_distance" yaml:"max_distance" env:"MAX_DISTANCE"`
	MaxConnections        int      `toml:"max_connections" yaml:"max_connections" env:"MAX_CONNECTIONS"`
	MaxSpeed              float64  `toml:"max_speed" yaml:"max_speed" env:"MAX_SPEED"`
	MinSize               float64  `toml:"min_size" yaml:"min_size" env:"MIN_SIZE"`
	MaxSize               float64  `toml:"max_size" yaml:"max_size" env:"MAX_SIZE"`
	BaseActiveProbability float64  `toml:"base_active_probability" yaml:"base_active_probability" env:"BASE_ACTIVE_PROBABILITY"`
	Kinds                 []string `toml:"kinds" yaml:"kinds" env:"KINDS" envSeparator:","`
}

// PhysicsConfig tunes per-frame motion
type PhysicsConfig struct {
	AttractionRadius   float64 `toml:"attraction_radius" yaml:"attraction_radius" env:"ATTRACTION_RADIUS"`
	AttractionStrength float64 `toml:"attraction_strength" yaml:"attraction_strength" env:"ATTRACTION_STRENGTH"`
	Smoothing          float64 `toml:"smoothing" yaml:"smoothing" env:"SMOOTHING"`
	BounceLead         float64 `toml:"bounce_lead" yaml:"bounce_lead" env:"BOUNCE_LEAD"`
	DriftScale         float64 `toml:"drift_scale" yaml:"drift_scale" env:"DRIFT_SCALE"`
	PulseSpeed         float64 `toml:"pulse_speed" yaml:"pulse_speed" env:"PULSE_SPEED"`
	PulseMin           float64 `toml:"pulse_min" yaml:"pulse_min" env:"PULSE_MIN"`
	PulseMax           float64 `toml:"pulse_max" yaml:"pulse_max" env:"PULSE_MAX"`
	RotationStep       float64 `toml:"rotation_step" yaml:"rotation_step" env:"ROTATION_STEP"`
}

// ActivationConfig tunes propagation, decay and the heartbeat
type ActivationConfig struct {
	Enabled              bool          `toml:"enabled" yaml:"enabled" env:"ENABLED"`
	MaxPerTick           int           `toml:"max_per_tick" yaml:"max_per_tick" env:"MAX_PER_TICK"`
	MaxFanout            int           `toml:"max_fanout" yaml:"max_fanout" env:"MAX_FANOUT"`
	MinDelay             int           `toml:"min_delay" yaml:"min_delay" env:"MIN_DELAY"`
	MaxDelay             int           `toml:"max_delay" yaml:"max_delay" env:"MAX_DELAY"`
	DecayProbability     float64       `toml:"decay_probability" yaml:"decay_probability" env:"DECAY_PROBABILITY"`
	MaxDepth             int           `toml:"max_depth" yaml:"max_depth" env:"MAX_DEPTH"`
	HeartbeatInterval    time.Duration `toml:"heartbeat_interval" yaml:"heartbeat_interval" env:"HEARTBEAT_INTERVAL"`
	HeartbeatProbability float64       `toml:"heartbeat_probability" yaml:"heartbeat_probability" env:"HEARTBEAT_PROBABILITY"`
}

// PointerConfig tunes mouse interaction
type PointerConfig struct {
	Interactive       bool    `toml:"interactive" yaml:"interactive" env:"INTERACTIVE"`
	HoverRadius       float64 `toml:"hover_radius" yaml:"hover_radius" env:"HOVER_RADIUS"`
	HoverProbability  float64 `toml:"hover_probability" yaml:"hover_probability" env:"HOVER_PROBABILITY"`
	ClickRadiusFactor float64 `toml:"click_radius_factor" yaml:"click_radius_factor" env:"CLICK_RADIUS_FACTOR"`
	ClickDelayDivisor float64 `toml:"click_delay_divisor" yaml:"click_delay_divisor" env:"CLICK_DELAY_DIVISOR"`
}

// ColorConfig holds hex colours; empty keeps the default
type ColorConfig struct {
	Background string `toml:"background" yaml:"background" env:"BACKGROUND"`
	Primary    string `toml:"primary" yaml:"primary" env:"PRIMARY"`
	Secondary  string `toml:"secondary" yaml:"secondary" env:"SECONDARY"`
	Connection string `toml:"connection" yaml:"connection" env:"CONNECTION"`
	Text       string `toml:"text" yaml:"text" env:"TEXT"`
}

// DisplayConfig maps the container onto the terminal
type DisplayConfig struct {
	FPS        int     `toml:"fps" yaml:"fps" env:"FPS"`
	CellWidth  float64 `toml:"cell_width" yaml:"cell_width" env:"CELL_WIDTH"`
	CellHeight float64 `toml:"cell_height" yaml:"cell_height" env:"CELL_HEIGHT"`
	Glyphs     string  `toml:"glyphs" yaml:"glyphs" env:"GLYPHS"`
	ColorMode  string  `toml:"color_mode" yaml:"color_mode" env:"COLOR_MODE"`
	HUD        bool    `toml:"hud" yaml:"hud" env:"HUD"`
}

// AudioConfig enables the optional cues
type AudioConfig struct {
	Enabled  bool          `toml:"enabled" yaml:"enabled" env:"ENABLED"`
	Volume   float64       `toml:"volume" yaml:"volume" env:"VOLUME"`
	Cooldown time.Duration `toml:"cooldown" yaml:"cooldown" env:"COOLDOWN"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set
type MetricsConfig struct {
	Addr string `toml:"addr" yaml:"addr" env:"ADDR"`
}

// Default returns the idea-network preset
func Default() Config {
	c, _ := Preset(VariantNetwork)
	return c
}

// Preset returns the configuration of a named variant
func Preset(variant string) (Config, error) {
	c := Config{
		Variant: VariantNetwork,
		Graph: GraphConfig{
			Count:                 25,
			MaxDistance:           200,
			MaxConnections:        3,
			MaxSpeed:              0.3,
			MinSize:               10,
			MaxSize:               16,
			BaseActiveProbability: 0.2,
			Kinds:                 []string{"circle", "bulb", "star", "note"},
		},
		Physics: PhysicsConfig{
			AttractionRadius:   200,
			AttractionStrength: 0.03,
			Smoothing:          0.1,
			BounceLead:         10,
			DriftScale:         0.5,
			PulseSpeed:         0.002,
			PulseMin:           0.4,
			PulseMax:           0.6,
			RotationStep:       0.0002,
		},
		Activation: ActivationConfig{
			Enabled:              true,
			MaxPerTick:           3,
			MaxFanout:            2,
			MinDelay:             10,
			MaxDelay:             40,
			DecayProbability:     0.02,
			MaxDepth:             3,
			HeartbeatInterval:    3 * time.Second,
			HeartbeatProbability: 0.3,
		},
		Pointer: PointerConfig{
			Interactive:       true,
			HoverRadius:       50,
			HoverProbability:  0.02,
			ClickRadiusFactor: 0.7,
			ClickDelayDivisor: 10,
		},
		Display: DisplayConfig{
			FPS:        30,
			CellWidth:  10,
			CellHeight: 20,
			Glyphs:     render.GlyphsUnicode.String(),
			ColorMode:  "auto",
			HUD:        true,
		},
		Audio: AudioConfig{
			Volume:   0.5,
			Cooldown: 120 * time.Millisecond,
		},
	}

	switch strings.ToLower(variant) {
	case VariantNetwork, "":
	case VariantNeural:
		c.Variant = VariantNeural
		c.Graph.Count = 30
		c.Graph.MaxDistance = 150
		c.Graph.MaxConnections = 8
		c.Graph.MaxSpeed = 0.5
		c.Graph.MinSize = 2
		c.Graph.MaxSize = 5
		c.Graph.BaseActiveProbability = 0.3
		c.Graph.Kinds = []string{"circle"}
		c.Physics.PulseSpeed = 0.01
		c.Physics.PulseMin = 0
		c.Physics.PulseMax = 1
		c.Activation.DecayProbability = 0.05
		c.Activation.HeartbeatInterval = 2 * time.Second
		c.Activation.HeartbeatProbability = 1
	case VariantParticle:
		c.Variant = VariantParticle
		c.Graph.Count = 50
		c.Graph.MaxConnections = 0
		c.Graph.BaseActiveProbability = 0
		c.Graph.MinSize = 1
		c.Graph.MaxSize = 7
		c.Graph.Kinds = []string{"circle"}
		c.Activation.Enabled = false
		c.Pointer.HoverProbability = 0
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	return c, nil
}

// Validate reports every out-of-range field at once
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	switch c.Variant {
	case VariantNetwork, VariantNeural, VariantParticle:
	default:
		errs = append(errs, fmt.Errorf("variant: %w: %q", ErrUnknownVariant, c.Variant))
	}

	g := c.Graph
	check(g.Count >= 0, "graph.count must be >= 0, got %d", g.Count)
	check(g.MaxDistance >= 0, "graph.max_distance must be >= 0, got %g", g.MaxDistance)
	check(g.MaxConnections >= 0, "graph.max_connections must be >= 0, got %d", g.MaxConnections)
	check(g.MaxSpeed >= 0, "graph.max_speed must be >= 0, got %g", g.MaxSpeed)
	check(g.MinSize > 0 && g.MinSize <= g.MaxSize, "graph sizes must satisfy 0 < min_size <= max_size, got %g..%g", g.MinSize, g.MaxSize)
	check(inUnit(g.BaseActiveProbability), "graph.base_active_probability must be in [0,1], got %g", g.BaseActiveProbability)
	for _, k := range g.Kinds {
		_, ok := graph.ParseKind(k)
		check(ok, "graph.kinds: unknown kind %q", k)
	}

	p := c.Physics
	check(p.AttractionRadius > 0, "physics.attraction_radius must be > 0, got %g", p.AttractionRadius)
	check(p.Smoothing > 0 && p.Smoothing <= 1, "physics.smoothing must be in (0,1], got %g", p.Smoothing)
	check(p.DriftScale >= 0, "physics.drift_scale must be >= 0, got %g", p.DriftScale)
	check(inUnit(p.PulseMin) && inUnit(p.PulseMax) && p.PulseMin <= p.PulseMax,
		"physics pulse bounds must satisfy 0 <= pulse_min <= pulse_max <= 1, got %g..%g", p.PulseMin, p.PulseMax)
	check(p.PulseSpeed >= 0, "physics.pulse_speed must be >= 0, got %g", p.PulseSpeed)

	a := c.Activation
	check(a.MaxFanout >= 0, "activation.max_fanout must be >= 0, got %d", a.MaxFanout)
	check(a.MinDelay >= 0 && a.MinDelay <= a.MaxDelay, "activation delays must satisfy 0 <= min_delay <= max_delay, got %d..%d", a.MinDelay, a.MaxDelay)
	check(inUnit(a.DecayProbability), "activation.decay_probability must be in [0,1], got %g", a.DecayProbability)
	check(inUnit(a.HeartbeatProbability), "activation.heartbeat_probability must be in [0,1], got %g", a.HeartbeatProbability)
	check(a.HeartbeatInterval >= 0, "activation.heartbeat_interval must be >= 0, got %s", a.HeartbeatInterval)

	ptr := c.Pointer
	check(ptr.HoverRadius >= 0, "pointer.hover_radius must be >= 0, got %g", ptr.HoverRadius)
	check(inUnit(ptr.HoverProbability), "pointer.hover_probability must be in [0,1], got %g", ptr.HoverProbability)
	check(ptr.ClickRadiusFactor >= 0, "pointer.click_radius_factor must be >= 0, got %g", ptr.ClickRadiusFactor)

	d := c.Display
	check(d.FPS > 0, "display.fps must be > 0, got %d", d.FPS)
	check(d.CellWidth > 0 && d.CellHeight > 0, "display cell size must be positive, got %gx%g", d.CellWidth, d.CellHeight)
	_, ok := render.ParseGlyphSet(d.Glyphs)
	check(ok, "display.glyphs: unknown glyph set %q", d.Glyphs)
	_, ok = terminal.ParseColorMode(d.ColorMode)
	check(ok, "display.color_mode: unknown color mode %q", d.ColorMode)

	if _, err := render.NewPalette(c.PaletteSpec()); err != nil {
		errs = append(errs, fmt.Errorf("colors: %w", err))
	}

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0,1], got %g", c.Audio.Volume)

	return errors.Join(errs...)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// BuildConfig converts to the graph builder's parameters
func (c Config) BuildConfig() graph.BuildConfig {
	kinds := make([]graph.Kind, 0, len(c.Graph.Kinds))
	for _, name := range c.Graph.Kinds {
		if k, ok := graph.ParseKind(name); ok {
			kinds = append(kinds, k)
		}
	}
	return graph.BuildConfig{
		Count:                 c.Graph.Count,
		MaxDistance:           c.Graph.MaxDistance,
		MaxConnections:        c.Graph.MaxConnections,
		MaxSpeed:              c.Graph.MaxSpeed,
		MinSize:               c.Graph.MinSize,
		MaxSize:               c.Graph.MaxSize,
		BaseActiveProbability: c.Graph.BaseActiveProbability,
		PulseMin:              c.Physics.PulseMin,
		PulseMax:              c.Physics.PulseMax,
		Kinds:                 kinds,
	}
}

// PhysicsParams converts to the stepper's parameters
// A non-interactive setup has no attraction
func (c Config) PhysicsParams() physics.Params {
	strength := c.Physics.AttractionStrength
	if !c.Pointer.Interactive {
		strength = 0
	}
	return physics.Params{
		AttractionRadius:   c.Physics.AttractionRadius,
		AttractionStrength: strength,
		Smoothing:          c.Physics.Smoothing,
		BounceLead:         c.Physics.BounceLead,
		DriftScale:         c.Physics.DriftScale,
		PulseSpeed:         c.Physics.PulseSpeed,
		PulseMin:           c.Physics.PulseMin,
		PulseMax:           c.Physics.PulseMax,
		RotationStep:       c.Physics.RotationStep,
	}
}

// ActivationConfig converts to the propagator's parameters
func (c Config) ActivationConfig() activation.Config {
	a := c.Activation
	return activation.Config{
		MaxPerTick:       a.MaxPerTick,
		MaxFanout:        a.MaxFanout,
		MinDelay:         a.MinDelay,
		MaxDelay:         a.MaxDelay,
		DecayProbability: a.DecayProbability,
		MaxDepth:         a.MaxDepth,
	}
}

// MapperConfig converts to the interaction mapper's parameters
func (c Config) MapperConfig() input.MapperConfig {
	p := c.Pointer
	return input.MapperConfig{
		Interactive:       p.Interactive,
		HoverRadius:       p.HoverRadius,
		HoverProbability:  p.HoverProbability,
		ClickRadiusFactor: p.ClickRadiusFactor,
		AttractionRadius:  c.Physics.AttractionRadius,
		ClickDelayDivisor: p.ClickDelayDivisor,
	}
}

// PaletteSpec converts the colour section
func (c Config) PaletteSpec() render.PaletteSpec {
	return render.PaletteSpec{
		Background: c.Colors.Background,
		Primary:    c.Colors.Primary,
		Secondary:  c.Colors.Secondary,
		Connection: c.Colors.Connection,
		Text:       c.Colors.Text,
	}
}

// AudioSettings converts to the sound manager's parameters
func (c Config) AudioSettings() audio.Config {
	return audio.Config{Enabled: c.Audio.Enabled, Volume: c.Audio.Volume, Cooldown: c.Audio.Cooldown}
}

// FrameInterval is the duration of one frame
func (c Config) FrameInterval() time.Duration {
	if c.Display.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.Display.FPS)
}
