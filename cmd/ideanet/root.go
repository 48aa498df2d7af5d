package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/ideanet/config"
	"github.com/lixenwraith/ideanet/ideas"
)

var version = "0.3.0"

// app carries the persistent flags and the resources built from them for one invocation
type app struct {
	configPath string
	seedPath   string
	logFile    string
	logLevel   string
	variant    string
	seed       uint64

	log      *slog.Logger
	logClose io.Closer
	runID    string

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "ideanet",
		Short: "ideanet, an animated idea network for the terminal",
		Long: brand.Sprint("ideanet") + " draws a drifting, pulsing network of ideas\n" +
			subtle.Sprint("Hover to attract nodes, click to send a ripple through the graph"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.openLog()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), runFlags{})
		},
	}
	root.SetVersionTemplate("ideanet {{ .Version }}\n")
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (.toml, .yaml)")
	pf.StringVar(&a.seedPath, "ideas", "", "idea box seed file (TOML); the built-in seed when empty")
	pf.StringVar(&a.logFile, "log-file", "", "write logs to this file; logs are discarded when empty")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&a.variant, "variant", "", "variant preset: network, neural, particle")
	pf.Uint64Var(&a.seed, "seed", 0, "random seed; 0 picks one")

	root.AddCommand(
		a.runCmd(),
		a.snapshotCmd(),
		a.ideasCmd(),
		a.questionsCmd(),
		a.configCmd(),
	)
	return root
}

// openLog sets up the logger; the terminal owns stdout while running, so logs only go to a file
func (a *app) openLog() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	a.runID = uuid.NewString()

	if a.logFile == "" {
		a.log = slog.New(slog.DiscardHandler)
		return nil
	}
	f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.logClose = f
	a.log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})).With("run", a.runID)
	return nil
}

func (a *app) closeLog() {
	if a.logClose != nil {
		a.logClose.Close()
		a.logClose = nil
	}
}

// loadConfig resolves preset, file, environment and flags, in that order
func (a *app) loadConfig() (config.Config, error) {
	// The variant picks the preset, so the environment is consulted for it up front
	variant := a.variant
	if variant == "" {
		variant = os.Getenv(config.EnvPrefix + "VARIANT")
	}

	var (
		cfg config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadVariant(a.configPath, variant)
	} else {
		cfg, err = config.Preset(variant)
	}
	if err != nil {
		return config.Config{}, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, err
	}
	if a.seed != 0 {
		cfg.Seed = a.seed
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config:\n%w", err)
	}
	return cfg, nil
}

// repositories builds the idea box, seeded from --ideas or the built-in content
func (a *app) repositories() (*ideas.IdeaRepository, *ideas.QuestionRepository, error) {
	ir := ideas.NewIdeaRepository(nil)
	qr := ideas.NewQuestionRepository(nil)
	var err error
	if a.seedPath != "" {
		err = ideas.SeedFile(a.seedPath, ir, qr)
	} else {
		err = ideas.SeedDefault(ir, qr)
	}
	if err != nil {
		return nil, nil, err
	}
	return ir, qr, nil
}
