package main

import (
	"math/rand/v2"

	"github.com/lixenwraith/ideanet/config"
	"github.com/lixenwraith/ideanet/engine"
	"github.com/lixenwraith/ideanet/render"
)

// simulationOptions resolves a validated config into simulation options
func simulationOptions(cfg config.Config, labels []string) (engine.Options, error) {
	palette, err := render.NewPalette(cfg.PaletteSpec())
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Variant:              cfg.Variant,
		Build:                cfg.BuildConfig(),
		Physics:              cfg.PhysicsParams(),
		Mapper:               cfg.MapperConfig(),
		ActivationEnabled:    cfg.Activation.Enabled,
		Activation:           cfg.ActivationConfig(),
		HeartbeatInterval:    cfg.Activation.HeartbeatInterval,
		HeartbeatProbability: cfg.Activation.HeartbeatProbability,
		Palette:              palette,
		HUDVisible:           cfg.Display.HUD,
		Labels:               labels,
	}, nil
}

// newRand seeds from the config, or randomly when the seed is 0; the seed used is returned
func newRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}
