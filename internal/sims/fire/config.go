package fire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"firequad/internal/quadtree"
)

// Layout selects how the surface is subdivided at reset.
type Layout string

const (
	// LayoutRandom subdivides randomly with decreasing probability per level.
	LayoutRandom Layout = "random"
	// LayoutUniform subdivides every node down to MaxDepth.
	LayoutUniform Layout = "uniform"
)

// Mode selects which leaf attribute is rendered.
type Mode int

const (
	ModeTemperature Mode = iota
	ModeFuel
	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeTemperature:
		return "temperature"
	case ModeFuel:
		return "fuel"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "temperature", "temp", "t":
		return ModeTemperature, true
	case "fuel", "f":
		return ModeFuel, true
	}
	return 0, false
}

// Config controls the fire surface and its simulation.
type Config struct {
	Width  int
	Height int

	Seed int64

	MaxDepth int
	Layout   Layout
	// TPS is the number of steps per simulated second; each step advances 1/TPS.
	TPS  int
	Mode Mode

	Params quadtree.Params
}

const maxDepthLimit = 12

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:    320,
		Height:   180,
		Seed:     1337,
		MaxDepth: 6,
		Layout:   LayoutRandom,
		TPS:      60,
		Mode:     ModeFuel,
		Params:   quadtree.DefaultParams(),
	}
}

// DT returns the simulated seconds per step.
func (c Config) DT() float64 {
	if c.TPS <= 0 {
		return 0
	}
	return 1 / float64(c.TPS)
}

// Validate reports configurations that cannot build a surface.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("fire: surface %dx%d must be positive", c.Width, c.Height))
	}
	if c.MaxDepth < 0 || c.MaxDepth > maxDepthLimit {
		errs = append(errs, fmt.Errorf("fire: max depth %d outside [0, %d]", c.MaxDepth, maxDepthLimit))
	}
	if c.Layout != LayoutRandom && c.Layout != LayoutUniform {
		errs = append(errs, fmt.Errorf("fire: unknown layout %q", c.Layout))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("fire: tps %d must be positive", c.TPS))
	}
	if err := c.Params.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["max_depth"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= maxDepthLimit {
			c.MaxDepth = parsed
		}
	}
	if v, ok := cfg["layout"]; ok {
		switch Layout(strings.ToLower(v)) {
		case LayoutRandom:
			c.Layout = LayoutRandom
		case LayoutUniform:
			c.Layout = LayoutUniform
		}
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TPS = parsed
		}
	}
	if v, ok := cfg["mode"]; ok {
		if m, ok := ParseMode(v); ok {
			c.Mode = m
		}
	}
	floatField := func(key string, dst *float64) {
		v, ok := cfg[key]
		if !ok {
			return
		}
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
	floatField("transmit_speed", &c.Params.TransmitSpeed)
	floatField("ignition_temp", &c.Params.IgnitionTemp)
	floatField("stimulus_temp", &c.Params.StimulusTemp)
	floatField("burn_rate", &c.Params.BurnRate)
	floatField("burn_temp_rate", &c.Params.BurnTempRate)
	floatField("initial_fuel", &c.Params.InitialFuel)
	return c
}
