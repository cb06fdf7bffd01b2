package quadtree

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is wrapped by Params.Validate failures.
var ErrInvalidParams = errors.New("quadtree: invalid simulation params")

// Params holds the tunables of the diffusion and combustion model.
type Params struct {
	// TransmitSpeed scales heat flow between cells, per second.
	TransmitSpeed float64
	// IgnitionTemp is the ignition threshold before size scaling.
	IgnitionTemp float64
	// StimulusTemp is the temperature injected by an ignition stimulus before
	// size scaling.
	StimulusTemp float64
	// BurnRate is fuel consumed per second while burning.
	BurnRate float64
	// BurnTempRate is heat produced per second while burning before size scaling.
	BurnTempRate float64
	// InitialFuel is the fuel of a fresh leaf.
	InitialFuel float64
}

// DefaultParams returns the reference tuning.
func DefaultParams() Params {
	return Params{
		TransmitSpeed: 1,
		IgnitionTemp:  200,
		StimulusTemp:  300,
		BurnRate:      0.5,
		BurnTempRate:  250,
		InitialFuel:   100,
	}
}

// Validate rejects negative or non-finite values.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"transmit speed", p.TransmitSpeed},
		{"ignition temp", p.IgnitionTemp},
		{"stimulus temp", p.StimulusTemp},
		{"burn rate", p.BurnRate},
		{"burn temp rate", p.BurnTempRate},
		{"initial fuel", p.InitialFuel},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: %s = %g", ErrInvalidParams, f.name, f.value)
		}
	}
	return nil
}
