package core

import "image/color"

// Size describes the raster dimensions of a simulation surface.
type Size struct {
	W int
	H int
}

// Sim is the contract a host program drives once per frame.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step() error
	Cells() []uint8
}

// Paletted is implemented by sims whose cell values index a color palette.
type Paletted interface {
	Palette() []color.RGBA
}

// Igniter is implemented by sims that accept a point stimulus from input.
// Coordinates are in raster cells and may be fractional.
type Igniter interface {
	IgniteAt(x, y float64) error
}

// ModeCycler is implemented by sims with several display modes.
type ModeCycler interface {
	CycleMode()
	ModeName() string
}

// TickRater is implemented by sims whose step length follows a tick rate.
// Hosts pace Step calls at TPS steps per second and re-pace when it changes.
type TickRater interface {
	TPS() int
}

// Stat is one labelled live figure shown by hosts.
type Stat struct {
	Label string
	Value string
}

// StatsProvider exposes live figures for the HUD and terminal status line.
type StatsProvider interface {
	StatLines() []Stat
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
