package fire

import (
	"image/color"
	"math"

	"firequad/internal/quadtree"
)

const (
	displayLevelMask  = 0x3f
	displayLevels     = displayLevelMask + 1
	displayBurningBit = 0x40
	displayModeBit    = 0x80
)

var (
	baseColor        = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	temperatureColor = color.NRGBA{R: 255, G: 100, B: 100, A: 255}
	fuelColor        = color.NRGBA{R: 100, G: 255, B: 100, A: 255}
	flameColor       = color.NRGBA{R: 255, G: 150, B: 40, A: 255}
)

var firePalette = buildFirePalette()

// Palette exposes the color palette used for rendering the fire world. The
// low six bits of a cell hold the intensity level, bit 6 marks a burning leaf
// and bit 7 selects the fuel ramp.
func (w *World) Palette() []color.RGBA {
	return firePalette
}

func buildFirePalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		level := float64(i&displayLevelMask) / float64(displayLevelMask)
		ramp := temperatureColor
		if i&displayModeBit != 0 {
			ramp = fuelColor
		}
		c := blendColors(baseColor, ramp, level)
		if i&displayBurningBit != 0 {
			c = blendColors(c, flameColor, 0.6)
		}
		palette[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	}
	return palette
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	w := overlayWeight
	inv := 1 - w
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*inv + float64(b)*w + 0.5)
	}
	return color.NRGBA{
		R: mix(base.R, overlay.R),
		G: mix(base.G, overlay.G),
		B: mix(base.B, overlay.B),
		A: mix(base.A, overlay.A),
	}
}

// level maps an attribute fraction onto the palette ramp.
func level(frac float64) uint8 {
	if math.IsNaN(frac) || frac <= 0 {
		return 0
	}
	if frac >= 1 {
		return displayLevelMask
	}
	return uint8(frac*float64(displayLevels-1) + 0.5)
}

func (w *World) leafValues() []uint8 {
	p := w.tree.Params()
	out := make([]uint8, len(w.leaves))
	for i, l := range w.leaves {
		var v uint8
		switch w.mode {
		case ModeTemperature:
			// Temperatures are rescaled by size so small and large leaves near
			// their own ignition threshold look alike.
			scale := 1 - l.Concentration()
			if scale > 0 && p.IgnitionTemp > 0 {
				v = level(l.Temperature() / scale / p.IgnitionTemp)
			} else if l.Temperature() > 0 {
				v = displayLevelMask
			}
		default:
			if p.InitialFuel > 0 {
				v = level(l.Fuel() / p.InitialFuel)
			}
			v |= displayModeBit
		}
		if l.State() == quadtree.Burning {
			v |= displayBurningBit
		}
		out[i] = v
	}
	return out
}

func (w *World) rebuildDisplay() {
	values := w.leafValues()
	cells := w.display.Cells()
	for i, owner := range w.owner {
		cells[i] = values[owner]
	}
}

// CycleMode switches to the next display mode.
func (w *World) CycleMode() {
	w.mode = (w.mode + 1) % modeCount
	w.rebuildDisplay()
}

// SetMode selects a display mode directly.
func (w *World) SetMode(m Mode) {
	if m < 0 || m >= modeCount {
		return
	}
	w.mode = m
	w.rebuildDisplay()
}

// Mode returns the active display mode.
func (w *World) Mode() Mode { return w.mode }

// ModeName returns the active display mode's name.
func (w *World) ModeName() string { return w.mode.String() }
