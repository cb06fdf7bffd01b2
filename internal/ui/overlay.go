//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"firequad/internal/core"
	"firequad/internal/geom"
)

type leafRectProvider interface {
	LeafRects() []geom.Rect
}

type neighbourProvider interface {
	NeighbourRects(x, y float64) (geom.Rect, []geom.Rect, bool)
}

var (
	outlineColor   = color.RGBA{R: 30, G: 30, B: 36, A: 140}
	hoverColor     = color.RGBA{R: 255, G: 230, B: 90, A: 230}
	neighbourColor = color.RGBA{R: 80, G: 170, B: 240, A: 200}
)

// Overlay draws optional debugging visuals on top of the base simulation.
// Digit 1 toggles leaf outlines, digit 2 highlights the leaf under the cursor
// together with its neighbors.
type Overlay struct {
	sim            core.Sim
	scale          int
	showOutlines   bool
	showNeighbours bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers from keyboard input.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showOutlines = !o.showOutlines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showNeighbours = !o.showNeighbours
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showOutlines {
		if provider, ok := o.sim.(leafRectProvider); ok {
			for _, r := range provider.LeafRects() {
				o.drawRect(screen, r, 1, outlineColor)
			}
		}
	}
	if o.showNeighbours {
		if provider, ok := o.sim.(neighbourProvider); ok {
			mx, my := ebiten.CursorPosition()
			x := float64(mx) / float64(o.scale)
			y := float64(my) / float64(o.scale)
			if leaf, nbs, ok := provider.NeighbourRects(x, y); ok {
				for _, r := range nbs {
					o.drawRect(screen, r, 2, neighbourColor)
				}
				o.drawRect(screen, leaf, 2, hoverColor)
			}
		}
	}
}

// drawRect outlines r, given in raster cells, in screen space.
func (o *Overlay) drawRect(screen *ebiten.Image, r geom.Rect, thickness float64, col color.RGBA) {
	s := float64(o.scale)
	x0, y0 := r.Min.X*s, r.Min.Y*s
	x1, y1 := r.Max().X*s, r.Max().Y*s
	half := thickness / 2
	o.drawLine(screen, x0, y0+half, x1, y0+half, thickness, col)
	o.drawLine(screen, x0, y1-half, x1, y1-half, thickness, col)
	o.drawLine(screen, x0+half, y0, x0+half, y1, thickness, col)
	o.drawLine(screen, x1-half, y0, x1-half, y1, thickness, col)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
