//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"firequad/internal/core"
)

var (
	titleColor    = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	panelColor    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	buttonOn      = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff     = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonTextOn  = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	buttonTextOff = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

const (
	hudPad        = 12
	rowHeight     = 36
	buttonSide    = 24
	buttonSpacing = 6
	titleBaseline = hudPad + 18
	rowsTop       = titleBaseline + 14
	rowBaseline   = 24
	statsGap      = 20
	statSpacing   = 16
)

// HUD renders the control and statistics panel to the right of the view.
type HUD struct {
	sim    core.Sim
	width  int
	title  string
	rows   []hudRow
	stats  []core.Stat
	offset int

	ints   core.IntParameterSetter
	floats core.FloatParameterSetter

	panel *ebiten.Image
	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: "Controls"}
	if name := sim.Name(); name != "" {
		h.title = cases.Title(language.English).String(name) + " Controls"
	}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			if ctrl.Type == core.ParamTypeInt || ctrl.Type == core.ParamTypeFloat {
				h.rows = append(h.rows, hudRow{ctrl: ctrl})
			}
		}
	}
	h.ints, _ = sim.(core.IntParameterSetter)
	h.floats, _ = sim.(core.FloatParameterSetter)
	return h
}

// Width reports the panel width in screen pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes row values and statistics and handles clicks on the
// +/- buttons. offsetX is the panel's left edge in screen space.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offset = offsetX
	if provider, ok := h.sim.(core.StatsProvider); ok {
		h.stats = provider.StatLines()
	}
	var snapshot core.ParameterSnapshot
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		snapshot = provider.Parameters()
	}
	for i := range h.rows {
		row := &h.rows[i]
		param, ok := snapshot.Lookup(row.ctrl.Key)
		if !ok {
			row.known = false
			continue
		}
		v, err := strconv.ParseFloat(param.Value, 64)
		row.value, row.known = v, err == nil
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		h.click(image.Pt(mx-h.offset, my))
	}
}

func (h *HUD) click(p image.Point) {
	for i := range h.rows {
		minus, plus := h.buttons(i)
		switch {
		case p.In(minus):
			h.press(&h.rows[i], -1)
		case p.In(plus):
			h.press(&h.rows[i], 1)
		default:
			continue
		}
		return
	}
}

func (h *HUD) press(row *hudRow, direction float64) {
	v, ok := row.next(direction)
	if !ok || !h.canSet(row) {
		return
	}
	applied := false
	if row.ctrl.Type == core.ParamTypeInt {
		v = math.Round(v)
		applied = h.ints.SetIntParameter(row.ctrl.Key, int(v))
	} else {
		applied = h.floats.SetFloatParameter(row.ctrl.Key, v)
	}
	if applied {
		row.value = v
	}
}

func (h *HUD) canSet(row *hudRow) bool {
	if row.ctrl.Type == core.ParamTypeInt {
		return h.ints != nil
	}
	return h.floats != nil
}

// buttons returns the minus and plus rectangles of row i in panel space.
func (h *HUD) buttons(i int) (image.Rectangle, image.Rectangle) {
	y := rowsTop + i*rowHeight + (rowHeight-buttonSide)/2
	plusX := h.width - hudPad - buttonSide
	minusX := plusX - buttonSpacing - buttonSide
	return image.Rect(minusX, y, minusX+buttonSide, y+buttonSide),
		image.Rect(plusX, y, plusX+buttonSide, y+buttonSide)
}

// Draw paints the HUD panel at offsetX, matching the height of the scaled view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, hudPad, titleBaseline, titleColor)
	y := rowsTop
	if len(h.rows) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, hudPad, titleBaseline+rowHeight, mutedColor)
		y = titleBaseline + rowHeight
	}
	for i := range h.rows {
		h.drawRow(i)
		y += rowHeight
	}
	h.drawStats(y + statsGap)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawRow(i int) {
	row := &h.rows[i]
	face := basicfont.Face7x13
	minus, plus := h.buttons(i)
	baseline := rowsTop + i*rowHeight + rowBaseline
	text.Draw(h.panel, row.ctrl.Label, face, hudPad, baseline, labelColor)

	value := row.text()
	valueColor := labelColor
	if !row.known {
		valueColor = mutedColor
	}
	valueX := minus.Min.X - buttonSpacing - text.BoundString(face, value).Dx()
	text.Draw(h.panel, value, face, valueX, baseline, valueColor)

	_, down := row.next(-1)
	_, up := row.next(1)
	settable := h.canSet(row)
	h.drawButton(minus, "-", down && settable)
	h.drawButton(plus, "+", up && settable)
}

func (h *HUD) drawStats(top int) {
	if len(h.stats) == 0 {
		return
	}
	face := basicfont.Face7x13
	text.Draw(h.panel, "Stats", face, hudPad, top, titleColor)
	for i, s := range h.stats {
		y := top + (i+1)*statSpacing
		text.Draw(h.panel, s.Label, face, hudPad, y, mutedColor)
		w := text.BoundString(face, s.Value).Dx()
		text.Draw(h.panel, s.Value, face, h.width-hudPad-w, y, labelColor)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonOff, buttonTextOff
	if enabled {
		bg, fg = buttonOn, buttonTextOn
	}
	fillRect(h.panel, h.pixel, rect, bg)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	center := rect.Min.Add(rect.Size().Sub(b.Size()).Div(2))
	text.Draw(h.panel, label, face, center.X, center.Y+b.Dy(), fg)
}

// fillRect scales a 1x1 white image over rect, tinted by col.
func fillRect(dst, pixel *ebiten.Image, rect image.Rectangle, col color.RGBA) {
	if pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(pixel, op)
}
