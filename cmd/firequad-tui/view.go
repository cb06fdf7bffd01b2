package main

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"firequad/internal/core"
	"firequad/internal/render"
)

const halfBlock = '▀'

// drawCells paints a w*h raster into the top rows of screen, two raster rows
// per terminal row: the upper pixel as foreground of a half block, the lower
// as background.
func drawCells(screen tcell.Screen, cells []uint8, size core.Size, palette []color.RGBA) {
	for ty := 0; 2*ty < size.H; ty++ {
		top := 2 * ty
		bottom := top + 1
		for x := 0; x < size.W; x++ {
			fg := render.Lookup(palette, cells[top*size.W+x])
			style := tcell.StyleDefault.Foreground(rgb(fg))
			if bottom < size.H {
				bg := render.Lookup(palette, cells[bottom*size.W+x])
				style = style.Background(rgb(bg))
			}
			screen.SetContent(x, ty, halfBlock, nil, style)
		}
	}
}

// drawStatus writes a single status line at row y.
func drawStatus(screen tcell.Screen, y int, paused bool, stats []core.Stat) {
	line := ""
	if paused {
		line = "[paused] "
	}
	for _, s := range stats {
		line += fmt.Sprintf("%s: %s  ", s.Label, s.Value)
	}
	w, _ := screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	x := 0
	for _, r := range line {
		if x >= w {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

// rasterPoint maps a terminal cell to the raster point at the center of its
// upper pixel.
func rasterPoint(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(2*y) + 0.5
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
