package render

import "image/color"

var fallbackColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Lookup returns the palette color for a cell value. Values past the end of the
// palette use the last entry; an empty palette yields magenta so missing
// palettes are obvious on screen.
func Lookup(palette []color.RGBA, v uint8) color.RGBA {
	if len(palette) == 0 {
		return fallbackColor
	}
	idx := int(v)
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	for i, c := range cells {
		base := i * 4
		col := Lookup(palette, c)
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
