package shape

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Color is an xterm 256-color palette index.
type Color uint8

// GhostColor is the dim gray used for landing previews.
const GhostColor Color = 244

// RGBA converts the palette index to its standard xterm RGB value.
func (c Color) RGBA() color.RGBA {
	r, g, b := tcell.PaletteColor(int(c)).RGB()
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}
