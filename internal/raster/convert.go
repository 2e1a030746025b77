package raster

import (
	"image"
	"image/color"

	"github.com/san-kum/glyphplay/internal/glyph"
)

// Options control pixel-to-cell conversion.
type Options struct {
	// Transparency carries the source alpha into each cell so fully
	// transparent pixels can be drawn as blanks.
	Transparency bool
}

// Convert maps every pixel of img to a colored glyph, scanning in row-major
// order. A new row starts whenever the scan's row coordinate changes.
func Convert(img image.Image, ramp glyph.Ramp, opts Options) glyph.Grid {
	b := img.Bounds()
	grid := make(glyph.Grid, 0, b.Dy())
	line := make([]glyph.Cell, 0, b.Dx())
	lastY := b.Min.Y

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if y != lastY {
				grid = append(grid, line)
				line = make([]glyph.Cell, 0, b.Dx())
				lastY = y
			}

			c := nrgbaAt(img, x, y)
			cell := glyph.Cell{
				R:     c.R,
				G:     c.G,
				B:     c.B,
				Glyph: ramp.Glyph(glyph.Luminance(c.R, c.G, c.B)),
			}
			if opts.Transparency {
				cell.A = c.A
				cell.HasAlpha = true
			}
			line = append(line, cell)
		}
	}

	if len(line) > 0 {
		grid = append(grid, line)
	}

	return grid
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n.NRGBAAt(x, y)
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
