// Package export writes rendered grids to files.
package export

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/glyphplay/internal/glyph"
	"github.com/san-kum/glyphplay/internal/render"
)

// ErrUnknownFormat indicates an unsupported export format.
var ErrUnknownFormat = errors.New("export: unknown format")

// Formats lists the supported export formats.
var Formats = []string{"text", "ansi", "svg"}

// Write encodes grid in the named format.
func Write(w io.Writer, grid glyph.Grid, format string) error {
	switch format {
	case "text":
		return Text(w, grid)
	case "ansi":
		return ANSI(w, grid)
	case "svg":
		_, err := io.WriteString(w, GridToSVG(grid, 8))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Text writes the glyphs without color, two per cell.
func Text(w io.Writer, grid glyph.Grid) error {
	var sb strings.Builder
	for _, row := range grid {
		for _, c := range row {
			if c.Transparent() {
				sb.WriteString("  ")
				continue
			}
			sb.WriteRune(c.Glyph)
			sb.WriteRune(c.Glyph)
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// ANSI writes true-color escape sequences, suitable for `cat`.
func ANSI(w io.Writer, grid glyph.Grid) error {
	r, err := render.New(w, render.ModeInline, "truecolor")
	if err != nil {
		return err
	}
	return r.Draw(grid)
}

// GridToSVG converts a grid to SVG text. cell is the glyph width in pixels;
// each row is twice as tall as a glyph is wide.
func GridToSVG(grid glyph.Grid, cell float64) string {
	width := float64(grid.Width()) * 2 * cell
	height := float64(grid.Rows()) * 2 * cell

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g font-family="monospace" font-size="%.1f" xml:space="preserve">
`, width, height, width, height, cell*1.6))

	for y, row := range grid {
		baseY := float64(y)*2*cell + 1.6*cell
		for x, c := range row {
			if c.Transparent() || c.Glyph == ' ' {
				continue
			}
			pair := html.EscapeString(string([]rune{c.Glyph, c.Glyph}))
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#%02x%02x%02x">%s</text>
`, float64(x)*2*cell, baseY, c.R, c.G, c.B, pair))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
