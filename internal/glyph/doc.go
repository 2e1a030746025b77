// Package glyph defines the rendered form of an image: luminance ramps,
// colored glyph cells and the grids they are arranged in.
//
//   - [Ramp]: ordered glyph sequence, densest first
//   - [Cell]: one source pixel's color plus its selected glyph
//   - [Grid]: rows of cells, top-to-bottom, left-to-right
//
// # Example
//
//	ramp := glyph.DefaultRamp
//	g := ramp.Glyph(200) // bright pixels map to sparse glyphs
package glyph
