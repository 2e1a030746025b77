package glyph

import "errors"

var (
	// ErrEmptyRamp indicates a ramp with no glyphs.
	ErrEmptyRamp = errors.New("glyph: ramp is empty")

	// ErrWideGlyph indicates a ramp glyph that does not occupy exactly one terminal column.
	ErrWideGlyph = errors.New("glyph: ramp glyph is not single-width")
)
