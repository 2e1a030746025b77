package glyph

import (
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"
)

// DefaultString is the built-in luminance ramp, densest glyph first.
const DefaultString = "Ñ@#W$9876543210?!abc;:+=-,._      "

// DefaultRamp is the ramp used when no other ramp is configured.
var DefaultRamp = MustRamp(DefaultString)

// Ambiguous-width glyphs such as Ñ count as one column regardless of locale.
var widthCond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Ramp is an immutable sequence of glyphs ordered from visually densest to sparsest.
type Ramp struct {
	glyphs []rune
}

// NewRamp builds a ramp from s. Every glyph must be printable and one column wide.
func NewRamp(s string) (Ramp, error) {
	glyphs := []rune(s)
	if len(glyphs) == 0 {
		return Ramp{}, ErrEmptyRamp
	}
	for i, g := range glyphs {
		if widthCond.RuneWidth(g) != 1 {
			return Ramp{}, fmt.Errorf("%w: %q at position %d", ErrWideGlyph, g, i)
		}
	}
	return Ramp{glyphs: glyphs}, nil
}

// MustRamp is like NewRamp but panics on an invalid ramp.
func MustRamp(s string) Ramp {
	r, err := NewRamp(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of glyphs.
func (r Ramp) Len() int {
	return len(r.glyphs)
}

// At returns the glyph at position i, densest first.
func (r Ramp) At(i int) rune {
	return r.glyphs[i]
}

// Densest returns the first glyph.
func (r Ramp) Densest() rune {
	return r.glyphs[0]
}

// Sparsest returns the last glyph.
func (r Ramp) Sparsest() rune {
	return r.glyphs[len(r.glyphs)-1]
}

func (r Ramp) String() string {
	return string(r.glyphs)
}

// Index quantizes a luminance in [0,255] to a ramp position, clamped to
// [0, Len-1]. Higher luminance gives a higher index, which is a sparser glyph.
func (r Ramp) Index(luminance float64) int {
	last := float64(len(r.glyphs) - 1)
	if last <= 0 || math.IsNaN(luminance) {
		return 0
	}
	idx := math.Round(luminance / 255 * last)
	if idx < 0 {
		idx = 0
	}
	if idx > last {
		idx = last
	}
	return int(idx)
}

// Glyph selects the glyph for a luminance: black maps to the densest glyph,
// white to the sparsest.
func (r Ramp) Glyph(luminance float64) rune {
	return r.glyphs[r.Index(luminance)]
}

// Reverse returns the ramp in sparsest-first order. Rendering through a
// reversed ramp draws bright pixels with dense glyphs, which reads better
// on dark terminal backgrounds.
func (r Ramp) Reverse() Ramp {
	out := make([]rune, len(r.glyphs))
	for i, g := range r.glyphs {
		out[len(out)-1-i] = g
	}
	return Ramp{glyphs: out}
}

// Luminance is the unweighted mean of the three channels.
func Luminance(red, green, blue uint8) float64 {
	return (float64(red) + float64(green) + float64(blue)) / 3
}
