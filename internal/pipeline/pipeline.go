// Package pipeline chains resize, conversion and rendering into one
// configurable path shared by still images and video frames.
package pipeline

import (
	"image"

	"github.com/san-kum/glyphplay/internal/glyph"
	"github.com/san-kum/glyphplay/internal/raster"
	"github.com/san-kum/glyphplay/internal/render"
)

// Drawer draws a finished grid.
type Drawer interface {
	Draw(grid glyph.Grid) error
}

// Options configure a pipeline.
type Options struct {
	Ramp         glyph.Ramp
	Transparency bool
	// Square fits images inside a square box of the target width instead
	// of the drawable screen area.
	Square bool
	// Columns reports the terminal width at call time.
	Columns func() int
	// Rows reports the drawable height at call time; 0 means no limit.
	// Ignored when Square is set.
	Rows func() int
}

// Pipeline turns images into drawn frames.
type Pipeline struct {
	opts   Options
	drawer Drawer
}

// New creates a pipeline drawing through d. A zero ramp falls back to
// [glyph.DefaultRamp]; a nil Columns uses a fixed default width and a nil
// Rows leaves the height unbounded.
func New(opts Options, d Drawer) *Pipeline {
	if opts.Ramp.Len() == 0 {
		opts.Ramp = glyph.DefaultRamp
	}
	if opts.Columns == nil {
		opts.Columns = func() int { return 80 }
	}
	if opts.Rows == nil {
		opts.Rows = func() int { return 0 }
	}
	return &Pipeline{opts: opts, drawer: d}
}

// Grid fits img to the current terminal size and converts it.
func (p *Pipeline) Grid(img image.Image) glyph.Grid {
	var fitted image.Image
	if p.opts.Square {
		fitted = raster.FitSquare(img, p.opts.Columns())
	} else {
		fitted = raster.Fit(img, p.opts.Columns(), p.opts.Rows())
	}
	return raster.Convert(fitted, p.opts.Ramp, raster.Options{Transparency: p.opts.Transparency})
}

// Draw renders img.
func (p *Pipeline) Draw(img image.Image) error {
	return p.drawer.Draw(p.Grid(img))
}

// DrawFile decodes and renders the image at path.
func (p *Pipeline) DrawFile(path string) error {
	img, err := raster.Open(path)
	if err != nil {
		return err
	}
	return p.Draw(img)
}

var _ Drawer = (*render.Renderer)(nil)
