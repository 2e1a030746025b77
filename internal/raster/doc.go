// Package raster turns decoded images into glyph grids.
//
// [Fit] downsamples an image to the terminal's column budget with
// nearest-neighbor sampling and never upscales. [Convert] maps every pixel
// to a colored glyph using a luminance ramp. [Open] and [Decode] load
// images from disk or a reader.
package raster
