// Package analysis summarizes rendered grids.
//
//   - [Analyze]: luminance range, mean, histogram and glyph usage
//   - [Plot]: histogram as an asciigraph chart
//
// Transparent cells are not counted.
package analysis
