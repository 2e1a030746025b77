package analysis

import (
	"math"
	"sort"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/glyphplay/internal/glyph"
)

// Stats summarizes the luminance of a grid and how often each glyph is used.
type Stats struct {
	Cells     int
	Mean      float64
	Min       float64
	Max       float64
	Histogram []float64
	Usage     []GlyphCount
}

// GlyphCount is the number of cells drawn with one glyph.
type GlyphCount struct {
	Glyph rune
	Count int
}

// Analyze builds luminance statistics over the visible cells of grid,
// bucketing luminance into bins equal-width buckets over [0,255].
func Analyze(grid glyph.Grid, bins int) Stats {
	if bins < 1 {
		bins = 1
	}
	s := Stats{
		Min:       math.Inf(1),
		Max:       math.Inf(-1),
		Histogram: make([]float64, bins),
	}
	counts := make(map[rune]int)
	sum := 0.0

	for _, row := range grid {
		for _, c := range row {
			if c.Transparent() {
				continue
			}
			l := glyph.Luminance(c.R, c.G, c.B)
			sum += l
			s.Min = math.Min(s.Min, l)
			s.Max = math.Max(s.Max, l)
			s.Cells++

			b := int(l / 256 * float64(bins))
			if b >= bins {
				b = bins - 1
			}
			s.Histogram[b]++
			counts[c.Glyph]++
		}
	}

	if s.Cells == 0 {
		s.Min, s.Max = 0, 0
		return s
	}
	s.Mean = sum / float64(s.Cells)

	s.Usage = make([]GlyphCount, 0, len(counts))
	for g, n := range counts {
		s.Usage = append(s.Usage, GlyphCount{Glyph: g, Count: n})
	}
	sort.Slice(s.Usage, func(i, j int) bool {
		if s.Usage[i].Count != s.Usage[j].Count {
			return s.Usage[i].Count > s.Usage[j].Count
		}
		return s.Usage[i].Glyph < s.Usage[j].Glyph
	})

	return s
}

// Plot draws the luminance histogram as an ASCII chart.
func Plot(s Stats, width, height int) string {
	if s.Cells == 0 {
		return ""
	}
	return asciigraph.Plot(s.Histogram,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("luminance histogram (dark → bright)"),
	)
}
