package glyph

// Cell is one source pixel's rendered form.
type Cell struct {
	R, G, B uint8
	// A is only meaningful when HasAlpha is set.
	A        uint8
	HasAlpha bool
	Glyph    rune
}

// Transparent reports whether the cell should render as blank space.
func (c Cell) Transparent() bool {
	return c.HasAlpha && c.A == 0
}

// Grid holds cells row by row, top to bottom.
type Grid [][]Cell

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Width returns the length of the widest row.
func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Empty reports whether the grid has no cells.
func (g Grid) Empty() bool {
	return g.Width() == 0
}
