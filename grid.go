package mochiterm

// Grid is a rectangular block of Lines. All operations are bounds-clamped;
// scroll operations return the lines lifted off the region so the caller can
// decide whether they go to scrollback.
type Grid struct {
	lines []Line
	rows  int
	cols  int
}

// NewGrid creates a rows x cols grid of blank cells.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{rows: rows, cols: cols}
	g.lines = make([]Line, rows)
	for i := range g.lines {
		g.lines[i] = NewLine(cols)
	}
	return g
}

// Rows returns the grid height in lines.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the grid width in cells.
func (g *Grid) Cols() int {
	return g.cols
}

// Cell returns a pointer to the cell at (row, col), or nil if out of bounds.
func (g *Grid) Cell(row, col int) *Cell {
	if row < 0 || row >= g.rows {
		return nil
	}
	return g.lines[row].Cell(col)
}

// Line returns a pointer to the line at row, or nil if out of bounds.
func (g *Grid) Line(row int) *Line {
	if row < 0 || row >= g.rows {
		return nil
	}
	return &g.lines[row]
}

// Clear resets every line to fill.
func (g *Grid) Clear(fill Cell) {
	for i := range g.lines {
		g.lines[i].Clear(fill)
	}
}

// ScrollUp shifts lines up by n within [top, bottom] (inclusive), filling the
// bottom with fill. The displaced lines from the top of the region are
// returned in order, oldest first.
func (g *Grid) ScrollUp(top, bottom, n int, fill Cell) []Line {
	top, bottom, n = g.clampRegion(top, bottom, n)
	if n == 0 {
		return nil
	}

	lifted := make([]Line, n)
	copy(lifted, g.lines[top:top+n])

	copy(g.lines[top:], g.lines[top+n:bottom+1])
	for row := bottom - n + 1; row <= bottom; row++ {
		g.lines[row] = newFilledLine(g.cols, fill)
	}
	return lifted
}

// ScrollDown shifts lines down by n within [top, bottom] (inclusive), filling
// the top of the region with fill. Lines shifted past the bottom are discarded.
func (g *Grid) ScrollDown(top, bottom, n int, fill Cell) {
	top, bottom, n = g.clampRegion(top, bottom, n)
	if n == 0 {
		return
	}

	copy(g.lines[top+n:bottom+1], g.lines[top:bottom+1-n])
	for row := top; row < top+n; row++ {
		g.lines[row] = newFilledLine(g.cols, fill)
	}
}

// InsertLines inserts n blank lines at row, shifting lines down within
// [row, bottom]. Equivalent to ScrollDown over that sub-region.
func (g *Grid) InsertLines(row, n, bottom int, fill Cell) {
	g.ScrollDown(row, bottom, n, fill)
}

// DeleteLines removes n lines at row, shifting lines up within [row, bottom]
// and filling the bottom of the region with blanks.
func (g *Grid) DeleteLines(row, n, bottom int, fill Cell) {
	g.ScrollUp(row, bottom, n, fill)
}

// ClearBelow clears from (row, col) to the end of the grid.
func (g *Grid) ClearBelow(row, col int, fill Cell) {
	if row < 0 || row >= g.rows {
		return
	}
	g.lines[row].ClearFrom(col, fill)
	for r := row + 1; r < g.rows; r++ {
		g.lines[r].Clear(fill)
	}
}

// ClearAbove clears from the start of the grid through (row, col).
func (g *Grid) ClearAbove(row, col int, fill Cell) {
	if row < 0 || row >= g.rows {
		return
	}
	for r := 0; r < row; r++ {
		g.lines[r].Clear(fill)
	}
	g.lines[row].ClearTo(col, fill)
}

// Resize changes grid dimensions. Every line is resized to the new width;
// lines are appended or removed at the bottom to reach the new height.
func (g *Grid) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	for i := range g.lines {
		g.lines[i].Resize(cols)
	}
	g.cols = cols

	if rows < g.rows {
		g.lines = g.lines[:rows]
	} else {
		for len(g.lines) < rows {
			g.lines = append(g.lines, NewLine(cols))
		}
	}
	g.rows = rows
}

// FillWithE fills every cell with 'E' (DECALN alignment test pattern).
func (g *Grid) FillWithE() {
	e := NewCell()
	e.Grapheme = "E"
	for i := range g.lines {
		g.lines[i].Clear(e)
	}
}

// clampRegion bounds a scroll region and count to valid values. The returned
// n is 0 when nothing should move.
func (g *Grid) clampRegion(top, bottom, n int) (int, int, int) {
	if top < 0 {
		top = 0
	}
	if bottom >= g.rows {
		bottom = g.rows - 1
	}
	if n <= 0 || top > bottom {
		return top, bottom, 0
	}
	if span := bottom - top + 1; n > span {
		n = span
	}
	return top, bottom, n
}
