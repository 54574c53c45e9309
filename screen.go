package mochiterm

// Screen is one logical screen: a grid, a cursor, the scroll region, tab
// stops, charset state, and the screen-scoped mode flags. The Terminal owns
// two Screens (primary and alternate) and switches between them.
//
// Every operation is total: out-of-range parameters clamp, zero-sized
// operations are no-ops. Screen methods never panic and never return errors.
type Screen struct {
	grid   *Grid
	cursor Cursor
	saved  *SavedCursor

	// Scroll region, 0-based, bottom inclusive.
	scrollTop    int
	scrollBottom int

	tabs     *TabStops
	charsets CharsetState
	modes    TerminalMode
}

// NewScreen creates a screen of the given size with the scroll region
// spanning the full height, default tab stops, and auto-wrap enabled.
func NewScreen(rows, cols int) *Screen {
	return &Screen{
		grid:         NewGrid(rows, cols),
		cursor:       NewCursor(),
		scrollTop:    0,
		scrollBottom: rows - 1,
		tabs:         NewTabStops(cols),
		charsets:     NewCharsetState(),
		modes:        ModeAutoWrap,
	}
}

// Rows returns the screen height in rows.
func (s *Screen) Rows() int {
	return s.grid.Rows()
}

// Cols returns the screen width in columns.
func (s *Screen) Cols() int {
	return s.grid.Cols()
}

// Grid returns the underlying grid.
func (s *Screen) Grid() *Grid {
	return s.grid
}

// Cell returns the cell at (row, col), or nil if out of bounds.
func (s *Screen) Cell(row, col int) *Cell {
	return s.grid.Cell(row, col)
}

// Line returns the line at row, or nil if out of bounds.
func (s *Screen) Line(row int) *Line {
	return s.grid.Line(row)
}

// Cursor returns the screen's cursor.
func (s *Screen) Cursor() *Cursor {
	return &s.cursor
}

// Charsets returns the screen's charset state.
func (s *Screen) Charsets() *CharsetState {
	return &s.charsets
}

// HasMode returns true if the given screen-scoped mode flag is set.
func (s *Screen) HasMode(mode TerminalMode) bool {
	return s.modes&mode != 0
}

// SetMode sets or clears a screen-scoped mode flag.
func (s *Screen) SetMode(mode TerminalMode, on bool) {
	if on {
		s.modes |= mode
	} else {
		s.modes &^= mode
	}
}

// ScrollRegion returns the scroll region bounds (0-based, inclusive).
func (s *Screen) ScrollRegion() (top, bottom int) {
	return s.scrollTop, s.scrollBottom
}

// --- Writing ---

// WriteRune writes one translated printable rune at the cursor, handling
// combining marks, pending wrap, insert mode, and wide-character spacers.
// If the write forced a scroll at the bottom of the region, the displaced
// line is returned for the caller to route to scrollback.
func (s *Screen) WriteRune(r rune) *Line {
	width := runeWidth(r)

	// Zero-width: append to the grapheme of the cell left of the cursor.
	// Never lands on a spacer: the spacer's left neighbor holds the grapheme.
	if width == 0 {
		col := s.cursor.Col
		if s.cursor.PendingWrap {
			col++
		}
		if col > 0 {
			target := s.grid.Cell(s.cursor.Row, col-1)
			if target != nil && target.IsWideSpacer() && col > 1 {
				target = s.grid.Cell(s.cursor.Row, col-2)
			}
			if target != nil {
				target.AppendMark(r)
			}
		}
		return nil
	}

	var scrolled *Line

	// Realize a deferred wrap before printing.
	if s.cursor.PendingWrap {
		s.cursor.PendingWrap = false
		if s.HasMode(ModeAutoWrap) {
			if line := s.grid.Line(s.cursor.Row); line != nil {
				line.SetWrapped(true)
			}
			s.cursor.Col = 0
			scrolled = s.indexDown()
		}
	}

	row, col := s.cursor.Row, s.cursor.Col
	line := s.grid.Line(row)
	if line == nil {
		return scrolled
	}

	if s.HasMode(ModeInsert) {
		line.InsertCells(col, width, s.cursor.blank())
	}

	s.clearWideOverlap(line, col)
	if width == 2 {
		s.clearWideOverlap(line, col+1)
	}

	cell := line.Cell(col)
	if cell == nil {
		return scrolled
	}
	*cell = s.cursor.Pen
	cell.Grapheme = string(r)
	cell.Flags = (s.cursor.Pen.Flags & styleFlags)
	if width == 2 {
		cell.SetFlag(CellFlagWideChar)
		if spacer := line.Cell(col + 1); spacer != nil {
			*spacer = s.cursor.blank()
			spacer.Fg = s.cursor.Pen.Fg
			spacer.SetFlag(CellFlagWideCharSpacer)
			spacer.Link = s.cursor.Pen.Link
		}
	}

	newCol := col + width
	if newCol >= s.Cols() {
		s.cursor.Col = s.Cols() - 1
		s.cursor.PendingWrap = true
	} else {
		s.cursor.Col = newCol
	}
	return scrolled
}

// clearWideOverlap resets both halves of a wide pair that the write at col
// would otherwise split.
func (s *Screen) clearWideOverlap(line *Line, col int) {
	cell := line.Cell(col)
	if cell == nil {
		return
	}
	if cell.IsWideSpacer() {
		if left := line.Cell(col - 1); left != nil && left.IsWide() {
			left.Reset()
		}
		cell.Reset()
	} else if cell.IsWide() {
		if right := line.Cell(col + 1); right != nil && right.IsWideSpacer() {
			right.Reset()
		}
	}
}

// --- Cursor movement ---

// Linefeed moves the cursor down one row, scrolling the region when the
// cursor sits on its bottom. The displaced top-of-region line, if any, is
// returned for the caller to route to scrollback. In linefeed-newline mode
// the cursor also returns to column 0.
func (s *Screen) Linefeed() *Line {
	if s.HasMode(ModeLineFeedNewLine) {
		s.cursor.Col = 0
	}
	return s.Index()
}

// Index moves the cursor down one row (IND), scrolling at the region bottom,
// without the column motion of linefeed-newline mode.
func (s *Screen) Index() *Line {
	scrolled := s.indexDown()
	s.cursor.PendingWrap = false
	return scrolled
}

// indexDown is the shared IND movement: scroll at region bottom, otherwise
// step down (stopping at the last row when outside the region).
func (s *Screen) indexDown() *Line {
	if s.cursor.Row == s.scrollBottom {
		lifted := s.grid.ScrollUp(s.scrollTop, s.scrollBottom, 1, s.cursor.blank())
		if len(lifted) > 0 {
			return &lifted[0]
		}
		return nil
	}
	if s.cursor.Row < s.Rows()-1 {
		s.cursor.Row++
	}
	return nil
}

// ReverseIndex moves the cursor up one row, scrolling the region down when
// the cursor sits on its top.
func (s *Screen) ReverseIndex() {
	if s.cursor.Row == s.scrollTop {
		s.grid.ScrollDown(s.scrollTop, s.scrollBottom, 1, s.cursor.blank())
	} else if s.cursor.Row > 0 {
		s.cursor.Row--
	}
	s.cursor.PendingWrap = false
}

// CarriageReturn moves the cursor to column 0.
func (s *Screen) CarriageReturn() {
	s.cursor.Col = 0
	s.cursor.PendingWrap = false
}

// Backspace moves the cursor one column left, stopping at column 0.
// It never wraps to the previous line.
func (s *Screen) Backspace() {
	if s.cursor.Col > 0 {
		s.cursor.Col--
	}
	s.cursor.PendingWrap = false
}

// Tab advances the cursor to the next tab stop, or the last column if none.
func (s *Screen) Tab() {
	s.cursor.Col = s.tabs.Next(s.cursor.Col)
	s.cursor.PendingWrap = false
}

// BackTab moves the cursor to the previous tab stop, or column 0 if none.
func (s *Screen) BackTab() {
	s.cursor.Col = s.tabs.Prev(s.cursor.Col)
	s.cursor.PendingWrap = false
}

// Goto moves the cursor to (row, col), 0-based. In origin mode, row is
// relative to the scroll region top and clamps within the region.
func (s *Screen) Goto(row, col int) {
	if s.HasMode(ModeOrigin) {
		row += s.scrollTop
		row = clamp(row, s.scrollTop, s.scrollBottom)
	} else {
		row = clamp(row, 0, s.Rows()-1)
	}
	s.cursor.Row = row
	s.cursor.Col = clamp(col, 0, s.Cols()-1)
	s.cursor.PendingWrap = false
}

// GotoCol moves the cursor to col in the current row.
func (s *Screen) GotoCol(col int) {
	s.cursor.Col = clamp(col, 0, s.Cols()-1)
	s.cursor.PendingWrap = false
}

// GotoRow moves the cursor to row in the current column, honoring origin mode.
func (s *Screen) GotoRow(row int) {
	s.Goto(row, s.cursor.Col)
}

// MoveUp moves the cursor up n rows, stopping at the scroll region top when
// the cursor started inside the region.
func (s *Screen) MoveUp(n int) {
	if n <= 0 {
		n = 1
	}
	limit := 0
	if s.cursor.Row >= s.scrollTop {
		limit = s.scrollTop
	}
	s.cursor.Row = clamp(s.cursor.Row-n, limit, s.Rows()-1)
	s.cursor.PendingWrap = false
}

// MoveDown moves the cursor down n rows, stopping at the scroll region bottom
// when the cursor started inside the region.
func (s *Screen) MoveDown(n int) {
	if n <= 0 {
		n = 1
	}
	limit := s.Rows() - 1
	if s.cursor.Row <= s.scrollBottom {
		limit = s.scrollBottom
	}
	s.cursor.Row = clamp(s.cursor.Row+n, 0, limit)
	s.cursor.PendingWrap = false
}

// MoveForward moves the cursor right n columns, stopping at the last column.
func (s *Screen) MoveForward(n int) {
	if n <= 0 {
		n = 1
	}
	s.cursor.Col = clamp(s.cursor.Col+n, 0, s.Cols()-1)
	s.cursor.PendingWrap = false
}

// MoveBackward moves the cursor left n columns, stopping at column 0.
func (s *Screen) MoveBackward(n int) {
	if n <= 0 {
		n = 1
	}
	s.cursor.Col = clamp(s.cursor.Col-n, 0, s.Cols()-1)
	s.cursor.PendingWrap = false
}

// --- Scroll region ---

// SetScrollRegion sets the scroll region (0-based, inclusive) and homes the
// cursor. An invalid region (top >= bottom, or out of range) is ignored and
// the old region retained.
func (s *Screen) SetScrollRegion(top, bottom int) {
	if top < 0 || top >= bottom || bottom >= s.Rows() {
		return
	}
	s.scrollTop = top
	s.scrollBottom = bottom
	s.Goto(0, 0)
}

// ScrollUp lifts n lines off the top of the scroll region, filling the bottom
// with blanks. The lifted lines are returned in order for scrollback.
func (s *Screen) ScrollUp(n int) []Line {
	return s.grid.ScrollUp(s.scrollTop, s.scrollBottom, n, s.cursor.blank())
}

// ScrollDown shifts the scroll region down n lines, introducing blanks at the top.
func (s *Screen) ScrollDown(n int) {
	s.grid.ScrollDown(s.scrollTop, s.scrollBottom, n, s.cursor.blank())
}

// --- Erase ---

// EraseToEOL clears from the cursor to the end of the line.
func (s *Screen) EraseToEOL() {
	if line := s.grid.Line(s.cursor.Row); line != nil {
		line.ClearFrom(s.cursor.Col, s.cursor.blank())
	}
}

// EraseToBOL clears from the start of the line through the cursor.
func (s *Screen) EraseToBOL() {
	if line := s.grid.Line(s.cursor.Row); line != nil {
		line.ClearTo(s.cursor.Col, s.cursor.blank())
	}
}

// EraseLine clears the cursor's whole line.
func (s *Screen) EraseLine() {
	if line := s.grid.Line(s.cursor.Row); line != nil {
		line.Clear(s.cursor.blank())
	}
}

// EraseBelow clears from the cursor to the end of the screen.
func (s *Screen) EraseBelow() {
	s.grid.ClearBelow(s.cursor.Row, s.cursor.Col, s.cursor.blank())
}

// EraseAbove clears from the start of the screen through the cursor.
func (s *Screen) EraseAbove() {
	s.grid.ClearAbove(s.cursor.Row, s.cursor.Col, s.cursor.blank())
}

// EraseScreen clears the whole screen. Preserving visible content in
// scrollback first is the caller's decision.
func (s *Screen) EraseScreen() {
	s.grid.Clear(s.cursor.blank())
}

// EraseChars clears n cells from the cursor rightward, bounded by the row end.
func (s *Screen) EraseChars(n int) {
	if n <= 0 {
		n = 1
	}
	if line := s.grid.Line(s.cursor.Row); line != nil {
		line.EraseCells(s.cursor.Col, n, s.cursor.blank())
	}
}

// --- Insert / delete ---

// InsertChars shifts cells right of the cursor by n, filling with blanks.
func (s *Screen) InsertChars(n int) {
	if n <= 0 {
		n = 1
	}
	if line := s.grid.Line(s.cursor.Row); line != nil {
		line.InsertCells(s.cursor.Col, n, s.cursor.blank())
	}
}

// DeleteChars removes n cells at the cursor, shifting the remainder left.
func (s *Screen) DeleteChars(n int) {
	if n <= 0 {
		n = 1
	}
	if line := s.grid.Line(s.cursor.Row); line != nil {
		line.DeleteCells(s.cursor.Col, n, s.cursor.blank())
	}
}

// InsertLines inserts n blank lines at the cursor, pushing lines down within
// the scroll region. A cursor outside the region makes this a no-op.
func (s *Screen) InsertLines(n int) {
	if n <= 0 {
		n = 1
	}
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	s.grid.InsertLines(s.cursor.Row, n, s.scrollBottom, s.cursor.blank())
	s.cursor.PendingWrap = false
}

// DeleteLines removes n lines at the cursor, pulling lines up within the
// scroll region. A cursor outside the region makes this a no-op.
func (s *Screen) DeleteLines(n int) {
	if n <= 0 {
		n = 1
	}
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	s.grid.DeleteLines(s.cursor.Row, n, s.scrollBottom, s.cursor.blank())
	s.cursor.PendingWrap = false
}

// --- Tab stops ---

// SetTabStop enables a tab stop at the cursor column.
func (s *Screen) SetTabStop() {
	s.tabs.Set(s.cursor.Col)
}

// ClearTabStop disables the tab stop at the cursor column.
func (s *Screen) ClearTabStop() {
	s.tabs.Clear(s.cursor.Col)
}

// ClearAllTabStops disables every tab stop.
func (s *Screen) ClearAllTabStops() {
	s.tabs.ClearAll()
}

// --- Save / restore ---

// SaveCursor stores the cursor position, pen, origin mode, and charset state.
func (s *Screen) SaveCursor() {
	s.saved = &SavedCursor{
		Row:        s.cursor.Row,
		Col:        s.cursor.Col,
		Pen:        s.cursor.Pen,
		OriginMode: s.HasMode(ModeOrigin),
		Charsets:   s.charsets,
	}
}

// RestoreCursor restores the last saved cursor, clamped to the current
// dimensions. Without a prior save the cursor homes with default attributes.
func (s *Screen) RestoreCursor() {
	if s.saved == nil {
		s.cursor.Row = 0
		s.cursor.Col = 0
		s.cursor.Pen = NewCell()
		s.cursor.PendingWrap = false
		return
	}
	s.cursor.Row = clamp(s.saved.Row, 0, s.Rows()-1)
	s.cursor.Col = clamp(s.saved.Col, 0, s.Cols()-1)
	s.cursor.Pen = s.saved.Pen
	s.SetMode(ModeOrigin, s.saved.OriginMode)
	s.charsets = s.saved.Charsets
	s.cursor.PendingWrap = false
}

// --- Whole-screen operations ---

// Decaln fills the screen with 'E' and homes the cursor (DEC alignment test).
func (s *Screen) Decaln() {
	s.grid.FillWithE()
	s.cursor.Row = 0
	s.cursor.Col = 0
	s.cursor.PendingWrap = false
}

// Resize changes the screen dimensions: every line resizes to the new width,
// lines are added or removed at the bottom, tab stops keep existing positions
// with defaults in the new range, the scroll region resets to the full
// screen, and the cursor clamps into bounds.
func (s *Screen) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	s.grid.Resize(rows, cols)
	s.tabs.Resize(cols)
	s.scrollTop = 0
	s.scrollBottom = rows - 1
	s.cursor.Row = clamp(s.cursor.Row, 0, rows-1)
	s.cursor.Col = clamp(s.cursor.Col, 0, cols-1)
	s.cursor.PendingWrap = false
}

// Reset restores the screen to its initial state at the current size.
func (s *Screen) Reset() {
	rows, cols := s.Rows(), s.Cols()
	s.grid = NewGrid(rows, cols)
	s.cursor = NewCursor()
	s.saved = nil
	s.scrollTop = 0
	s.scrollBottom = rows - 1
	s.tabs.Reset(cols)
	s.charsets.Reset()
	s.modes = ModeAutoWrap
}

// clamp bounds val to [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
