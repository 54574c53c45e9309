package mochiterm

// SelectionMode determines how a selection expands between its two points.
type SelectionMode int

const (
	// SelectionNormal selects characters in reading order.
	SelectionNormal SelectionMode = iota
	// SelectionLine selects whole lines.
	SelectionLine
	// SelectionBlock selects a rectangular block.
	SelectionBlock
)

// SelectionState tracks the selection life cycle:
// None -> Pending (started) -> Active (updated) -> Finished -> None.
type SelectionState int

const (
	SelectionStateNone SelectionState = iota
	SelectionStatePending
	SelectionStateActive
	SelectionStateFinished
)

// SelectionPoint identifies a cell in the visible grid or scrollback.
// Row may be negative to reference scrollback: row -k is the k-th most
// recent scrollback line.
type SelectionPoint struct {
	Row int
	Col int
}

// Before returns true if p comes before other in reading order.
func (p SelectionPoint) Before(other SelectionPoint) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Selection is a pair of points plus the expansion mode and life-cycle state.
type Selection struct {
	Mode  SelectionMode
	State SelectionState
	Start SelectionPoint
	End   SelectionPoint
}

// Begin starts a selection at p, replacing any existing one.
func (s *Selection) Begin(p SelectionPoint, mode SelectionMode) {
	s.Mode = mode
	s.State = SelectionStatePending
	s.Start = p
	s.End = p
}

// Update extends the selection to p. A pending selection becomes active.
func (s *Selection) Update(p SelectionPoint) {
	if s.State == SelectionStateNone || s.State == SelectionStateFinished {
		return
	}
	s.End = p
	s.State = SelectionStateActive
}

// Finish freezes the selection. A pending selection that never moved is discarded.
func (s *Selection) Finish() {
	switch s.State {
	case SelectionStatePending:
		s.State = SelectionStateNone
	case SelectionStateActive:
		s.State = SelectionStateFinished
	}
}

// Clear discards the selection.
func (s *Selection) Clear() {
	*s = Selection{}
}

// IsEmpty returns true when no selection is active or finished.
func (s *Selection) IsEmpty() bool {
	return s.State != SelectionStateActive && s.State != SelectionStateFinished
}

// Ordered returns the selection's points with the earlier one first.
// For block mode the columns are additionally ordered left-to-right.
func (s *Selection) Ordered() (start, end SelectionPoint) {
	start, end = s.Start, s.End
	if end.Before(start) {
		start, end = end, start
	}
	if s.Mode == SelectionBlock && start.Col > end.Col {
		start.Col, end.Col = end.Col, start.Col
	}
	return start, end
}

// Contains reports whether the cell at (row, col) falls inside the selection.
func (s *Selection) Contains(row, col int) bool {
	if s.IsEmpty() {
		return false
	}
	start, end := s.Ordered()
	p := SelectionPoint{Row: row, Col: col}

	switch s.Mode {
	case SelectionLine:
		return row >= start.Row && row <= end.Row
	case SelectionBlock:
		return row >= start.Row && row <= end.Row && col >= start.Col && col <= end.Col
	default:
		if p.Before(start) {
			return false
		}
		if end.Before(p) {
			return false
		}
		return true
	}
}
