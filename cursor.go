package mochiterm

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	CursorStyleBlock CursorStyle = iota
	CursorStyleUnderline
	CursorStyleBar
)

// Cursor tracks the current position, rendering style, and the pen attributes
// stamped onto written cells (0-based coordinates).
//
// PendingWrap is the deferred-wrap sub-state: after a printable write fills
// the last column the cursor stays there with PendingWrap set, and the wrap is
// realized by the next printable write. Every cursor-motion operation clears it.
type Cursor struct {
	Row         int
	Col         int
	PendingWrap bool
	Style       CursorStyle
	Visible     bool
	Blinking    bool
	Pen         Cell
}

// NewCursor creates a cursor at (0, 0) with blinking block style, visible.
func NewCursor() Cursor {
	return Cursor{
		Style:    CursorStyleBlock,
		Visible:  true,
		Blinking: true,
		Pen:      NewCell(),
	}
}

// blank returns a blank cell carrying the pen's background, used to fill
// erased and scrolled regions.
func (c *Cursor) blank() Cell {
	fill := NewCell()
	fill.Bg = c.Pen.Bg
	return fill
}

// SavedCursor stores cursor position, pen attributes, origin mode, and charset
// state for DECSC/DECRC restoration.
type SavedCursor struct {
	Row        int
	Col        int
	Pen        Cell
	OriginMode bool
	Charsets   CharsetState
}
