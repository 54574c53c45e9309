package mochiterm

import (
	"image/color"
	"unicode/utf8"
)

// CellFlags is a bitmask of cell rendering attributes.
type CellFlags uint16

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagFaint
	CellFlagItalic
	CellFlagUnderline
	CellFlagBlink
	CellFlagInverse
	CellFlagHidden
	CellFlagStrike
	CellFlagWideChar
	CellFlagWideCharSpacer
)

// styleFlags are the attribute bits stamped from the cursor pen onto written
// cells. Wide-char structure bits are owned by the write path, not the pen.
const styleFlags = CellFlagBold | CellFlagFaint | CellFlagItalic | CellFlagUnderline |
	CellFlagBlink | CellFlagInverse | CellFlagHidden | CellFlagStrike

// maxGraphemeRunes caps the number of code points a single cell may hold,
// bounding per-cell memory against combining-mark floods.
const maxGraphemeRunes = 16

// Cell stores the grapheme, colors, and formatting attributes for one grid position.
// The grapheme is one base code point plus any trailing zero-width combining
// marks in write order; an empty grapheme reads as a blank. Wide characters
// (2 columns) use a spacer cell in the second position whose grapheme stays empty.
type Cell struct {
	Grapheme       string
	Fg             color.Color
	Bg             color.Color
	UnderlineColor color.Color
	Flags          CellFlags
	Link           uint32 // hyperlink id, 0 = none
}

// NewCell creates a blank cell with default colors.
func NewCell() Cell {
	return Cell{
		Fg: &NamedColor{Name: NamedColorForeground},
		Bg: &NamedColor{Name: NamedColorBackground},
	}
}

// Reset clears all attributes and returns the cell to its blank default state.
func (c *Cell) Reset() {
	c.Grapheme = ""
	c.Fg = &NamedColor{Name: NamedColorForeground}
	c.Bg = &NamedColor{Name: NamedColorBackground}
	c.UnderlineColor = nil
	c.Flags = 0
	c.Link = 0
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) {
	c.Flags |= flag
}

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) {
	c.Flags &^= flag
}

// IsWide returns true if this cell holds a wide grapheme (CJK, emoji, etc.) that occupies 2 columns.
func (c *Cell) IsWide() bool {
	return c.HasFlag(CellFlagWideChar)
}

// IsWideSpacer returns true if this is the second cell of a wide character (skipped by readers).
func (c *Cell) IsWideSpacer() bool {
	return c.HasFlag(CellFlagWideCharSpacer)
}

// IsBlank returns true if the cell holds no visible grapheme.
func (c *Cell) IsBlank() bool {
	return c.Grapheme == "" || c.Grapheme == " "
}

// AppendMark appends a zero-width combining mark to the cell's grapheme.
// The grapheme is capped at maxGraphemeRunes code points; excess marks are dropped.
func (c *Cell) AppendMark(r rune) {
	if c.Grapheme == "" {
		return
	}
	if utf8.RuneCountInString(c.Grapheme) >= maxGraphemeRunes {
		return
	}
	c.Grapheme += string(r)
}

// DisplayGrapheme returns the grapheme to render, substituting a space for blanks.
func (c *Cell) DisplayGrapheme() string {
	if c.Grapheme == "" {
		return " "
	}
	return c.Grapheme
}
