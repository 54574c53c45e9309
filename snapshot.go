package mochiterm

import (
	"fmt"
	"image/color"
)

// SnapshotDetail specifies the level of detail in a snapshot.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text with style segments per line.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is an immutable point-in-time capture of the active screen:
// grid contents, cursor, modes, scroll region, and title.
type Snapshot struct {
	Size         SnapshotSize   `json:"size"`
	Cursor       SnapshotCursor `json:"cursor"`
	Lines        []SnapshotLine `json:"lines"`
	Title        string         `json:"title,omitempty"`
	AltScreen    bool           `json:"alt_screen,omitempty"`
	ScrollTop    int            `json:"scroll_top"`
	ScrollBottom int            `json:"scroll_bottom"`
	Modes        SnapshotModes  `json:"modes"`
}

// SnapshotSize holds terminal dimensions.
type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SnapshotCursor holds cursor state.
type SnapshotCursor struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Visible bool   `json:"visible"`
	Style   string `json:"style"`
}

// SnapshotModes summarizes the mode flags renderers care about.
type SnapshotModes struct {
	AutoWrap           bool `json:"auto_wrap,omitempty"`
	Insert             bool `json:"insert,omitempty"`
	Origin             bool `json:"origin,omitempty"`
	ReverseVideo       bool `json:"reverse_video,omitempty"`
	BracketedPaste     bool `json:"bracketed_paste,omitempty"`
	AppCursorKeys      bool `json:"app_cursor_keys,omitempty"`
	AppKeypad          bool `json:"app_keypad,omitempty"`
	FocusEvents        bool `json:"focus_events,omitempty"`
	SynchronizedOutput bool `json:"synchronized_output,omitempty"`
}

// SnapshotLine represents a single line in the snapshot.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Wrapped  bool              `json:"wrapped,omitempty"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

// SnapshotSegment represents a styled text segment within a line.
type SnapshotSegment struct {
	Text       string        `json:"text"`
	Fg         string        `json:"fg,omitempty"`
	Bg         string        `json:"bg,omitempty"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  *SnapshotLink `json:"hyperlink,omitempty"`
}

// SnapshotCell represents a single cell with full attributes.
type SnapshotCell struct {
	Grapheme   string        `json:"grapheme"`
	Fg         string        `json:"fg"`
	Bg         string        `json:"bg"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  *SnapshotLink `json:"hyperlink,omitempty"`
	Wide       bool          `json:"wide,omitempty"`
	WideSpacer bool          `json:"wide_spacer,omitempty"`
}

// SnapshotAttrs holds text formatting attributes.
type SnapshotAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Faint         bool `json:"faint,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Blink         bool `json:"blink,omitempty"`
	Inverse       bool `json:"inverse,omitempty"`
	Hidden        bool `json:"hidden,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
}

// SnapshotLink holds hyperlink information.
type SnapshotLink struct {
	ID  uint32 `json:"id,omitempty"`
	URI string `json:"uri"`
}

// Snapshot creates a snapshot of the current terminal state.
// The detail parameter controls how much information is included.
func (t *Terminal) Snapshot(detail SnapshotDetail) *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	top, bottom := t.active.ScrollRegion()
	snap := &Snapshot{
		Size: SnapshotSize{
			Rows: t.rows,
			Cols: t.cols,
		},
		Cursor: SnapshotCursor{
			Row:     t.active.cursor.Row,
			Col:     t.active.cursor.Col,
			Visible: t.active.cursor.Visible,
			Style:   cursorStyleToString(t.active.cursor.Style),
		},
		Lines:        make([]SnapshotLine, t.rows),
		Title:        t.title,
		AltScreen:    t.active == t.alternate,
		ScrollTop:    top,
		ScrollBottom: bottom,
		Modes: SnapshotModes{
			AutoWrap:           t.active.HasMode(ModeAutoWrap),
			Insert:             t.active.HasMode(ModeInsert),
			Origin:             t.active.HasMode(ModeOrigin),
			ReverseVideo:       t.active.HasMode(ModeReverseVideo),
			BracketedPaste:     t.modes&ModeBracketedPaste != 0,
			AppCursorKeys:      t.modes&ModeCursorKeys != 0,
			AppKeypad:          t.modes&ModeKeypadApplication != 0,
			FocusEvents:        t.modes&ModeReportFocusInOut != 0,
			SynchronizedOutput: t.modes&ModeSynchronizedOutput != 0,
		},
	}

	for row := 0; row < t.rows; row++ {
		snap.Lines[row] = t.snapshotLine(row, detail)
	}

	return snap
}

// snapshotLine creates a snapshot of a single line.
func (t *Terminal) snapshotLine(row int, detail SnapshotDetail) SnapshotLine {
	src := t.active.Line(row)
	if src == nil {
		return SnapshotLine{}
	}

	line := SnapshotLine{
		Text:    src.String(),
		Wrapped: src.Wrapped(),
	}

	switch detail {
	case SnapshotDetailText:
		// Just text, already set

	case SnapshotDetailStyled:
		line.Segments = t.lineToSegments(src)

	case SnapshotDetailFull:
		line.Cells = t.lineToCells(src)
	}

	return line
}

// lineToSegments converts a line to styled segments (runs of same style).
func (t *Terminal) lineToSegments(src *Line) []SnapshotSegment {
	var segments []SnapshotSegment
	var current *SnapshotSegment
	var currentText []byte

	for col := 0; col < src.Len(); col++ {
		cell := src.Cell(col)
		if cell.IsWideSpacer() {
			continue
		}

		fg := colorToHex(cell.Fg)
		bg := colorToHex(cell.Bg)
		attrs := cellAttrsToSnapshot(cell)
		link := t.cellHyperlinkToSnapshot(cell)

		if current == nil || !segmentMatches(current, fg, bg, attrs, link) {
			if current != nil && len(currentText) > 0 {
				current.Text = string(currentText)
				segments = append(segments, *current)
			}
			current = &SnapshotSegment{
				Fg:         fg,
				Bg:         bg,
				Attributes: attrs,
				Hyperlink:  link,
			}
			currentText = nil
		}

		currentText = append(currentText, cell.DisplayGrapheme()...)
	}

	if current != nil && len(currentText) > 0 {
		current.Text = string(currentText)
		segments = append(segments, *current)
	}

	return segments
}

// lineToCells converts a line to full cell data.
func (t *Terminal) lineToCells(src *Line) []SnapshotCell {
	cells := make([]SnapshotCell, 0, src.Len())

	for col := 0; col < src.Len(); col++ {
		cell := src.Cell(col)
		cells = append(cells, SnapshotCell{
			Grapheme:   cell.DisplayGrapheme(),
			Fg:         colorToHex(cell.Fg),
			Bg:         colorToHex(cell.Bg),
			Attributes: cellAttrsToSnapshot(cell),
			Hyperlink:  t.cellHyperlinkToSnapshot(cell),
			Wide:       cell.IsWide(),
			WideSpacer: cell.IsWideSpacer(),
		})
	}

	return cells
}

// segmentMatches checks if segment matches the given style.
func segmentMatches(seg *SnapshotSegment, fg, bg string, attrs SnapshotAttrs, link *SnapshotLink) bool {
	if seg.Fg != fg || seg.Bg != bg {
		return false
	}
	if seg.Attributes != attrs {
		return false
	}
	if seg.Hyperlink == nil && link == nil {
		return true
	}
	if seg.Hyperlink == nil || link == nil {
		return false
	}
	return seg.Hyperlink.ID == link.ID
}

// colorToHex converts a color to hex string.
func colorToHex(c color.Color) string {
	if c == nil {
		return ""
	}

	rgba := resolveDefaultColor(c, true)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// cellAttrsToSnapshot extracts cell attributes.
func cellAttrsToSnapshot(cell *Cell) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:          cell.HasFlag(CellFlagBold),
		Faint:         cell.HasFlag(CellFlagFaint),
		Italic:        cell.HasFlag(CellFlagItalic),
		Underline:     cell.HasFlag(CellFlagUnderline),
		Blink:         cell.HasFlag(CellFlagBlink),
		Inverse:       cell.HasFlag(CellFlagInverse),
		Hidden:        cell.HasFlag(CellFlagHidden),
		Strikethrough: cell.HasFlag(CellFlagStrike),
	}
}

// cellHyperlinkToSnapshot resolves a cell's hyperlink id through the registry.
func (t *Terminal) cellHyperlinkToSnapshot(cell *Cell) *SnapshotLink {
	if cell.Link == 0 {
		return nil
	}
	link := t.links.lookup(cell.Link)
	if link == nil {
		return nil
	}
	return &SnapshotLink{
		ID:  link.ID,
		URI: link.URI,
	}
}

// cursorStyleToString converts cursor style to string.
func cursorStyleToString(style CursorStyle) string {
	switch style {
	case CursorStyleUnderline:
		return "underline"
	case CursorStyleBar:
		return "bar"
	default:
		return "block"
	}
}
