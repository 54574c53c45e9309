package mochiterm

import (
	"encoding/json"
	"testing"
)

func TestSnapshotText(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("hello\r\nworld\x1b]2;my title\x07")

	snap := term.Snapshot(SnapshotDetailText)

	if snap.Size.Rows != 24 || snap.Size.Cols != 80 {
		t.Errorf("expected 24x80, got %dx%d", snap.Size.Rows, snap.Size.Cols)
	}
	if snap.Lines[0].Text != "hello" || snap.Lines[1].Text != "world" {
		t.Errorf("unexpected line text: %q, %q", snap.Lines[0].Text, snap.Lines[1].Text)
	}
	if snap.Title != "my title" {
		t.Errorf("expected title captured, got %q", snap.Title)
	}
	if snap.Cursor.Row != 1 || snap.Cursor.Col != 5 {
		t.Errorf("expected cursor (1,5), got (%d,%d)", snap.Cursor.Row, snap.Cursor.Col)
	}
	if snap.Cursor.Style != "block" || !snap.Cursor.Visible {
		t.Errorf("unexpected cursor state: %+v", snap.Cursor)
	}
	if snap.ScrollTop != 0 || snap.ScrollBottom != 23 {
		t.Errorf("expected full scroll region, got (%d,%d)", snap.ScrollTop, snap.ScrollBottom)
	}
}

func TestSnapshotStyledSegments(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b[1;31mred\x1b[0m plain")

	snap := term.Snapshot(SnapshotDetailStyled)

	segs := snap.Lines[0].Segments
	if len(segs) < 2 {
		t.Fatalf("expected at least 2 segments, got %d", len(segs))
	}
	if segs[0].Text != "red" || !segs[0].Attributes.Bold {
		t.Errorf("expected bold 'red' first, got %+v", segs[0])
	}
	if segs[1].Attributes.Bold {
		t.Errorf("expected second segment not bold, got %+v", segs[1])
	}
}

func TestSnapshotFullCells(t *testing.T) {
	term := New(WithSize(2, 10))
	term.WriteString("日x")

	snap := term.Snapshot(SnapshotDetailFull)

	cells := snap.Lines[0].Cells
	if len(cells) != 10 {
		t.Fatalf("expected 10 cells, got %d", len(cells))
	}
	if cells[0].Grapheme != "日" || !cells[0].Wide {
		t.Errorf("expected wide 日, got %+v", cells[0])
	}
	if !cells[1].WideSpacer {
		t.Errorf("expected spacer, got %+v", cells[1])
	}
	if cells[2].Grapheme != "x" {
		t.Errorf("expected 'x', got %+v", cells[2])
	}
}

func TestSnapshotHyperlink(t *testing.T) {
	term := New()
	term.WriteString("\x1b]8;;https://example.com\x07L\x1b]8;;\x07")

	snap := term.Snapshot(SnapshotDetailFull)

	cell := snap.Lines[0].Cells[0]
	if cell.Hyperlink == nil || cell.Hyperlink.URI != "https://example.com" {
		t.Errorf("expected hyperlink in snapshot, got %+v", cell.Hyperlink)
	}
}

func TestSnapshotModes(t *testing.T) {
	term := New()
	term.WriteString("\x1b[?2004h\x1b[?1h\x1b[4h")

	snap := term.Snapshot(SnapshotDetailText)

	if !snap.Modes.BracketedPaste || !snap.Modes.AppCursorKeys || !snap.Modes.Insert {
		t.Errorf("expected modes captured, got %+v", snap.Modes)
	}
	if !snap.Modes.AutoWrap {
		t.Error("expected auto-wrap reported on by default")
	}
}

func TestSnapshotMarshalsToJSON(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("x")

	data, err := json.Marshal(term.Snapshot(SnapshotDetailStyled))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty JSON")
	}
}

func TestSnapshotIsPointInTime(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("before")

	snap := term.Snapshot(SnapshotDetailText)
	term.WriteString("\x1b[2Jafter")

	if snap.Lines[0].Text != "before" {
		t.Errorf("expected snapshot unaffected by later writes, got %q", snap.Lines[0].Text)
	}
}
