package mochiterm

import "testing"

func TestNewCellIsBlank(t *testing.T) {
	cell := NewCell()

	if !cell.IsBlank() {
		t.Error("expected new cell to be blank")
	}
	if cell.DisplayGrapheme() != " " {
		t.Errorf("expected blank cell to display a space, got %q", cell.DisplayGrapheme())
	}
	if cell.Link != 0 {
		t.Errorf("expected no hyperlink, got id %d", cell.Link)
	}
}

func TestCellFlags(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagBold)
	cell.SetFlag(CellFlagUnderline)

	if !cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag to be set")
	}
	if !cell.HasFlag(CellFlagUnderline) {
		t.Error("expected underline flag to be set")
	}
	if cell.HasFlag(CellFlagItalic) {
		t.Error("expected italic flag to be unset")
	}

	cell.ClearFlag(CellFlagBold)
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag to be cleared")
	}
	if !cell.HasFlag(CellFlagUnderline) {
		t.Error("expected underline flag to survive clearing bold")
	}
}

func TestCellReset(t *testing.T) {
	cell := NewCell()
	cell.Grapheme = "X"
	cell.SetFlag(CellFlagBold | CellFlagWideChar)
	cell.Link = 3

	cell.Reset()

	if cell.Grapheme != "" {
		t.Errorf("expected empty grapheme, got %q", cell.Grapheme)
	}
	if cell.Flags != 0 {
		t.Errorf("expected no flags, got %v", cell.Flags)
	}
	if cell.Link != 0 {
		t.Errorf("expected no hyperlink, got id %d", cell.Link)
	}
}

func TestCellWideFlags(t *testing.T) {
	cell := NewCell()
	cell.SetFlag(CellFlagWideChar)

	if !cell.IsWide() {
		t.Error("expected IsWide")
	}
	if cell.IsWideSpacer() {
		t.Error("expected not a spacer")
	}
}

func TestCellAppendMark(t *testing.T) {
	cell := NewCell()
	cell.Grapheme = "e"
	cell.AppendMark('\u0301')

	if cell.Grapheme != "e\u0301" {
		t.Errorf("expected combined grapheme, got %q", cell.Grapheme)
	}
}

func TestCellAppendMarkToBlankIsNoop(t *testing.T) {
	cell := NewCell()
	cell.AppendMark('\u0301')

	if cell.Grapheme != "" {
		t.Errorf("expected blank cell to stay blank, got %q", cell.Grapheme)
	}
}

func TestCellAppendMarkCap(t *testing.T) {
	cell := NewCell()
	cell.Grapheme = "a"
	for i := 0; i < maxGraphemeRunes*2; i++ {
		cell.AppendMark('\u0301')
	}

	count := 0
	for range cell.Grapheme {
		count++
	}
	if count != maxGraphemeRunes {
		t.Errorf("expected grapheme capped at %d code points, got %d", maxGraphemeRunes, count)
	}
}
