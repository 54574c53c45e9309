package mochiterm

import "testing"

func gridWithRows(rows, cols int, texts ...string) *Grid {
	g := NewGrid(rows, cols)
	for i, text := range texts {
		if i >= rows {
			break
		}
		for j, r := range []rune(text) {
			if j >= cols {
				break
			}
			g.Cell(i, j).Grapheme = string(r)
		}
	}
	return g
}

func gridRow(g *Grid, row int) string {
	line := g.Line(row)
	if line == nil {
		return ""
	}
	return line.String()
}

func TestGridScrollUpLiftsLines(t *testing.T) {
	g := gridWithRows(4, 10, "a", "b", "c", "d")

	lifted := g.ScrollUp(0, 3, 2, NewCell())

	if len(lifted) != 2 {
		t.Fatalf("expected 2 lifted lines, got %d", len(lifted))
	}
	if lifted[0].String() != "a" || lifted[1].String() != "b" {
		t.Errorf("expected lifted [a b], got [%s %s]", lifted[0].String(), lifted[1].String())
	}
	for row, want := range []string{"c", "d", "", ""} {
		if got := gridRow(g, row); got != want {
			t.Errorf("row %d: expected %q, got %q", row, want, got)
		}
	}
}

func TestGridScrollUpRegion(t *testing.T) {
	g := gridWithRows(5, 10, "a", "b", "c", "d", "e")

	g.ScrollUp(1, 3, 1, NewCell())

	for row, want := range []string{"a", "c", "d", "", "e"} {
		if got := gridRow(g, row); got != want {
			t.Errorf("row %d: expected %q, got %q", row, want, got)
		}
	}
}

func TestGridScrollDown(t *testing.T) {
	g := gridWithRows(4, 10, "a", "b", "c", "d")

	g.ScrollDown(0, 3, 1, NewCell())

	for row, want := range []string{"", "a", "b", "c"} {
		if got := gridRow(g, row); got != want {
			t.Errorf("row %d: expected %q, got %q", row, want, got)
		}
	}
}

func TestGridScrollClampsCount(t *testing.T) {
	g := gridWithRows(3, 10, "a", "b", "c")

	lifted := g.ScrollUp(0, 2, 99, NewCell())

	if len(lifted) != 3 {
		t.Fatalf("expected 3 lifted lines, got %d", len(lifted))
	}
	for row := 0; row < 3; row++ {
		if got := gridRow(g, row); got != "" {
			t.Errorf("row %d: expected blank, got %q", row, got)
		}
	}
}

func TestGridInsertDeleteLines(t *testing.T) {
	g := gridWithRows(4, 10, "a", "b", "c", "d")

	g.InsertLines(1, 1, 3, NewCell())
	for row, want := range []string{"a", "", "b", "c"} {
		if got := gridRow(g, row); got != want {
			t.Errorf("after insert, row %d: expected %q, got %q", row, want, got)
		}
	}

	g.DeleteLines(1, 1, 3, NewCell())
	for row, want := range []string{"a", "b", "c", ""} {
		if got := gridRow(g, row); got != want {
			t.Errorf("after delete, row %d: expected %q, got %q", row, want, got)
		}
	}
}

func TestGridClearBelowAbove(t *testing.T) {
	g := gridWithRows(3, 5, "aaaaa", "bbbbb", "ccccc")
	g.ClearBelow(1, 2, NewCell())

	for row, want := range []string{"aaaaa", "bb", ""} {
		if got := gridRow(g, row); got != want {
			t.Errorf("after ClearBelow, row %d: expected %q, got %q", row, want, got)
		}
	}

	g = gridWithRows(3, 5, "aaaaa", "bbbbb", "ccccc")
	g.ClearAbove(1, 2, NewCell())

	for row, want := range []string{"", "   bb", "ccccc"} {
		if got := gridRow(g, row); got != want {
			t.Errorf("after ClearAbove, row %d: expected %q, got %q", row, want, got)
		}
	}
}

func TestGridResize(t *testing.T) {
	g := gridWithRows(3, 5, "aaaaa", "bbbbb", "ccccc")

	g.Resize(5, 3)

	if g.Rows() != 5 || g.Cols() != 3 {
		t.Fatalf("expected 5x3, got %dx%d", g.Rows(), g.Cols())
	}
	for row, want := range []string{"aaa", "bbb", "ccc", "", ""} {
		if got := gridRow(g, row); got != want {
			t.Errorf("row %d: expected %q, got %q", row, want, got)
		}
	}
	for row := 0; row < g.Rows(); row++ {
		if g.Line(row).Len() != 3 {
			t.Errorf("row %d: expected 3 cells, got %d", row, g.Line(row).Len())
		}
	}
}

func TestGridCellBounds(t *testing.T) {
	g := NewGrid(2, 2)

	if g.Cell(-1, 0) != nil || g.Cell(0, -1) != nil || g.Cell(2, 0) != nil || g.Cell(0, 2) != nil {
		t.Error("expected nil for out-of-bounds cells")
	}
	if g.Cell(1, 1) == nil {
		t.Error("expected in-bounds cell")
	}
}

func TestGridFillWithE(t *testing.T) {
	g := NewGrid(2, 3)
	g.FillWithE()

	for row := 0; row < 2; row++ {
		if got := gridRow(g, row); got != "EEE" {
			t.Errorf("row %d: expected 'EEE', got %q", row, got)
		}
	}
}
