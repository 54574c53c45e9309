package mochiterm

import "testing"

func TestRingScrollbackPushAndLine(t *testing.T) {
	ring := NewRingScrollback(100)

	for _, text := range []string{"a", "b", "c"} {
		ring.Push(lineWithText(10, text))
	}

	if ring.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", ring.Len())
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := ring.Line(i).String(); got != want {
			t.Errorf("line %d: expected %q, got %q", i, want, got)
		}
	}
	if ring.Line(3) != nil || ring.Line(-1) != nil {
		t.Error("expected nil for out-of-range lines")
	}
}

func TestRingScrollbackEviction(t *testing.T) {
	ring := NewRingScrollback(3)

	for _, text := range []string{"a", "b", "c", "d", "e"} {
		ring.Push(lineWithText(10, text))
	}

	if ring.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", ring.Len())
	}
	for i, want := range []string{"c", "d", "e"} {
		if got := ring.Line(i).String(); got != want {
			t.Errorf("line %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestRingScrollbackClear(t *testing.T) {
	ring := NewRingScrollback(10)
	ring.Push(lineWithText(10, "x"))

	ring.Clear()

	if ring.Len() != 0 {
		t.Errorf("expected empty ring, got %d lines", ring.Len())
	}
	if ring.Line(0) != nil {
		t.Error("expected nil line after clear")
	}
}

func TestRingScrollbackShrink(t *testing.T) {
	ring := NewRingScrollback(10)
	for _, text := range []string{"a", "b", "c", "d"} {
		ring.Push(lineWithText(10, text))
	}

	ring.SetMaxLines(2)

	if ring.Len() != 2 {
		t.Fatalf("expected 2 lines kept, got %d", ring.Len())
	}
	for i, want := range []string{"c", "d"} {
		if got := ring.Line(i).String(); got != want {
			t.Errorf("line %d: expected %q, got %q", i, want, got)
		}
	}
	if ring.MaxLines() != 2 {
		t.Errorf("expected max 2, got %d", ring.MaxLines())
	}
}

func TestRingScrollbackDefaultCapacity(t *testing.T) {
	ring := NewRingScrollback(0)
	if ring.MaxLines() != DefaultScrollbackLines {
		t.Errorf("expected default capacity, got %d", ring.MaxLines())
	}
}

func TestNoopScrollbackDiscards(t *testing.T) {
	var sb NoopScrollback
	sb.Push(lineWithText(10, "x"))

	if sb.Len() != 0 || sb.Line(0) != nil || sb.MaxLines() != 0 {
		t.Error("expected noop scrollback to store nothing")
	}
}
