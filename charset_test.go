package mochiterm

import "testing"

func TestCharsetSpecialGraphics(t *testing.T) {
	tests := []struct {
		in   rune
		want rune
	}{
		{'j', '┘'}, {'k', '┐'}, {'l', '┌'}, {'m', '└'}, {'n', '┼'},
		{'q', '─'}, {'t', '├'}, {'u', '┤'}, {'v', '┴'}, {'w', '┬'},
		{'x', '│'}, {'a', '▒'}, {'`', '◆'}, {'f', '°'}, {'g', '±'},
		{'o', '⎺'}, {'p', '⎻'}, {'r', '⎼'}, {'s', '⎽'}, {'~', '·'},
		{'A', 'A'}, {'z', 'z'},
	}

	var s CharsetState
	s.Designate(0, CharsetSpecialGraphics)

	for _, tt := range tests {
		if got := s.Translate(tt.in); got != tt.want {
			t.Errorf("Translate(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestCharsetUK(t *testing.T) {
	var s CharsetState
	s.Designate(0, CharsetUK)

	if got := s.Translate('#'); got != '£' {
		t.Errorf("expected '£', got %q", got)
	}
	if got := s.Translate('a'); got != 'a' {
		t.Errorf("expected identity for 'a', got %q", got)
	}
}

func TestCharsetShiftInOut(t *testing.T) {
	var s CharsetState
	s.Designate(1, CharsetSpecialGraphics)

	if got := s.Translate('q'); got != 'q' {
		t.Errorf("expected ASCII 'q' with G0 active, got %q", got)
	}

	s.ShiftOut()
	if got := s.Translate('q'); got != '─' {
		t.Errorf("expected '─' with G1 active, got %q", got)
	}

	s.ShiftIn()
	if got := s.Translate('q'); got != 'q' {
		t.Errorf("expected 'q' after shift in, got %q", got)
	}
}

func TestCharsetSingleShift(t *testing.T) {
	var s CharsetState
	s.Designate(2, CharsetSpecialGraphics)

	s.SetSingleShift(2)
	if got := s.Translate('q'); got != '─' {
		t.Errorf("expected single shift to use G2, got %q", got)
	}
	// Exactly one character: the shift is consumed.
	if got := s.Translate('q'); got != 'q' {
		t.Errorf("expected shift consumed, got %q", got)
	}
}

func TestCharsetReset(t *testing.T) {
	var s CharsetState
	s.Designate(0, CharsetSpecialGraphics)
	s.ShiftOut()
	s.SetSingleShift(3)

	s.Reset()

	if s.Slots[0] != CharsetASCII || s.Active != 0 || s.SingleShift != 0 {
		t.Errorf("expected pristine state after reset, got %+v", s)
	}
}

func TestCharsetFromFinal(t *testing.T) {
	if cs, ok := charsetFromFinal('B'); !ok || cs != CharsetASCII {
		t.Error("expected 'B' to designate ASCII")
	}
	if cs, ok := charsetFromFinal('0'); !ok || cs != CharsetSpecialGraphics {
		t.Error("expected '0' to designate special graphics")
	}
	if cs, ok := charsetFromFinal('A'); !ok || cs != CharsetUK {
		t.Error("expected 'A' to designate UK")
	}
	if _, ok := charsetFromFinal('Z'); ok {
		t.Error("expected unknown final to be rejected")
	}
}
