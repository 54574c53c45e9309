package mochiterm

import "testing"

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{' ', 1},
		{'é', 1},
		{'日', 2},
		{'한', 2},
		{'Ｗ', 2}, // fullwidth form
		{'\u0301', 0},
		{'\u200b', 0}, // zero-width space
	}

	for _, tt := range tests {
		if got := runeWidth(tt.r); got != tt.want {
			t.Errorf("runeWidth(%q): expected %d, got %d", tt.r, tt.want, got)
		}
	}
}

func TestIsWideRune(t *testing.T) {
	if !isWideRune('日') {
		t.Error("expected 日 wide")
	}
	if isWideRune('a') {
		t.Error("expected 'a' narrow")
	}
}

func TestStringWidth(t *testing.T) {
	if got := StringWidth("ab日"); got != 4 {
		t.Errorf("expected width 4, got %d", got)
	}
}
