package mochiterm

import (
	"image/color"
	"testing"
)

func TestDefaultPaletteGenerated(t *testing.T) {
	// Color cube corners.
	if DefaultPalette[16] != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("expected palette[16] black, got %v", DefaultPalette[16])
	}
	if DefaultPalette[231] != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("expected palette[231] white, got %v", DefaultPalette[231])
	}
	// Grayscale ramp endpoints.
	if DefaultPalette[232] != (color.RGBA{8, 8, 8, 255}) {
		t.Errorf("expected palette[232] near-black, got %v", DefaultPalette[232])
	}
	if DefaultPalette[255] != (color.RGBA{238, 238, 238, 255}) {
		t.Errorf("expected palette[255] near-white, got %v", DefaultPalette[255])
	}
}

func TestResolveDefaultColor(t *testing.T) {
	if got := resolveDefaultColor(nil, true); got != DefaultForeground {
		t.Errorf("expected default foreground for nil, got %v", got)
	}
	if got := resolveDefaultColor(nil, false); got != DefaultBackground {
		t.Errorf("expected default background for nil, got %v", got)
	}
	if got := resolveDefaultColor(&IndexedColor{Index: 1}, true); got != DefaultPalette[1] {
		t.Errorf("expected palette red, got %v", got)
	}
	if got := resolveDefaultColor(&NamedColor{Name: NamedColorBackground}, true); got != DefaultBackground {
		t.Errorf("expected named background, got %v", got)
	}
	rgba := color.RGBA{1, 2, 3, 255}
	if got := resolveDefaultColor(rgba, true); got != rgba {
		t.Errorf("expected passthrough RGBA, got %v", got)
	}
}

func TestFormatColorQuery(t *testing.T) {
	got := formatColorQuery(color.RGBA{R: 0xE5, G: 0x00, B: 0xFF, A: 255})
	want := "rgb:e5e5/0000/ffff"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestParseColorSpec(t *testing.T) {
	tests := []struct {
		spec string
		want color.RGBA
		ok   bool
	}{
		{"rgb:ff/00/80", color.RGBA{255, 0, 128, 255}, true},
		{"rgb:ffff/0000/8080", color.RGBA{255, 0, 128, 255}, true},
		{"rgb:f/0/8", color.RGBA{255, 0, 136, 255}, true},
		{"#ff0080", color.RGBA{255, 0, 128, 255}, true},
		{"rgb:ff/00", color.RGBA{}, false},
		{"nonsense", color.RGBA{}, false},
		{"#ff00", color.RGBA{}, false},
	}

	for _, tt := range tests {
		got, ok := parseColorSpec(tt.spec)
		if ok != tt.ok {
			t.Errorf("parseColorSpec(%q): expected ok=%v, got %v", tt.spec, tt.ok, ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("parseColorSpec(%q): expected %v, got %v", tt.spec, tt.want, got)
		}
	}
}
