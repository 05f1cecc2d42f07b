package spcd3

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want RGBA
	}{
		{name: "short rgb", hex: "#fff", want: RGBA{1, 1, 1, 1}},
		{name: "short rgba", hex: "#000f", want: RGBA{0, 0, 0, 1}},
		{name: "long rgb", hex: "#ff0000", want: RGBA{1, 0, 0, 1}},
		{name: "long rgba", hex: "#00ff0080", want: RGBA{0, 1, 0, float64(0x80) / 255}},
		{name: "no hash", hex: "0000ff", want: RGBA{0, 0, 1, 1}},
		{name: "invalid length", hex: "#12345", want: RGBA{0, 0, 0, 1}},
	}

	const tolerance = 0.001
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.hex)
			if absDiff(got.R, tt.want.R) > tolerance ||
				absDiff(got.G, tt.want.G) > tolerance ||
				absDiff(got.B, tt.want.B) > tolerance ||
				absDiff(got.A, tt.want.A) > tolerance {
				t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestFromColorRoundtrip(t *testing.T) {
	original := RGBA{0.8, 0.3, 0.5, 1}
	roundtripped := FromColor(original.Color())

	const tolerance = 0.01
	if absDiff(original.R, roundtripped.R) > tolerance ||
		absDiff(original.G, roundtripped.G) > tolerance ||
		absDiff(original.B, roundtripped.B) > tolerance ||
		absDiff(original.A, roundtripped.A) > tolerance {
		t.Errorf("roundtrip: %v -> %v", original, roundtripped)
	}
}

func TestRGBAColor(t *testing.T) {
	c := RGBA{1, 0, 0, 0.5}.Color()
	nrgba, ok := c.(color.NRGBA)
	if !ok {
		t.Fatalf("Color() returned %T, want color.NRGBA", c)
	}
	if nrgba.R != 255 || nrgba.G != 0 || nrgba.B != 0 || nrgba.A != 127 {
		t.Errorf("Color() = %v", nrgba)
	}
}

func TestFloat32(t *testing.T) {
	got := RGBA{0.25, 0.5, 0.75, 1}.Float32()
	want := [4]float32{0.25, 0.5, 0.75, 1}
	if got != want {
		t.Errorf("Float32() = %v, want %v", got, want)
	}
}

func TestWithAlpha(t *testing.T) {
	c := RGB(0.2, 0.4, 0.6).WithAlpha(0.3)
	if c.R != 0.2 || c.G != 0.4 || c.B != 0.6 || c.A != 0.3 {
		t.Errorf("WithAlpha() = %v", c)
	}
}

func TestDefaultGroupColors(t *testing.T) {
	// Both defaults are translucent so overlapping lines accumulate.
	if DefaultActiveColor.A >= 1 {
		t.Errorf("DefaultActiveColor.A = %v, want < 1", DefaultActiveColor.A)
	}
	if DefaultInactiveColor.A >= 1 {
		t.Errorf("DefaultInactiveColor.A = %v, want < 1", DefaultInactiveColor.A)
	}
	// Inactive is a light grey.
	if DefaultInactiveColor.R != DefaultInactiveColor.G || DefaultInactiveColor.G != DefaultInactiveColor.B {
		t.Errorf("DefaultInactiveColor = %v, want grey", DefaultInactiveColor)
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
