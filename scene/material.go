package scene

import spcd3 "github.com/filip-ljubotina/iawu-spcd3"

// Material describes how a line is stroked: its color and its stroke
// width in device pixels. Every line carries its own material, so groups
// with different colors coexist in one scene.
type Material struct {
	Color spcd3.RGBA
	Width float32
}

// SolidMaterial creates a material with the given color and width.
// Widths at or below zero fall back to a one-pixel stroke.
func SolidMaterial(c spcd3.RGBA, width float32) Material {
	if width <= 0 {
		width = 1
	}
	return Material{Color: c, Width: width}
}
