package raster

import "github.com/chewxy/math32"

// DrawSegment draws a one-pixel segment from (x0,y0) to (x1,y1) with a
// DDA walk along the major axis. Every touched pixel is stored opaquely;
// portions outside the canvas are clipped pixel by pixel.
func (c *Canvas) DrawSegment(x0, y0, x1, y1 float32, r, g, b, a uint8) {
	dx := x1 - x0
	dy := y1 - y0

	steps := int(math32.Ceil(math32.Max(math32.Abs(dx), math32.Abs(dy))))
	if steps == 0 {
		c.Store(int(math32.Round(x0)), int(math32.Round(y0)), r, g, b, a)
		return
	}

	sx := dx / float32(steps)
	sy := dy / float32(steps)
	x, y := x0, y0
	for i := 0; i <= steps; i++ {
		c.Store(int(math32.Round(x)), int(math32.Round(y)), r, g, b, a)
		x += sx
		y += sy
	}
}

// DrawSegments draws independent segments from an interleaved x,y vertex
// slice, two vertices per segment, all in one color. Trailing vertices
// that do not complete a segment are ignored.
func (c *Canvas) DrawSegments(positions []float32, r, g, b, a uint8) {
	for i := 0; i+3 < len(positions); i += 4 {
		c.DrawSegment(positions[i], positions[i+1], positions[i+2], positions[i+3], r, g, b, a)
	}
}
