// Package raster provides plain segment rasterization into RGBA pixel
// buffers. Pixels are written opaquely without blending; callers that
// want translucency or antialiasing use a different rendering path.
package raster

// Canvas wraps a raw RGBA pixel buffer as a drawing target. The buffer
// layout is 4 bytes per pixel, rows top to bottom.
type Canvas struct {
	pix    []uint8
	width  int
	height int
}

// NewCanvas creates a canvas over an existing pixel buffer. The buffer
// must hold at least width*height*4 bytes.
func NewCanvas(pix []uint8, width, height int) *Canvas {
	return &Canvas{
		pix:    pix,
		width:  width,
		height: height,
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Store writes one pixel, replacing whatever is there. Out-of-bounds
// coordinates are ignored.
func (c *Canvas) Store(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := (y*c.width + x) * 4
	c.pix[i+0] = r
	c.pix[i+1] = g
	c.pix[i+2] = b
	c.pix[i+3] = a
}

// At reads one pixel. Out-of-bounds coordinates return zeros.
func (c *Canvas) At(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0, 0, 0, 0
	}
	i := (y*c.width + x) * 4
	return c.pix[i+0], c.pix[i+1], c.pix[i+2], c.pix[i+3]
}
