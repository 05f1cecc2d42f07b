package spcd3

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Surface is the pixel buffer a renderer draws into. Its dimensions are
// device pixels; the pixel ratio records how many device pixels correspond
// to one logical pixel so backends can scale projected geometry.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	width      int
	height     int
	pixelRatio float64
	generation uint64
	data       []uint8 // RGBA format, 4 bytes per pixel
}

// NewSurface creates a surface with the given device-pixel dimensions and
// a pixel ratio of 1.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:      width,
		height:     height,
		pixelRatio: 1,
		data:       make([]uint8, width*height*4),
	}
}

// Width returns the surface width in device pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in device pixels.
func (s *Surface) Height() int {
	return s.height
}

// PixelRatio returns the device-pixel to logical-pixel ratio.
func (s *Surface) PixelRatio() float64 {
	return s.pixelRatio
}

// SetPixelRatio sets the device-pixel to logical-pixel ratio. Values at or
// below zero reset the ratio to 1.
func (s *Surface) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	s.pixelRatio = ratio
}

// Generation returns a counter that increments every time a frame is
// presented into the surface. Embedders poll it to detect fresh content.
func (s *Surface) Generation() uint64 {
	return s.generation
}

// present marks the surface content as a new completed frame.
func (s *Surface) present() {
	s.generation++
}

// Resize reallocates the pixel buffer for new dimensions. Existing content
// is discarded. Resizing to the current size is a no-op.
func (s *Surface) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.data = make([]uint8, width*height*4)
}

// Data returns the raw pixel data (RGBA format).
func (s *Surface) Data() []uint8 {
	return s.data
}

// SetPixel sets the color of a single pixel.
func (s *Surface) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := (y*s.width + x) * 4
	s.data[i+0] = uint8(clamp255(c.R * 255))
	s.data[i+1] = uint8(clamp255(c.G * 255))
	s.data[i+2] = uint8(clamp255(c.B * 255))
	s.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel.
func (s *Surface) GetPixel(x, y int) RGBA {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Transparent
	}
	i := (y*s.width + x) * 4
	return RGBA{
		R: float64(s.data[i+0]) / 255,
		G: float64(s.data[i+1]) / 255,
		B: float64(s.data[i+2]) / 255,
		A: float64(s.data[i+3]) / 255,
	}
}

// Clear fills the entire surface with a color.
func (s *Surface) Clear(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	for i := 0; i < len(s.data); i += 4 {
		s.data[i+0] = r
		s.data[i+1] = g
		s.data[i+2] = b
		s.data[i+3] = a
	}
}

// ToImage converts the surface to an image.RGBA.
func (s *Surface) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.data)
	return img
}

// FromImage creates a surface from an image.
func FromImage(img image.Image) *Surface {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	sf := NewSurface(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			sf.SetPixel(x, y, FromColor(c))
		}
	}

	return sf
}

// SavePNG saves the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	img := s.ToImage()
	return png.Encode(f, img)
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	return s.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}
