package scene

// Line is a polyline node: a connected strip of points stroked with one
// material. Points are interleaved x,y device-pixel coordinates.
type Line struct {
	Points   []float32
	Material Material
}

// NewLine creates a line node from an interleaved point slice. The slice
// is referenced, not copied; callers that reuse their buffer must copy
// first.
func NewLine(points []float32, m Material) *Line {
	return &Line{Points: points, Material: m}
}

// PointCount returns the number of points in the polyline.
func (l *Line) PointCount() int {
	return len(l.Points) / 2
}

// IsDegenerate reports whether the line has too few points to stroke.
func (l *Line) IsDegenerate() bool {
	return l.PointCount() < 2
}

// Bounds returns the line's bounding box expanded by half the stroke
// width, as minX, minY, maxX, maxY. Degenerate lines return zeros.
func (l *Line) Bounds() (minX, minY, maxX, maxY float32) {
	if l.PointCount() == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = l.Points[0], l.Points[1]
	maxX, maxY = minX, minY
	for i := 2; i+1 < len(l.Points); i += 2 {
		x, y := l.Points[i], l.Points[i+1]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	hw := l.Material.Width / 2
	return minX - hw, minY - hw, maxX + hw, maxY + hw
}
