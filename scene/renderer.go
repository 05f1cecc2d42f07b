package scene

import (
	"image"
	"image/draw"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"
)

// Renderer plays a scene back into a destination image. Each line is
// stroked with antialiased coverage from a shared rasterizer; the whole
// scene is drawn in a single traversal in insertion order.
//
// A Renderer is not safe for concurrent use; give each goroutine its
// own.
type Renderer struct {
	ras *vector.Rasterizer

	stats RenderStats
}

// RenderStats contains counters for the last Render call.
type RenderStats struct {
	Lines    int
	Segments int
}

// NewRenderer creates a renderer. The rasterizer grows to the target
// size on first use and is reused across frames.
func NewRenderer() *Renderer {
	return &Renderer{
		ras: vector.NewRasterizer(0, 0),
	}
}

// Render strokes every line of the scene into dst in one traversal.
// Lines are drawn in insertion order with draw.Over compositing, so
// later lines paint over earlier ones.
func (r *Renderer) Render(sc *Scene, dst draw.Image) {
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	r.stats = RenderStats{}
	if w <= 0 || h <= 0 {
		return
	}

	for _, l := range sc.Lines() {
		r.strokeLine(l, dst, bounds)
		r.stats.Lines++
	}
}

// Stats returns the counters of the most recent Render.
func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// strokeLine rasterizes one polyline as a run of overlapping quads, one
// per segment with square cap extensions so joins stay closed, then
// composites the accumulated coverage in the line's color.
func (r *Renderer) strokeLine(l *Line, dst draw.Image, bounds image.Rectangle) {
	r.ras.Reset(bounds.Dx(), bounds.Dy())
	r.ras.DrawOp = draw.Over

	hw := l.Material.Width / 2
	if hw <= 0 {
		hw = 0.5
	}

	segments := 0
	for i := 0; i+3 < len(l.Points); i += 2 {
		if appendSegmentQuad(r.ras, l.Points[i], l.Points[i+1], l.Points[i+2], l.Points[i+3], hw) {
			segments++
		}
	}
	if segments == 0 {
		return
	}
	r.stats.Segments += segments

	src := image.NewUniform(l.Material.Color.Color())
	r.ras.Draw(dst, bounds, src, image.Point{})
}

// appendSegmentQuad adds the stroke quad of one segment to the
// rasterizer. Zero-length segments contribute nothing and report false.
func appendSegmentQuad(ras *vector.Rasterizer, x0, y0, x1, y1, hw float32) bool {
	dx := x1 - x0
	dy := y1 - y0
	length := math32.Hypot(dx, dy)
	if length == 0 {
		return false
	}

	// Half-width vectors along and across the segment. Extending both
	// ends along the direction gives square caps that cover the gaps
	// where consecutive quads meet at an angle.
	ux := dx / length * hw
	uy := dy / length * hw
	x0, y0 = x0-ux, y0-uy
	x1, y1 = x1+ux, y1+uy
	nx, ny := -uy, ux

	ras.MoveTo(x0+nx, y0+ny)
	ras.LineTo(x1+nx, y1+ny)
	ras.LineTo(x1-nx, y1-ny)
	ras.LineTo(x0-nx, y0-ny)
	ras.ClosePath()
	return true
}
