// Package scenegraph provides the retained-mode rendering backend. Rows
// become line nodes in a scene that is cleared and rebuilt every frame,
// then stroked with antialiased coverage in a single traversal.
//
// Importing the package registers it:
//
//	import _ "github.com/filip-ljubotina/iawu-spcd3/backend/scenegraph"
package scenegraph

import (
	"image"

	spcd3 "github.com/filip-ljubotina/iawu-spcd3"
	"github.com/filip-ljubotina/iawu-spcd3/scene"
)

// defaultLineWidth is the stroke width in logical pixels. The retained
// path draws slightly thicker than one pixel so the antialiased edges
// read as solid lines.
const defaultLineWidth = 1.5

// init registers the scenegraph backend on package import.
func init() {
	spcd3.Register(spcd3.BackendScenegraph, func() spcd3.Backend {
		return New()
	})
}

// Backend renders rows through a retained scene. The scene object
// persists across frames; each redraw clears it, adds one line node per
// row with the group color and stroke width as its material, and plays
// the collection back in one traversal.
type Backend struct {
	surface  *spcd3.Surface
	asm      spcd3.Assembly
	sc       *scene.Scene
	renderer *scene.Renderer

	lineWidth   float64
	stats       spcd3.FrameStats
	initialized bool
}

// New creates a scenegraph backend with the default group colors and
// stroke width.
func New() *Backend {
	return &Backend{
		asm: spcd3.Assembly{
			Topology: spcd3.TopologyStrip,
			Active:   spcd3.DefaultActiveColor,
			Inactive: spcd3.DefaultInactiveColor,
		},
		lineWidth: defaultLineWidth,
	}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return spcd3.BackendScenegraph
}

// SetColors sets the highlight group colors.
func (b *Backend) SetColors(active, inactive spcd3.RGBA) {
	b.asm.Active = active
	b.asm.Inactive = inactive
}

// SetLineWidth sets the stroke width in logical pixels.
func (b *Backend) SetLineWidth(w float64) {
	if w > 0 {
		b.lineWidth = w
	}
}

// Initialize creates the scene and its renderer and binds the target
// surface.
func (b *Backend) Initialize(surface *spcd3.Surface) error {
	if surface == nil {
		return spcd3.ErrNilSurface
	}
	b.surface = surface
	b.sc = scene.NewScene()
	b.renderer = scene.NewRenderer()
	b.initialized = true
	spcd3.Logger().Debug("scenegraph backend initialized",
		"width", surface.Width(),
		"height", surface.Height(),
		"lineWidth", b.lineWidth)
	return nil
}

// Redraw rebuilds the scene from scratch and renders it. Inactive rows
// are added before active rows so the traversal paints active lines on
// top.
func (b *Backend) Redraw(ds *spcd3.Dataset, st *spcd3.PlotState) error {
	if !b.initialized {
		return spcd3.ErrNotInitialized
	}

	batches := b.asm.Assemble(ds, st, b.surface.PixelRatio())
	width := float32(b.lineWidth * b.surface.PixelRatio())

	b.sc.Reset()
	b.addGroup(&batches.Inactive, scene.SolidMaterial(b.asm.Inactive, width))
	b.addGroup(&batches.Active, scene.SolidMaterial(b.asm.Active, width))

	b.renderer.Render(b.sc, b.imageView())

	b.stats = spcd3.FrameStats{
		ActiveRows:   batches.ActiveCount,
		InactiveRows: batches.InactiveCount,
		Vertices:     batches.VertexCount(),
		DrawCalls:    b.renderer.Stats().Lines,
	}
	return nil
}

// addGroup adds one line node per row span. Span slices reference the
// batch arrays directly; Assemble allocates fresh arrays every frame, so
// the scene never aliases a buffer that is rewritten behind it.
func (b *Backend) addGroup(batch *spcd3.VertexBatch, m scene.Material) {
	for _, span := range batch.Rows {
		points := batch.Positions[span.Start*2 : (span.Start+span.Count)*2]
		b.sc.AddLine(scene.NewLine(points, m))
	}
}

// imageView wraps the surface pixels as a draw target without copying.
func (b *Backend) imageView() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.surface.Data(),
		Stride: b.surface.Width() * 4,
		Rect:   image.Rect(0, 0, b.surface.Width(), b.surface.Height()),
	}
}

// Close drops the scene and renderer.
func (b *Backend) Close() error {
	b.sc = nil
	b.renderer = nil
	b.surface = nil
	b.initialized = false
	return nil
}

// Stats returns the work counters of the most recent frame.
func (b *Backend) Stats() spcd3.FrameStats {
	return b.stats
}
