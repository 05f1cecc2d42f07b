// Package software provides the CPU fallback rendering backend. It
// rasterizes rows as plain opaque one-pixel segments and is available on
// every platform.
//
// Importing the package registers it:
//
//	import _ "github.com/filip-ljubotina/iawu-spcd3/backend/software"
package software

import (
	spcd3 "github.com/filip-ljubotina/iawu-spcd3"
	"github.com/filip-ljubotina/iawu-spcd3/internal/raster"
)

// init registers the software backend on package import.
func init() {
	spcd3.Register(spcd3.BackendSoftware, func() spcd3.Backend {
		return New()
	})
}

// Backend renders rows into the surface pixel buffer on the CPU. It
// keeps one position buffer and one color buffer alive across frames and
// rewrites them wholesale on every redraw; each frame then submits the
// inactive range and the active range, two draws in total, with the
// active group painted last.
type Backend struct {
	surface *spcd3.Surface
	asm     spcd3.Assembly

	// persistent vertex storage, rewritten every frame
	positions []float32
	colors    []float32

	stats       spcd3.FrameStats
	initialized bool
}

// New creates a software backend with the default group colors.
func New() *Backend {
	return &Backend{
		asm: spcd3.Assembly{
			Topology:     spcd3.TopologySegments,
			VertexColors: true,
			Active:       spcd3.DefaultActiveColor,
			Inactive:     spcd3.DefaultInactiveColor,
		},
	}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return spcd3.BackendSoftware
}

// SetColors sets the highlight group colors.
func (b *Backend) SetColors(active, inactive spcd3.RGBA) {
	b.asm.Active = active
	b.asm.Inactive = inactive
}

// Initialize binds the backend to its target surface. The CPU path has
// no device to acquire, so initialization cannot fail with a missing
// capability.
func (b *Backend) Initialize(surface *spcd3.Surface) error {
	if surface == nil {
		return spcd3.ErrNilSurface
	}
	b.surface = surface
	b.initialized = true
	spcd3.Logger().Debug("software backend initialized",
		"width", surface.Width(),
		"height", surface.Height())
	return nil
}

// Redraw re-derives all frame geometry and rasterizes it into the
// surface. Both groups land in the shared buffers, inactive vertices
// first, and are drawn in that order so active rows stay on top.
func (b *Backend) Redraw(ds *spcd3.Dataset, st *spcd3.PlotState) error {
	if !b.initialized {
		return spcd3.ErrNotInitialized
	}

	batches := b.asm.Assemble(ds, st, b.surface.PixelRatio())

	b.positions = append(b.positions[:0], batches.Inactive.Positions...)
	b.positions = append(b.positions, batches.Active.Positions...)
	b.colors = append(b.colors[:0], batches.Inactive.Colors...)
	b.colors = append(b.colors, batches.Active.Colors...)

	canvas := raster.NewCanvas(b.surface.Data(), b.surface.Width(), b.surface.Height())
	inactiveFloats := len(batches.Inactive.Positions)

	b.stats = spcd3.FrameStats{
		ActiveRows:   batches.ActiveCount,
		InactiveRows: batches.InactiveCount,
		Vertices:     batches.VertexCount(),
	}
	b.submit(canvas, 0, inactiveFloats)
	b.submit(canvas, inactiveFloats, len(b.positions))
	return nil
}

// submit draws one group's range of the shared buffers. The group color
// is read back out of the color buffer; within a group every vertex
// carries the same color. The CPU path draws opaque, so the color's
// alpha is dropped rather than blended.
func (b *Backend) submit(canvas *raster.Canvas, start, end int) {
	if start >= end {
		return
	}
	r, g, bl := colorAt(b.colors, start*2)
	canvas.DrawSegments(b.positions[start:end], r, g, bl, 255)
	b.stats.DrawCalls++
}

// colorAt converts the color buffer entry at the given float offset to
// 8-bit channels.
func colorAt(colors []float32, i int) (r, g, b uint8) {
	if i+3 >= len(colors) {
		return 0, 0, 0
	}
	return channel(colors[i]), channel(colors[i+1]), channel(colors[i+2])
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Close releases the persistent buffers.
func (b *Backend) Close() error {
	b.positions = nil
	b.colors = nil
	b.surface = nil
	b.initialized = false
	return nil
}

// Stats returns the work counters of the most recent frame.
func (b *Backend) Stats() spcd3.FrameStats {
	return b.stats
}
