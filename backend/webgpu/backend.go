//go:build !nogpu

// Package webgpu provides the GPU rendering backend. Rows are drawn as
// hairline strips through a single render pipeline on the wgpu HAL,
// composited with alpha blending, and read back into the surface pixel
// buffer after each frame.
//
// Importing the package registers it:
//
//	import _ "github.com/filip-ljubotina/iawu-spcd3/backend/webgpu"
//
// Building with the nogpu tag replaces the backend with a stub so the
// module compiles without GPU support.
package webgpu

import (
	"github.com/gogpu/wgpu/hal"

	spcd3 "github.com/filip-ljubotina/iawu-spcd3"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// init registers the webgpu backend on package import.
func init() {
	spcd3.Register(spcd3.BackendWebGPU, func() spcd3.Backend {
		return New()
	})
}

// Backend renders rows on the GPU. Each frame is encoded as one render
// pass against an offscreen target: the pass clears to the background
// color, then issues one draw per row as a line strip from a vertex
// buffer uploaded for that row, inactive rows first so active rows
// composite on top. The target is then copied to a staging buffer and
// read back into the surface.
//
// The two group colors live in pre-built uniform buffers with one bind
// group each, so switching groups mid-pass is a bind group change, not
// a buffer rewrite.
type Backend struct {
	surface    *spcd3.Surface
	asm        spcd3.Assembly
	background spcd3.RGBA

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	viewportBuf   hal.Buffer
	activePaint   hal.Buffer
	inactivePaint hal.Buffer
	activeBind    hal.BindGroup
	inactiveBind  hal.BindGroup

	target     hal.Texture
	targetView hal.TextureView
	targetW    uint32
	targetH    uint32

	stats          spcd3.FrameStats
	externalDevice bool // true when using a shared device (don't destroy on Close)
	initialized    bool
}

// New creates a webgpu backend with the default group colors on a white
// background. The GPU device is not acquired until Initialize.
func New() *Backend {
	return &Backend{
		asm: spcd3.Assembly{
			Topology: spcd3.TopologyStrip,
			Active:   spcd3.DefaultActiveColor,
			Inactive: spcd3.DefaultInactiveColor,
		},
		background: spcd3.White,
	}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return spcd3.BackendWebGPU
}

// SetColors sets the highlight group colors. When the pipeline is live
// the paint uniforms are rewritten in place; the bind groups keep
// referencing the same buffers.
func (b *Backend) SetColors(active, inactive spcd3.RGBA) {
	b.asm.Active = active
	b.asm.Inactive = inactive
	if b.queue != nil && b.activePaint != nil {
		b.writePaints()
	}
}

// SetBackground sets the color the render pass clears to. The GPU frame
// overwrites the whole surface on readback, so the backend carries the
// background itself.
func (b *Backend) SetBackground(c spcd3.RGBA) {
	b.background = c
}

// Initialize acquires a GPU device and builds the render pipeline and
// frame-constant uniforms. Failures are classified by stage:
// [spcd3.ErrBackendUnavailable] when no HAL backend is registered,
// [spcd3.ErrDeviceUnavailable] when instance, adapter, or device
// acquisition fails, and [spcd3.ErrResourceCreation] when shader,
// pipeline, or buffer construction fails. No GPU resources are created
// before the device stage succeeds.
func (b *Backend) Initialize(surface *spcd3.Surface) error {
	if surface == nil {
		return spcd3.ErrNilSurface
	}
	b.surface = surface

	if b.device == nil {
		if err := b.acquireDevice(); err != nil {
			b.releaseDevice()
			return err
		}
	}
	if b.pipeline == nil {
		if err := b.createPipeline(); err != nil {
			b.destroyPipeline()
			b.releaseDevice()
			return err
		}
	}
	b.writeViewport()
	b.writePaints()

	b.initialized = true
	spcd3.Logger().Debug("webgpu backend initialized",
		"width", surface.Width(),
		"height", surface.Height(),
		"shared_device", b.externalDevice)
	return nil
}

// Redraw re-derives all frame geometry, encodes one render pass with a
// draw per row, and reads the result back into the surface. A frame
// with no drawable rows skips the GPU round trip entirely; the surface
// already holds the cleared background.
func (b *Backend) Redraw(ds *spcd3.Dataset, st *spcd3.PlotState) error {
	if !b.initialized {
		return spcd3.ErrNotInitialized
	}

	batches := b.asm.Assemble(ds, st, b.surface.PixelRatio())
	b.stats = spcd3.FrameStats{
		ActiveRows:   batches.ActiveCount,
		InactiveRows: batches.InactiveCount,
		Vertices:     batches.VertexCount(),
	}
	if batches.VertexCount() == 0 {
		return nil
	}

	w := uint32(b.surface.Width())  //nolint:gosec // surface dimensions always fit uint32
	h := uint32(b.surface.Height()) //nolint:gosec // surface dimensions always fit uint32
	if err := b.ensureTarget(w, h); err != nil {
		return err
	}
	b.writeViewport()

	if err := b.renderFrame(batches, w, h); err != nil {
		return err
	}

	spcd3.Logger().Debug("webgpu frame submitted",
		"rows", batches.ActiveCount+batches.InactiveCount,
		"vertices", batches.VertexCount(),
		"draws", b.stats.DrawCalls)
	return nil
}

// Stats returns the work of the most recent frame.
func (b *Backend) Stats() spcd3.FrameStats {
	return b.stats
}

// Close releases all GPU resources and returns the backend to the
// uninitialized state. A shared device set via SetDeviceProvider is not
// destroyed. Safe to call on a backend that never initialized.
func (b *Backend) Close() error {
	b.destroyTarget()
	b.destroyPipeline()
	b.releaseDevice()
	b.surface = nil
	b.stats = spcd3.FrameStats{}
	b.initialized = false
	return nil
}
