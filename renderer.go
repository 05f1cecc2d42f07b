package spcd3

import (
	"fmt"
	"sync"
)

// FrameRenderer drives a backend over the life of a plot: it resolves
// which backend to use, initializes it against a target surface, and
// re-renders complete frames on demand.
//
// A renderer is in one of two states. It starts uninitialized; a
// successful Initialize makes it ready, and Close returns it to
// uninitialized. Redraw on an uninitialized renderer fails with
// [ErrNotInitialized] and touches nothing.
//
// Renderers are independent: each owns its backend instance, so multiple
// renderers with separate surfaces can coexist in one process.
type FrameRenderer struct {
	mu          sync.RWMutex
	surface     *Surface
	backend     Backend
	opts        rendererOptions
	initialized bool
	stats       FrameStats
}

// NewFrameRenderer creates a renderer bound to the given surface. The
// backend is resolved and its resources acquired in Initialize, not here.
func NewFrameRenderer(surface *Surface, opts ...RendererOption) *FrameRenderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FrameRenderer{
		surface: surface,
		opts:    o,
	}
}

// Initialize resolves the backend and acquires its rendering resources.
// An injected backend instance wins over a named backend, which wins over
// the registry default. Calling Initialize on a ready renderer is a no-op.
//
// On failure the renderer stays uninitialized and the error classifies
// the stage that failed: [ErrUnknownBackend] or [ErrNoBackend] during
// resolution, [ErrBackendUnavailable], [ErrDeviceUnavailable] or
// [ErrResourceCreation] from the backend itself.
func (r *FrameRenderer) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}
	if r.surface == nil {
		return ErrNilSurface
	}
	if r.surface.Width() <= 0 || r.surface.Height() <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, r.surface.Width(), r.surface.Height())
	}

	b := r.opts.backend
	if b == nil && r.opts.backendName != "" {
		b = Get(r.opts.backendName)
		if b == nil {
			return fmt.Errorf("%w: %q", ErrUnknownBackend, r.opts.backendName)
		}
	}
	if b == nil {
		b = Default()
		if b == nil {
			return ErrNoBackend
		}
	}

	if err := r.configure(b); err != nil {
		return err
	}
	if err := b.Initialize(r.surface); err != nil {
		return err
	}

	r.backend = b
	r.initialized = true
	Logger().Info("renderer initialized",
		"backend", b.Name(),
		"width", r.surface.Width(),
		"height", r.surface.Height())
	return nil
}

// configure pushes option-derived settings into the backend through its
// capability interfaces. Device sharing is the only setting that can
// fail; a rejected provider aborts initialization.
func (r *FrameRenderer) configure(b Backend) error {
	if cc, ok := b.(ColorConfigurable); ok {
		cc.SetColors(r.opts.active, r.opts.inactive)
	}
	if bc, ok := b.(BackgroundConfigurable); ok {
		bc.SetBackground(r.opts.background)
	}
	if wc, ok := b.(WidthConfigurable); ok && r.opts.lineWidth > 0 {
		wc.SetLineWidth(r.opts.lineWidth)
	}
	if dpa, ok := b.(DeviceProviderAware); ok && r.opts.deviceProvider != nil {
		if err := dpa.SetDeviceProvider(r.opts.deviceProvider); err != nil {
			return err
		}
	}
	return nil
}

// Redraw renders one complete frame: the surface is cleared to the
// background color, the backend re-derives all geometry from the dataset
// and plot state and draws it, and the surface generation advances.
func (r *FrameRenderer) Redraw(ds *Dataset, st *PlotState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return ErrNotInitialized
	}

	r.surface.Clear(r.opts.background)
	if err := r.backend.Redraw(ds, st); err != nil {
		return err
	}
	r.surface.present()

	if sp, ok := r.backend.(StatsProvider); ok {
		r.stats = sp.Stats()
	}
	Logger().Debug("frame rendered",
		"backend", r.backend.Name(),
		"active", r.stats.ActiveRows,
		"inactive", r.stats.InactiveRows,
		"vertices", r.stats.Vertices,
		"draws", r.stats.DrawCalls)
	return nil
}

// Initialized reports whether the renderer is ready to draw.
func (r *FrameRenderer) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized
}

// BackendName returns the resolved backend's name, or "" before a
// successful Initialize.
func (r *FrameRenderer) BackendName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.backend == nil {
		return ""
	}
	return r.backend.Name()
}

// Surface returns the target surface.
func (r *FrameRenderer) Surface() *Surface {
	return r.surface
}

// Stats returns the work counters of the most recent frame.
func (r *FrameRenderer) Stats() FrameStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

// Close releases the backend's resources and returns the renderer to the
// uninitialized state. A closed renderer can be initialized again.
func (r *FrameRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return nil
	}
	err := r.backend.Close()
	r.backend = nil
	r.initialized = false
	return err
}
