package spcd3

// RendererOption configures a FrameRenderer during creation.
//
// Example:
//
//	// Best registered backend, default colors
//	r := spcd3.NewFrameRenderer(surface)
//
//	// Explicit backend with custom highlight colors
//	r := spcd3.NewFrameRenderer(surface,
//	    spcd3.WithBackend(spcd3.BackendSoftware),
//	    spcd3.WithColors(spcd3.Hex("#0081af"), spcd3.Hex("#d3d3d3")))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for renderer creation.
type rendererOptions struct {
	backendName    string
	backend        Backend
	active         RGBA
	inactive       RGBA
	background     RGBA
	lineWidth      float64
	deviceProvider any
}

// defaultRendererOptions returns the default renderer options. The line
// width stays zero so backends keep their own stroke defaults unless the
// caller asks for a specific width.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		active:     DefaultActiveColor,
		inactive:   DefaultInactiveColor,
		background: White,
	}
}

// WithBackend selects a registered backend by name. The backend package
// must be imported (a blank import suffices) so its init registration has
// run; otherwise Initialize fails with [ErrUnknownBackend].
func WithBackend(name string) RendererOption {
	return func(o *rendererOptions) {
		o.backendName = name
	}
}

// WithBackendInstance injects a constructed backend directly, bypassing
// the registry. Use this for custom backends or tests.
func WithBackendInstance(b Backend) RendererOption {
	return func(o *rendererOptions) {
		o.backend = b
	}
}

// WithColors sets the highlight group colors.
func WithColors(active, inactive RGBA) RendererOption {
	return func(o *rendererOptions) {
		o.active = active
		o.inactive = inactive
	}
}

// WithBackground sets the color the frame is cleared to before lines are
// drawn. The default is white.
func WithBackground(c RGBA) RendererOption {
	return func(o *rendererOptions) {
		o.background = c
	}
}

// WithLineWidth sets the stroke width in logical pixels for backends that
// support it. Values at or below zero are ignored.
func WithLineWidth(w float64) RendererOption {
	return func(o *rendererOptions) {
		if w > 0 {
			o.lineWidth = w
		}
	}
}

// WithDeviceProvider shares an externally owned GPU device with the
// backend instead of letting it create its own. The provider should
// implement HalDevice() any and HalQueue() any methods that return
// wgpu/hal types. Backends without device sharing ignore it.
func WithDeviceProvider(provider any) RendererOption {
	return func(o *rendererOptions) {
		o.deviceProvider = provider
	}
}
