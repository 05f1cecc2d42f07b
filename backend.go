package spcd3

import "sync"

// Backend names for the built-in rendering paths.
const (
	// BackendWebGPU renders through an explicit GPU pipeline via the
	// wgpu HAL. Registered by importing backend/webgpu.
	BackendWebGPU = "webgpu"

	// BackendScenegraph renders through a retained scene graph with
	// antialiased CPU stroking. Registered by importing
	// backend/scenegraph.
	BackendScenegraph = "scenegraph"

	// BackendSoftware renders through the plain CPU rasterizer.
	// Registered by importing backend/software. Always available.
	BackendSoftware = "software"
)

// Backend renders complete frames of a parallel-coordinates plot. Each
// implementation owns its rendering resources (devices, pipelines,
// buffers, scene) and re-derives frame geometry from the dataset and plot
// state on every Redraw.
//
// Backends are registered by name from their package init functions;
// importing a backend package (possibly with a blank import) makes it
// selectable.
type Backend interface {
	// Name returns the backend's registered name.
	Name() string

	// Initialize acquires the backend's rendering resources and binds it
	// to the target surface. It reports classified failures:
	// [ErrBackendUnavailable] when the rendering API is absent,
	// [ErrDeviceUnavailable] when no device can be acquired, and
	// [ErrResourceCreation] when pipeline or buffer construction fails.
	Initialize(surface *Surface) error

	// Redraw renders one complete frame into the bound surface. The
	// previous frame's content is fully replaced.
	Redraw(ds *Dataset, st *PlotState) error

	// Close releases all rendering resources. The backend is unusable
	// afterwards.
	Close() error
}

// FrameStats describes the work of the most recent frame.
type FrameStats struct {
	ActiveRows   int
	InactiveRows int
	Vertices     int
	DrawCalls    int
}

// StatsProvider is implemented by backends that report per-frame work.
type StatsProvider interface {
	Stats() FrameStats
}

// ColorConfigurable is implemented by backends whose highlight group
// colors can be changed after construction.
type ColorConfigurable interface {
	SetColors(active, inactive RGBA)
}

// BackgroundConfigurable is implemented by backends that clear the frame
// themselves and need to know the background color.
type BackgroundConfigurable interface {
	SetBackground(c RGBA)
}

// WidthConfigurable is implemented by backends with an adjustable stroke
// width.
type WidthConfigurable interface {
	SetLineWidth(w float64)
}

// DeviceProviderAware is implemented by backends that can share a GPU
// device with an external provider (e.g. a windowing framework). When
// SetDeviceProvider is called, the backend reuses the provided device
// instead of creating its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

// BackendFactory creates a new backend instance.
type BackendFactory func() Backend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendWebGPU, BackendScenegraph, BackendSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a new backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns a new instance of the best registered backend by
// priority: webgpu > scenegraph > software. Returns nil if no backends
// are registered.
//
// Priority reflects registration only, not runtime capability: a
// registered webgpu backend still fails Initialize on a machine without
// a GPU, and callers fall back by trying the next name themselves or by
// importing only the backends they want considered.
func Default() Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if b := factory(); b != nil {
				return b
			}
		}
	}

	// Fallback: return first available
	for _, factory := range backends {
		if b := factory(); b != nil {
			return b
		}
	}

	return nil
}

// MustDefault returns the default backend or panics.
func MustDefault() Backend {
	b := Default()
	if b == nil {
		panic("spcd3: no backend available")
	}
	return b
}
