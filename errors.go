package spcd3

import "errors"

// Rendering errors. Backends wrap these sentinels with fmt.Errorf("%w: %w", ...)
// to attach the underlying diagnostic; callers classify with errors.Is.
var (
	// ErrBackendUnavailable indicates the rendering API the backend needs
	// is not present on this system (no Vulkan loader, no display). It is
	// returned before any device or buffer work is attempted.
	ErrBackendUnavailable = errors.New("spcd3: backend unavailable")

	// ErrDeviceUnavailable indicates the rendering API exists but no
	// usable device could be acquired (no adapters, open failed).
	ErrDeviceUnavailable = errors.New("spcd3: device unavailable")

	// ErrResourceCreation indicates a GPU resource (shader module,
	// pipeline, buffer, texture) could not be created on an otherwise
	// working device.
	ErrResourceCreation = errors.New("spcd3: resource creation failed")

	// ErrNotInitialized is returned by Redraw when the renderer has not
	// been successfully initialized.
	ErrNotInitialized = errors.New("spcd3: renderer not initialized")

	// ErrUnknownBackend is returned when a requested backend name has no
	// registered factory. Backend packages register themselves in init();
	// importing the package (possibly with a blank import) makes it
	// available.
	ErrUnknownBackend = errors.New("spcd3: unknown backend")

	// ErrNoBackend is returned when no backend at all is registered.
	ErrNoBackend = errors.New("spcd3: no backend available")

	// ErrNilSurface is returned when a renderer is created or initialized
	// without a target surface.
	ErrNilSurface = errors.New("spcd3: nil surface")

	// ErrInvalidDimensions is returned for zero or negative surface sizes.
	ErrInvalidDimensions = errors.New("spcd3: invalid dimensions")
)
