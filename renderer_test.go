package spcd3

import (
	"errors"
	"testing"
)

func TestRedrawBeforeInitialize(t *testing.T) {
	r := NewFrameRenderer(NewSurface(10, 10),
		WithBackendInstance(&stubBackend{name: "stub"}))

	err := r.Redraw(&Dataset{}, testPlotState("a", "b"))
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Redraw before Initialize = %v, want ErrNotInitialized", err)
	}
	if r.Surface().Generation() != 0 {
		t.Error("failed Redraw advanced the surface generation")
	}
}

func TestInitializeAndRedraw(t *testing.T) {
	stub := &stubBackend{name: "stub"}
	surface := NewSurface(10, 10)
	r := NewFrameRenderer(surface, WithBackendInstance(stub))

	if r.Initialized() {
		t.Fatal("renderer reports initialized before Initialize")
	}
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	if !r.Initialized() {
		t.Fatal("renderer not initialized after Initialize")
	}
	if r.BackendName() != "stub" {
		t.Errorf("BackendName = %q, want stub", r.BackendName())
	}
	if stub.surface != surface {
		t.Error("backend not bound to the renderer's surface")
	}

	if err := r.Redraw(&Dataset{}, testPlotState("a")); err != nil {
		t.Fatalf("Redraw() = %v", err)
	}
	if stub.redraws != 1 {
		t.Errorf("backend redraws = %d, want 1", stub.redraws)
	}
	if surface.Generation() != 1 {
		t.Errorf("Generation = %d, want 1 after first frame", surface.Generation())
	}
}

func TestInitializeIdempotent(t *testing.T) {
	stub := &stubBackend{name: "stub"}
	r := NewFrameRenderer(NewSurface(4, 4), WithBackendInstance(stub))

	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	if err := r.Initialize(); err != nil {
		t.Fatalf("second Initialize() = %v", err)
	}
}

func TestInitializeFailureStaysUninitialized(t *testing.T) {
	stub := &stubBackend{name: "stub", initErr: ErrDeviceUnavailable}
	r := NewFrameRenderer(NewSurface(4, 4), WithBackendInstance(stub))

	err := r.Initialize()
	if !errors.Is(err, ErrDeviceUnavailable) {
		t.Fatalf("Initialize() = %v, want ErrDeviceUnavailable", err)
	}
	if r.Initialized() {
		t.Error("renderer initialized after failed Initialize")
	}
	if err := r.Redraw(&Dataset{}, testPlotState("a")); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Redraw after failed Initialize = %v, want ErrNotInitialized", err)
	}
}

func TestInitializeNilSurface(t *testing.T) {
	r := NewFrameRenderer(nil, WithBackendInstance(&stubBackend{name: "stub"}))
	if err := r.Initialize(); !errors.Is(err, ErrNilSurface) {
		t.Errorf("Initialize() = %v, want ErrNilSurface", err)
	}
}

func TestInitializeInvalidDimensions(t *testing.T) {
	r := NewFrameRenderer(NewSurface(0, 10), WithBackendInstance(&stubBackend{name: "stub"}))
	if err := r.Initialize(); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Initialize() = %v, want ErrInvalidDimensions", err)
	}
}

func TestInitializeUnknownBackend(t *testing.T) {
	r := NewFrameRenderer(NewSurface(4, 4), WithBackend("nonexistent"))
	if err := r.Initialize(); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Initialize() = %v, want ErrUnknownBackend", err)
	}
}

func TestInitializeNamedBackend(t *testing.T) {
	const name = "stub-named-test"
	Register(name, func() Backend { return &stubBackend{name: name} })
	t.Cleanup(func() { Unregister(name) })

	r := NewFrameRenderer(NewSurface(4, 4), WithBackend(name))
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	if r.BackendName() != name {
		t.Errorf("BackendName = %q, want %q", r.BackendName(), name)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
}

func TestOptionsReachBackend(t *testing.T) {
	stub := &stubBackend{name: "stub"}
	active := Hex("#112233")
	inactive := Hex("#445566")
	background := Hex("#778899")

	r := NewFrameRenderer(NewSurface(4, 4),
		WithBackendInstance(stub),
		WithColors(active, inactive),
		WithBackground(background),
		WithLineWidth(2.5))
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}

	if !stub.configured {
		t.Fatal("SetColors was not called")
	}
	if stub.active != active || stub.inactive != inactive {
		t.Errorf("colors = %v/%v, want %v/%v", stub.active, stub.inactive, active, inactive)
	}
	if stub.background != background {
		t.Errorf("background = %v, want %v", stub.background, background)
	}
	if stub.lineWidth != 2.5 {
		t.Errorf("lineWidth = %v, want 2.5", stub.lineWidth)
	}
}

// sharedStub records a device provider handed through the renderer.
type sharedStub struct {
	stubBackend
	provider    any
	providerErr error
}

func (s *sharedStub) SetDeviceProvider(provider any) error {
	if s.providerErr != nil {
		return s.providerErr
	}
	s.provider = provider
	return nil
}

func TestDeviceProviderReachesBackend(t *testing.T) {
	stub := &sharedStub{stubBackend: stubBackend{name: "stub"}}
	marker := &struct{ tag string }{"shared"}

	r := NewFrameRenderer(NewSurface(4, 4),
		WithBackendInstance(stub),
		WithDeviceProvider(marker))
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	if stub.provider != any(marker) {
		t.Error("device provider not forwarded to the backend")
	}
}

func TestDeviceProviderFailureAborts(t *testing.T) {
	stub := &sharedStub{
		stubBackend: stubBackend{name: "stub"},
		providerErr: ErrDeviceUnavailable,
	}

	r := NewFrameRenderer(NewSurface(4, 4),
		WithBackendInstance(stub),
		WithDeviceProvider(struct{}{}))
	if err := r.Initialize(); !errors.Is(err, ErrDeviceUnavailable) {
		t.Fatalf("Initialize() = %v, want ErrDeviceUnavailable", err)
	}
	if r.Initialized() {
		t.Error("renderer initialized despite provider failure")
	}
	if stub.initialized {
		t.Error("backend initialized despite provider failure")
	}
}

func TestRedrawClearsToBackground(t *testing.T) {
	stub := &stubBackend{name: "stub"}
	surface := NewSurface(3, 3)
	r := NewFrameRenderer(surface,
		WithBackendInstance(stub),
		WithBackground(RGBA{0, 0, 1, 1}))
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	if err := r.Redraw(&Dataset{}, testPlotState("a")); err != nil {
		t.Fatalf("Redraw() = %v", err)
	}

	if got := surface.GetPixel(1, 1); got != (RGBA{0, 0, 1, 1}) {
		t.Errorf("pixel after Redraw = %v, want background blue", got)
	}
}

func TestRedrawErrorSkipsPresent(t *testing.T) {
	stub := &stubBackend{name: "stub", redrawErr: errors.New("device lost")}
	surface := NewSurface(4, 4)
	r := NewFrameRenderer(surface, WithBackendInstance(stub))
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}

	if err := r.Redraw(&Dataset{}, testPlotState("a")); err == nil {
		t.Fatal("Redraw() = nil, want backend error")
	}
	if surface.Generation() != 0 {
		t.Errorf("Generation = %d after failed Redraw, want 0", surface.Generation())
	}
}

func TestCloseReturnsToUninitialized(t *testing.T) {
	stub := &stubBackend{name: "stub"}
	r := NewFrameRenderer(NewSurface(4, 4), WithBackendInstance(stub))
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if !stub.closed {
		t.Error("backend was not closed")
	}
	if r.Initialized() {
		t.Error("renderer still initialized after Close")
	}
	if err := r.Redraw(&Dataset{}, testPlotState("a")); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Redraw after Close = %v, want ErrNotInitialized", err)
	}

	// Close on an uninitialized renderer is a no-op.
	if err := r.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestRendererStats(t *testing.T) {
	stub := &stubBackend{name: "stub"}
	r := NewFrameRenderer(NewSurface(4, 4), WithBackendInstance(stub))
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	if err := r.Redraw(&Dataset{}, testPlotState("a")); err != nil {
		t.Fatalf("Redraw() = %v", err)
	}
	if got := r.Stats().ActiveRows; got != 1 {
		t.Errorf("Stats().ActiveRows = %d, want 1", got)
	}
}

func TestIndependentRenderers(t *testing.T) {
	s1 := NewSurface(4, 4)
	s2 := NewSurface(8, 8)
	r1 := NewFrameRenderer(s1, WithBackendInstance(&stubBackend{name: "one"}))
	r2 := NewFrameRenderer(s2, WithBackendInstance(&stubBackend{name: "two"}))

	if err := r1.Initialize(); err != nil {
		t.Fatalf("r1.Initialize() = %v", err)
	}
	if err := r2.Initialize(); err != nil {
		t.Fatalf("r2.Initialize() = %v", err)
	}
	if err := r1.Redraw(&Dataset{}, testPlotState("a")); err != nil {
		t.Fatalf("r1.Redraw() = %v", err)
	}

	if s1.Generation() != 1 || s2.Generation() != 0 {
		t.Errorf("generations = %d/%d, want 1/0", s1.Generation(), s2.Generation())
	}
}
