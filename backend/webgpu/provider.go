//go:build !nogpu

package webgpu

import (
	"github.com/gogpu/gpucontext"
)

// DeviceHandle provides GPU device access from a host application.
//
// This is the integration point for embedding the plot in a GPU
// framework that already owns a device: the host implements
// DeviceHandle and hands it over, and the backend renders on the shared
// device instead of opening its own.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, keeping full
// compatibility with the gpucontext ecosystem. Concrete providers from
// windowing frameworks additionally expose HalDevice() any and
// HalQueue() any, which is what the backend actually consumes.
type DeviceHandle = gpucontext.DeviceProvider

// NewShared creates a webgpu backend bound to a host-provided GPU
// device. Initialize then skips device acquisition and only builds the
// pipeline. The caller keeps ownership of the device; Close will not
// destroy it.
func NewShared(provider DeviceHandle) (*Backend, error) {
	b := New()
	if err := b.SetDeviceProvider(provider); err != nil {
		return nil, err
	}
	return b, nil
}
