//go:build !nogpu

package webgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	spcd3 "github.com/filip-ljubotina/iawu-spcd3"
)

// acquireDevice opens a GPU device through the registered HAL backend,
// preferring discrete and integrated adapters over software ones.
func (b *Backend) acquireDevice() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("%w: vulkan HAL backend not registered", spcd3.ErrBackendUnavailable)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("%w: create instance: %w", spcd3.ErrDeviceUnavailable, err)
	}
	b.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("%w: no GPU adapters found", spcd3.ErrDeviceUnavailable)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", spcd3.ErrDeviceUnavailable, selected.Info.Name, err)
	}
	b.device = openDev.Device
	b.queue = openDev.Queue
	spcd3.Logger().Info("GPU device opened", "adapter", selected.Info.Name)
	return nil
}

// releaseDevice drops the device and instance. Shared devices are
// forgotten, not destroyed; their owner manages their lifetime.
func (b *Backend) releaseDevice() {
	if !b.externalDevice {
		if b.device != nil {
			b.device.Destroy()
		}
		if b.instance != nil {
			b.instance.Destroy()
		}
	}
	b.device = nil
	b.queue = nil
	b.instance = nil
	b.externalDevice = false
}

// SetDeviceProvider switches the backend to a shared GPU device from an
// external provider (e.g. a windowing framework that already owns one).
// The provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
//
// Resources tied to the previous device are torn down; when the backend
// is already initialized the pipeline is recreated against the shared
// device so the next Redraw works unchanged.
func (b *Backend) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("%w: provider does not expose HAL types", spcd3.ErrDeviceUnavailable)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("%w: provider HalDevice is not hal.Device", spcd3.ErrDeviceUnavailable)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("%w: provider HalQueue is not hal.Queue", spcd3.ErrDeviceUnavailable)
	}

	b.destroyTarget()
	b.destroyPipeline()
	b.releaseDevice()

	b.device = device
	b.queue = queue
	b.externalDevice = true

	if b.initialized {
		if err := b.createPipeline(); err != nil {
			b.destroyPipeline()
			b.initialized = false
			return err
		}
		b.writeViewport()
		b.writePaints()
	}
	spcd3.Logger().Info("switched to shared GPU device")
	return nil
}
