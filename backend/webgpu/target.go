//go:build !nogpu

package webgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	spcd3 "github.com/filip-ljubotina/iawu-spcd3"
)

// ensureTarget creates or recreates the offscreen render target if the
// requested dimensions differ from the current size. If dimensions
// match and the texture exists, this is a no-op. The target is
// single-sample BGRA8 with CopySrc so frames can be read back.
func (b *Backend) ensureTarget(w, h uint32) error {
	if b.targetW == w && b.targetH == h && b.target != nil {
		return nil
	}
	b.destroyTarget()

	target, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "line_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("%w: create render target: %w", spcd3.ErrResourceCreation, err)
	}
	b.target = target

	view, err := b.device.CreateTextureView(target, &hal.TextureViewDescriptor{
		Label: "line_target_view",
	})
	if err != nil {
		b.destroyTarget()
		return fmt.Errorf("%w: create render target view: %w", spcd3.ErrResourceCreation, err)
	}
	b.targetView = view

	b.targetW = w
	b.targetH = h
	return nil
}

// destroyTarget releases the render target and resets dimensions.
func (b *Backend) destroyTarget() {
	if b.device == nil {
		return
	}
	if b.targetView != nil {
		b.device.DestroyTextureView(b.targetView)
		b.targetView = nil
	}
	if b.target != nil {
		b.device.DestroyTexture(b.target)
		b.target = nil
	}
	b.targetW = 0
	b.targetH = 0
}
