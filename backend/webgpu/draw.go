//go:build !nogpu

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	spcd3 "github.com/filip-ljubotina/iawu-spcd3"
)

// rowDraw pairs an uploaded vertex buffer with its vertex count.
type rowDraw struct {
	buf   hal.Buffer
	count uint32
}

// uploadRows creates one vertex buffer per row and uploads its strip
// positions. Created buffers are appended to bufs so the caller can
// release them once the frame has been submitted and waited on.
func (b *Backend) uploadRows(batch *spcd3.VertexBatch, label string, bufs *[]hal.Buffer) ([]rowDraw, error) {
	draws := make([]rowDraw, 0, len(batch.Rows))
	for i, span := range batch.Rows {
		positions := batch.Positions[span.Start*2 : (span.Start+span.Count)*2]
		buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: fmt.Sprintf("%s_row%d", label, i),
			Size:  uint64(len(positions) * 4), //nolint:gosec // vertex data size is non-negative
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: create %s row buffer: %w", spcd3.ErrResourceCreation, label, err)
		}
		*bufs = append(*bufs, buf)
		b.queue.WriteBuffer(buf, 0, floatBytes(positions))
		draws = append(draws, rowDraw{buf: buf, count: uint32(span.Count)}) //nolint:gosec // vertex count fits uint32
	}
	return draws, nil
}

// renderFrame encodes one render pass drawing every row, submits it,
// and reads the target back into the surface. Inactive rows draw first
// under the inactive bind group, then active rows under the active one,
// so the active group composites on top.
func (b *Backend) renderFrame(batches *spcd3.FrameBatches, w, h uint32) error {
	// Per-row vertex buffers live until the fence wait completes.
	var rowBufs []hal.Buffer
	defer func() {
		for _, buf := range rowBufs {
			b.device.DestroyBuffer(buf)
		}
	}()

	inactive, err := b.uploadRows(&batches.Inactive, "line_inactive", &rowBufs)
	if err != nil {
		return err
	}
	active, err := b.uploadRows(&batches.Active, "line_active", &rowBufs)
	if err != nil {
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "line_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("line_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "line_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    b.targetView,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: b.background.R,
				G: b.background.G,
				B: b.background.B,
				A: b.background.A,
			},
		}},
	})
	rp.SetPipeline(b.pipeline)
	if len(inactive) > 0 {
		rp.SetBindGroup(0, b.inactiveBind, nil)
		for _, d := range inactive {
			rp.SetVertexBuffer(0, d.buf, 0)
			rp.Draw(d.count, 1, 0, 0)
		}
	}
	if len(active) > 0 {
		rp.SetBindGroup(0, b.activeBind, nil)
		for _, d := range active {
			rp.SetVertexBuffer(0, d.buf, 0)
			rp.Draw(d.count, 1, 0, 0)
		}
	}
	rp.End()
	b.stats.DrawCalls = len(inactive) + len(active)

	// After the pass the target is in attachment layout; the copy below
	// needs transfer source. Explicit barrier keeps Vulkan validation
	// happy and is a no-op elsewhere.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// Copy rows at 256-byte alignment as the copy pitch requires.
	bytesPerRow := w * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "line_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("%w: create staging buffer: %w", spcd3.ErrResourceCreation, err)
	}
	defer b.device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(b.target, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: b.target, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	// Return the target to attachment layout for the next frame's clear.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := b.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := b.queue.ReadBuffer(staging, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}

	blitBGRA(readback, int(alignedBytesPerRow), b.surface.Data(), int(w), int(h))
	return nil
}

// blitBGRA copies readback rows into the surface pixel buffer, dropping
// the row alignment padding and swapping BGRA to RGBA.
func blitBGRA(src []byte, stride int, dst []byte, w, h int) {
	for row := 0; row < h; row++ {
		s := src[row*stride:]
		d := dst[row*w*4:]
		for x := 0; x < w; x++ {
			d[x*4+0] = s[x*4+2]
			d[x*4+1] = s[x*4+1]
			d[x*4+2] = s[x*4+0]
			d[x*4+3] = s[x*4+3]
		}
	}
}

// floatBytes encodes a float32 slice as little-endian bytes.
func floatBytes(vals []float32) []byte {
	data := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return data
}
