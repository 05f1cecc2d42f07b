//go:build !nogpu

package webgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	spcd3 "github.com/filip-ljubotina/iawu-spcd3"
)

//go:embed shaders/line.wgsl
var lineShaderSource string

// uniformSize is the byte size of both uniform blocks. The viewport is
// a vec2 padded to 16 bytes, the paint color a vec4.
const uniformSize = 16

// createPipeline builds the render pipeline plus the frame-constant
// uniform buffers and bind groups. All rows share one pipeline; the two
// groups differ only in which bind group is set.
func (b *Backend) createPipeline() error {
	if lineShaderSource == "" {
		return fmt.Errorf("%w: line shader source is empty", spcd3.ErrResourceCreation)
	}
	shader, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "line_shader",
		Source: hal.ShaderSource{WGSL: lineShaderSource},
	})
	if err != nil {
		return fmt.Errorf("%w: compile line shader: %w", spcd3.ErrResourceCreation, err)
	}
	b.shader = shader

	bindLayout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "line_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: create bind group layout: %w", spcd3.ErrResourceCreation, err)
	}
	b.bindLayout = bindLayout

	pipeLayout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "line_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("%w: create pipeline layout: %w", spcd3.ErrResourceCreation, err)
	}
	b.pipeLayout = pipeLayout

	// Straight-alpha over blending: row colors carry their own alpha and
	// composite against whatever is already in the target.
	blend := gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
	pipeline, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "line_pipeline",
		Layout: b.pipeLayout,
		Vertex: hal.VertexState{
			Module:     b.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: 8,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     b.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyLineStrip,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: create render pipeline: %w", spcd3.ErrResourceCreation, err)
	}
	b.pipeline = pipeline

	if err := b.createUniforms(); err != nil {
		return err
	}
	return nil
}

// createUniforms allocates the viewport and paint uniform buffers and
// the per-group bind groups. Both groups share the viewport buffer.
func (b *Backend) createUniforms() error {
	for _, u := range []struct {
		label string
		buf   *hal.Buffer
	}{
		{"line_viewport", &b.viewportBuf},
		{"line_active_paint", &b.activePaint},
		{"line_inactive_paint", &b.inactivePaint},
	} {
		buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: u.label,
			Size:  uniformSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("%w: create %s: %w", spcd3.ErrResourceCreation, u.label, err)
		}
		*u.buf = buf
	}

	for _, g := range []struct {
		label string
		paint hal.Buffer
		bind  *hal.BindGroup
	}{
		{"line_active_bind", b.activePaint, &b.activeBind},
		{"line_inactive_bind", b.inactivePaint, &b.inactiveBind},
	} {
		bind, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  g.label,
			Layout: b.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: b.viewportBuf.NativeHandle(), Offset: 0, Size: uniformSize,
				}},
				{Binding: 1, Resource: gputypes.BufferBinding{
					Buffer: g.paint.NativeHandle(), Offset: 0, Size: uniformSize,
				}},
			},
		})
		if err != nil {
			return fmt.Errorf("%w: create %s: %w", spcd3.ErrResourceCreation, g.label, err)
		}
		*g.bind = bind
	}
	return nil
}

// writeViewport uploads the surface dimensions to the viewport uniform.
func (b *Backend) writeViewport() {
	if b.viewportBuf == nil || b.surface == nil {
		return
	}
	var data [uniformSize]byte
	packFloats(data[:], float32(b.surface.Width()), float32(b.surface.Height()), 0, 0)
	b.queue.WriteBuffer(b.viewportBuf, 0, data[:])
}

// writePaints uploads both group colors to their paint uniforms.
func (b *Backend) writePaints() {
	if b.activePaint == nil {
		return
	}
	var data [uniformSize]byte
	c := b.asm.Active.Float32()
	packFloats(data[:], c[0], c[1], c[2], c[3])
	b.queue.WriteBuffer(b.activePaint, 0, data[:])
	c = b.asm.Inactive.Float32()
	packFloats(data[:], c[0], c[1], c[2], c[3])
	b.queue.WriteBuffer(b.inactivePaint, 0, data[:])
}

// destroyPipeline releases pipeline and uniform resources in reverse
// creation order.
func (b *Backend) destroyPipeline() {
	if b.device == nil {
		return
	}
	if b.inactiveBind != nil {
		b.device.DestroyBindGroup(b.inactiveBind)
		b.inactiveBind = nil
	}
	if b.activeBind != nil {
		b.device.DestroyBindGroup(b.activeBind)
		b.activeBind = nil
	}
	if b.inactivePaint != nil {
		b.device.DestroyBuffer(b.inactivePaint)
		b.inactivePaint = nil
	}
	if b.activePaint != nil {
		b.device.DestroyBuffer(b.activePaint)
		b.activePaint = nil
	}
	if b.viewportBuf != nil {
		b.device.DestroyBuffer(b.viewportBuf)
		b.viewportBuf = nil
	}
	if b.pipeline != nil {
		b.device.DestroyRenderPipeline(b.pipeline)
		b.pipeline = nil
	}
	if b.pipeLayout != nil {
		b.device.DestroyPipelineLayout(b.pipeLayout)
		b.pipeLayout = nil
	}
	if b.bindLayout != nil {
		b.device.DestroyBindGroupLayout(b.bindLayout)
		b.bindLayout = nil
	}
	if b.shader != nil {
		b.device.DestroyShaderModule(b.shader)
		b.shader = nil
	}
}

// packFloats encodes float32 values as little-endian bytes.
func packFloats(dst []byte, vals ...float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
