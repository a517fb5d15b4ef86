package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-ui/common"
	"github.com/Carmen-Shannon/oxy-ui/engine/overlay"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// errForeignHandle is returned when a draw references a handle created by another device.
var errForeignHandle = errors.New("handle was not created by this device")

// overlayDevice adapts a Renderer to the overlay.Device capability. All overlay draws land in the
// renderer's current frame pass, after whatever the earlier layers drew.
type overlayDevice struct {
	r Renderer

	// mesh has its vertex and index buffers swapped in per draw, it never owns them
	mesh bind_group_provider.BindGroupProvider

	pipelines int
}

type overlayTexture struct {
	tex           *wgpu.Texture
	width, height uint32

	// provider holds the view, sampler and bind group, created on first draw
	provider bind_group_provider.BindGroupProvider
}

type overlayBuffer struct {
	usage  overlay.BufferUsage
	label  string
	size   uint64
	buffer *wgpu.Buffer

	// provider is only set for uniform buffers once bound, and then owns buffer
	provider bind_group_provider.BindGroupProvider
}

type overlayPipeline struct {
	r   Renderer
	key string

	vertex, fragment shader.Shader

	uniformGroup, uniformBinding int
	textureGroup, textureBinding int
	samplerBinding               int
}

var (
	_ overlay.Device   = &overlayDevice{}
	_ overlay.Texture  = &overlayTexture{}
	_ overlay.Buffer   = &overlayBuffer{}
	_ overlay.Pipeline = &overlayPipeline{}
)

// NewOverlayDevice exposes the renderer as the GPU device of an overlay.
//
// Parameters:
//   - r: the renderer whose frame the overlay draws into
//
// Returns:
//   - overlay.Device: the device
func NewOverlayDevice(r Renderer) overlay.Device {
	return &overlayDevice{
		r:    r,
		mesh: bind_group_provider.NewBindGroupProvider("overlay_mesh"),
	}
}

func (d *overlayDevice) CreateTexture(desc overlay.TextureDescriptor) (overlay.Texture, error) {
	tex, err := d.r.CreateTexture(desc.Label, desc.Width, desc.Height)
	if err != nil {
		return nil, err
	}
	return &overlayTexture{
		tex:      tex,
		width:    desc.Width,
		height:   desc.Height,
		provider: bind_group_provider.NewBindGroupProvider(desc.Label),
	}, nil
}

func (d *overlayDevice) WriteTexture(tex overlay.Texture, data []byte) error {
	t, ok := tex.(*overlayTexture)
	if !ok || t == nil || t.tex == nil {
		return fmt.Errorf("write texture: %w", errForeignHandle)
	}
	return d.r.WriteTexture(t.tex, t.width, t.height, data)
}

func (d *overlayDevice) CreateBuffer(usage overlay.BufferUsage, label string, size uint64) (overlay.Buffer, error) {
	var wgpuUsage wgpu.BufferUsage
	switch usage {
	case overlay.BufferUsageVertex:
		wgpuUsage = wgpu.BufferUsageVertex
	case overlay.BufferUsageIndex:
		wgpuUsage = wgpu.BufferUsageIndex
	case overlay.BufferUsageUniform:
		wgpuUsage = wgpu.BufferUsageUniform
	default:
		return nil, fmt.Errorf("create buffer %q: unknown usage %d", label, int(usage))
	}

	buf, err := d.r.CreateBuffer(label, wgpuUsage, size)
	if err != nil {
		return nil, err
	}
	return &overlayBuffer{usage: usage, label: label, size: size, buffer: buf}, nil
}

func (d *overlayDevice) WriteBuffer(buf overlay.Buffer, data []byte) error {
	b, ok := buf.(*overlayBuffer)
	if !ok || b == nil || b.buffer == nil {
		return fmt.Errorf("write buffer: %w", errForeignHandle)
	}
	if uint64(len(data)) > b.size {
		return fmt.Errorf("write buffer %q: %d bytes exceed capacity %d", b.label, len(data), b.size)
	}
	return d.r.WriteBuffer(b.buffer, data)
}

func (d *overlayDevice) CreatePipeline(desc overlay.PipelineDescriptor) (overlay.Pipeline, error) {
	vs, err := shader.NewShaderFromSource(desc.Label+".vert", shader.ShaderTypeVertex, desc.VertexSource)
	if err != nil {
		return nil, &overlay.ResourceError{Kind: overlay.KindShader, Op: "CreatePipeline", Err: err}
	}
	fs, err := shader.NewShaderFromSource(desc.Label+".frag", shader.ShaderTypeFragment, desc.FragmentSource)
	if err != nil {
		return nil, &overlay.ResourceError{Kind: overlay.KindShader, Op: "CreatePipeline", Err: err}
	}

	d.pipelines++
	op, err := resolveOverlayBindings(fmt.Sprintf("%s#%d", desc.Label, d.pipelines), vs, fs)
	if err != nil {
		return nil, &overlay.ResourceError{Kind: overlay.KindShader, Op: "CreatePipeline", Err: err}
	}
	op.r = d.r

	p := pipeline.NewPipeline(op.key,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithVertexLayouts(vertexBufferLayout(desc.VertexLayout)),
		pipeline.WithDepthTestEnabled(desc.DepthTest),
		pipeline.WithDepthWriteEnabled(desc.DepthWrite),
		pipeline.WithBlendEnabled(true),
		pipeline.WithBlendState(blendState(desc.Blend)),
		pipeline.WithCullMode(wgpu.CullModeNone),
		pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleList),
	)
	if err := d.r.RegisterPipelines(p); err != nil {
		return nil, err
	}
	return op, nil
}

// resolveOverlayBindings locates the screen uniform and atlas bindings through the shaders' @oxy
// declarations. The two resources must occupy groups 0 and 1.
func resolveOverlayBindings(key string, vs, fs shader.Shader) (*overlayPipeline, error) {
	op := &overlayPipeline{key: key, vertex: vs, fragment: fs, uniformGroup: -1}
	for _, a := range vs.Declarations() {
		if a.Type == shader.AnnotationTypeBindingGroup && len(a.Args) == 3 && a.Args[2] == shader.AnnotationArgScreenUniforms {
			op.uniformGroup, op.uniformBinding = *a.Group, *a.Binding
			break
		}
	}
	if op.uniformGroup < 0 {
		return nil, fmt.Errorf("%s declares no %s binding", vs.Key(), shader.AnnotationArgScreenUniforms)
	}

	tex, ok := fs.Provider(shader.AnnotationArgAtlas, shader.AnnotationArgAtlasTexture)
	if !ok {
		return nil, fmt.Errorf("%s declares no %s provider", fs.Key(), shader.AnnotationArgAtlasTexture)
	}
	samp, ok := fs.Provider(shader.AnnotationArgAtlas, shader.AnnotationArgAtlasSampler)
	if !ok {
		return nil, fmt.Errorf("%s declares no %s provider", fs.Key(), shader.AnnotationArgAtlasSampler)
	}
	if *tex.Group != *samp.Group {
		return nil, fmt.Errorf("atlas texture and sampler are in different groups (%d, %d)", *tex.Group, *samp.Group)
	}
	op.textureGroup, op.textureBinding, op.samplerBinding = *tex.Group, *tex.Binding, *samp.Binding

	if op.uniformGroup+op.textureGroup != 1 || op.uniformGroup == op.textureGroup {
		return nil, fmt.Errorf("screen uniforms and atlas must use groups 0 and 1, got %d and %d", op.uniformGroup, op.textureGroup)
	}
	return op, nil
}

func (d *overlayDevice) Draw(cmd overlay.DrawCommand) error {
	p, ok := cmd.Pipeline.(*overlayPipeline)
	if !ok || p == nil {
		return fmt.Errorf("draw pipeline: %w", errForeignHandle)
	}
	tex, ok := cmd.Texture.(*overlayTexture)
	if !ok || tex == nil {
		return &overlay.ResourceError{Kind: overlay.KindTextureBind, Op: "Draw", Err: overlay.ErrNilTexture}
	}
	uniforms, ok := cmd.Uniforms.(*overlayBuffer)
	if !ok || uniforms == nil {
		return fmt.Errorf("draw uniforms: %w", errForeignHandle)
	}
	vertices, ok := cmd.Vertices.(*overlayBuffer)
	if !ok || vertices == nil {
		return fmt.Errorf("draw vertices: %w", errForeignHandle)
	}
	indices, ok := cmd.Indices.(*overlayBuffer)
	if !ok || indices == nil {
		return fmt.Errorf("draw indices: %w", errForeignHandle)
	}

	if err := d.bindTexture(p, tex); err != nil {
		return &overlay.ResourceError{Kind: overlay.KindTextureBind, Op: "Draw", Err: err}
	}
	if err := d.bindUniforms(p, uniforms); err != nil {
		return &overlay.ResourceError{Kind: overlay.KindBuffer, Op: "Draw", Err: err}
	}

	d.mesh.SetVertexBuffer(vertices.buffer)
	d.mesh.SetIndexBuffer(indices.buffer)

	groups := make([]bind_group_provider.BindGroupProvider, 2)
	groups[p.uniformGroup] = uniforms.provider
	groups[p.textureGroup] = tex.provider

	var scissor *Scissor
	if cmd.Scissor != nil {
		scissor = &Scissor{X: cmd.Scissor.X, Y: cmd.Scissor.Y, Width: cmd.Scissor.Width, Height: cmd.Scissor.Height}
	}
	return d.r.DrawCallRange(p.key, d.mesh, cmd.FirstIndex, cmd.IndexCount, groups, scissor)
}

// bindTexture creates the atlas view, sampler and bind group the first time a texture is drawn.
func (d *overlayDevice) bindTexture(p *overlayPipeline, tex *overlayTexture) error {
	if tex.provider.BindGroup() != nil {
		return nil
	}
	if tex.provider.TextureView(p.textureBinding) == nil {
		view, err := tex.tex.CreateView(nil)
		if err != nil {
			return err
		}
		tex.provider.SetTextureView(p.textureBinding, view)
	}
	if tex.provider.Sampler(p.samplerBinding) == nil {
		err := d.r.InitSampler(tex.provider, p.samplerBinding, common.SamplerStagingData{
			AddressModeU: wgpu.AddressModeClampToEdge,
			AddressModeV: wgpu.AddressModeClampToEdge,
			AddressModeW: wgpu.AddressModeClampToEdge,
			MagFilter:    wgpu.FilterModeLinear,
			MinFilter:    wgpu.FilterModeLinear,
		})
		if err != nil {
			return err
		}
	}
	return d.r.InitBindGroup(tex.provider, p.fragment.BindGroupLayoutDescriptor(p.textureGroup), nil, nil)
}

// bindUniforms wraps the uniform buffer in a bind group the first time it is drawn.
func (d *overlayDevice) bindUniforms(p *overlayPipeline, buf *overlayBuffer) error {
	if buf.usage != overlay.BufferUsageUniform {
		return fmt.Errorf("buffer %q is a %s buffer, not uniform", buf.label, buf.usage)
	}
	if buf.provider != nil {
		return nil
	}
	provider := bind_group_provider.NewBindGroupProvider(buf.label,
		bind_group_provider.WithBuffer(p.uniformBinding, buf.buffer),
	)
	if err := d.r.InitBindGroup(provider, p.vertex.BindGroupLayoutDescriptor(p.uniformGroup), nil, nil); err != nil {
		return err
	}
	buf.provider = provider
	return nil
}

func (t *overlayTexture) Width() uint32 {
	return t.width
}

func (t *overlayTexture) Height() uint32 {
	return t.height
}

func (t *overlayTexture) Release() {
	if t.provider != nil {
		t.provider.Release()
	}
	if t.tex != nil {
		t.tex.Release()
		t.tex = nil
	}
}

func (b *overlayBuffer) Size() uint64 {
	return b.size
}

func (b *overlayBuffer) Release() {
	if b.provider != nil {
		b.provider.Release()
		b.provider = nil
		b.buffer = nil
		return
	}
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

func (p *overlayPipeline) Release() {
	if p.r != nil {
		p.r.UnregisterPipeline(p.key)
	}
}
