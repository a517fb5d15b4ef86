// Package bind_group_provider holds the GPU resources a component binds when it draws: the
// bind group with its layout, the buffers, texture views and samplers behind it, and for mesh
// providers the vertex and index buffers.
package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// BufferWrite is one queued upload for Renderer.WriteBuffers: Data lands at Offset in the
// buffer bound at Binding on Provider.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// BindGroupProvider is the resource holder shared between a component and the Renderer.
// The backdrop camera, the ball mesh, and the overlay's screen uniforms and atlas each own one.
//
// Lifecycle:
//  1. the component creates a provider with a label
//  2. texture views are set directly and samplers are created with Renderer.InitSampler
//  3. Renderer.InitBindGroup fills in missing buffers and creates the bind group
//  4. Renderer.WriteBuffers updates buffer contents between frames
//  5. Renderer.DrawCall binds BindGroup and the mesh buffers
//  6. Release frees everything
type BindGroupProvider interface {
	// Label returns the debug label, also used as a prefix for GPU object labels.
	Label() string

	// BindGroup returns the bind group, or nil before InitBindGroup.
	BindGroup() *wgpu.BindGroup
	// BindGroupLayout returns the layout the bind group was created with, or nil.
	BindGroupLayout() *wgpu.BindGroupLayout
	// Buffer returns the buffer at a binding, or nil.
	Buffer(binding int) *wgpu.Buffer
	// TextureView returns the texture view at a binding, or nil.
	TextureView(binding int) *wgpu.TextureView
	// Sampler returns the sampler at a binding, or nil.
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the vertex buffer of a mesh provider, or nil.
	VertexBuffer() *wgpu.Buffer
	// IndexBuffer returns the uint32 index buffer of a mesh provider, or nil.
	IndexBuffer() *wgpu.Buffer
	// IndexCount returns how many indices DrawCall draws.
	IndexCount() int

	SetBindGroup(bg *wgpu.BindGroup)
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)
	// SetBuffer stores buf at binding. The provider takes ownership of it.
	SetBuffer(binding int, buf *wgpu.Buffer)
	SetTextureView(binding int, tv *wgpu.TextureView)
	SetSampler(binding int, s *wgpu.Sampler)
	SetVertexBuffer(buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)

	// Release frees every GPU object the provider owns. It is safe to call more than once.
	Release()
}

type bindGroupProvider struct {
	label string

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
	textureViews    map[int]*wgpu.TextureView
	samplers        map[int]*wgpu.Sampler

	// mesh providers only
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: the debug label
//   - options: functional options applied in order
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string                          { return p.label }
func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup             { return p.bindGroup }
func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout { return p.bindGroupLayout }
func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer        { return p.buffers[binding] }
func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}
func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler { return p.samplers[binding] }
func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer        { return p.vertexBuffer }
func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer         { return p.indexBuffer }
func (p *bindGroupProvider) IndexCount() int                   { return p.indexCount }

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup)              { p.bindGroup = bg }
func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) { p.bindGroupLayout = bgl }
func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer)      { p.buffers[binding] = buf }
func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.textureViews[binding] = tv
}
func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) { p.samplers[binding] = s }
func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer)        { p.vertexBuffer = buf }
func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer)         { p.indexBuffer = buf }
func (p *bindGroupProvider) SetIndexCount(count int)                 { p.indexCount = count }

// Release drops the bind group before the resources it references.
func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}

	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}

	for _, buf := range []**wgpu.Buffer{&p.vertexBuffer, &p.indexBuffer} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
}
