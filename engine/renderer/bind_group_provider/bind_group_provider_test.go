package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("camera", WithIndexCount(36))

	assert.Equal(t, "camera", p.Label())
	assert.Equal(t, 36, p.IndexCount())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(0))
	assert.Nil(t, p.Sampler(0))
}

func TestWithBufferRegistersBinding(t *testing.T) {
	p := NewBindGroupProvider("screen", WithBuffer(2, nil)).(*bindGroupProvider)

	_, ok := p.buffers[2]
	assert.True(t, ok)
	assert.Nil(t, p.Buffer(2))
}

func TestSetters(t *testing.T) {
	p := NewBindGroupProvider("atlas")
	p.SetBuffer(0, nil)
	p.SetTextureView(1, nil)
	p.SetSampler(2, nil)
	p.SetIndexCount(6)

	impl := p.(*bindGroupProvider)
	assert.Len(t, impl.buffers, 1)
	assert.Len(t, impl.textureViews, 1)
	assert.Len(t, impl.samplers, 1)
	assert.Equal(t, 6, p.IndexCount())
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	p := NewBindGroupProvider("empty", WithBuffer(0, nil))
	p.SetTextureView(0, nil)

	assert.NotPanics(t, p.Release)
	assert.NotPanics(t, p.Release)
	assert.Nil(t, p.BindGroup())
	assert.Empty(t, p.(*bindGroupProvider).buffers)
	assert.Empty(t, p.(*bindGroupProvider).textureViews)
}
