package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-ui/common"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawRecord struct {
	pipelineKey   string
	firstIndex    uint32
	indexCount    uint32
	instanceCount uint32
	bindGroups    []bind_group_provider.BindGroupProvider
	scissor       *Scissor
}

// fakeBackend records the calls the renderer forwards. Methods it does not override panic through
// the nil embedded interface.
type fakeBackend struct {
	wgpuRendererBackend

	registered  []pipeline.Pipeline
	registerErr error
	draws       []drawRecord
	drawErr     error

	bindGroups    []wgpu.BindGroupLayoutDescriptor
	samplers      int
	bufferWrites  int
	textureWrites int

	clearColor    *wgpu.Color
	presentMode   *PresentMode
	width, height uint32
}

func (b *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if b.registerErr != nil {
		return b.registerErr
	}
	b.registered = append(b.registered, p)
	return nil
}

func (b *fakeBackend) DrawCall(p pipeline.Pipeline, _ bind_group_provider.BindGroupProvider, firstIndex, indexCount, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider, scissor *Scissor) error {
	if b.drawErr != nil {
		return b.drawErr
	}
	b.draws = append(b.draws, drawRecord{
		pipelineKey:   p.PipelineKey(),
		firstIndex:    firstIndex,
		indexCount:    indexCount,
		instanceCount: instanceCount,
		bindGroups:    bindGroups,
		scissor:       scissor,
	})
	return nil
}

func (b *fakeBackend) ConfigureSurface(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b.width, b.height = uint32(width), uint32(height)
}

func (b *fakeBackend) SurfaceSize() (uint32, uint32) { return b.width, b.height }

func (b *fakeBackend) SetClearColor(color wgpu.Color) { b.clearColor = &color }

func (b *fakeBackend) SetPresentMode(mode PresentMode) { b.presentMode = &mode }

func (b *fakeBackend) CreateBuffer(string, wgpu.BufferUsage, uint64) (*wgpu.Buffer, error) {
	return &wgpu.Buffer{}, nil
}

func (b *fakeBackend) WriteBuffer(*wgpu.Buffer, []byte) error {
	b.bufferWrites++
	return nil
}

func (b *fakeBackend) CreateTexture(label string, width, height uint32) (*wgpu.Texture, error) {
	if width == 0 || height == 0 {
		return nil, errors.New("invalid size")
	}
	return &wgpu.Texture{}, nil
}

func (b *fakeBackend) WriteTexture(_ *wgpu.Texture, width, height uint32, data []byte) error {
	if len(data) != int(width*height*4) {
		return errors.New("size mismatch")
	}
	b.textureWrites++
	return nil
}

func (b *fakeBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, _ map[int]wgpu.BufferUsage, _ map[int]uint64) error {
	b.bindGroups = append(b.bindGroups, descriptor)
	provider.SetBindGroup(&wgpu.BindGroup{})
	return nil
}

func (b *fakeBackend) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	b.samplers++
	return nil
}

func newTestRenderer(t *testing.T, options ...RendererBuilderOption) (*renderer, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	r := newRenderer(BackendTypeWGPU, options...)
	r.backend = fb
	r.applyPending()
	return r, fb
}

func TestRendererAppliesPendingOptions(t *testing.T) {
	want := wgpu.Color{R: 1, G: 0.5, B: 0.25, A: 1}
	_, fb := newTestRenderer(t, WithClearColor(want), WithPresentMode(PresentModeVSync))

	require.NotNil(t, fb.clearColor)
	assert.Equal(t, want, *fb.clearColor)
	require.NotNil(t, fb.presentMode)
	assert.Equal(t, PresentModeVSync, *fb.presentMode)
}

func TestRendererResizeAndSurfaceSize(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Resize(800, 600)
	r.Resize(0, 0)

	w, h := r.SurfaceSize()
	assert.Equal(t, uint32(800), w)
	assert.Equal(t, uint32(600), h)
}

func TestRegisterPipelinesSkipsKnownKeys(t *testing.T) {
	r, fb := newTestRenderer(t)
	p := pipeline.NewPipeline("ball")

	require.NoError(t, r.RegisterPipelines(p))
	require.NoError(t, r.RegisterPipelines(pipeline.NewPipeline("ball")))

	assert.Len(t, fb.registered, 1)
	assert.Same(t, p, r.Pipeline("ball"))
	assert.Len(t, r.Pipelines(), 1)
}

func TestRegisterPipelinesWrapsBackendError(t *testing.T) {
	r, fb := newTestRenderer(t)
	fb.registerErr = errors.New("bad shader")

	err := r.RegisterPipelines(pipeline.NewPipeline("ball"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fb.registerErr)
	assert.Contains(t, err.Error(), `"ball"`)
	assert.Nil(t, r.Pipeline("ball"))
}

func TestUnregisterPipeline(t *testing.T) {
	r, _ := newTestRenderer(t)
	require.NoError(t, r.RegisterPipelines(pipeline.NewPipeline("overlay#1")))

	r.UnregisterPipeline("overlay#1")
	r.UnregisterPipeline("missing")

	assert.Nil(t, r.Pipeline("overlay#1"))
}

func TestDrawCallUsesWholeMesh(t *testing.T) {
	r, fb := newTestRenderer(t, WithPipeline("ball", pipeline.NewPipeline("ball")))
	mesh := bind_group_provider.NewBindGroupProvider("sphere", bind_group_provider.WithIndexCount(96))

	require.NoError(t, r.DrawCall("ball", mesh, 1, nil))

	require.Len(t, fb.draws, 1)
	assert.Equal(t, drawRecord{pipelineKey: "ball", indexCount: 96, instanceCount: 1}, fb.draws[0])
}

func TestDrawCallRangePassesScissor(t *testing.T) {
	r, fb := newTestRenderer(t)
	r.SetPipeline("overlay", pipeline.NewPipeline("overlay"))
	scissor := &Scissor{X: 10, Y: 20, Width: 30, Height: 40}

	require.NoError(t, r.DrawCallRange("overlay", nil, 6, 12, nil, scissor))

	require.Len(t, fb.draws, 1)
	assert.Equal(t, uint32(6), fb.draws[0].firstIndex)
	assert.Equal(t, uint32(12), fb.draws[0].indexCount)
	assert.Equal(t, scissor, fb.draws[0].scissor)
}

func TestDrawCallUnknownPipeline(t *testing.T) {
	r, fb := newTestRenderer(t)

	err := r.DrawCallRange("missing", nil, 0, 3, nil, nil)
	assert.ErrorContains(t, err, `"missing" not found`)
	assert.Empty(t, fb.draws)
}

func TestDrawCallForwardsBackendError(t *testing.T) {
	r, fb := newTestRenderer(t)
	r.SetPipelines(map[string]pipeline.Pipeline{"ball": pipeline.NewPipeline("ball")})
	fb.drawErr = ErrNoFrame

	err := r.DrawCall("ball", bind_group_provider.NewBindGroupProvider("m"), 1, nil)
	assert.ErrorIs(t, err, ErrNoFrame)
}
