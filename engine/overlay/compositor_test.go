package overlay

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-ui/engine/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrameMesh(quads int, clip ui.Rect) FrameMesh {
	var m FrameMesh
	for q := range quads {
		base := uint32(len(m.Vertices))
		for range 4 {
			m.Vertices = append(m.Vertices, UIVertex{Position: [2]float32{float32(q), 0}})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.Draws = []DrawRange{{FirstIndex: 0, IndexCount: uint32(len(m.Indices)), Clip: clip}}
	return m
}

var fullScreen = ui.RectFromMinSize(ui.Pos2{}, ui.Vec2{X: 640, Y: 480})

func TestDrawWithoutTextureFails(t *testing.T) {
	dev := &fakeDevice{}
	c := NewCompositor(dev)

	err := c.Draw(testFrameMesh(1, fullScreen), nil, NewScreenUniforms(640, 480, 1))

	var rerr *ResourceError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindTextureBind, rerr.Kind)
	assert.ErrorIs(t, err, ErrNilTexture)
	assert.Empty(t, dev.draws)
	assert.Zero(t, c.Draws())
}

func TestDrawIssuesOneIndexedDraw(t *testing.T) {
	dev := &fakeDevice{}
	c := NewCompositor(dev)
	tex := &fakeTexture{width: 4, height: 4}
	mesh := testFrameMesh(3, fullScreen)

	require.NoError(t, c.Draw(mesh, tex, NewScreenUniforms(640, 480, 1)))

	require.Len(t, dev.draws, 1)
	cmd := dev.draws[0]
	assert.Equal(t, uint32(0), cmd.FirstIndex)
	assert.Equal(t, uint32(18), cmd.IndexCount)
	assert.Same(t, tex, cmd.Texture.(*fakeTexture))
	assert.Equal(t, &ScissorRect{X: 0, Y: 0, Width: 640, Height: 480}, cmd.Scissor)
	assert.Equal(t, 1, c.Draws())

	vb := cmd.Vertices.(*fakeBuffer)
	assert.Equal(t, MarshalVertices(nil, mesh.Vertices), vb.data)
	ib := cmd.Indices.(*fakeBuffer)
	assert.Equal(t, MarshalIndices(nil, mesh.Indices), ib.data)
	ub := cmd.Uniforms.(*fakeBuffer)
	screen := NewScreenUniforms(640, 480, 1)
	assert.Equal(t, screen.Marshal(), ub.data)
}

func TestPipelineUsesPremultipliedBlendWithoutDepth(t *testing.T) {
	dev := &fakeDevice{}
	c := NewCompositor(dev)
	tex := &fakeTexture{width: 4, height: 4}

	require.NoError(t, c.Draw(testFrameMesh(1, fullScreen), tex, NewScreenUniforms(640, 480, 1)))
	require.NoError(t, c.Draw(testFrameMesh(1, fullScreen), tex, NewScreenUniforms(640, 480, 1)))

	require.Len(t, dev.pipelines, 1)
	desc := dev.pipelines[0].desc
	assert.False(t, desc.DepthTest)
	assert.False(t, desc.DepthWrite)
	assert.Equal(t, BlendComponent{Operation: BlendOperationAdd, Src: BlendFactorOne, Dst: BlendFactorOneMinusSrcAlpha}, desc.Blend.Color)
	assert.Equal(t, desc.Blend.Color, desc.Blend.AlphaComponent())
	assert.Equal(t, UIVertexLayout(), desc.VertexLayout)
	assert.Equal(t, VertexShaderSource, desc.VertexSource)
	assert.Equal(t, FragmentShaderSource, desc.FragmentSource)
}

func TestCustomBlendConfig(t *testing.T) {
	alpha := BlendComponent{Operation: BlendOperationAdd, Src: BlendFactorOneMinusDstAlpha, Dst: BlendFactorOne}
	blend := BlendConfig{Color: PremultipliedAlpha().Color, Alpha: &alpha}
	dev := &fakeDevice{}
	c := NewCompositor(dev, WithBlendConfig(blend))

	require.NoError(t, c.Draw(testFrameMesh(1, fullScreen), &fakeTexture{width: 1, height: 1}, NewScreenUniforms(64, 64, 1)))

	require.Len(t, dev.pipelines, 1)
	assert.Equal(t, alpha, dev.pipelines[0].desc.Blend.AlphaComponent())
}

func TestEmptyMeshDrawsNothing(t *testing.T) {
	dev := &fakeDevice{}
	c := NewCompositor(dev)

	require.NoError(t, c.Draw(FrameMesh{}, &fakeTexture{width: 1, height: 1}, NewScreenUniforms(64, 64, 1)))

	assert.Empty(t, dev.draws)
	assert.Empty(t, dev.pipelines)
	assert.Empty(t, dev.buffers)
}

func TestBuffersGrowByPowerOfTwoAndAreReused(t *testing.T) {
	dev := &fakeDevice{}
	c := NewCompositor(dev)
	tex := &fakeTexture{width: 1, height: 1}
	screen := NewScreenUniforms(640, 480, 1)

	require.NoError(t, c.Draw(testFrameMesh(1, fullScreen), tex, screen))
	require.NoError(t, c.Draw(testFrameMesh(2, fullScreen), tex, screen))
	vbs := dev.buffersOf(BufferUsageVertex)
	require.Len(t, vbs, 1)
	assert.Equal(t, uint64(minBufferSize), vbs[0].size)

	// 100 quads = 400 vertices = 8000 bytes
	require.NoError(t, c.Draw(testFrameMesh(100, fullScreen), tex, screen))
	vbs = dev.buffersOf(BufferUsageVertex)
	require.Len(t, vbs, 2)
	assert.True(t, vbs[0].released)
	assert.Equal(t, uint64(8192), vbs[1].size)

	// shrinking keeps the large buffer
	require.NoError(t, c.Draw(testFrameMesh(1, fullScreen), tex, screen))
	assert.Len(t, dev.buffersOf(BufferUsageVertex), 2)
	assert.Len(t, dev.buffersOf(BufferUsageUniform), 1)
}

func TestScissorFollowsClipAndScale(t *testing.T) {
	dev := &fakeDevice{}
	c := NewCompositor(dev, WithScale(2))
	tex := &fakeTexture{width: 1, height: 1}
	mesh := testFrameMesh(2, ui.Rect{})
	mesh.Draws = []DrawRange{
		{FirstIndex: 0, IndexCount: 6, Clip: ui.Rect{Min: ui.Pos2{X: 10.2, Y: 5}, Max: ui.Pos2{X: 100.1, Y: 50}}},
		{FirstIndex: 6, IndexCount: 6, Clip: ui.Rect{Min: ui.Pos2{X: 300, Y: 200}, Max: ui.Pos2{X: 700, Y: 600}}},
		{FirstIndex: 6, IndexCount: 6, Clip: ui.Rect{Min: ui.Pos2{X: 700, Y: 0}, Max: ui.Pos2{X: 800, Y: 10}}},
	}

	require.NoError(t, c.Draw(mesh, tex, NewScreenUniforms(640*2, 480*2, 2)))

	require.Len(t, dev.draws, 2)
	assert.Equal(t, &ScissorRect{X: 20, Y: 10, Width: 181, Height: 90}, dev.draws[0].Scissor)
	// clamped to the framebuffer
	assert.Equal(t, &ScissorRect{X: 600, Y: 400, Width: 680, Height: 560}, dev.draws[1].Scissor)
	assert.Equal(t, 2, c.Draws())
}

func TestDrawFailuresAreTyped(t *testing.T) {
	tex := &fakeTexture{width: 1, height: 1}
	screen := NewScreenUniforms(64, 64, 1)
	backend := errors.New("backend")

	var perr *PipelineError
	err := NewCompositor(&fakeDevice{createPipelineErr: backend}).Draw(testFrameMesh(1, fullScreen), tex, screen)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "create", perr.Op)

	dev := &fakeDevice{drawErr: backend}
	c := NewCompositor(dev)
	err = c.Draw(testFrameMesh(1, fullScreen), tex, screen)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "draw", perr.Op)
	assert.Zero(t, c.Draws())

	var rerr *ResourceError
	err = NewCompositor(&fakeDevice{createBufferErr: backend}).Draw(testFrameMesh(1, fullScreen), tex, screen)
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindBuffer, rerr.Kind)

	err = NewCompositor(&fakeDevice{writeBufferErr: backend}).Draw(testFrameMesh(1, fullScreen), tex, screen)
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindBuffer, rerr.Kind)
	assert.ErrorIs(t, err, backend)
}

func TestBufferCapacity(t *testing.T) {
	assert.Equal(t, uint64(minBufferSize), bufferCapacity(0))
	assert.Equal(t, uint64(minBufferSize), bufferCapacity(minBufferSize))
	assert.Equal(t, uint64(8192), bufferCapacity(minBufferSize+1))
	assert.Equal(t, uint64(16384), bufferCapacity(16384))
}
