package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-ui/engine/overlay"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestBlendStatePremultipliedAlpha(t *testing.T) {
	got := blendState(overlay.PremultipliedAlpha())

	want := wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	}
	assert.Equal(t, want, got.Color)
	assert.Equal(t, want, got.Alpha)
}

func TestBlendStateSeparateAlpha(t *testing.T) {
	got := blendState(overlay.BlendConfig{
		Color: overlay.BlendComponent{
			Operation: overlay.BlendOperationMax,
			Src:       overlay.BlendFactorSrcAlpha,
			Dst:       overlay.BlendFactorDst,
		},
		Alpha: &overlay.BlendComponent{
			Operation: overlay.BlendOperationReverseSubtract,
			Src:       overlay.BlendFactorZero,
			Dst:       overlay.BlendFactorOneMinusDstAlpha,
		},
	})

	assert.Equal(t, wgpu.BlendOperationMax, got.Color.Operation)
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, got.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorDst, got.Color.DstFactor)
	assert.Equal(t, wgpu.BlendOperationReverseSubtract, got.Alpha.Operation)
	assert.Equal(t, wgpu.BlendFactorZero, got.Alpha.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOneMinusDstAlpha, got.Alpha.DstFactor)
}

func TestBlendFactorMapping(t *testing.T) {
	cases := map[overlay.BlendFactor]wgpu.BlendFactor{
		overlay.BlendFactorSrc:              wgpu.BlendFactorSrc,
		overlay.BlendFactorOneMinusSrc:      wgpu.BlendFactorOneMinusSrc,
		overlay.BlendFactorOneMinusDst:      wgpu.BlendFactorOneMinusDst,
		overlay.BlendFactorDstAlpha:         wgpu.BlendFactorDstAlpha,
		overlay.BlendFactorOneMinusSrcAlpha: wgpu.BlendFactorOneMinusSrcAlpha,
	}
	for in, want := range cases {
		assert.Equal(t, want, blendFactor(in), "factor %d", in)
	}
	assert.Equal(t, wgpu.BlendOperationSubtract, blendOperation(overlay.BlendOperationSubtract))
	assert.Equal(t, wgpu.BlendOperationMin, blendOperation(overlay.BlendOperationMin))
}

func TestVertexBufferLayoutFromUIVertexLayout(t *testing.T) {
	got := vertexBufferLayout(overlay.UIVertexLayout())

	assert.Equal(t, uint64(20), got.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, got.StepMode)
	assert.Equal(t, []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		{Format: wgpu.VertexFormatUnorm8x4, Offset: 16, ShaderLocation: 2},
	}, got.Attributes)
}
