package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestSamplerStagingDataWithDefaults(t *testing.T) {
	s := SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeNearest,
		LodMinClamp:  2,
	}.WithDefaults()

	assert.Equal(t, wgpu.AddressModeClampToEdge, s.AddressModeU)
	assert.Equal(t, wgpu.AddressModeRepeat, s.AddressModeV)
	assert.Equal(t, wgpu.AddressModeRepeat, s.AddressModeW)
	assert.Equal(t, wgpu.FilterModeNearest, s.MagFilter)
	assert.Equal(t, wgpu.FilterModeLinear, s.MinFilter)
	assert.Equal(t, wgpu.MipmapFilterModeLinear, s.MipmapFilter)
	assert.Equal(t, float32(2), s.LodMinClamp)
	assert.Equal(t, float32(32), s.LodMaxClamp)
	assert.Equal(t, uint16(1), s.MaxAnisotropy)
}

func TestIdentityAndMul4(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)

	m := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	out := make([]float32, 16)
	Mul4(out, id, m)
	assert.Equal(t, m, out)

	Mul4(out, m, id)
	assert.Equal(t, m, out)
}

func TestMul4InPlace(t *testing.T) {
	m := make([]float32, 16)
	Identity(m)
	m[12] = 2 // translate x by 2

	Mul4(m, m, m)
	assert.Equal(t, float32(4), m[12])
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	view := make([]float32, 16)
	LookAt(view, 2, 0, 2, 0, 0, 0, 0, 1, 0)

	eye := Transform4(view, 2, 0, 2)
	assert.InDelta(t, 0, eye[0], 1e-5)
	assert.InDelta(t, 0, eye[1], 1e-5)
	assert.InDelta(t, 0, eye[2], 1e-5)

	// the target lies straight ahead on -Z
	target := Transform4(view, 0, 0, 0)
	assert.InDelta(t, 0, target[0], 1e-5)
	assert.InDelta(t, -2*math32.Sqrt2, target[2], 1e-5)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := make([]float32, 16)
	Perspective(proj, math32.Pi/2, 1, 0.1, 10)

	near := Transform4(proj, 0, 0, -0.1)
	far := Transform4(proj, 0, 0, -10)
	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-5)

	// fovY of 90 degrees puts y = -z on the top clip edge
	edge := Transform4(proj, 0, 1, -1)
	assert.InDelta(t, 1, edge[1]/edge[3], 1e-5)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, float32(0), Clamp01(-0.5))
	assert.Equal(t, float32(0.25), Clamp01(0.25))
	assert.Equal(t, float32(1), Clamp01(1.5))
}
