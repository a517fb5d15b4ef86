package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePresentMode(t *testing.T) {
	mode, ok := ParsePresentMode("vsync")
	assert.True(t, ok)
	assert.Equal(t, PresentModeVSync, mode)

	mode, ok = ParsePresentMode("uncapped")
	assert.True(t, ok)
	assert.Equal(t, PresentModeUncapped, mode)

	_, ok = ParsePresentMode("triple")
	assert.False(t, ok)
}

func TestParseMSAA(t *testing.T) {
	for samples, want := range map[int]MSAASampleCount{1: MSAAOff, 4: MSAA4x, 8: MSAA8x, 16: MSAA16x} {
		got, ok := ParseMSAA(samples)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := ParseMSAA(2)
	assert.False(t, ok)
}

func TestScissorClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Scissor
		want Scissor
	}{
		{name: "inside", in: Scissor{X: 10, Y: 10, Width: 20, Height: 20}, want: Scissor{X: 10, Y: 10, Width: 20, Height: 20}},
		{name: "overhang", in: Scissor{X: 90, Y: 40, Width: 50, Height: 50}, want: Scissor{X: 90, Y: 40, Width: 10, Height: 10}},
		{name: "outside", in: Scissor{X: 200, Y: 0, Width: 5, Height: 5}, want: Scissor{X: 100, Y: 0, Width: 0, Height: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.clamp(100, 50))
		})
	}
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "g0", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageVertex},
			{Binding: 0, Visibility: wgpu.ShaderStageVertex},
		}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}},
		1: {Label: "g1", Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	require.Len(t, merged, 2)

	g0 := merged[0]
	assert.Equal(t, "g0", g0.Label)
	require.Len(t, g0.Entries, 2)
	assert.Equal(t, uint32(0), g0.Entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, g0.Entries[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageVertex, g0.Entries[1].Visibility)

	assert.Equal(t, fragment[1], merged[1])
}
