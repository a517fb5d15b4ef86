// Package common holds the plain shared structs and the float32 math helpers used by the
// renderer, the backdrop scene and the camera.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// SamplerStagingData is the sampler configuration handed to Renderer.InitSampler.
// Zero fields fall back to the values filled in by WithDefaults.
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	MaxAnisotropy                            uint16
}

// WithDefaults returns a copy of s with every zero field replaced: repeat addressing, linear
// filtering, a LOD range of [0, 32] and an anisotropy of 1.
//
// Returns:
//   - SamplerStagingData: the completed configuration
func (s SamplerStagingData) WithDefaults() SamplerStagingData {
	s.AddressModeU = orDefault(s.AddressModeU, wgpu.AddressModeRepeat)
	s.AddressModeV = orDefault(s.AddressModeV, wgpu.AddressModeRepeat)
	s.AddressModeW = orDefault(s.AddressModeW, wgpu.AddressModeRepeat)
	s.MagFilter = orDefault(s.MagFilter, wgpu.FilterModeLinear)
	s.MinFilter = orDefault(s.MinFilter, wgpu.FilterModeLinear)
	s.MipmapFilter = orDefault(s.MipmapFilter, wgpu.MipmapFilterModeLinear)
	s.LodMaxClamp = orDefault(s.LodMaxClamp, 32)
	s.MaxAnisotropy = orDefault(s.MaxAnisotropy, 1)
	return s
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
