package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// ViewUniformSize is the byte size of the CameraUniform buffer: one column-major mat4x4<f32>.
const ViewUniformSize = 16 * 4

// UniformSource is the WGSL CameraUniform struct that @oxy:include camera pastes into shaders.
//
//go:embed assets/camera_uniform.wgsl
var UniformSource string

// ViewUniform is the host copy of CameraUniform. The ball vertex shader only reads view_proj.
type ViewUniform struct {
	ViewProj [16]float32
}

// Marshal encodes the uniform as ViewUniformSize little-endian bytes.
func (u ViewUniform) Marshal() []byte {
	buf := make([]byte, 0, ViewUniformSize)
	for _, v := range u.ViewProj {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
