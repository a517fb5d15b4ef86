package overlay

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUUIVertexSource is the canonical WGSL definition of the UIVertexInput struct.
// Matches UIVertex layout exactly (20 bytes, tightly packed). a_srgba is read through a Unorm8x4
// attribute, so the shader sees each color byte as a float in [0, 1].
//
//go:embed assets/ui_vertex.wgsl
var GPUUIVertexSource string

// GPUScreenUniformsSource is the canonical WGSL definition of the ScreenUniforms struct.
// Matches ScreenUniforms layout exactly (16 bytes, uniform aligned).
//
//go:embed assets/screen_uniforms.wgsl
var GPUScreenUniformsSource string

// VertexShaderSource maps pixel-space vertices to clip space using only u_screen_size.
//
//go:embed assets/ui.vert.wgsl
var VertexShaderSource string

// FragmentShaderSource multiplies the vertex color by the atlas sample taken through u_sampler.
//
//go:embed assets/ui.frag.wgsl
var FragmentShaderSource string

// UIVertex is the GPU representation of one UI vertex.
// Size: 20 bytes, no padding.
type UIVertex struct {
	Position [2]float32 // offset  0: position in logical pixels
	TexCoord [2]float32 // offset  8: normalized atlas coordinate
	Color    [4]uint8   // offset 16: premultiplied sRGBA, R G B A
}

// Size returns the size of the UIVertex struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (20)
func (g *UIVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the UIVertex into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the 20-byte encoding
func (g *UIVertex) Marshal() []byte {
	return g.appendTo(make([]byte, 0, g.Size()))
}

func (g *UIVertex) appendTo(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.Position[0]))
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.Position[1]))
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.TexCoord[0]))
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.TexCoord[1]))
	return append(buf, g.Color[0], g.Color[1], g.Color[2], g.Color[3])
}

// ScreenUniforms carries the screen size in logical pixels to the vertex shader.
// Size: 16 bytes (vec2<f32> padded to a uniform-friendly 16).
type ScreenUniforms struct {
	Width  float32 // offset 0
	Height float32 // offset 4
	_pad   [2]float32
}

// NewScreenUniforms derives the logical screen size from the framebuffer size and scale factor.
//
// Parameters:
//   - fbWidth: the framebuffer width in physical pixels
//   - fbHeight: the framebuffer height in physical pixels
//   - scale: the logical-to-physical scale factor, values <= 0 are treated as 1
//
// Returns:
//   - ScreenUniforms: the uniform block for the frame
func NewScreenUniforms(fbWidth, fbHeight int, scale float32) ScreenUniforms {
	if scale <= 0 {
		scale = 1
	}
	return ScreenUniforms{
		Width:  float32(fbWidth) / scale,
		Height: float32(fbHeight) / scale,
	}
}

// Size returns the size of the ScreenUniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *ScreenUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the ScreenUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the 16-byte encoding
func (g *ScreenUniforms) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Width))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Height))
	binary.LittleEndian.PutUint32(buf[8:12], 0)  // _pad
	binary.LittleEndian.PutUint32(buf[12:16], 0) // _pad
	return buf
}
