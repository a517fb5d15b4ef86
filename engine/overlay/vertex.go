package overlay

import (
	"encoding/binary"

	"github.com/Carmen-Shannon/oxy-ui/engine/ui"
)

// VertexFormat is the GPU-side format of one vertex attribute.
type VertexFormat int

const (
	// VertexFormatFloat32x2 is two 32-bit floats.
	VertexFormatFloat32x2 VertexFormat = iota

	// VertexFormatUnorm8x4 is four unsigned bytes the shader reads as floats in [0, 1].
	VertexFormatUnorm8x4
)

// Size returns the attribute size in bytes.
func (f VertexFormat) Size() uint64 {
	switch f {
	case VertexFormatFloat32x2:
		return 8
	case VertexFormatUnorm8x4:
		return 4
	default:
		return 0
	}
}

// Normalized reports whether integer data is converted to [0, 1] floats when read.
func (f VertexFormat) Normalized() bool {
	return f == VertexFormatUnorm8x4
}

func (f VertexFormat) String() string {
	switch f {
	case VertexFormatFloat32x2:
		return "float32x2"
	case VertexFormatUnorm8x4:
		return "unorm8x4"
	default:
		return "unknown"
	}
}

// VertexAttribute binds one field of the vertex to a shader input location.
type VertexAttribute struct {
	Name     string
	Location uint32
	Format   VertexFormat
	Offset   uint64
}

// VertexLayout is the per-vertex buffer layout of the overlay pipeline.
type VertexLayout struct {
	Stride     uint64
	Attributes []VertexAttribute
}

// UIVertexLayout returns the fixed layout of UIVertex as read by the overlay vertex shader.
//
// Returns:
//   - VertexLayout: a_pos, a_tc and a_srgba at locations 0 to 2, stride 20
func UIVertexLayout() VertexLayout {
	return VertexLayout{
		Stride: 20,
		Attributes: []VertexAttribute{
			{Name: "a_pos", Location: 0, Format: VertexFormatFloat32x2, Offset: 0},
			{Name: "a_tc", Location: 1, Format: VertexFormatFloat32x2, Offset: 8},
			{Name: "a_srgba", Location: 2, Format: VertexFormatUnorm8x4, Offset: 16},
		},
	}
}

// AdaptVertex converts a UI library vertex into the GPU layout. Color bytes are copied in R, G, B, A
// order without conversion.
//
// Parameters:
//   - v: the tessellated vertex
//
// Returns:
//   - UIVertex: the GPU vertex
func AdaptVertex(v ui.Vertex) UIVertex {
	return UIVertex{
		Position: [2]float32{v.Pos.X, v.Pos.Y},
		TexCoord: [2]float32{v.UV.X, v.UV.Y},
		Color:    [4]uint8{v.Color[0], v.Color[1], v.Color[2], v.Color[3]},
	}
}

// MarshalVertices appends the GPU encoding of vs to dst[:0] and returns the result, reusing dst's
// capacity.
//
// Parameters:
//   - dst: a scratch buffer, may be nil
//   - vs: the vertices to encode
//
// Returns:
//   - []byte: 20*len(vs) bytes
func MarshalVertices(dst []byte, vs []UIVertex) []byte {
	dst = dst[:0]
	for i := range vs {
		dst = vs[i].appendTo(dst)
	}
	return dst
}

// MarshalIndices appends the little-endian encoding of idx to dst[:0] and returns the result.
//
// Parameters:
//   - dst: a scratch buffer, may be nil
//   - idx: the indices to encode
//
// Returns:
//   - []byte: 4*len(idx) bytes
func MarshalIndices(dst []byte, idx []uint32) []byte {
	dst = dst[:0]
	for _, i := range idx {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}
