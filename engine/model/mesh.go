package model

import (
	"encoding/binary"

	"github.com/chewxy/math32"
)

// Mesh is an indexed triangle list in the engine vertex format.
type Mesh struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// NewSphere tessellates a UV sphere centered on the origin.
// Rings run from the north pole (+Y) to the south pole; each ring has slices+1 vertices so the
// seam carries its own normals. Triangles wind counter-clockwise when seen from outside.
//
// Parameters:
//   - radius: the sphere radius
//   - stacks: the number of latitude bands (clamped to at least 2)
//   - slices: the number of longitude bands (clamped to at least 3)
//   - color: the linear RGBA color of every vertex
//
// Returns:
//   - *Mesh: the tessellated sphere
func NewSphere(radius float32, stacks, slices int, color [4]float32) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	m := &Mesh{
		Vertices: make([]GPUVertex, 0, (stacks+1)*(slices+1)),
		Indices:  make([]uint32, 0, stacks*slices*6),
	}

	for i := 0; i <= stacks; i++ {
		phi := math32.Pi * float32(i) / float32(stacks)
		sinPhi, cosPhi := math32.Sincos(phi)
		for j := 0; j <= slices; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(slices)
			sinTheta, cosTheta := math32.Sincos(theta)
			n := [3]float32{sinPhi * cosTheta, cosPhi, -sinPhi * sinTheta}
			m.Vertices = append(m.Vertices, GPUVertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				Color:    color,
			})
		}
	}

	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			// the pole rows collapse to a point, so skip their degenerate triangle
			if i != 0 {
				m.Indices = append(m.Indices, a, b, a+1)
			}
			if i != stacks-1 {
				m.Indices = append(m.Indices, a+1, b, b+1)
			}
		}
	}
	return m
}

// VertexBytes marshals every vertex into one contiguous buffer for GPU upload.
//
// Returns:
//   - []byte: len(Vertices) * GPUVertexSize bytes
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*GPUVertexSize)
	for i := range m.Vertices {
		m.Vertices[i].put(buf[i*GPUVertexSize:])
	}
	return buf
}

// IndexBytes marshals the indices as little-endian uint32 values.
//
// Returns:
//   - []byte: len(Indices) * 4 bytes
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// IndexCount returns the number of indices drawn for the mesh.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}
