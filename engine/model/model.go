package model

import (
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer/bind_group_provider"
)

// model is the implementation of the Model interface.
type model struct {
	name         string
	mesh         *Mesh
	meshProvider bind_group_provider.BindGroupProvider
}

// Model defines the interface for a GPU-ready mesh.
// A Model pairs the CPU-side Mesh with the BindGroupProvider that will hold its vertex and
// index buffers once the renderer uploads them via InitMeshBuffers.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh retrieves the CPU-side mesh data.
	//
	// Returns:
	//   - *Mesh: the mesh, or nil if none was set
	Mesh() *Mesh

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the marshaled vertex buffer contents.
	//
	// Returns:
	//   - []byte: the vertex bytes, empty if no mesh is set
	VertexData() []byte

	// IndexData returns the marshaled index buffer contents.
	//
	// Returns:
	//   - []byte: the index bytes, empty if no mesh is set
	IndexData() []byte

	// IndexCount returns the number of indices drawn for the model.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Release frees the GPU buffers held by the mesh provider.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model with the given options.
// The mesh provider is labeled after the model name.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{name: "model"}
	for _, option := range options {
		option(m)
	}
	m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name + "_mesh")
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Mesh() *Mesh {
	return m.mesh
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	if m.mesh == nil {
		return nil
	}
	return m.mesh.VertexBytes()
}

func (m *model) IndexData() []byte {
	if m.mesh == nil {
		return nil
	}
	return m.mesh.IndexBytes()
}

func (m *model) IndexCount() int {
	if m.mesh == nil {
		return 0
	}
	return m.mesh.IndexCount()
}

func (m *model) Release() {
	m.meshProvider.Release()
}
