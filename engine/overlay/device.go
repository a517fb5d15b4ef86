package overlay

// TextureDescriptor describes the atlas texture. The format is always 8-bit sRGB RGBA, sampled with
// linear filtering and clamp-to-edge addressing.
type TextureDescriptor struct {
	Label  string
	Width  uint32
	Height uint32
}

// Texture is a GPU texture handle owned by an AtlasSync.
type Texture interface {
	// Width returns the texture width in texels.
	Width() uint32

	// Height returns the texture height in texels.
	Height() uint32

	// Release frees the GPU resources held by the texture.
	Release()
}

// BufferUsage selects what a Buffer is bound as.
type BufferUsage int

const (
	// BufferUsageVertex holds UIVertex data.
	BufferUsageVertex BufferUsage = iota
	// BufferUsageIndex holds uint32 indices.
	BufferUsageIndex
	// BufferUsageUniform holds the ScreenUniforms block.
	BufferUsageUniform
)

// String returns the usage name used in error messages.
func (u BufferUsage) String() string {
	switch u {
	case BufferUsageVertex:
		return "vertex"
	case BufferUsageIndex:
		return "index"
	case BufferUsageUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// Buffer is a GPU buffer handle.
type Buffer interface {
	// Size returns the buffer capacity in bytes.
	Size() uint64

	// Release frees the GPU resources held by the buffer.
	Release()
}

// PipelineDescriptor describes the fixed overlay pipeline. The topology is always a triangle list.
type PipelineDescriptor struct {
	Label          string
	VertexSource   string // WGSL with @oxy annotations
	FragmentSource string
	VertexLayout   VertexLayout
	Blend          BlendConfig
	DepthTest      bool
	DepthWrite     bool
}

// Pipeline is a compiled render pipeline handle.
type Pipeline interface {
	// Release frees the GPU resources held by the pipeline.
	Release()
}

// ScissorRect is a clip rectangle in physical framebuffer pixels.
type ScissorRect struct {
	X, Y, Width, Height uint32
}

// DrawCommand is one indexed draw into the current frame's render pass.
type DrawCommand struct {
	Pipeline   Pipeline
	Texture    Texture
	Uniforms   Buffer
	Vertices   Buffer
	Indices    Buffer
	FirstIndex uint32
	IndexCount uint32

	// Scissor restricts rasterization. Nil draws to the whole framebuffer.
	Scissor *ScissorRect
}

// Device is the narrow GPU capability the overlay needs. Every call happens on the render thread
// between the frame target's BeginFrame and EndFrame.
type Device interface {
	// CreateTexture allocates a texture for the atlas.
	//
	// Parameters:
	//   - desc: the texture label and size
	//
	// Returns:
	//   - Texture: the new texture
	//   - error: an error if the backend rejects the size or format
	CreateTexture(desc TextureDescriptor) (Texture, error)

	// WriteTexture replaces the full contents of a texture. data holds Width*Height RGBA texels.
	//
	// Parameters:
	//   - tex: the destination texture
	//   - data: tightly packed RGBA bytes, row-major
	//
	// Returns:
	//   - error: an error if the upload is rejected
	WriteTexture(tex Texture, data []byte) error

	// CreateBuffer allocates a GPU buffer.
	//
	// Parameters:
	//   - usage: how the buffer is bound
	//   - label: a debug label
	//   - size: the capacity in bytes
	//
	// Returns:
	//   - Buffer: the new buffer
	//   - error: an error if the allocation fails
	CreateBuffer(usage BufferUsage, label string, size uint64) (Buffer, error)

	// WriteBuffer copies data to the start of a buffer.
	//
	// Parameters:
	//   - buf: the destination buffer
	//   - data: the bytes to write, no longer than the buffer
	//
	// Returns:
	//   - error: an error if the write fails
	WriteBuffer(buf Buffer, data []byte) error

	// CreatePipeline compiles the shaders and builds a render pipeline.
	//
	// Parameters:
	//   - desc: the pipeline description
	//
	// Returns:
	//   - Pipeline: the new pipeline
	//   - error: an error if shader compilation or pipeline creation fails
	CreatePipeline(desc PipelineDescriptor) (Pipeline, error)

	// Draw records one indexed draw in the current render pass.
	//
	// Parameters:
	//   - cmd: the resources and index range to draw
	//
	// Returns:
	//   - error: an error if no render pass is open or a binding fails
	Draw(cmd DrawCommand) error
}
