package overlay

import (
	"math/bits"

	"github.com/chewxy/math32"
)

const minBufferSize = 4096

// Compositor draws a FrameMesh over whatever the frame already contains. It owns the overlay
// pipeline and the vertex, index and uniform buffers, which are reused across frames and only
// reallocated when a frame outgrows them.
type Compositor struct {
	device Device
	blend  BlendConfig
	scale  float32

	pipeline Pipeline
	vertices Buffer
	indices  Buffer
	uniforms Buffer

	vertexBytes []byte
	indexBytes  []byte

	draws int
}

// NewCompositor creates a Compositor. It honours WithBlendConfig and WithScale. No GPU resources are
// created until the first non-empty Draw.
//
// Parameters:
//   - device: the device used for pipelines, buffers and draws
//   - options: a variadic list of BuilderOption functions
//
// Returns:
//   - *Compositor: the compositor
func NewCompositor(device Device, options ...BuilderOption) *Compositor {
	cfg := newBuilderConfig(options)
	return &Compositor{
		device: device,
		blend:  cfg.blend,
		scale:  cfg.scale,
	}
}

// Blend returns the blend state the pipeline is (or will be) created with.
func (c *Compositor) Blend() BlendConfig {
	return c.blend
}

// SetScale sets the logical-to-physical factor used to convert clip rectangles to scissors.
func (c *Compositor) SetScale(scale float32) {
	if scale > 0 {
		c.scale = scale
	}
}

// Draws returns the number of draw commands submitted so far.
func (c *Compositor) Draws() int {
	return c.draws
}

// Draw submits the mesh with the given texture bound. It never clears the target.
//
// Parameters:
//   - mesh: the frame's geometry
//   - tex: the synchronized atlas texture
//   - screen: the logical screen size
//
// Returns:
//   - error: a *ResourceError for a missing texture or buffer failure, or a *PipelineError
func (c *Compositor) Draw(mesh FrameMesh, tex Texture, screen ScreenUniforms) error {
	if tex == nil {
		return &ResourceError{Kind: KindTextureBind, Op: "Draw", Err: ErrNilTexture}
	}
	if mesh.IsEmpty() {
		return nil
	}

	if c.pipeline == nil {
		p, err := c.device.CreatePipeline(PipelineDescriptor{
			Label:          "overlay",
			VertexSource:   VertexShaderSource,
			FragmentSource: FragmentShaderSource,
			VertexLayout:   UIVertexLayout(),
			Blend:          c.blend,
			DepthTest:      false,
			DepthWrite:     false,
		})
		if err != nil {
			return &PipelineError{Op: "create", Err: err}
		}
		c.pipeline = p
	}

	c.vertexBytes = MarshalVertices(c.vertexBytes, mesh.Vertices)
	c.indexBytes = MarshalIndices(c.indexBytes, mesh.Indices)
	if err := c.upload(&c.vertices, BufferUsageVertex, "overlay_vertices", c.vertexBytes); err != nil {
		return err
	}
	if err := c.upload(&c.indices, BufferUsageIndex, "overlay_indices", c.indexBytes); err != nil {
		return err
	}
	if err := c.upload(&c.uniforms, BufferUsageUniform, "overlay_screen", screen.Marshal()); err != nil {
		return err
	}

	fbWidth := uint32(math32.Round(screen.Width * c.scale))
	fbHeight := uint32(math32.Round(screen.Height * c.scale))
	for _, r := range mesh.Draws {
		scissor, ok := c.scissor(r, fbWidth, fbHeight)
		if !ok {
			continue
		}
		err := c.device.Draw(DrawCommand{
			Pipeline:   c.pipeline,
			Texture:    tex,
			Uniforms:   c.uniforms,
			Vertices:   c.vertices,
			Indices:    c.indices,
			FirstIndex: r.FirstIndex,
			IndexCount: r.IndexCount,
			Scissor:    scissor,
		})
		if err != nil {
			return &PipelineError{Op: "draw", Err: err}
		}
		c.draws++
	}
	return nil
}

// upload writes data into *buf, replacing the buffer with a larger power-of-two one when needed.
func (c *Compositor) upload(buf *Buffer, usage BufferUsage, label string, data []byte) error {
	need := uint64(len(data))
	if *buf == nil || (*buf).Size() < need {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
		size := need
		if usage != BufferUsageUniform {
			size = bufferCapacity(need)
		}
		b, err := c.device.CreateBuffer(usage, label, size)
		if err != nil {
			return &ResourceError{Kind: KindBuffer, Op: "create " + usage.String(), Err: err}
		}
		*buf = b
	}
	if err := c.device.WriteBuffer(*buf, data); err != nil {
		return &ResourceError{Kind: KindBuffer, Op: "write " + usage.String(), Err: err}
	}
	return nil
}

// scissor converts a logical clip rectangle to framebuffer pixels. ok is false when nothing of the
// range would be visible.
func (c *Compositor) scissor(r DrawRange, fbWidth, fbHeight uint32) (*ScissorRect, bool) {
	clamp := func(v float32, limit uint32) uint32 {
		return uint32(math32.Max(0, math32.Min(v, float32(limit))))
	}
	x0 := clamp(math32.Floor(r.Clip.Min.X*c.scale), fbWidth)
	y0 := clamp(math32.Floor(r.Clip.Min.Y*c.scale), fbHeight)
	x1 := clamp(math32.Ceil(r.Clip.Max.X*c.scale), fbWidth)
	y1 := clamp(math32.Ceil(r.Clip.Max.Y*c.scale), fbHeight)
	if x1 <= x0 || y1 <= y0 || r.IndexCount == 0 {
		return nil, false
	}
	return &ScissorRect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// Release frees the pipeline and buffers.
func (c *Compositor) Release() {
	for _, b := range []Buffer{c.vertices, c.indices, c.uniforms} {
		if b != nil {
			b.Release()
		}
	}
	c.vertices, c.indices, c.uniforms = nil, nil, nil
	if c.pipeline != nil {
		c.pipeline.Release()
		c.pipeline = nil
	}
}

func bufferCapacity(need uint64) uint64 {
	if need <= minBufferSize {
		return minBufferSize
	}
	return 1 << bits.Len64(need-1)
}
