package pipeline

import (
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline and the state used to create it.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// both shaders are required before the renderer can register the pipeline
	vertexShader, fragmentShader shader.Shader

	// renderPipeline is set by the renderer once the GPU object exists
	renderPipeline *wgpu.RenderPipeline

	// vertexLayouts overrides the layouts reflected from the vertex shader when set
	vertexLayouts []wgpu.VertexBufferLayout

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a GPU render pipeline: a vertex and fragment shader pair plus
// the depth, blend, cull and topology state required to create it.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader for the given stage if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the stage of the shader to retrieve
	//
	// Returns:
	//   - shader.Shader: the shader for the stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// Pipeline returns the created GPU pipeline, or nil before the renderer registered it.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the render pipeline
	Pipeline() *wgpu.RenderPipeline

	// VertexLayouts returns the vertex buffer layouts used to create the pipeline. An explicit
	// layout set with WithVertexLayouts wins over the layouts reflected from the vertex shader.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts, in slot order
	VertexLayouts() []wgpu.VertexBufferLayout

	// DepthTestEnabled reports whether fragments are depth tested.
	DepthTestEnabled() bool

	// DepthWriteEnabled reports whether fragments write depth.
	DepthWriteEnabled() bool

	// BlendEnabled reports whether BlendState is applied to the color target.
	BlendEnabled() bool

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state used when blending is enabled.
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the created GPU pipeline.
	//
	// Parameters:
	//   - p: the render pipeline created by the renderer
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline, if one was created.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render Pipeline with depth testing and writing enabled, blending disabled,
// no culling and a counter-clockwise triangle list, then applies the options.
//
// Parameters:
//   - pipelineKey: the unique key used to cache the pipeline
//   - opts: a variadic list of PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: the configured pipeline, not yet registered with a renderer
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	if p.vertexLayouts != nil {
		return p.vertexLayouts
	}
	if p.vertexShader == nil {
		return nil
	}
	reflected := p.vertexShader.VertexLayouts()
	layouts := make([]wgpu.VertexBufferLayout, 0, len(reflected))
	for i := range len(reflected) {
		layouts = append(layouts, reflected[i]...)
	}
	return layouts
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
