package renderer

import (
	"github.com/Carmen-Shannon/oxy-ui/engine/overlay"
	"github.com/cogentcore/webgpu/wgpu"
)

// blendState converts an overlay blend configuration to the WebGPU color target blend state.
// The alpha channel uses the color pair unless the configuration names its own.
func blendState(b overlay.BlendConfig) *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: blendComponent(b.Color),
		Alpha: blendComponent(b.AlphaComponent()),
	}
}

func blendComponent(c overlay.BlendComponent) wgpu.BlendComponent {
	return wgpu.BlendComponent{
		Operation: blendOperation(c.Operation),
		SrcFactor: blendFactor(c.Src),
		DstFactor: blendFactor(c.Dst),
	}
}

func blendOperation(op overlay.BlendOperation) wgpu.BlendOperation {
	switch op {
	case overlay.BlendOperationSubtract:
		return wgpu.BlendOperationSubtract
	case overlay.BlendOperationReverseSubtract:
		return wgpu.BlendOperationReverseSubtract
	case overlay.BlendOperationMin:
		return wgpu.BlendOperationMin
	case overlay.BlendOperationMax:
		return wgpu.BlendOperationMax
	default:
		return wgpu.BlendOperationAdd
	}
}

func blendFactor(f overlay.BlendFactor) wgpu.BlendFactor {
	switch f {
	case overlay.BlendFactorZero:
		return wgpu.BlendFactorZero
	case overlay.BlendFactorOne:
		return wgpu.BlendFactorOne
	case overlay.BlendFactorSrc:
		return wgpu.BlendFactorSrc
	case overlay.BlendFactorOneMinusSrc:
		return wgpu.BlendFactorOneMinusSrc
	case overlay.BlendFactorSrcAlpha:
		return wgpu.BlendFactorSrcAlpha
	case overlay.BlendFactorOneMinusSrcAlpha:
		return wgpu.BlendFactorOneMinusSrcAlpha
	case overlay.BlendFactorDst:
		return wgpu.BlendFactorDst
	case overlay.BlendFactorOneMinusDst:
		return wgpu.BlendFactorOneMinusDst
	case overlay.BlendFactorDstAlpha:
		return wgpu.BlendFactorDstAlpha
	case overlay.BlendFactorOneMinusDstAlpha:
		return wgpu.BlendFactorOneMinusDstAlpha
	default:
		return wgpu.BlendFactorOne
	}
}

// vertexBufferLayout converts the overlay vertex layout to a per-vertex WebGPU buffer layout.
func vertexBufferLayout(l overlay.VertexLayout) wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 0, len(l.Attributes))
	for _, a := range l.Attributes {
		format := wgpu.VertexFormatFloat32x2
		if a.Format == overlay.VertexFormatUnorm8x4 {
			format = wgpu.VertexFormatUnorm8x4
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         format,
			Offset:         a.Offset,
			ShaderLocation: a.Location,
		})
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: l.Stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}
