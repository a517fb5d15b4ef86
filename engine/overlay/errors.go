package overlay

import (
	"errors"
	"fmt"
)

var (
	// ErrNilTexture is wrapped by a ResourceError when a draw is attempted without a bound texture.
	ErrNilTexture = errors.New("texture is nil")

	// ErrSizeMismatch is wrapped by a ResourceError when the atlas and GPU texture disagree on size.
	ErrSizeMismatch = errors.New("atlas and texture sizes differ")

	// ErrIndexOutOfRange is wrapped by a TessellationError when an index does not reference a vertex.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoTexture is wrapped by a ResourceError when Sync runs before EnsureTexture.
	ErrNoTexture = errors.New("no texture allocated")
)

// Phase names the step of the overlay frame that failed.
type Phase int

const (
	// PhaseExtract covers input preparation, the widget build and tessellation.
	PhaseExtract Phase = iota
	// PhaseSync covers atlas texture allocation and upload.
	PhaseSync
	// PhaseDraw covers pipeline creation, buffer uploads and draw submission.
	PhaseDraw
)

// String returns the lower-case phase name used in log lines.
func (p Phase) String() string {
	switch p {
	case PhaseExtract:
		return "extract"
	case PhaseSync:
		return "sync"
	case PhaseDraw:
		return "draw"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ResourceKind classifies the GPU resource a ResourceError refers to.
type ResourceKind int

const (
	// KindTextureAllocation is a failed atlas texture creation.
	KindTextureAllocation ResourceKind = iota
	// KindTextureUpload is a failed or impossible atlas upload.
	KindTextureUpload
	// KindTextureBind is a draw without a usable texture.
	KindTextureBind
	// KindBuffer is a failed vertex, index or uniform buffer allocation or write.
	KindBuffer
	// KindShader is a shader that failed to load or compile.
	KindShader
)

// String returns the human-readable resource kind.
func (k ResourceKind) String() string {
	switch k {
	case KindTextureAllocation:
		return "texture allocation"
	case KindTextureUpload:
		return "texture upload"
	case KindTextureBind:
		return "texture bind"
	case KindBuffer:
		return "buffer"
	case KindShader:
		return "shader"
	default:
		return fmt.Sprintf("resource(%d)", int(k))
	}
}

// ResourceError reports that the backend rejected a texture, buffer or shader request.
type ResourceError struct {
	Kind ResourceKind
	Op   string
	Err  error
}

// Error formats the kind, the failed operation and the cause.
func (e *ResourceError) Error() string {
	return fmt.Sprintf("overlay: %s failed in %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the backend error.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// TessellationError reports that the UI library failed to produce a usable mesh.
type TessellationError struct {
	Err error
}

// Error formats the tessellation failure.
func (e *TessellationError) Error() string {
	return fmt.Sprintf("overlay: tessellation failed: %v", e.Err)
}

// Unwrap returns the cause, e.g. ErrIndexOutOfRange.
func (e *TessellationError) Unwrap() error {
	return e.Err
}

// PipelineError reports a pipeline creation, binding or draw submission failure.
type PipelineError struct {
	Op  string
	Err error
}

// Error formats the failed pipeline operation and the cause.
func (e *PipelineError) Error() string {
	return fmt.Sprintf("overlay: pipeline %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the device error.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// FrameError is returned by Overlay.Render. It records which phase aborted the frame.
type FrameError struct {
	Phase Phase
	Err   error
}

// Error formats the aborted phase and the cause.
func (e *FrameError) Error() string {
	return fmt.Sprintf("overlay: frame aborted in %s phase: %v", e.Phase, e.Err)
}

// Unwrap returns the phase's error, one of the error types above.
func (e *FrameError) Unwrap() error {
	return e.Err
}
