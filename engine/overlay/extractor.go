package overlay

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Carmen-Shannon/oxy-ui/engine/ui"
)

// MeshPolicy decides which clipped meshes of a UI frame are drawn.
type MeshPolicy int

const (
	// MeshPolicyFirst draws only the first clipped mesh, with its indices copied verbatim.
	MeshPolicyFirst MeshPolicy = iota

	// MeshPolicyAll flattens every clipped mesh into one buffer pair, offsetting indices by the
	// running vertex count, and emits one scissored draw range per mesh.
	MeshPolicyAll
)

func (p MeshPolicy) String() string {
	switch p {
	case MeshPolicyFirst:
		return "first"
	case MeshPolicyAll:
		return "all"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParseMeshPolicy converts "first" or "all" to a MeshPolicy.
//
// Parameters:
//   - s: the policy name, case insensitive
//
// Returns:
//   - MeshPolicy: the parsed policy
//   - error: an error if the name is unknown
func ParseMeshPolicy(s string) (MeshPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first":
		return MeshPolicyFirst, nil
	case "all":
		return MeshPolicyAll, nil
	default:
		return 0, fmt.Errorf("overlay: unknown mesh policy %q", s)
	}
}

// DrawRange is a run of indices drawn with one scissor rectangle.
type DrawRange struct {
	FirstIndex uint32
	IndexCount uint32
	Clip       ui.Rect // logical pixels
}

// FrameMesh is the triangle list produced for one frame. It is rebuilt every frame.
type FrameMesh struct {
	Vertices []UIVertex
	Indices  []uint32
	Draws    []DrawRange
}

// IsEmpty reports whether there is nothing to draw.
func (m *FrameMesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// UIContext is the part of the UI library the extractor drives.
type UIContext interface {
	BeginFrame(input ui.RawInput) (*ui.Frame, error)
	EndFrame() (ui.Output, []ui.ClippedMesh, error)
	Texture() *ui.TextureAtlas
}

// InputSource reports the host's pointer state for the next UI frame.
type InputSource interface {
	Input() ui.RawInput
}

// InputSourceFunc adapts a function to InputSource.
type InputSourceFunc func() ui.RawInput

func (f InputSourceFunc) Input() ui.RawInput {
	return f()
}

// Extractor runs one UI frame and converts the result into a FrameMesh.
type Extractor struct {
	ctx    UIContext
	policy MeshPolicy
	input  InputSource

	screen ui.Rect
	time   float64
	output ui.Output
}

// NewExtractor creates an Extractor for the given UI context. It honours WithMeshPolicy and
// WithInputSource.
//
// Parameters:
//   - ctx: the UI context
//   - options: a variadic list of BuilderOption functions
//
// Returns:
//   - *Extractor: the extractor
func NewExtractor(ctx UIContext, options ...BuilderOption) *Extractor {
	cfg := newBuilderConfig(options)
	return &Extractor{
		ctx:    ctx,
		policy: cfg.policy,
		input:  cfg.input,
	}
}

// Prepare sets the logical screen rectangle and time used for the next frames.
//
// Parameters:
//   - screen: the visible area in logical pixels
//   - time: the host time in seconds
func (e *Extractor) Prepare(screen ui.Rect, time float64) {
	e.screen = screen
	e.time = time
}

// Policy returns the active mesh policy.
func (e *Extractor) Policy() MeshPolicy {
	return e.policy
}

// Output returns the UI feedback of the last successful Extract.
func (e *Extractor) Output() ui.Output {
	return e.output
}

// Extract opens a UI frame at the given scale, runs build against it, closes it and converts the
// clipped meshes according to the mesh policy. build must not keep the frame after it returns.
//
// Parameters:
//   - build: the widget builder
//   - scale: the logical-to-physical pixel scale factor
//
// Returns:
//   - FrameMesh: the frame's geometry, empty when the UI drew nothing
//   - error: a *TessellationError
func (e *Extractor) Extract(build func(*ui.Frame), scale float32) (FrameMesh, error) {
	if build == nil {
		return FrameMesh{}, &TessellationError{Err: errors.New("builder is nil")}
	}

	var input ui.RawInput
	if e.input != nil {
		input = e.input.Input()
	}
	if !input.ScreenRect.IsPositive() {
		input.ScreenRect = e.screen
	}
	if input.Time == 0 {
		input.Time = e.time
	}
	input.PixelsPerPoint = scale

	frame, err := e.ctx.BeginFrame(input)
	if err != nil {
		return FrameMesh{}, &TessellationError{Err: err}
	}
	out, meshes, err := e.runFrame(frame, build)
	if err != nil {
		return FrameMesh{}, &TessellationError{Err: err}
	}
	e.output = out

	var mesh FrameMesh
	switch e.policy {
	case MeshPolicyAll:
		mesh, err = flattenAll(meshes)
	default:
		mesh = firstOnly(meshes)
	}
	if err != nil {
		return FrameMesh{}, &TessellationError{Err: err}
	}
	if err := validateIndices(&mesh); err != nil {
		return FrameMesh{}, &TessellationError{Err: err}
	}
	return mesh, nil
}

// runFrame runs build and closes the frame. A panicking builder still closes the frame before
// the panic continues, so the context accepts the next BeginFrame.
func (e *Extractor) runFrame(frame *ui.Frame, build func(*ui.Frame)) (ui.Output, []ui.ClippedMesh, error) {
	closed := false
	defer func() {
		if !closed {
			_, _, _ = e.ctx.EndFrame()
		}
	}()
	build(frame)
	closed = true
	return e.ctx.EndFrame()
}

func firstOnly(meshes []ui.ClippedMesh) FrameMesh {
	if len(meshes) == 0 {
		return FrameMesh{}
	}
	src := meshes[0]
	mesh := FrameMesh{
		Vertices: make([]UIVertex, len(src.Mesh.Vertices)),
		Indices:  append([]uint32(nil), src.Mesh.Indices...),
	}
	for i, v := range src.Mesh.Vertices {
		mesh.Vertices[i] = AdaptVertex(v)
	}
	if len(mesh.Indices) > 0 {
		mesh.Draws = []DrawRange{{FirstIndex: 0, IndexCount: uint32(len(mesh.Indices)), Clip: src.Clip}}
	}
	return mesh
}

// flattenAll concatenates every mesh, rebasing its indices onto the shared vertex slice.
// Indices are checked against their own mesh first, so a bad index cannot reach into a neighbor.
func flattenAll(meshes []ui.ClippedMesh) (FrameMesh, error) {
	var vertexCount, indexCount int
	for _, m := range meshes {
		vertexCount += len(m.Mesh.Vertices)
		indexCount += len(m.Mesh.Indices)
	}
	mesh := FrameMesh{
		Vertices: make([]UIVertex, 0, vertexCount),
		Indices:  make([]uint32, 0, indexCount),
		Draws:    make([]DrawRange, 0, len(meshes)),
	}
	for _, m := range meshes {
		if len(m.Mesh.Indices) == 0 {
			continue
		}
		if uint64(len(mesh.Vertices))+uint64(len(m.Mesh.Vertices)) > math.MaxUint32 {
			return FrameMesh{}, fmt.Errorf("%w: %d vertices exceed the uint32 index range", ErrIndexOutOfRange, len(mesh.Vertices)+len(m.Mesh.Vertices))
		}
		base := uint32(len(mesh.Vertices))
		first := uint32(len(mesh.Indices))
		local := uint32(len(m.Mesh.Vertices))
		for i, idx := range m.Mesh.Indices {
			if idx >= local {
				return FrameMesh{}, fmt.Errorf("%w: index %d at position %d, mesh has %d vertices", ErrIndexOutOfRange, idx, i, local)
			}
			mesh.Indices = append(mesh.Indices, base+idx)
		}
		for _, v := range m.Mesh.Vertices {
			mesh.Vertices = append(mesh.Vertices, AdaptVertex(v))
		}
		mesh.Draws = append(mesh.Draws, DrawRange{
			FirstIndex: first,
			IndexCount: uint32(len(m.Mesh.Indices)),
			Clip:       m.Clip,
		})
	}
	return mesh, nil
}

func validateIndices(m *FrameMesh) error {
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at position %d, %d vertices", ErrIndexOutOfRange, idx, i, n)
		}
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	return nil
}
