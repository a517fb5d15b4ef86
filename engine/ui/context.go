package ui

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

var (
	// ErrFrameInProgress is returned by BeginFrame when the previous frame was never ended.
	ErrFrameInProgress = errors.New("ui: frame already in progress")

	// ErrNoFrame is returned by EndFrame when no frame is open.
	ErrNoFrame = errors.New("ui: no frame in progress")

	// ErrFrameClosed is the panic value raised when a Frame or Panel is used after EndFrame.
	ErrFrameClosed = errors.New("ui: frame used after EndFrame")

	// ErrNonFiniteGeometry is returned by EndFrame when a shape produced a NaN or infinite coordinate.
	ErrNonFiniteGeometry = errors.New("ui: non-finite vertex position")

	// ErrMeshTooLarge is returned by EndFrame when a layer needs more vertices than a 32-bit index can address.
	ErrMeshTooLarge = errors.New("ui: mesh exceeds 32-bit index range")

	// ErrContextReleased is returned by BeginFrame after Release.
	ErrContextReleased = errors.New("ui: context released")
)

// uiContext is the implementation of the Context interface.
type uiContext struct {
	style Style
	fonts *fontAtlas

	atlasWidth, atlasHeight int
	workers                 int

	frame           *Frame
	prevPointerDown bool
	frameNumber     uint64
	released        bool
}

// Context owns the state that survives between frames: the style, the font atlas and the previous
// pointer state used for click detection. Everything else is rebuilt from scratch each frame.
type Context interface {
	// BeginFrame opens a new frame for the given input and returns the single-use Frame that widgets
	// are added to. A change of RawInput.PixelsPerPoint re-rasterizes the atlas.
	//
	// Parameters:
	//   - input: the host state for this frame
	//
	// Returns:
	//   - *Frame: the frame handle, valid until EndFrame
	//   - error: ErrFrameInProgress if a frame is already open, or an atlas error
	BeginFrame(input RawInput) (*Frame, error)

	// EndFrame closes the open frame, revokes its Frame handle and tessellates every non-empty layer
	// into its own ClippedMesh, in paint order.
	//
	// Returns:
	//   - Output: feedback gathered while building the frame
	//   - []ClippedMesh: one mesh per visible layer
	//   - error: ErrNoFrame, ErrNonFiniteGeometry, ErrMeshTooLarge or an atlas error
	EndFrame() (Output, []ClippedMesh, error)

	// Texture returns the font atlas shared by every mesh. The caller must treat it as read-only.
	//
	// Returns:
	//   - *TextureAtlas: the current atlas
	Texture() *TextureAtlas

	// Style returns the active style.
	//
	// Returns:
	//   - Style: the style used for layout and colors
	Style() Style

	// FrameNumber returns the number of frames ended so far.
	//
	// Returns:
	//   - uint64: the completed frame count
	FrameNumber() uint64

	// Release stops the glyph rasterization workers and closes the font faces. The atlas stays
	// readable, but BeginFrame fails with ErrContextReleased. Calling it again is a no-op.
	Release()
}

var _ Context = &uiContext{}

// NewContext creates a Context and rasterizes the initial glyph set.
//
// Parameters:
//   - options: a variadic list of ContextBuilderOption functions
//
// Returns:
//   - Context: the new context
//   - error: an error if the font could not be loaded or rasterized
func NewContext(options ...ContextBuilderOption) (Context, error) {
	c := &uiContext{
		style:       DefaultStyle(),
		atlasWidth:  512,
		atlasHeight: 256,
		workers:     4,
	}
	for _, opt := range options {
		opt(c)
	}

	fonts, err := newFontAtlas(c.atlasWidth, c.atlasHeight, map[FontSize]float32{
		FontBody:    c.style.BodySize,
		FontHeading: c.style.HeadingSize,
	}, c.workers)
	if err != nil {
		return nil, err
	}
	c.fonts = fonts
	return c, nil
}

func (c *uiContext) BeginFrame(input RawInput) (*Frame, error) {
	if c.released {
		return nil, ErrContextReleased
	}
	if c.frame != nil {
		return nil, ErrFrameInProgress
	}
	if input.PixelsPerPoint <= 0 || math32.IsNaN(input.PixelsPerPoint) {
		input.PixelsPerPoint = 1
	}
	if input.PixelsPerPoint != c.fonts.pixelsPerPoint {
		if err := c.fonts.rebuild(input.PixelsPerPoint); err != nil {
			return nil, fmt.Errorf("ui: failed to rebuild atlas for scale %.2f: %w", input.PixelsPerPoint, err)
		}
	}

	c.frame = newFrame(c, input)
	return c.frame, nil
}

func (c *uiContext) EndFrame() (Output, []ClippedMesh, error) {
	f := c.frame
	if f == nil {
		return Output{}, nil, ErrNoFrame
	}
	f.closed = true
	c.frame = nil
	c.prevPointerDown = f.input.PointerDown
	c.frameNumber++

	meshes, err := c.tessellate(f.layers)
	if err != nil {
		return f.output, nil, err
	}
	return f.output, meshes, nil
}

func (c *uiContext) Texture() *TextureAtlas {
	return c.fonts.atlas
}

func (c *uiContext) Style() Style {
	return c.style
}

func (c *uiContext) FrameNumber() uint64 {
	return c.frameNumber
}

func (c *uiContext) Release() {
	if c.released {
		return
	}
	c.released = true
	c.fonts.release()
}
