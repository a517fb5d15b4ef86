package overlay

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-ui/engine/ui"
)

// Stats are the overlay's running counters.
type Stats struct {
	Frames   int
	Uploads  int
	Draws    int
	Failures int
}

// String renders the counters as key=value fields for log lines.
func (s Stats) String() string {
	return fmt.Sprintf("frames=%d uploads=%d draws=%d failures=%d", s.Frames, s.Uploads, s.Draws, s.Failures)
}

// Overlay is the long-lived handle that renders one UI surface per frame. Each Render runs
// extract, texture sync and draw strictly in that order and the first failure aborts the frame.
// Render, Resize and SetScale must be called from the render thread.
type Overlay struct {
	mu *sync.Mutex

	ctx        UIContext
	build      func(*ui.Frame)
	extractor  *Extractor
	atlas      *AtlasSync
	compositor *Compositor
	logger     *log.Logger

	scale             float32
	fbWidth, fbHeight int

	frames   int
	failures int
}

// NewOverlay creates an Overlay drawing the widgets described by build on the given device.
//
// Parameters:
//   - device: the GPU capability used for textures, buffers, pipelines and draws
//   - ctx: the UI context that owns the atlas
//   - build: the widget builder invoked once per frame
//   - options: a variadic list of BuilderOption functions
//
// Returns:
//   - *Overlay: the overlay
func NewOverlay(device Device, ctx UIContext, build func(*ui.Frame), options ...BuilderOption) *Overlay {
	cfg := newBuilderConfig(options)
	return &Overlay{
		mu:         &sync.Mutex{},
		ctx:        ctx,
		build:      build,
		extractor:  NewExtractor(ctx, options...),
		atlas:      NewAtlasSync(device, "overlay_atlas"),
		compositor: NewCompositor(device, options...),
		logger:     cfg.logger,
		scale:      cfg.scale,
	}
}

// Render draws one UI frame into the current render pass.
//
// Parameters:
//   - t: the host time in seconds
//
// Returns:
//   - error: a *FrameError naming the failed phase, or nil
func (o *Overlay) Render(t float32) error {
	// the lock only guards the snapshot, build may call back into Stats
	o.mu.Lock()
	fbWidth, fbHeight, scale := o.fbWidth, o.fbHeight, o.scale
	if fbWidth <= 0 || fbHeight <= 0 {
		o.mu.Unlock()
		return nil
	}
	o.frames++
	o.mu.Unlock()

	screen := NewScreenUniforms(fbWidth, fbHeight, scale)
	o.extractor.Prepare(ui.RectFromMinSize(ui.Pos2{}, ui.Vec2{X: screen.Width, Y: screen.Height}), float64(t))
	mesh, err := o.extractor.Extract(o.build, scale)
	if err != nil {
		return o.fail(PhaseExtract, err)
	}

	atlas := o.ctx.Texture()
	if atlas == nil {
		return o.fail(PhaseSync, &ResourceError{Kind: KindTextureUpload, Op: "Render", Err: ErrNoTexture})
	}
	tex, err := o.atlas.EnsureTexture(uint32(atlas.Width), uint32(atlas.Height))
	if err != nil {
		return o.fail(PhaseSync, err)
	}
	if err := o.atlas.Sync(atlas); err != nil {
		return o.fail(PhaseSync, err)
	}

	if err := o.compositor.Draw(mesh, tex, screen); err != nil {
		return o.fail(PhaseDraw, err)
	}
	return nil
}

func (o *Overlay) fail(phase Phase, err error) error {
	o.mu.Lock()
	o.failures++
	frame := o.frames
	o.mu.Unlock()
	o.logger.Printf("[Overlay] frame aborted phase=%s frame=%d err=%v", phase, frame, err)
	return &FrameError{Phase: phase, Err: err}
}

// Resize records the framebuffer size in physical pixels.
//
// Parameters:
//   - width: the framebuffer width
//   - height: the framebuffer height
func (o *Overlay) Resize(width, height int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fbWidth, o.fbHeight = width, height
}

// SetScale sets the logical-to-physical pixel scale factor. Values <= 0 are ignored.
func (o *Overlay) SetScale(scale float32) {
	if scale <= 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scale = scale
	o.compositor.SetScale(scale)
}

// Scale returns the logical-to-physical pixel scale factor.
func (o *Overlay) Scale() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.scale
}

// Output returns the UI feedback of the last successful frame.
func (o *Overlay) Output() ui.Output {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.extractor.Output()
}

// Stats returns a snapshot of the overlay counters.
func (o *Overlay) Stats() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Stats{
		Frames:   o.frames,
		Uploads:  o.atlas.Uploads(),
		Draws:    o.compositor.Draws(),
		Failures: o.failures,
	}
}

// Release frees every GPU resource held by the overlay.
func (o *Overlay) Release() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.compositor.Release()
	o.atlas.Release()
}
