package engine

import (
	"github.com/Carmen-Shannon/oxy-ui/engine/profiler"
	"github.com/Carmen-Shannon/oxy-ui/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithStatsSource appends a named counter source to every profiler log line.
//
// Parameters:
//   - name: the label printed before the source's fields
//   - src: the source
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithStatsSource(name string, src profiler.StatsSource) EngineBuilderOption {
	return func(e *engine) {
		e.profiler.AddStatsSource(name, src)
	}
}

// WithWindow sets the window whose message loop drives the frame and whose resize events
// are forwarded to the frame target and layers.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithFrameTarget sets the target whose BeginFrame/EndFrame/Present brackets every frame.
//
// Parameters:
//   - target: the frame target, usually the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameTarget(target FrameTarget) EngineBuilderOption {
	return func(e *engine) {
		e.target = target
	}
}

// WithLayer registers a layer at the given z-index during engine construction.
// Layers are rendered in ascending z order.
//
// Parameters:
//   - z: the z-index determining render order (lower renders first)
//   - l: the Layer to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLayer(z int, l Layer) EngineBuilderOption {
	return func(e *engine) {
		e.layers[z] = l
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithMaxConsecutiveFailures quits the engine after n frames in a row had a failing layer.
// The default 0 never quits.
//
// Parameters:
//   - n: the number of consecutive failed frames tolerated
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxConsecutiveFailures(n int) EngineBuilderOption {
	return func(e *engine) {
		e.maxConsecutiveFailures = max(n, 0)
	}
}
