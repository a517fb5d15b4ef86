package engine

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-ui/engine/profiler"
	"github.com/Carmen-Shannon/oxy-ui/engine/window"
)

// Layer is one z-ordered participant of the frame. Layers render into the frame the engine
// opened on its FrameTarget, in ascending z order.
type Layer interface {
	// Render records the layer's draws for the current frame.
	//
	// Parameters:
	//   - t: seconds since Run started
	//
	// Returns:
	//   - error: a frame-local failure, the frame still presents without this layer's output
	Render(t float32) error

	// Resize notifies the layer of a new framebuffer size in pixels.
	Resize(width, height int)
}

// FramePreparer is implemented by layers that must update GPU state before the frame opens,
// for example to change the clear color of the frame about to begin.
type FramePreparer interface {
	PrepareFrame(t float32)
}

// FrameTarget owns the frame lifecycle. renderer.Renderer satisfies it.
type FrameTarget interface {
	BeginFrame() error
	EndFrame()
	Present()
	Resize(width, height int)
}

// engine implements the Engine interface.
// Drives the frame on the window's message loop thread.
type engine struct {
	mu *sync.Mutex

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	target FrameTarget

	profiler         *profiler.Profiler
	profilingEnabled bool

	layers map[int]Layer
	order  []int

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	maxConsecutiveFailures int
	consecutiveFailures    int
	beginFailed            bool

	start time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

// Engine is the main entry point for the engine.
// It owns the ordered layer stack and runs one strictly sequential frame per message loop iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when running headless
	Window() window.Window

	// FrameTarget returns the target whose frame lifecycle the engine drives.
	//
	// Returns:
	//   - FrameTarget: the frame target
	FrameTarget() FrameTarget

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddLayer registers a layer at the given z-index, replacing any layer already there.
	// Layers are rendered in ascending z order.
	//
	// Parameters:
	//   - z: the z-index determining render order (lower renders first)
	//   - l: the Layer to register
	AddLayer(z int, l Layer)

	// RemoveLayer removes the layer at the given z-index.
	//
	// Parameters:
	//   - z: the z-index of the layer to remove
	RemoveLayer(z int)

	// Layer retrieves the layer registered at the given z-index.
	//
	// Parameters:
	//   - z: the z-index of the layer to retrieve
	//
	// Returns:
	//   - Layer: the layer at z, or nil if not found
	Layer(z int) Layer

	// Layers returns a copy of all registered layers keyed by z-index.
	//
	// Returns:
	//   - map[int]Layer: a copy of the layers map
	Layers() map[int]Layer

	// Resize forwards a framebuffer size change to the frame target and every layer.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// Tick runs one frame: PrepareFrame on layers that implement FramePreparer, BeginFrame,
	// every layer's Render in ascending z order, then EndFrame and Present.
	// A panic inside the frame is recovered, logged and quits the engine.
	//
	// Parameters:
	//   - t: seconds since Run started
	Tick(t float32)

	// Run installs the frame function as the window update callback and blocks in the
	// window message loop until the window closes or Quit is called.
	Run()

	// Quit signals the engine to stop. The window is closed on the next loop iteration.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel closed once Quit has been called.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
// When a window is set its resize events are forwarded to the frame target and every layer.
//
// Parameters:
//   - options: functional options for engine configuration (window, frame target, layers, profiling)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:          &sync.Mutex{},
		quitChannel: make(chan struct{}),
		layers:      make(map[int]Layer),
		profiler:    profiler.NewProfiler(),
		now:         time.Now,
		sleep:       time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}
	e.sortLayers()

	if e.window != nil {
		e.window.SetResizeCallback(e.Resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) FrameTarget() FrameTarget {
	return e.target
}

func (e *engine) Run() {
	if e.window == nil {
		log.Printf("[Engine] run: no window configured")
		return
	}
	e.start = e.now()
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
}

// frame is the window update callback: it runs one Tick on the message loop thread and applies
// the frame limit. After Quit it closes the window so ProcessMessages returns.
func (e *engine) frame() {
	select {
	case <-e.quitChannel:
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] close window: %v", err)
		}
		return
	default:
	}

	frameStart := e.now()
	e.Tick(float32(frameStart.Sub(e.start).Seconds()))

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(frameStart); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

func (e *engine) Tick(t float32) {
	// Recover from panics inside the frame to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.Quit()
		}
	}()

	e.mu.Lock()
	order := append([]int(nil), e.order...)
	layers := make([]Layer, len(order))
	for i, z := range order {
		layers[i] = e.layers[z]
	}
	e.mu.Unlock()

	for _, l := range layers {
		if p, ok := l.(FramePreparer); ok {
			p.PrepareFrame(t)
		}
	}

	if e.target != nil {
		if err := e.target.BeginFrame(); err != nil {
			// a minimized window fails every frame, log once per streak
			if !e.beginFailed {
				log.Printf("[Engine] begin frame failed, skipping: %v", err)
			}
			e.beginFailed = true
			return
		}
		e.beginFailed = false
	}

	failed := false
	for i, l := range layers {
		if err := l.Render(t); err != nil {
			log.Printf("[Engine] layer render failed z=%d err=%v", order[i], err)
			failed = true
		}
	}

	if e.target != nil {
		e.target.EndFrame()
		e.target.Present()
	}

	if failed {
		e.consecutiveFailures++
		if e.maxConsecutiveFailures > 0 && e.consecutiveFailures >= e.maxConsecutiveFailures {
			log.Printf("[Engine] %d consecutive failed frames, quitting", e.consecutiveFailures)
			e.Quit()
		}
	} else {
		e.consecutiveFailures = 0
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) Resize(width, height int) {
	if e.target != nil {
		e.target.Resize(width, height)
	}
	for _, l := range e.Layers() {
		l.Resize(width, height)
	}
}

// Quit signals the engine to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddLayer(z int, l Layer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layers[z] = l
	e.sortLayers()
}

func (e *engine) RemoveLayer(z int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.layers, z)
	e.sortLayers()
}

func (e *engine) Layer(z int) Layer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layers[z]
}

func (e *engine) Layers() map[int]Layer {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]Layer, len(e.layers))
	for k, v := range e.layers {
		cp[k] = v
	}
	return cp
}

// sortLayers rebuilds the ascending z order. Caller must hold the mutex.
func (e *engine) sortLayers() {
	e.order = e.order[:0]
	for z := range e.layers {
		e.order = append(e.order, z)
	}
	sort.Ints(e.order)
}

// frameDuration converts a frame rate cap to the minimum frame duration, 0 meaning uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
