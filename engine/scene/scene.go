// Package scene renders the 3D backdrop drawn underneath the UI overlay: a single lit ball
// seen from a camera orbiting the origin, over a clear color that cycles with time.
package scene

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-ui/common"
	"github.com/Carmen-Shannon/oxy-ui/engine/camera"
	"github.com/Carmen-Shannon/oxy-ui/engine/model"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer/shader"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/ball.vert.wgsl
var ballVertexSource string

//go:embed assets/ball.frag.wgsl
var ballFragmentSource string

// cameraGroup is the bind group index of the CameraUniform in the ball vertex shader.
const cameraGroup = 0

// orbitRadius and orbitHeight place the camera on the circle (r cos t, r sin t, h).
const (
	orbitRadius = 2
	orbitHeight = 2
)

// Scene is the backdrop layer. It clears the frame and draws the ball before the overlay.
type Scene interface {
	// Camera returns the orbiting camera.
	Camera() camera.Camera

	// Model returns the ball model.
	Model() model.Model

	// PipelineKey returns the key the ball pipeline is registered under.
	PipelineKey() string

	// PrepareFrame moves the camera, uploads its uniform and sets the clear color for time t.
	// It must run before the renderer's BeginFrame for the clear color to apply to the same frame.
	//
	// Parameters:
	//   - t: seconds since the engine started
	PrepareFrame(t float32)

	// Render draws the ball into the open frame. When PrepareFrame was not called for this
	// frame the camera is updated here and the clear color change lands on the next frame.
	//
	// Parameters:
	//   - t: seconds since the engine started
	//
	// Returns:
	//   - error: the draw call error, if any
	Render(t float32) error

	// Resize updates the camera aspect ratio. Zero sizes are ignored.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	Resize(width, height int)

	// Release unregisters the pipeline and frees the GPU buffers owned by the scene.
	Release()
}

type scene struct {
	mu *sync.Mutex
	r  renderer.Renderer

	pipelineKey string
	radius      float32
	stacks      int
	slices      int
	color       [4]float32

	cam      camera.Camera
	ball     model.Model
	prepared bool

	drawBindGroups []bind_group_provider.BindGroupProvider
}

var _ Scene = &scene{}

// NewScene builds the ball mesh, uploads it, initializes the camera bind group and registers
// the ball pipeline with the renderer. The renderer surface must already be configured.
//
// Parameters:
//   - r: the renderer the scene draws with
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the ready-to-render scene
//   - error: an error if a shader fails to parse or a GPU resource cannot be created
func NewScene(r renderer.Renderer, options ...SceneBuilderOption) (Scene, error) {
	s := &scene{
		mu:          &sync.Mutex{},
		r:           r,
		pipelineKey: "backdrop_ball",
		radius:      1,
		stacks:      32,
		slices:      32,
		color:       [4]float32{51.0 / 255, 51.0 / 255, 1, 1},
	}
	for _, option := range options {
		option(s)
	}

	vs, err := shader.NewShaderFromSource(s.pipelineKey+"_vs", shader.ShaderTypeVertex, ballVertexSource)
	if err != nil {
		return nil, fmt.Errorf("scene: ball vertex shader: %w", err)
	}
	fs, err := shader.NewShaderFromSource(s.pipelineKey+"_fs", shader.ShaderTypeFragment, ballFragmentSource)
	if err != nil {
		return nil, fmt.Errorf("scene: ball fragment shader: %w", err)
	}

	s.ball = model.NewModel(
		model.WithName(s.pipelineKey),
		model.WithMesh(model.NewSphere(s.radius, s.stacks, s.slices, s.color)),
	)
	if err := r.InitMeshBuffers(s.ball.MeshProvider(), s.ball.VertexData(), s.ball.IndexData(), s.ball.IndexCount()); err != nil {
		return nil, fmt.Errorf("scene: upload ball mesh: %w", err)
	}

	camOpts := []camera.CameraBuilderOption{camera.WithTarget(0, 0, 0), camera.WithUp(0, 1, 0)}
	if w, h := r.SurfaceSize(); w > 0 && h > 0 {
		camOpts = append(camOpts, camera.WithAspect(float32(w)/float32(h)))
	}
	s.cam = camera.NewCamera(camOpts...)

	uniformSize := uint64(camera.ViewUniformSize)
	if err := r.InitBindGroup(s.cam.BindGroupProvider(), vs.BindGroupLayoutDescriptor(cameraGroup), nil, map[int]uint64{0: uniformSize}); err != nil {
		s.ball.Release()
		return nil, fmt.Errorf("scene: init camera bind group: %w", err)
	}

	p := pipeline.NewPipeline(s.pipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
	if err := r.RegisterPipelines(p); err != nil {
		s.ball.Release()
		s.cam.BindGroupProvider().Release()
		return nil, fmt.Errorf("scene: %w", err)
	}

	s.drawBindGroups = []bind_group_provider.BindGroupProvider{s.cam.BindGroupProvider()}
	s.update(0)
	return s, nil
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Model() model.Model {
	return s.ball
}

func (s *scene) PipelineKey() string {
	return s.pipelineKey
}

func (s *scene) PrepareFrame(t float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.update(t)
	s.prepared = true
}

func (s *scene) Render(t float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.prepared {
		s.update(t)
	}
	s.prepared = false
	return s.r.DrawCall(s.pipelineKey, s.ball.MeshProvider(), 1, s.drawBindGroups)
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.cam.SetAspect(float32(width) / float32(height))
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.UnregisterPipeline(s.pipelineKey)
	s.cam.BindGroupProvider().Release()
	s.ball.Release()
}

// update places the camera on its orbit, uploads the camera uniform and sets the clear color.
// Caller must hold the mutex.
func (s *scene) update(t float32) {
	sin, cos := math32.Sincos(t)
	s.cam.SetPosition(orbitRadius*cos, orbitRadius*sin, orbitHeight)

	u := s.cam.Uniform()
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.cam.BindGroupProvider(), Binding: 0, Offset: 0, Data: u.Marshal()},
	})
	s.r.SetClearColor(ClearColor(t))
}

// ClearColor returns the backdrop clear color at time t: (cos t, sin t, 0.5, 1) clamped to [0, 1].
//
// Parameters:
//   - t: seconds since the engine started
//
// Returns:
//   - wgpu.Color: the clear color
func ClearColor(t float32) wgpu.Color {
	sin, cos := math32.Sincos(t)
	return wgpu.Color{
		R: float64(common.Clamp01(cos)),
		G: float64(common.Clamp01(sin)),
		B: 0.5,
		A: 1,
	}
}
