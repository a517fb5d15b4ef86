package renderer

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ParsePresentMode maps a configuration string to a PresentMode.
//
// Parameters:
//   - s: "vsync" or "uncapped"
//
// Returns:
//   - PresentMode: the matching mode
//   - bool: false if s names no mode
func ParsePresentMode(s string) (PresentMode, bool) {
	switch s {
	case "vsync":
		return PresentModeVSync, true
	case "uncapped":
		return PresentModeUncapped, true
	default:
		return PresentModeVSync, false
	}
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4; higher values are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8x multisample anti-aliasing. Adapter-dependent.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16x multisample anti-aliasing. Adapter-dependent.
	MSAA16x MSAASampleCount = 16
)

// ParseMSAA maps a configured sample count to an MSAASampleCount.
//
// Parameters:
//   - samples: 1, 4, 8 or 16
//
// Returns:
//   - MSAASampleCount: the matching count
//   - bool: false if samples is not a supported count
func ParseMSAA(samples int) (MSAASampleCount, bool) {
	switch samples {
	case 1:
		return MSAAOff, true
	case 4:
		return MSAA4x, true
	case 8:
		return MSAA8x, true
	case 16:
		return MSAA16x, true
	default:
		return MSAA4x, false
	}
}

// Scissor is a rectangle in physical framebuffer pixels that limits rasterization of a draw.
type Scissor struct {
	X, Y, Width, Height uint32
}

// clamp restricts the scissor to a width x height surface. The result may be empty.
func (s Scissor) clamp(width, height uint32) Scissor {
	x := min(s.X, width)
	y := min(s.Y, height)
	return Scissor{
		X:      x,
		Y:      y,
		Width:  min(s.Width, width-x),
		Height: min(s.Height, height-y),
	}
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
