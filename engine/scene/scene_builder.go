package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithPipelineKey sets the key the ball pipeline is registered under. Defaults to "backdrop_ball".
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPipelineKey(key string) SceneBuilderOption {
	return func(s *scene) {
		if key != "" {
			s.pipelineKey = key
		}
	}
}

// WithSphereTessellation sets the number of latitude and longitude bands of the ball.
// Defaults to 32 x 32.
//
// Parameters:
//   - stacks: the number of latitude bands
//   - slices: the number of longitude bands
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSphereTessellation(stacks, slices int) SceneBuilderOption {
	return func(s *scene) {
		s.stacks = stacks
		s.slices = slices
	}
}

// WithRadius sets the ball radius. Defaults to 1.
//
// Parameters:
//   - radius: the ball radius
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRadius(radius float32) SceneBuilderOption {
	return func(s *scene) {
		if radius > 0 {
			s.radius = radius
		}
	}
}

// WithColor sets the flat sRGB vertex color of the ball. Defaults to (51, 51, 255) / 255.
//
// Parameters:
//   - color: the RGBA color with channels in [0, 1]
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithColor(color [4]float32) SceneBuilderOption {
	return func(s *scene) {
		s.color = color
	}
}
