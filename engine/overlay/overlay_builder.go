package overlay

import (
	"log"
)

// builderConfig collects the settings shared by the Overlay and the components it owns.
type builderConfig struct {
	scale  float32
	policy MeshPolicy
	blend  BlendConfig
	input  InputSource
	logger *log.Logger
}

func newBuilderConfig(options []BuilderOption) builderConfig {
	cfg := builderConfig{
		scale:  1,
		policy: MeshPolicyFirst,
		blend:  PremultipliedAlpha(),
		logger: log.Default(),
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// BuilderOption is a functional option for configuring an Overlay, Extractor or Compositor.
// Each constructor reads only the settings it uses.
type BuilderOption func(*builderConfig)

// WithScale sets the logical-to-physical pixel scale factor.
//
// Parameters:
//   - scale: the scale factor, typically 1.0 or 2.0, values <= 0 are ignored
//
// Returns:
//   - BuilderOption: the option to apply
func WithScale(scale float32) BuilderOption {
	return func(c *builderConfig) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// WithMeshPolicy selects how the clipped meshes of a UI frame are turned into draws.
//
// Parameters:
//   - policy: MeshPolicyFirst or MeshPolicyAll
//
// Returns:
//   - BuilderOption: the option to apply
func WithMeshPolicy(policy MeshPolicy) BuilderOption {
	return func(c *builderConfig) {
		c.policy = policy
	}
}

// WithBlendConfig overrides the premultiplied-alpha blend state of the overlay pipeline.
//
// Parameters:
//   - blend: the blend state
//
// Returns:
//   - BuilderOption: the option to apply
func WithBlendConfig(blend BlendConfig) BuilderOption {
	return func(c *builderConfig) {
		c.blend = blend
	}
}

// WithInputSource supplies pointer state for each UI frame. Without one the UI sees no pointer.
//
// Parameters:
//   - input: the source polled once per frame
//
// Returns:
//   - BuilderOption: the option to apply
func WithInputSource(input InputSource) BuilderOption {
	return func(c *builderConfig) {
		c.input = input
	}
}

// WithLogger sets the logger used for frame failures.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - BuilderOption: the option to apply
func WithLogger(logger *log.Logger) BuilderOption {
	return func(c *builderConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
