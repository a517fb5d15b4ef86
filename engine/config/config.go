// Package config loads the host configuration from YAML. Every field is optional: a file only
// needs the values it overrides, the rest keep the defaults returned by Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-ui/engine/overlay"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer"
	"gopkg.in/yaml.v3"
)

// maxConfigSize bounds the file size Load accepts.
const maxConfigSize = 1 << 20

// Config is the full host configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Backdrop BackdropConfig `yaml:"backdrop"`
	Engine   EngineConfig   `yaml:"engine"`
}

// WindowConfig sets up the native window. A zero min or max bound leaves that side of
// interactive resizing open.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
	MaxWidth  int    `yaml:"max_width"`
	MaxHeight int    `yaml:"max_height"`
}

// RendererConfig selects surface and adapter settings.
type RendererConfig struct {
	PresentMode   string `yaml:"present_mode"` // vsync | uncapped
	MSAA          int    `yaml:"msaa"`         // 1, 4, 8 or 16
	ForceSoftware bool   `yaml:"force_software"`
}

// OverlayConfig sets up the UI overlay and its font atlas.
type OverlayConfig struct {
	Scale       float32 `yaml:"scale"` // 0 follows the window content scale
	MeshPolicy  string  `yaml:"mesh_policy"`
	FontSize    float32 `yaml:"font_size"`
	AtlasWidth  int     `yaml:"atlas_width"`
	AtlasHeight int     `yaml:"atlas_height"`
	Workers     int     `yaml:"workers"`
}

// BackdropConfig controls the 3D ball drawn underneath the overlay.
type BackdropConfig struct {
	Enabled      bool `yaml:"enabled"`
	SphereStacks int  `yaml:"sphere_stacks"`
	SphereSlices int  `yaml:"sphere_slices"`
}

// EngineConfig controls the frame driver.
type EngineConfig struct {
	Profiling              bool    `yaml:"profiling"`
	FrameLimit             float64 `yaml:"frame_limit"` // 0 = uncapped
	MaxConsecutiveFailures int     `yaml:"max_consecutive_failures"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "oxy-ui",
			Width:     1280,
			Height:    720,
			MinWidth:  320,
			MinHeight: 200,
		},
		Renderer: RendererConfig{
			PresentMode: "vsync",
			MSAA:        1,
		},
		Overlay: OverlayConfig{
			MeshPolicy:  "first",
			FontSize:    14,
			AtlasWidth:  512,
			AtlasHeight: 512,
			Workers:     4,
		},
		Backdrop: BackdropConfig{
			Enabled:      true,
			SphereStacks: 32,
			SphereSlices: 32,
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
// An empty path returns the defaults.
//
// Parameters:
//   - path: the file path, or "" for defaults
//
// Returns:
//   - Config: the loaded configuration
//   - error: an error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(io.LimitReader(f, maxConfigSize+1))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
//
// Parameters:
//   - r: the YAML source
//
// Returns:
//   - Config: the parsed configuration
//   - error: an error if the source cannot be parsed or validated
func Parse(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	if len(data) > maxConfigSize {
		return Config{}, fmt.Errorf("file exceeds %d bytes", maxConfigSize)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects non-positive sizes and unknown enum strings.
//
// Returns:
//   - error: every problem found, joined, or nil
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if err := c.Window.validateLimits(); err != nil {
		errs = append(errs, err)
	}
	if _, ok := renderer.ParsePresentMode(c.Renderer.PresentMode); !ok {
		errs = append(errs, fmt.Errorf("renderer: unknown present_mode %q", c.Renderer.PresentMode))
	}
	if _, ok := renderer.ParseMSAA(c.Renderer.MSAA); !ok {
		errs = append(errs, fmt.Errorf("renderer: unsupported msaa %d", c.Renderer.MSAA))
	}
	if c.Overlay.Scale < 0 {
		errs = append(errs, fmt.Errorf("overlay: scale must not be negative, got %g", c.Overlay.Scale))
	}
	if _, err := overlay.ParseMeshPolicy(c.Overlay.MeshPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.Overlay.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("overlay: font_size must be positive, got %g", c.Overlay.FontSize))
	}
	if c.Overlay.AtlasWidth <= 0 || c.Overlay.AtlasHeight <= 0 {
		errs = append(errs, fmt.Errorf("overlay: atlas size must be positive, got %dx%d", c.Overlay.AtlasWidth, c.Overlay.AtlasHeight))
	}
	if c.Overlay.Workers <= 0 {
		errs = append(errs, fmt.Errorf("overlay: workers must be positive, got %d", c.Overlay.Workers))
	}
	if c.Backdrop.SphereStacks <= 0 || c.Backdrop.SphereSlices <= 0 {
		errs = append(errs, fmt.Errorf("backdrop: sphere tessellation must be positive, got %dx%d", c.Backdrop.SphereStacks, c.Backdrop.SphereSlices))
	}
	if c.Engine.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("engine: frame_limit must not be negative, got %g", c.Engine.FrameLimit))
	}
	if c.Engine.MaxConsecutiveFailures < 0 {
		errs = append(errs, fmt.Errorf("engine: max_consecutive_failures must not be negative, got %d", c.Engine.MaxConsecutiveFailures))
	}
	return errors.Join(errs...)
}

// validateLimits checks min <= max on each axis where both bounds are set.
func (w WindowConfig) validateLimits() error {
	if w.MinWidth < 0 || w.MinHeight < 0 || w.MaxWidth < 0 || w.MaxHeight < 0 {
		return fmt.Errorf("window: size limits must not be negative")
	}
	if w.MaxWidth > 0 && w.MinWidth > w.MaxWidth {
		return fmt.Errorf("window: min_width %d exceeds max_width %d", w.MinWidth, w.MaxWidth)
	}
	if w.MaxHeight > 0 && w.MinHeight > w.MaxHeight {
		return fmt.Errorf("window: min_height %d exceeds max_height %d", w.MinHeight, w.MaxHeight)
	}
	return nil
}
