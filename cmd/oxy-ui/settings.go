package main

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-ui/engine/config"
	"github.com/Carmen-Shannon/oxy-ui/engine/overlay"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer"
)

// settings are the typed values main needs from the string and int fields of the config.
type settings struct {
	presentMode renderer.PresentMode
	msaa        renderer.MSAASampleCount
	meshPolicy  overlay.MeshPolicy
}

// parseSettings converts the renderer and overlay fields of cfg. Every invalid field is
// reported, not only the first one.
func parseSettings(cfg config.Config) (settings, error) {
	var s settings
	var errs []error
	var ok bool

	if s.presentMode, ok = renderer.ParsePresentMode(cfg.Renderer.PresentMode); !ok {
		errs = append(errs, fmt.Errorf("unknown present mode %q", cfg.Renderer.PresentMode))
	}
	if s.msaa, ok = renderer.ParseMSAA(cfg.Renderer.MSAA); !ok {
		errs = append(errs, fmt.Errorf("unsupported msaa %d", cfg.Renderer.MSAA))
	}
	policy, err := overlay.ParseMeshPolicy(cfg.Overlay.MeshPolicy)
	if err != nil {
		errs = append(errs, err)
	}
	s.meshPolicy = policy

	return s, errors.Join(errs...)
}
