// Command oxy-ui opens a window showing the 3D ball backdrop with the demo UI overlay on top.
package main

import (
	"flag"
	"log"

	"github.com/Carmen-Shannon/oxy-ui/engine"
	"github.com/Carmen-Shannon/oxy-ui/engine/config"
	"github.com/Carmen-Shannon/oxy-ui/engine/overlay"
	"github.com/Carmen-Shannon/oxy-ui/engine/renderer"
	"github.com/Carmen-Shannon/oxy-ui/engine/scene"
	"github.com/Carmen-Shannon/oxy-ui/engine/ui"
	"github.com/Carmen-Shannon/oxy-ui/engine/window"
)

const (
	backdropLayer = 0
	overlayLayer  = 1
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	set, err := parseSettings(cfg)
	if err != nil {
		log.Fatalf("[Main] invalid config: %v", err)
	}

	// ── Window ──────────────────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithSizeLimits(cfg.Window.MinWidth, cfg.Window.MinHeight, cfg.Window.MaxWidth, cfg.Window.MaxHeight),
	)

	// ── Renderer ────────────────────────────────────────────────────────
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(set.presentMode),
		renderer.WithMSAA(set.msaa),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
	)

	opts := []engine.EngineBuilderOption{
		engine.WithWindow(win),
		engine.WithFrameTarget(r),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
		engine.WithMaxConsecutiveFailures(cfg.Engine.MaxConsecutiveFailures),
	}

	// ── Backdrop ────────────────────────────────────────────────────────
	if cfg.Backdrop.Enabled {
		backdrop, err := scene.NewScene(r,
			scene.WithSphereTessellation(cfg.Backdrop.SphereStacks, cfg.Backdrop.SphereSlices),
		)
		if err != nil {
			log.Fatalf("[Main] %v", err)
		}
		defer backdrop.Release()
		opts = append(opts, engine.WithLayer(backdropLayer, backdrop))
	}

	// ── Overlay ─────────────────────────────────────────────────────────
	ctx, err := ui.NewContext(
		ui.WithFontSizes(cfg.Overlay.FontSize, cfg.Overlay.FontSize*1.4),
		ui.WithAtlasSize(cfg.Overlay.AtlasWidth, cfg.Overlay.AtlasHeight),
		ui.WithWorkers(cfg.Overlay.Workers),
	)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	defer ctx.Release()
	base := cfg.Overlay.Scale
	if base <= 0 {
		base = win.ContentScale()
	}

	var ov *overlay.Overlay
	z := newZoom(base, func(scale float32) { ov.SetScale(scale) })
	input := newPointer(func() float32 { return win.ContentScale() / z.scale() })
	d := newDemo(set.meshPolicy)

	ov = overlay.NewOverlay(renderer.NewOverlayDevice(r), ctx, d.build,
		overlay.WithScale(z.scale()),
		overlay.WithMeshPolicy(set.meshPolicy),
		overlay.WithInputSource(input),
	)
	defer ov.Release()
	d.stats = ov.Stats
	ov.Resize(win.Width(), win.Height())

	win.SetMouseMoveCallback(input.move)
	win.SetMouseDownCallback(input.press)
	win.SetMouseUpCallback(input.release)
	win.SetMouseEnterCallback(input.enter)
	win.SetScrollCallback(z.scroll)
	win.SetMiddleMouseDownCallback(func(int32, int32) { z.reset() })
	win.SetKeyDownCallback(func(k window.Key) {
		if k == window.KeyF1 {
			d.toggleStats()
		}
	})

	opts = append(opts,
		engine.WithLayer(overlayLayer, ov),
		engine.WithStatsSource("overlay", func() string { return ov.Stats().String() }),
	)

	// ── Run ─────────────────────────────────────────────────────────────
	eng := engine.NewEngine(opts...)
	eng.Run()
}
