package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-ui/engine/overlay"
	"github.com/Carmen-Shannon/oxy-ui/engine/ui"
)

const sidePanelWidth = 200

// demo is the widget tree drawn over the backdrop: a side panel with the elapsed time and a
// button toggling the overlay counters.
//
// The counters go in a floating window only when every clipped mesh is drawn. Under
// MeshPolicyFirst a second layer never reaches the screen, so they stay in the side panel.
type demo struct {
	showStats bool
	floating  bool
	stats     func() overlay.Stats
}

func newDemo(policy overlay.MeshPolicy) *demo {
	return &demo{floating: policy == overlay.MeshPolicyAll}
}

func (d *demo) toggleStats() {
	d.showStats = !d.showStats
}

func (d *demo) build(f *ui.Frame) {
	f.SidePanel("side", sidePanelWidth, func(p *ui.Panel) {
		p.Heading("hello")
		p.Separator()
		p.Label(fmt.Sprintf("t: %.2f", f.Time()))
		if p.Button("stats") {
			d.toggleStats()
		}
		if d.showStats && !d.floating {
			p.Separator()
			d.counters(p)
		}
	})

	if d.showStats && d.floating {
		f.Window("stats", ui.Pos2{X: sidePanelWidth + 24, Y: 24}, 180, d.counters)
	}
}

func (d *demo) counters(p *ui.Panel) {
	if d.stats == nil {
		p.Label("no stats")
		return
	}
	s := d.stats()
	p.Label(fmt.Sprintf("frames: %d", s.Frames))
	p.Label(fmt.Sprintf("uploads: %d", s.Uploads))
	p.Label(fmt.Sprintf("draws: %d", s.Draws))
	p.Label(fmt.Sprintf("failures: %d", s.Failures))
}
