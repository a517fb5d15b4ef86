package main

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-ui/engine/overlay"
	"github.com/Carmen-Shannon/oxy-ui/engine/ui"
)

// pointer collects window mouse callbacks into the UI's pointer state.
// Callbacks report window coordinates; the UI works in points.
type pointer struct {
	mu *sync.Mutex

	x, y   float32
	inside bool
	down   bool

	// pointsPerWindowUnit converts window coordinates to points: content scale / overlay scale.
	pointsPerWindowUnit func() float32
}

var _ overlay.InputSource = &pointer{}

func newPointer(pointsPerWindowUnit func() float32) *pointer {
	return &pointer{mu: &sync.Mutex{}, pointsPerWindowUnit: pointsPerWindowUnit}
}

func (p *pointer) move(x, y int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.x, p.y = float32(x), float32(y)
	p.inside = true
}

func (p *pointer) press(x, y int32) {
	p.move(x, y)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.down = true
}

func (p *pointer) release(x, y int32) {
	p.move(x, y)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.down = false
}

func (p *pointer) enter(entered bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inside = entered
}

// Input reports the pointer for the next UI frame. The screen rectangle is left to the overlay.
func (p *pointer) Input() ui.RawInput {
	p.mu.Lock()
	defer p.mu.Unlock()

	in := ui.RawInput{PointerDown: p.down}
	if p.inside {
		scale := p.pointsPerWindowUnit()
		if scale <= 0 {
			scale = 1
		}
		in.PointerPos = &ui.Pos2{X: p.x * scale, Y: p.y * scale}
	}
	return in
}
