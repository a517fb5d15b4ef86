package main

import "github.com/chewxy/math32"

const (
	minZoom  = 0.5
	maxZoom  = 3
	zoomStep = 1.1
)

// zoom is the user's UI magnification on top of the base scale. The wheel changes it in steps
// of zoomStep and a middle click resets it.
type zoom struct {
	base   float32
	factor float32
	apply  func(scale float32)
}

func newZoom(base float32, apply func(scale float32)) *zoom {
	if base <= 0 {
		base = 1
	}
	return &zoom{base: base, factor: 1, apply: apply}
}

// scale returns the effective logical-to-physical scale.
func (z *zoom) scale() float32 {
	return z.base * z.factor
}

func (z *zoom) scroll(delta float32) {
	f := z.factor * math32.Pow(zoomStep, delta)
	z.set(math32.Max(minZoom, math32.Min(maxZoom, f)))
}

func (z *zoom) reset() {
	z.set(1)
}

func (z *zoom) set(factor float32) {
	if factor == z.factor {
		return
	}
	z.factor = factor
	if z.apply != nil {
		z.apply(z.scale())
	}
}
