package ui

import (
	"fmt"
	"math"
	"slices"

	"github.com/chewxy/math32"
)

// tessellate converts the layers of a closed frame into clipped meshes.
// Glyphs are resolved in a first pass because rasterizing can grow the atlas, which would change the
// texture coordinates of quads that were already emitted.
func (c *uiContext) tessellate(layers []*layer) ([]ClippedMesh, error) {
	for _, l := range layers {
		for _, s := range l.shapes {
			if s.kind != shapeText {
				continue
			}
			for _, r := range s.text {
				if _, err := c.fonts.glyph(r, s.size); err != nil {
					return nil, err
				}
			}
		}
	}

	ordered := slices.Clone(layers)
	slices.SortStableFunc(ordered, func(a, b *layer) int {
		return int(a.order) - int(b.order)
	})

	white := c.fonts.atlas.whiteUV()
	out := make([]ClippedMesh, 0, len(ordered))
	for _, l := range ordered {
		if !l.clip.IsPositive() {
			continue
		}
		var mesh Mesh
		for _, s := range l.shapes {
			switch s.kind {
			case shapeRect:
				if s.rect.Intersect(l.clip).IsPositive() && s.color[3] > 0 {
					mesh.addQuad(s.rect, white, s.color)
				}
			case shapeText:
				pen := Pos2{X: s.rect.Min.X, Y: s.rect.Min.Y + c.fonts.ascent(s.size)}
				for _, r := range s.text {
					g := c.fonts.glyphs[glyphKey{r: r, size: s.size}]
					if !g.rect.Empty() {
						q := RectFromMinSize(pen.Add(g.offset), g.size)
						if q.Intersect(l.clip).IsPositive() {
							mesh.addQuad(q, c.fonts.uv(g), s.color)
						}
					}
					pen.X += g.advance
				}
			}
		}
		if mesh.IsEmpty() {
			continue
		}
		if err := validateMesh(&mesh); err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.id, err)
		}
		out = append(out, ClippedMesh{Clip: l.clip, Mesh: mesh})
	}
	return out, nil
}

func validateMesh(m *Mesh) error {
	if uint64(len(m.Vertices)) > math.MaxUint32 {
		return ErrMeshTooLarge
	}
	for _, v := range m.Vertices {
		if !isFinite(v.Pos.X) || !isFinite(v.Pos.Y) {
			return ErrNonFiniteGeometry
		}
	}
	return nil
}

func isFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
