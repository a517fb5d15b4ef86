// package ui is a small immediate-mode user interface library. Every frame the caller re-describes the whole
// widget tree against a single-use Frame, and the Context tessellates the result into one triangle mesh per
// layer together with a shared font TextureAtlas.
package ui

import (
	"github.com/chewxy/math32"
)

// Pos2 is a position in logical points, origin at the top-left of the screen, +Y down.
type Pos2 struct {
	X, Y float32
}

// Vec2 is a size or offset in logical points.
type Vec2 struct {
	X, Y float32
}

// Add offsets the position by v.
func (p Pos2) Add(v Vec2) Pos2 {
	return Pos2{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the offset from o to p.
func (p Pos2) Sub(o Pos2) Vec2 {
	return Vec2{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect is an axis-aligned rectangle in logical points. Min is inclusive, Max exclusive.
type Rect struct {
	Min, Max Pos2
}

// RectFromMinSize builds a Rect from its top-left corner and size.
//
// Parameters:
//   - min: the top-left corner
//   - size: the width and height
//
// Returns:
//   - Rect: the resulting rectangle
func RectFromMinSize(min Pos2, size Vec2) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}

// Size returns the rectangle's width and height.
func (r Rect) Size() Vec2 {
	return Vec2{X: r.Width(), Y: r.Height()}
}

// IsPositive reports whether the rectangle has a non-zero area.
func (r Rect) IsPositive() bool {
	return r.Max.X > r.Min.X && r.Max.Y > r.Min.Y
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Pos2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the overlap of r and o. The result is not positive when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Min: Pos2{X: math32.Max(r.Min.X, o.Min.X), Y: math32.Max(r.Min.Y, o.Min.Y)},
		Max: Pos2{X: math32.Min(r.Max.X, o.Max.X), Y: math32.Min(r.Max.Y, o.Max.Y)},
	}
}

// Shrink moves every edge of the rectangle inwards by amount.
func (r Rect) Shrink(amount float32) Rect {
	return Rect{
		Min: Pos2{X: r.Min.X + amount, Y: r.Min.Y + amount},
		Max: Pos2{X: r.Max.X - amount, Y: r.Max.Y - amount},
	}
}

// Color32 is an sRGB color with premultiplied alpha, one byte per channel in R, G, B, A order.
type Color32 [4]uint8

var (
	ColorTransparent = Color32{0, 0, 0, 0}
	ColorWhite       = Color32{255, 255, 255, 255}
	ColorBlack       = Color32{0, 0, 0, 255}
)

// RGBA builds a premultiplied Color32 from straight (unmultiplied) sRGB channels and alpha.
//
// Parameters:
//   - r, g, b: the straight sRGB channel values
//   - a: the alpha value
//
// Returns:
//   - Color32: the color with r, g, b scaled by a/255
func RGBA(r, g, b, a uint8) Color32 {
	if a == 255 {
		return Color32{r, g, b, a}
	}
	return Color32{premultiply(r, a), premultiply(g, a), premultiply(b, a), a}
}

// Gray builds an opaque gray color.
func Gray(l uint8) Color32 {
	return Color32{l, l, l, 255}
}

// MultiplyAlpha scales every premultiplied channel by factor in [0, 1].
func (c Color32) MultiplyAlpha(factor float32) Color32 {
	factor = math32.Max(0, math32.Min(1, factor))
	return Color32{
		uint8(math32.Round(float32(c[0]) * factor)),
		uint8(math32.Round(float32(c[1]) * factor)),
		uint8(math32.Round(float32(c[2]) * factor)),
		uint8(math32.Round(float32(c[3]) * factor)),
	}
}

func premultiply(c, a uint8) uint8 {
	return uint8((uint32(c)*uint32(a) + 127) / 255)
}

// Vertex is one tessellated vertex: position in points, atlas texture coordinate and premultiplied color.
type Vertex struct {
	Pos   Pos2
	UV    Pos2
	Color Color32
}

// Mesh is an indexed triangle list. Indices are local to Vertices.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// addQuad appends an axis-aligned quad with the given texture rectangle as two triangles.
func (m *Mesh) addQuad(r Rect, uv Rect, color Color32) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: r.Min, UV: uv.Min, Color: color},
		Vertex{Pos: Pos2{X: r.Max.X, Y: r.Min.Y}, UV: Pos2{X: uv.Max.X, Y: uv.Min.Y}, Color: color},
		Vertex{Pos: r.Max, UV: uv.Max, Color: color},
		Vertex{Pos: Pos2{X: r.Min.X, Y: r.Max.Y}, UV: Pos2{X: uv.Min.X, Y: uv.Max.Y}, Color: color},
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// ClippedMesh pairs the mesh of one layer with the rectangle it is clipped to.
type ClippedMesh struct {
	Clip Rect
	Mesh Mesh
}

// RawInput is everything the Context needs to know about the host for one frame.
type RawInput struct {
	// ScreenRect is the visible area in logical points.
	ScreenRect Rect

	// PixelsPerPoint is the logical-to-physical scale factor. Values <= 0 are treated as 1.
	PixelsPerPoint float32

	// PointerPos is the pointer position in points, or nil when the pointer is outside the window.
	PointerPos *Pos2

	// PointerDown reports whether the primary button is held.
	PointerDown bool

	// Time is the host time in seconds.
	Time float64
}

// Output carries per-frame feedback from the Context back to the host.
type Output struct {
	// Hovered is true when the pointer is over any interactive widget.
	Hovered bool

	// Clicked is true when any button was clicked this frame.
	Clicked bool
}
