package ui

import (
	"github.com/chewxy/math32"
)

// Panel lays widgets out one after another inside a content rectangle, top to bottom or, inside
// Horizontal, left to right.
type Panel struct {
	frame      *Frame
	layer      *layer
	maxRect    Rect
	cursor     Pos2
	horizontal bool
	used       Rect // extent of everything allocated so far, empty until the first widget
}

func newPanel(f *Frame, l *layer, maxRect Rect, horizontal bool) *Panel {
	return &Panel{
		frame:      f,
		layer:      l,
		maxRect:    maxRect,
		cursor:     maxRect.Min,
		horizontal: horizontal,
		used:       Rect{Min: maxRect.Min, Max: maxRect.Min},
	}
}

// allocate reserves size at the cursor and advances it.
func (p *Panel) allocate(size Vec2) Rect {
	r := RectFromMinSize(p.cursor, size)
	spacing := p.frame.ctx.style.ItemSpacing
	if p.horizontal {
		p.cursor.X += size.X + spacing
	} else {
		p.cursor.Y += size.Y + spacing
	}
	p.used.Max.X = math32.Max(p.used.Max.X, r.Max.X)
	p.used.Max.Y = math32.Max(p.used.Max.Y, r.Max.Y)
	return r
}

func (p *Panel) usedHeight() float32 {
	return p.used.Height()
}

// AvailableWidth returns the width left between the cursor and the right edge of the panel.
func (p *Panel) AvailableWidth() float32 {
	p.frame.ensureOpen()
	return math32.Max(0, p.maxRect.Max.X-p.cursor.X)
}

func (p *Panel) text(text string, size FontSize, color Color32) Rect {
	fonts := p.frame.ctx.fonts
	r := p.allocate(Vec2{X: fonts.textWidth(text, size), Y: fonts.lineHeight(size)})
	p.layer.addText(r.Min, text, size, color)
	return r
}

// Heading adds a line of large text.
func (p *Panel) Heading(text string) Rect {
	p.frame.ensureOpen()
	return p.text(text, FontHeading, p.frame.ctx.style.HeadingColor)
}

// Label adds a line of body text.
func (p *Panel) Label(text string) Rect {
	p.frame.ensureOpen()
	return p.text(text, FontBody, p.frame.ctx.style.TextColor)
}

// Separator adds a thin line across the panel. Inside Horizontal it is vertical.
func (p *Panel) Separator() {
	p.frame.ensureOpen()
	style := p.frame.ctx.style
	thickness := style.SeparatorThickness
	if p.horizontal {
		h := math32.Max(p.used.Height(), p.frame.ctx.fonts.lineHeight(FontBody))
		r := p.allocate(Vec2{X: style.ItemSpacing, Y: h})
		mid := r.Min.X + (r.Width()-thickness)/2
		p.layer.addRect(Rect{Min: Pos2{X: mid, Y: r.Min.Y}, Max: Pos2{X: mid + thickness, Y: r.Max.Y}}, style.SeparatorColor)
		return
	}
	r := p.allocate(Vec2{X: p.maxRect.Width(), Y: style.ItemSpacing})
	mid := r.Min.Y + (r.Height()-thickness)/2
	p.layer.addRect(Rect{Min: Pos2{X: r.Min.X, Y: mid}, Max: Pos2{X: r.Max.X, Y: mid + thickness}}, style.SeparatorColor)
}

// Space advances the cursor by amount points without drawing anything.
func (p *Panel) Space(amount float32) {
	p.frame.ensureOpen()
	if p.horizontal {
		p.cursor.X += amount
	} else {
		p.cursor.Y += amount
	}
}

// Button adds a clickable button and reports whether it was clicked this frame. A click is a press
// that is released while the pointer is still over the button.
//
// Parameters:
//   - text: the button caption
//
// Returns:
//   - bool: true on the frame the click completes
func (p *Panel) Button(text string) bool {
	p.frame.ensureOpen()
	ctx := p.frame.ctx
	style := ctx.style
	size := Vec2{
		X: ctx.fonts.textWidth(text, FontBody) + 2*style.ButtonPadding.X,
		Y: ctx.fonts.lineHeight(FontBody) + 2*style.ButtonPadding.Y,
	}
	r := p.allocate(size)

	input := p.frame.input
	hovered := input.PointerPos != nil && r.Intersect(p.layer.clip).Contains(*input.PointerPos)
	clicked := hovered && ctx.prevPointerDown && !input.PointerDown

	fill := style.ButtonFill
	switch {
	case hovered && input.PointerDown:
		fill = style.ButtonPressed
	case hovered:
		fill = style.ButtonHovered
	}
	p.layer.addRect(r, fill)
	p.layer.addText(Pos2{X: r.Min.X + style.ButtonPadding.X, Y: r.Min.Y + style.ButtonPadding.Y}, text, FontBody, style.TextColor)

	p.frame.output.Hovered = p.frame.output.Hovered || hovered
	p.frame.output.Clicked = p.frame.output.Clicked || clicked
	return clicked
}

// Horizontal lays the widgets added by add out in a single row, then continues below the row.
//
// Parameters:
//   - add: called once with the row panel
func (p *Panel) Horizontal(add func(*Panel)) {
	p.frame.ensureOpen()
	row := newPanel(p.frame, p.layer, Rect{Min: p.cursor, Max: p.maxRect.Max}, true)
	add(row)
	p.allocate(row.used.Size())
}
