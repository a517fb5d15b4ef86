package ui

import (
	"github.com/chewxy/math32"
)

type shapeKind int

const (
	shapeRect shapeKind = iota
	shapeText
)

// shape is one primitive recorded while the frame is being built.
type shape struct {
	kind  shapeKind
	rect  Rect // fill area for rects, top-left of the line box for text
	color Color32
	text  string
	size  FontSize
}

// layerOrder decides the paint order of layers. Layers of equal order keep their creation order.
type layerOrder int

const (
	layerBackground layerOrder = iota
	layerWindow
)

type layer struct {
	id     string
	order  layerOrder
	clip   Rect
	shapes []shape
}

func (l *layer) addRect(r Rect, color Color32) int {
	l.shapes = append(l.shapes, shape{kind: shapeRect, rect: r, color: color})
	return len(l.shapes) - 1
}

func (l *layer) addText(min Pos2, text string, size FontSize, color Color32) {
	l.shapes = append(l.shapes, shape{kind: shapeText, rect: Rect{Min: min, Max: min}, color: color, text: text, size: size})
}

// Frame is the single-use handle widgets are added to between BeginFrame and EndFrame.
// Using a Frame, or any Panel created from it, after EndFrame panics with ErrFrameClosed.
type Frame struct {
	ctx       *uiContext
	input     RawInput
	closed    bool
	layers    []*layer
	available Rect
	output    Output
}

func newFrame(c *uiContext, input RawInput) *Frame {
	return &Frame{
		ctx:       c,
		input:     input,
		available: input.ScreenRect,
	}
}

func (f *Frame) ensureOpen() {
	if f.closed {
		panic(ErrFrameClosed)
	}
}

// Input returns the input the frame was started with.
func (f *Frame) Input() RawInput {
	f.ensureOpen()
	return f.input
}

// ScreenRect returns the full screen area in points.
func (f *Frame) ScreenRect() Rect {
	f.ensureOpen()
	return f.input.ScreenRect
}

// Time returns the host time of the frame in seconds.
func (f *Frame) Time() float64 {
	f.ensureOpen()
	return f.input.Time
}

func (f *Frame) newLayer(id string, order layerOrder, clip Rect) *layer {
	l := &layer{id: id, order: order, clip: clip.Intersect(f.input.ScreenRect)}
	f.layers = append(f.layers, l)
	return l
}

// SidePanel adds a full-height panel to the left edge of the remaining screen area and shrinks the
// area left for later panels.
//
// Parameters:
//   - id: a name for the panel, used in error messages
//   - width: the panel width in points
//   - add: called once with the panel's content area
func (f *Frame) SidePanel(id string, width float32, add func(*Panel)) {
	f.ensureOpen()
	width = math32.Max(0, math32.Min(width, f.available.Width()))
	rect := RectFromMinSize(f.available.Min, Vec2{X: width, Y: f.available.Height()})
	f.available.Min.X += width

	l := f.newLayer(id, layerBackground, rect)
	style := f.ctx.style
	l.addRect(rect, style.PanelFill)

	p := newPanel(f, l, rect.Shrink(style.Padding), false)
	add(p)
}

// CentralPanel adds a panel covering whatever screen area the side panels left. It has no fill so
// the scene underneath stays visible.
//
// Parameters:
//   - add: called once with the panel's content area
func (f *Frame) CentralPanel(add func(*Panel)) {
	f.ensureOpen()
	rect := f.available
	f.available = Rect{Min: rect.Max, Max: rect.Max}

	l := f.newLayer("central", layerBackground, rect)
	p := newPanel(f, l, rect.Shrink(f.ctx.style.Padding), false)
	add(p)
}

// Window adds a floating window with a title bar. Its height follows its content. Windows are
// painted above every panel.
//
// Parameters:
//   - title: the text of the title bar
//   - pos: the top-left corner in points
//   - width: the window width in points
//   - add: called once with the window's content area
func (f *Frame) Window(title string, pos Pos2, width float32, add func(*Panel)) {
	f.ensureOpen()
	style := f.ctx.style
	fonts := f.ctx.fonts

	titleHeight := fonts.lineHeight(FontBody) + 2*style.ButtonPadding.Y
	// placeholder clip, fixed once the content height is known
	l := f.newLayer(title, layerWindow, f.input.ScreenRect)
	bg := l.addRect(Rect{}, style.WindowFill)
	l.addRect(RectFromMinSize(pos, Vec2{X: width, Y: titleHeight}), style.TitleBarFill)
	l.addText(Pos2{X: pos.X + style.Padding, Y: pos.Y + style.ButtonPadding.Y}, title, FontBody, style.HeadingColor)

	content := Rect{
		Min: Pos2{X: pos.X + style.Padding, Y: pos.Y + titleHeight + style.Padding},
		Max: Pos2{X: pos.X + width - style.Padding, Y: f.input.ScreenRect.Max.Y},
	}
	p := newPanel(f, l, content, false)
	add(p)

	height := titleHeight + 2*style.Padding + p.usedHeight()
	rect := RectFromMinSize(pos, Vec2{X: width, Y: height})
	l.shapes[bg].rect = rect
	l.clip = rect.Intersect(f.input.ScreenRect)
}
