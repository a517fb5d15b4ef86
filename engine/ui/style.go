package ui

// FontSize selects one of the rasterized text sizes held in the atlas.
type FontSize int

const (
	// FontBody is used by labels and buttons.
	FontBody FontSize = iota

	// FontHeading is used by headings and window titles.
	FontHeading
)

// Style holds the visual parameters used while laying out and tessellating widgets.
type Style struct {
	BodySize    float32 // body text size in points
	HeadingSize float32 // heading text size in points

	TextColor      Color32
	HeadingColor   Color32
	PanelFill      Color32
	WindowFill     Color32
	TitleBarFill   Color32
	SeparatorColor Color32
	ButtonFill     Color32
	ButtonHovered  Color32
	ButtonPressed  Color32

	Padding            float32 // inner margin of panels and windows
	ItemSpacing        float32 // gap between consecutive widgets
	ButtonPadding      Vec2
	SeparatorThickness float32
}

// DefaultStyle returns the dark style used when no style is supplied.
//
// Returns:
//   - Style: the default style
func DefaultStyle() Style {
	return Style{
		BodySize:           14,
		HeadingSize:        20,
		TextColor:          Gray(200),
		HeadingColor:       Gray(240),
		PanelFill:          RGBA(27, 27, 27, 240),
		WindowFill:         RGBA(32, 32, 36, 235),
		TitleBarFill:       Gray(48),
		SeparatorColor:     Gray(70),
		ButtonFill:         Gray(60),
		ButtonHovered:      Gray(80),
		ButtonPressed:      Gray(110),
		Padding:            8,
		ItemSpacing:        6,
		ButtonPadding:      Vec2{X: 8, Y: 4},
		SeparatorThickness: 1,
	}
}

// fontSize returns the size in points for the given FontSize.
func (s Style) fontSize(size FontSize) float32 {
	if size == FontHeading {
		return s.HeadingSize
	}
	return s.BodySize
}
