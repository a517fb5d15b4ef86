package window

// WindowBuilderOption configures an engineWindow in NewWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the title bar text.
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial client area size. The framebuffer may end up larger on high-DPI
// displays; Width and Height report the framebuffer size once the window exists.
//
// Parameters:
//   - width: the requested width in screen coordinates
//   - height: the requested height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width, w.height = width, height
	}
}

// WithSizeLimits bounds interactive resizing. A zero bound is left open, so
// WithSizeLimits(320, 200, 0, 0) only sets a minimum.
//
// Parameters:
//   - minWidth, minHeight: the smallest allowed client area
//   - maxWidth, maxHeight: the largest allowed client area
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}
