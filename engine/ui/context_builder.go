package ui

// ContextBuilderOption is a functional option for configuring a Context.
type ContextBuilderOption func(*uiContext)

// WithStyle replaces the default style.
//
// Parameters:
//   - style: the style to use for layout, colors and font sizes
//
// Returns:
//   - ContextBuilderOption: the option to apply
func WithStyle(style Style) ContextBuilderOption {
	return func(c *uiContext) {
		c.style = style
	}
}

// WithFontSizes overrides the body and heading text sizes of the active style.
//
// Parameters:
//   - body: the body text size in points
//   - heading: the heading text size in points
//
// Returns:
//   - ContextBuilderOption: the option to apply
func WithFontSizes(body, heading float32) ContextBuilderOption {
	return func(c *uiContext) {
		if body > 0 {
			c.style.BodySize = body
		}
		if heading > 0 {
			c.style.HeadingSize = heading
		}
	}
}

// WithAtlasSize sets the initial atlas dimensions in texels. The atlas grows in height on demand.
//
// Parameters:
//   - width: the atlas width
//   - height: the initial atlas height
//
// Returns:
//   - ContextBuilderOption: the option to apply
func WithAtlasSize(width, height int) ContextBuilderOption {
	return func(c *uiContext) {
		c.atlasWidth = width
		c.atlasHeight = height
	}
}

// WithWorkers sets how many workers rasterize glyph batches.
//
// Parameters:
//   - workers: the worker count, values below 1 use a single worker
//
// Returns:
//   - ContextBuilderOption: the option to apply
func WithWorkers(workers int) ContextBuilderOption {
	return func(c *uiContext) {
		c.workers = workers
	}
}
