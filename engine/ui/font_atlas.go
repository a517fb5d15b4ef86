package ui

import (
	"errors"
	"fmt"
	"image"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	maxAtlasSize     = 8192
	glyphPadding     = 1
	whiteTexelSize   = 2
	firstPreloadRune = ' '
	lastPreloadRune  = '~'
	fallbackRune     = '?'
)

// ErrAtlasFull is returned when the glyph atlas would have to grow beyond its maximum height.
var ErrAtlasFull = errors.New("ui: font atlas exceeds maximum size")

// TextureAtlas is the single texture shared by every mesh the Context produces. The top-left texels are
// opaque white so solid shapes can sample it; the remainder holds rasterized glyph coverage.
// Version increases every time Pixels, Width or Height change.
type TextureAtlas struct {
	Width   int
	Height  int
	Pixels  []Color32 // row-major, Width*Height entries
	Version uint64
}

func newTextureAtlas(width, height int, version uint64) *TextureAtlas {
	a := &TextureAtlas{
		Width:   width,
		Height:  height,
		Pixels:  make([]Color32, width*height),
		Version: version,
	}
	for y := range whiteTexelSize {
		for x := range whiteTexelSize {
			a.Pixels[y*width+x] = ColorWhite
		}
	}
	return a
}

// whiteUV returns a degenerate texture rectangle in the middle of the white texel block.
func (a *TextureAtlas) whiteUV() Rect {
	p := Pos2{X: 1 / float32(a.Width), Y: 1 / float32(a.Height)}
	return Rect{Min: p, Max: p}
}

// grow doubles the atlas height, keeping existing rows in place.
func (a *TextureAtlas) grow() error {
	if a.Height*2 > maxAtlasSize {
		return ErrAtlasFull
	}
	a.Pixels = append(a.Pixels, make([]Color32, a.Width*a.Height)...)
	a.Height *= 2
	return nil
}

// glyphKey identifies one rasterized glyph.
type glyphKey struct {
	r    rune
	size FontSize
}

// glyphEntry locates a glyph in the atlas and describes how to place it relative to the pen.
type glyphEntry struct {
	rect    image.Rectangle // atlas pixels, empty for whitespace
	offset  Vec2            // top-left of the quad relative to the pen on the baseline, in points
	size    Vec2            // quad size in points
	advance float32         // pen advance in points
}

type fontMetrics struct {
	ascent     float32
	lineHeight float32
}

// shelfPacker places glyph rectangles left to right in rows.
type shelfPacker struct {
	x, y, rowHeight int
}

func newShelfPacker() shelfPacker {
	return shelfPacker{x: whiteTexelSize + glyphPadding}
}

func (p *shelfPacker) allocate(a *TextureAtlas, w, h int) (image.Rectangle, error) {
	if w+glyphPadding > a.Width {
		return image.Rectangle{}, fmt.Errorf("ui: glyph of width %d does not fit atlas width %d", w, a.Width)
	}
	if p.x+w+glyphPadding > a.Width {
		p.x = 0
		p.y += p.rowHeight + glyphPadding
		p.rowHeight = 0
	}
	for p.y+h+glyphPadding > a.Height {
		if err := a.grow(); err != nil {
			return image.Rectangle{}, err
		}
	}
	r := image.Rect(p.x, p.y, p.x+w, p.y+h)
	p.x += w + glyphPadding
	p.rowHeight = max(p.rowHeight, h)
	return r, nil
}

// fontAtlas rasterizes glyphs of the embedded Go font into a TextureAtlas.
// Batches of glyphs are rasterized in parallel on a worker pool; every worker opens its own face
// because font.Face is not safe for concurrent use.
type fontAtlas struct {
	font           *opentype.Font
	sizes          map[FontSize]float32
	pixelsPerPoint float32

	atlas   *TextureAtlas
	packer  shelfPacker
	glyphs  map[glyphKey]glyphEntry
	faces   map[FontSize]font.Face
	metrics map[FontSize]fontMetrics

	pool worker.DynamicWorkerPool
}

func newFontAtlas(width, height int, sizes map[FontSize]float32, workers int) (*fontAtlas, error) {
	if width <= whiteTexelSize || height <= whiteTexelSize {
		return nil, fmt.Errorf("ui: invalid atlas size %dx%d", width, height)
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("ui: failed to parse font: %w", err)
	}
	fa := &fontAtlas{
		font:  f,
		sizes: sizes,
		atlas: newTextureAtlas(width, height, 0),
		pool:  worker.NewDynamicWorkerPool(max(workers, 1), 256, time.Second),
	}
	if err := fa.rebuild(1); err != nil {
		fa.release()
		return nil, err
	}
	return fa, nil
}

// release stops the worker pool and closes the cached faces.
func (fa *fontAtlas) release() {
	fa.pool.Stop()
	for size, face := range fa.faces {
		_ = face.Close()
		delete(fa.faces, size)
	}
}

// rebuild clears the atlas and re-rasterizes the printable ASCII range plus every glyph used so far
// at the given scale. The atlas keeps its current dimensions and its version keeps increasing.
func (fa *fontAtlas) rebuild(pixelsPerPoint float32) error {
	for _, face := range fa.faces {
		_ = face.Close()
	}

	used := fa.glyphs
	fa.pixelsPerPoint = pixelsPerPoint
	fa.atlas = newTextureAtlas(fa.atlas.Width, fa.atlas.Height, fa.atlas.Version)
	fa.packer = newShelfPacker()
	fa.glyphs = make(map[glyphKey]glyphEntry)
	fa.faces = make(map[FontSize]font.Face, len(fa.sizes))
	fa.metrics = make(map[FontSize]fontMetrics, len(fa.sizes))

	sizes := slices.Sorted(maps.Keys(fa.sizes))
	for _, size := range sizes {
		face, err := opentype.NewFace(fa.font, fa.faceOptions(size))
		if err != nil {
			return fmt.Errorf("ui: failed to create face: %w", err)
		}
		m := face.Metrics()
		fa.faces[size] = face
		fa.metrics[size] = fontMetrics{
			ascent:     fixedToFloat(m.Ascent) / pixelsPerPoint,
			lineHeight: fixedToFloat(m.Height) / pixelsPerPoint,
		}
	}

	keys := make([]glyphKey, 0, len(fa.sizes)*int(lastPreloadRune-firstPreloadRune+1)+len(used))
	for _, size := range sizes {
		for r := firstPreloadRune; r <= lastPreloadRune; r++ {
			keys = append(keys, glyphKey{r: r, size: size})
		}
	}
	for key := range used {
		keys = append(keys, key)
	}

	if err := fa.rasterize(keys); err != nil {
		return err
	}
	// a rebuild always invalidates, even when nothing had to be drawn
	fa.atlas.Version++
	return nil
}

func (fa *fontAtlas) faceOptions(size FontSize) *opentype.FaceOptions {
	return &opentype.FaceOptions{
		Size:    float64(fa.sizes[size] * fa.pixelsPerPoint),
		DPI:     72,
		Hinting: font.HintingNone,
	}
}

type glyphJob struct {
	key    glyphKey
	rect   image.Rectangle
	origin image.Point // glyph-space pixel that maps to rect.Min
}

// rasterize packs every key that is not already present and draws the glyph coverage into the atlas.
// Packing runs sequentially so the atlas is never resized while workers write into it.
func (fa *fontAtlas) rasterize(keys []glyphKey) error {
	jobs := make([]glyphJob, 0, len(keys))
	for _, key := range keys {
		if _, ok := fa.glyphs[key]; ok {
			continue
		}
		face := fa.faces[key.size]
		bounds, advance, ok := face.GlyphBounds(key.r)
		if !ok {
			continue
		}
		minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
		w, h := bounds.Max.X.Ceil()-minX, bounds.Max.Y.Ceil()-minY

		entry := glyphEntry{
			offset:  Vec2{X: float32(minX) / fa.pixelsPerPoint, Y: float32(minY) / fa.pixelsPerPoint},
			advance: fixedToFloat(advance) / fa.pixelsPerPoint,
		}
		if w > 0 && h > 0 {
			rect, err := fa.packer.allocate(fa.atlas, w, h)
			if err != nil {
				return err
			}
			entry.rect = rect
			entry.size = Vec2{X: float32(w) / fa.pixelsPerPoint, Y: float32(h) / fa.pixelsPerPoint}
			jobs = append(jobs, glyphJob{key: key, rect: rect, origin: image.Pt(minX, minY)})
		}
		fa.glyphs[key] = entry
	}

	switch len(jobs) {
	case 0:
		return nil
	case 1:
		if err := fa.drawGlyph(jobs[0]); err != nil {
			return err
		}
		fa.atlas.Version++
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, len(jobs))
	for i, job := range jobs {
		wg.Add(1)
		fa.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				errs[i] = fa.drawGlyph(job)
				return nil, errs[i]
			},
		})
	}
	wg.Wait()

	fa.atlas.Version++
	return errors.Join(errs...)
}

// drawGlyph renders one glyph into its reserved atlas rectangle. Jobs own disjoint rectangles.
func (fa *fontAtlas) drawGlyph(job glyphJob) error {
	face, err := opentype.NewFace(fa.font, fa.faceOptions(job.key.size))
	if err != nil {
		return fmt.Errorf("ui: failed to create face for %q: %w", job.key.r, err)
	}
	defer face.Close()

	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, job.key.r)
	if !ok {
		return fmt.Errorf("ui: glyph %q not available", job.key.r)
	}

	stride := fa.atlas.Width
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			dst := image.Pt(job.rect.Min.X+x-job.origin.X, job.rect.Min.Y+y-job.origin.Y)
			if !dst.In(job.rect) {
				continue
			}
			_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
			c := uint8(a >> 8)
			fa.atlas.Pixels[dst.Y*stride+dst.X] = Color32{c, c, c, c}
		}
	}
	return nil
}

// glyph returns the entry for r, rasterizing it on demand. Runes missing from the font resolve to
// the fallback glyph.
func (fa *fontAtlas) glyph(r rune, size FontSize) (glyphEntry, error) {
	key := glyphKey{r: r, size: size}
	if e, ok := fa.glyphs[key]; ok {
		return e, nil
	}
	if _, _, ok := fa.faces[size].GlyphBounds(r); !ok {
		if r == fallbackRune {
			return glyphEntry{}, nil
		}
		e, err := fa.glyph(fallbackRune, size)
		if err != nil {
			return glyphEntry{}, err
		}
		fa.glyphs[key] = e
		return e, nil
	}
	if err := fa.rasterize([]glyphKey{key}); err != nil {
		return glyphEntry{}, err
	}
	return fa.glyphs[key], nil
}

// uv converts an entry's pixel rectangle to normalized texture coordinates.
func (fa *fontAtlas) uv(e glyphEntry) Rect {
	w, h := float32(fa.atlas.Width), float32(fa.atlas.Height)
	return Rect{
		Min: Pos2{X: float32(e.rect.Min.X) / w, Y: float32(e.rect.Min.Y) / h},
		Max: Pos2{X: float32(e.rect.Max.X) / w, Y: float32(e.rect.Max.Y) / h},
	}
}

// textWidth measures text in points without rasterizing anything.
func (fa *fontAtlas) textWidth(text string, size FontSize) float32 {
	face := fa.faces[size]
	var width fixed.Int26_6
	for _, r := range text {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv, _ = face.GlyphAdvance(fallbackRune)
		}
		width += adv
	}
	return fixedToFloat(width) / fa.pixelsPerPoint
}

func (fa *fontAtlas) lineHeight(size FontSize) float32 {
	return fa.metrics[size].lineHeight
}

func (fa *fontAtlas) ascent(size FontSize) float32 {
	return fa.metrics[size].ascent
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
