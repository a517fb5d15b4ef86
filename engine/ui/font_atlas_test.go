package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFontAtlas(t *testing.T) *fontAtlas {
	t.Helper()
	fa, err := newFontAtlas(256, 64, map[FontSize]float32{FontBody: 14, FontHeading: 20}, 4)
	require.NoError(t, err)
	t.Cleanup(fa.release)
	return fa
}

func TestFontAtlasWhiteTexels(t *testing.T) {
	fa := newTestFontAtlas(t)

	for y := range whiteTexelSize {
		for x := range whiteTexelSize {
			assert.Equal(t, ColorWhite, fa.atlas.Pixels[y*fa.atlas.Width+x])
		}
	}
	uv := fa.atlas.whiteUV()
	assert.Equal(t, uv.Min, uv.Max)
}

func TestFontAtlasPreloadsASCII(t *testing.T) {
	fa := newTestFontAtlas(t)

	assert.Positive(t, fa.atlas.Version)
	assert.Len(t, fa.atlas.Pixels, fa.atlas.Width*fa.atlas.Height)
	for r := firstPreloadRune; r <= lastPreloadRune; r++ {
		_, ok := fa.glyphs[glyphKey{r: r, size: FontBody}]
		assert.True(t, ok, "rune %q missing", r)
	}

	a := fa.glyphs[glyphKey{r: 'A', size: FontBody}]
	require.False(t, a.rect.Empty())
	assert.Positive(t, a.advance)

	var covered bool
	for y := a.rect.Min.Y; y < a.rect.Max.Y; y++ {
		for x := a.rect.Min.X; x < a.rect.Max.X; x++ {
			if fa.atlas.Pixels[y*fa.atlas.Width+x][3] > 0 {
				covered = true
			}
		}
	}
	assert.True(t, covered, "glyph A has no coverage")

	space := fa.glyphs[glyphKey{r: ' ', size: FontBody}]
	assert.True(t, space.rect.Empty())
	assert.Positive(t, space.advance)
}

func TestFontAtlasGlyphsDoNotOverlap(t *testing.T) {
	fa := newTestFontAtlas(t)

	entries := make([]glyphEntry, 0, len(fa.glyphs))
	for _, e := range fa.glyphs {
		if !e.rect.Empty() {
			entries = append(entries, e)
		}
	}
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			assert.True(t, entries[i].rect.Intersect(entries[j].rect).Empty())
		}
	}
}

func TestFontAtlasOnDemandGlyphBumpsVersion(t *testing.T) {
	fa := newTestFontAtlas(t)
	before := fa.atlas.Version

	e, err := fa.glyph('é', FontBody)
	require.NoError(t, err)
	assert.False(t, e.rect.Empty())
	assert.Greater(t, fa.atlas.Version, before)

	again := fa.atlas.Version
	_, err = fa.glyph('é', FontBody)
	require.NoError(t, err)
	assert.Equal(t, again, fa.atlas.Version)
}

func TestFontAtlasMissingRuneFallsBack(t *testing.T) {
	fa := newTestFontAtlas(t)

	e, err := fa.glyph('世', FontBody)
	require.NoError(t, err)
	assert.Equal(t, fa.glyphs[glyphKey{r: fallbackRune, size: FontBody}], e)
}

func TestFontAtlasRebuildAtNewScale(t *testing.T) {
	fa := newTestFontAtlas(t)
	before := fa.atlas.Version
	lineHeight := fa.lineHeight(FontBody)
	small := fa.glyphs[glyphKey{r: 'M', size: FontBody}]

	require.NoError(t, fa.rebuild(2))

	assert.Greater(t, fa.atlas.Version, before)
	assert.InDelta(t, lineHeight, fa.lineHeight(FontBody), 1)
	large := fa.glyphs[glyphKey{r: 'M', size: FontBody}]
	assert.Greater(t, large.rect.Dx(), small.rect.Dx())
	assert.InDelta(t, small.size.X, large.size.X, 1)
}

func TestFontAtlasGrowsWhenFull(t *testing.T) {
	fa, err := newFontAtlas(64, 8, map[FontSize]float32{FontBody: 14}, 2)
	require.NoError(t, err)
	defer fa.release()

	assert.Equal(t, 64, fa.atlas.Width)
	assert.Greater(t, fa.atlas.Height, 8)
	assert.Len(t, fa.atlas.Pixels, fa.atlas.Width*fa.atlas.Height)
}

func TestTextWidthMatchesAdvances(t *testing.T) {
	fa := newTestFontAtlas(t)

	var sum float32
	for _, r := range "hello" {
		sum += fa.glyphs[glyphKey{r: r, size: FontBody}].advance
	}
	assert.InDelta(t, sum, fa.textWidth("hello", FontBody), 0.01)
	assert.Zero(t, fa.textWidth("", FontBody))
}
