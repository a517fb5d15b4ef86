package ui

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screenInput(w, h float32) RawInput {
	return RawInput{
		ScreenRect:     RectFromMinSize(Pos2{}, Vec2{X: w, Y: h}),
		PixelsPerPoint: 1,
	}
}

func newTestContext(t *testing.T) Context {
	t.Helper()
	c, err := NewContext(WithAtlasSize(256, 128), WithWorkers(2))
	require.NoError(t, err)
	t.Cleanup(c.Release)
	return c
}

func runFrame(t *testing.T, c Context, input RawInput, build func(*Frame)) (Output, []ClippedMesh) {
	t.Helper()
	f, err := c.BeginFrame(input)
	require.NoError(t, err)
	build(f)
	out, meshes, err := c.EndFrame()
	require.NoError(t, err)
	return out, meshes
}

func assertWellFormed(t *testing.T, m Mesh) {
	t.Helper()
	assert.Zero(t, len(m.Indices)%3)
	for _, idx := range m.Indices {
		assert.Less(t, idx, uint32(len(m.Vertices)))
	}
}

func TestFrameLifecycleErrors(t *testing.T) {
	c := newTestContext(t)

	_, _, err := c.EndFrame()
	assert.ErrorIs(t, err, ErrNoFrame)

	_, err = c.BeginFrame(screenInput(640, 480))
	require.NoError(t, err)
	_, err = c.BeginFrame(screenInput(640, 480))
	assert.ErrorIs(t, err, ErrFrameInProgress)

	_, _, err = c.EndFrame()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c.FrameNumber())
}

func TestFrameIsRevokedByEndFrame(t *testing.T) {
	c := newTestContext(t)

	var panel *Panel
	f, err := c.BeginFrame(screenInput(640, 480))
	require.NoError(t, err)
	f.SidePanel("side", 200, func(p *Panel) { panel = p })
	_, _, err = c.EndFrame()
	require.NoError(t, err)

	assert.PanicsWithValue(t, ErrFrameClosed, func() { f.SidePanel("late", 100, func(*Panel) {}) })
	assert.PanicsWithValue(t, ErrFrameClosed, func() { f.Time() })
	assert.PanicsWithValue(t, ErrFrameClosed, func() { panel.Label("late") })
	assert.PanicsWithValue(t, ErrFrameClosed, func() { panel.Button("late") })
}

func TestEmptyFrameProducesNoMeshes(t *testing.T) {
	c := newTestContext(t)

	_, meshes := runFrame(t, c, screenInput(640, 480), func(f *Frame) {
		f.CentralPanel(func(*Panel) {})
	})
	assert.Empty(t, meshes)
}

func TestSidePanelDemo(t *testing.T) {
	c := newTestContext(t)

	_, meshes := runFrame(t, c, screenInput(640, 480), func(f *Frame) {
		f.SidePanel("side", 200, func(p *Panel) {
			p.Heading("hello")
			p.Separator()
			p.Label("t: 1.25")
		})
	})

	require.Len(t, meshes, 1)
	m := meshes[0]
	assert.Equal(t, RectFromMinSize(Pos2{}, Vec2{X: 200, Y: 480}), m.Clip)
	assertWellFormed(t, m.Mesh)

	// background + separator + 5 + 7 glyph quads ("t: 1.25" has one space)
	assert.Len(t, m.Mesh.Vertices, 4*(2+5+6))

	// the first quad is the panel fill sampling the white texels
	white := c.Texture().whiteUV().Min
	for _, v := range m.Mesh.Vertices[:4] {
		assert.Equal(t, white, v.UV)
		assert.Equal(t, DefaultStyle().PanelFill, v.Color)
	}
}

func TestLayersAreSeparateMeshesInPaintOrder(t *testing.T) {
	c := newTestContext(t)

	_, meshes := runFrame(t, c, screenInput(640, 480), func(f *Frame) {
		f.Window("stats", Pos2{X: 300, Y: 40}, 180, func(p *Panel) {
			p.Label("frames: 1")
		})
		f.SidePanel("side", 200, func(p *Panel) {
			p.Label("hello")
		})
	})

	require.Len(t, meshes, 2)
	assert.Equal(t, float32(200), meshes[0].Clip.Width())
	assert.Equal(t, Pos2{X: 300, Y: 40}, meshes[1].Clip.Min)
	assert.Equal(t, float32(180), meshes[1].Clip.Width())
	assert.Greater(t, meshes[1].Clip.Height(), c.(*uiContext).fonts.lineHeight(FontBody)*2)
	for _, m := range meshes {
		assertWellFormed(t, m.Mesh)
	}
}

func TestTextOutsideClipIsCulled(t *testing.T) {
	c := newTestContext(t)

	_, meshes := runFrame(t, c, screenInput(640, 480), func(f *Frame) {
		f.SidePanel("narrow", 40, func(p *Panel) {
			p.Label("a label far wider than the panel it lives in")
		})
	})

	require.Len(t, meshes, 1)
	m := meshes[0]
	for i := 0; i < len(m.Mesh.Vertices); i += 4 {
		quad := Rect{Min: m.Mesh.Vertices[i].Pos, Max: m.Mesh.Vertices[i+2].Pos}
		assert.True(t, quad.Intersect(m.Clip).IsPositive(), "quad %d lies outside the clip", i/4)
	}
}

func TestButtonClickOnRelease(t *testing.T) {
	c := newTestContext(t)
	pointer := &Pos2{X: 12, Y: 12}
	var clicked []bool

	build := func(f *Frame) {
		f.SidePanel("side", 200, func(p *Panel) {
			clicked = append(clicked, p.Button("toggle"))
		})
	}

	press := screenInput(640, 480)
	press.PointerPos = pointer
	press.PointerDown = true
	out, _ := runFrame(t, c, press, build)
	assert.True(t, out.Hovered)
	assert.False(t, out.Clicked)

	release := screenInput(640, 480)
	release.PointerPos = pointer
	out, _ = runFrame(t, c, release, build)
	assert.True(t, out.Clicked)

	idle := screenInput(640, 480)
	idle.PointerPos = pointer
	out, _ = runFrame(t, c, idle, build)
	assert.False(t, out.Clicked)

	assert.Equal(t, []bool{false, true, false}, clicked)
}

func TestButtonReleasedOutsideDoesNotClick(t *testing.T) {
	c := newTestContext(t)
	build := func(f *Frame) {
		f.SidePanel("side", 200, func(p *Panel) { p.Button("toggle") })
	}

	press := screenInput(640, 480)
	press.PointerPos = &Pos2{X: 12, Y: 12}
	press.PointerDown = true
	runFrame(t, c, press, build)

	release := screenInput(640, 480)
	release.PointerPos = &Pos2{X: 500, Y: 400}
	out, _ := runFrame(t, c, release, build)
	assert.False(t, out.Clicked)
	assert.False(t, out.Hovered)
}

func TestHorizontalRowAdvancesOnce(t *testing.T) {
	c := newTestContext(t)
	var first, second, below Rect

	runFrame(t, c, screenInput(640, 480), func(f *Frame) {
		f.SidePanel("side", 300, func(p *Panel) {
			p.Horizontal(func(row *Panel) {
				first = row.Label("a")
				second = row.Label("b")
			})
			below = p.Label("c")
		})
	})

	assert.Equal(t, first.Min.Y, second.Min.Y)
	assert.Greater(t, second.Min.X, first.Max.X)
	assert.Equal(t, first.Min.X, below.Min.X)
	assert.Greater(t, below.Min.Y, first.Max.Y)
}

func TestScaleChangeBumpsAtlasVersion(t *testing.T) {
	c := newTestContext(t)

	runFrame(t, c, screenInput(640, 480), func(*Frame) {})
	v1 := c.Texture().Version

	runFrame(t, c, screenInput(640, 480), func(*Frame) {})
	assert.Equal(t, v1, c.Texture().Version)

	hiDPI := screenInput(640, 480)
	hiDPI.PixelsPerPoint = 2
	runFrame(t, c, hiDPI, func(*Frame) {})
	assert.Greater(t, c.Texture().Version, v1)
}

func TestNewGlyphBumpsAtlasVersionDuringFrame(t *testing.T) {
	c := newTestContext(t)
	v1 := c.Texture().Version

	_, meshes := runFrame(t, c, screenInput(640, 480), func(f *Frame) {
		f.SidePanel("side", 200, func(p *Panel) { p.Label("ÅÉÎ") })
	})
	require.Len(t, meshes, 1)
	assert.Greater(t, c.Texture().Version, v1)
}

func TestValidateMesh(t *testing.T) {
	var m Mesh
	m.addQuad(RectFromMinSize(Pos2{}, Vec2{X: 1, Y: 1}), Rect{}, ColorWhite)
	assert.NoError(t, validateMesh(&m))

	m.Vertices[2].Pos.X = math32.NaN()
	assert.ErrorIs(t, validateMesh(&m), ErrNonFiniteGeometry)

	m.Vertices[2].Pos.X = float32(math.Inf(1))
	assert.ErrorIs(t, validateMesh(&m), ErrNonFiniteGeometry)
}

func TestReleaseRejectsNewFrames(t *testing.T) {
	c, err := NewContext(WithAtlasSize(256, 128), WithWorkers(2))
	require.NoError(t, err)
	version := c.Texture().Version

	c.Release()
	c.Release()

	_, err = c.BeginFrame(screenInput(640, 480))
	assert.ErrorIs(t, err, ErrContextReleased)
	assert.Equal(t, version, c.Texture().Version)
	assert.Empty(t, c.(*uiContext).fonts.faces)
}
