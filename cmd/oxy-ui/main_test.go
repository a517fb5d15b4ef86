package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-ui/engine/overlay"
	"github.com/Carmen-Shannon/oxy-ui/engine/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerOutsideWindowHasNoPosition(t *testing.T) {
	p := newPointer(func() float32 { return 1 })
	in := p.Input()
	assert.Nil(t, in.PointerPos)
	assert.False(t, in.PointerDown)
}

func TestPointerScalesToPoints(t *testing.T) {
	p := newPointer(func() float32 { return 0.5 })
	p.move(100, 40)
	p.press(100, 40)

	in := p.Input()
	require.NotNil(t, in.PointerPos)
	assert.Equal(t, ui.Pos2{X: 50, Y: 20}, *in.PointerPos)
	assert.True(t, in.PointerDown)

	p.release(110, 40)
	in = p.Input()
	assert.False(t, in.PointerDown)
	assert.Equal(t, float32(55), in.PointerPos.X)

	p.enter(false)
	assert.Nil(t, p.Input().PointerPos)
}

func TestPointerIgnoresInvalidScale(t *testing.T) {
	p := newPointer(func() float32 { return 0 })
	p.move(7, 9)
	assert.Equal(t, ui.Pos2{X: 7, Y: 9}, *p.Input().PointerPos)
}

func runDemoFrame(t *testing.T, c ui.Context, d *demo, in ui.RawInput) (ui.Output, []ui.ClippedMesh) {
	t.Helper()
	in.ScreenRect = ui.RectFromMinSize(ui.Pos2{}, ui.Vec2{X: 800, Y: 600})
	in.PixelsPerPoint = 1
	in.Time = 1.25
	f, err := c.BeginFrame(in)
	require.NoError(t, err)
	d.build(f)
	out, meshes, err := c.EndFrame()
	require.NoError(t, err)
	return out, meshes
}

func newTestContext(t *testing.T) ui.Context {
	t.Helper()
	c, err := ui.NewContext(ui.WithAtlasSize(256, 128), ui.WithWorkers(2))
	require.NoError(t, err)
	t.Cleanup(c.Release)
	return c
}

func TestDemoStatsButtonToggles(t *testing.T) {
	c := newTestContext(t)
	d := newDemo(overlay.MeshPolicyAll)
	d.stats = func() overlay.Stats { return overlay.Stats{Frames: 9} }

	_, meshes := runDemoFrame(t, c, d, ui.RawInput{})
	require.Len(t, meshes, 1)
	assert.False(t, d.showStats)

	// find the button by scanning the side panel for a hovered widget
	var button *ui.Pos2
	for y := float32(0); y < 200 && button == nil; y += 2 {
		pos := ui.Pos2{X: 40, Y: y}
		out, _ := runDemoFrame(t, c, d, ui.RawInput{PointerPos: &pos})
		if out.Hovered {
			button = &pos
		}
	}
	require.NotNil(t, button, "stats button not found")

	runDemoFrame(t, c, d, ui.RawInput{PointerPos: button, PointerDown: true})
	out, _ := runDemoFrame(t, c, d, ui.RawInput{PointerPos: button})
	assert.True(t, out.Clicked)
	assert.True(t, d.showStats)

	_, meshes = runDemoFrame(t, c, d, ui.RawInput{PointerPos: button})
	assert.Len(t, meshes, 2)
}

func TestDemoCountersStayInSidePanelUnderFirstPolicy(t *testing.T) {
	c := newTestContext(t)
	d := newDemo(overlay.MeshPolicyFirst)
	d.toggleStats()

	_, meshes := runDemoFrame(t, c, d, ui.RawInput{})
	assert.Len(t, meshes, 1)
}

// countingDevice accepts every call and records the draws of the current frame.
type countingDevice struct {
	draws []overlay.DrawCommand
}

type countingHandle struct{ w, h uint32 }

func (h *countingHandle) Width() uint32  { return h.w }
func (h *countingHandle) Height() uint32 { return h.h }
func (h *countingHandle) Size() uint64   { return uint64(h.w) }
func (h *countingHandle) Release()       {}

func (d *countingDevice) CreateTexture(desc overlay.TextureDescriptor) (overlay.Texture, error) {
	return &countingHandle{w: desc.Width, h: desc.Height}, nil
}
func (d *countingDevice) WriteTexture(overlay.Texture, []byte) error { return nil }
func (d *countingDevice) CreateBuffer(_ overlay.BufferUsage, _ string, size uint64) (overlay.Buffer, error) {
	return &countingHandle{w: uint32(size)}, nil
}
func (d *countingDevice) WriteBuffer(overlay.Buffer, []byte) error { return nil }
func (d *countingDevice) CreatePipeline(overlay.PipelineDescriptor) (overlay.Pipeline, error) {
	return &countingHandle{}, nil
}
func (d *countingDevice) Draw(cmd overlay.DrawCommand) error {
	d.draws = append(d.draws, cmd)
	return nil
}

func drawnIndices(draws []overlay.DrawCommand) uint32 {
	var n uint32
	for _, cmd := range draws {
		n += cmd.IndexCount
	}
	return n
}

func TestDemoStatsReachTheScreen(t *testing.T) {
	tests := []struct {
		name      string
		policy    overlay.MeshPolicy
		wantDraws int
	}{
		{name: "first", policy: overlay.MeshPolicyFirst, wantDraws: 1},
		{name: "all", policy: overlay.MeshPolicyAll, wantDraws: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := &countingDevice{}
			d := newDemo(tt.policy)
			ov := overlay.NewOverlay(dev, newTestContext(t), d.build, overlay.WithMeshPolicy(tt.policy))
			d.stats = ov.Stats
			ov.Resize(800, 600)

			require.NoError(t, ov.Render(1))
			require.Len(t, dev.draws, 1)
			hidden := drawnIndices(dev.draws)

			d.toggleStats()
			dev.draws = nil
			require.NoError(t, ov.Render(1))
			assert.Len(t, dev.draws, tt.wantDraws)
			assert.Greater(t, drawnIndices(dev.draws), hidden)
		})
	}
}

func TestZoomScrollClampsAndResets(t *testing.T) {
	var applied []float32
	z := newZoom(2, func(s float32) { applied = append(applied, s) })
	assert.Equal(t, float32(2), z.scale())

	z.scroll(1)
	assert.InDelta(t, 2.2, z.scale(), 1e-5)

	z.scroll(100)
	assert.Equal(t, float32(2*maxZoom), z.scale())
	z.scroll(100)

	z.scroll(-100)
	assert.Equal(t, float32(2*minZoom), z.scale())

	z.reset()
	assert.Equal(t, float32(2), z.scale())
	assert.Len(t, applied, 4)
}

func TestZoomInvalidBase(t *testing.T) {
	z := newZoom(0, nil)
	assert.Equal(t, float32(1), z.scale())
	z.scroll(1)
}
