package overlay

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/Carmen-Shannon/oxy-ui/engine/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloPanel(f *ui.Frame) {
	f.SidePanel("side", 200, func(p *ui.Panel) {
		p.Heading("hello")
		p.Separator()
		p.Label("t: 0.00")
	})
}

func TestRenderUploadsAtlasOnceAcrossFrames(t *testing.T) {
	dev := &fakeDevice{}
	o := NewOverlay(dev, newTestUIContext(t), helloPanel)
	o.Resize(640, 480)

	require.NoError(t, o.Render(0))
	require.NoError(t, o.Render(0.016))

	assert.Equal(t, 1, dev.uploads)
	assert.Len(t, dev.draws, 2)
	assert.Equal(t, Stats{Frames: 2, Uploads: 1, Draws: 2}, o.Stats())
}

func TestRenderSkipsWithoutFramebuffer(t *testing.T) {
	dev := &fakeDevice{}
	o := NewOverlay(dev, newTestUIContext(t), helloPanel)

	require.NoError(t, o.Render(0))

	assert.Empty(t, dev.draws)
	assert.Zero(t, o.Stats().Frames)
}

func TestRenderScaleChangeReuploads(t *testing.T) {
	dev := &fakeDevice{}
	o := NewOverlay(dev, newTestUIContext(t), helloPanel)
	o.Resize(640, 480)
	require.NoError(t, o.Render(0))

	o.SetScale(2)
	o.Resize(1280, 960)
	require.NoError(t, o.Render(1))

	assert.Equal(t, 2, dev.uploads)
	assert.Equal(t, float32(2), o.Scale())
	// side panel is 200 points wide, 400 physical pixels
	assert.Equal(t, uint32(400), dev.draws[1].Scissor.Width)
}

func TestRenderFailuresCarryPhase(t *testing.T) {
	backend := errors.New("backend")
	tests := []struct {
		name  string
		dev   *fakeDevice
		ctx   func(t *testing.T) UIContext
		phase Phase
	}{
		{
			name:  "tessellation",
			dev:   &fakeDevice{},
			ctx:   func(*testing.T) UIContext { return &stubContext{endErr: backend} },
			phase: PhaseExtract,
		},
		{
			name:  "texture allocation",
			dev:   &fakeDevice{createTextureErr: backend},
			ctx:   func(t *testing.T) UIContext { return newTestUIContext(t) },
			phase: PhaseSync,
		},
		{
			name:  "texture upload",
			dev:   &fakeDevice{writeTextureErr: backend},
			ctx:   func(t *testing.T) UIContext { return newTestUIContext(t) },
			phase: PhaseSync,
		},
		{
			name:  "missing atlas",
			dev:   &fakeDevice{},
			ctx:   func(*testing.T) UIContext { return &stubContext{} },
			phase: PhaseSync,
		},
		{
			name:  "draw",
			dev:   &fakeDevice{drawErr: backend},
			ctx:   func(t *testing.T) UIContext { return newTestUIContext(t) },
			phase: PhaseDraw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			o := NewOverlay(tt.dev, tt.ctx(t), helloPanel, WithLogger(log.New(&logs, "", 0)))
			o.Resize(640, 480)

			err := o.Render(0)

			var ferr *FrameError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, tt.phase, ferr.Phase)
			assert.Empty(t, tt.dev.draws)
			assert.Equal(t, 1, o.Stats().Failures)
			assert.Contains(t, logs.String(), "[Overlay]")
			assert.Contains(t, logs.String(), "phase="+tt.phase.String())
		})
	}
}

func TestRenderRecoversAfterFailedUpload(t *testing.T) {
	dev := &fakeDevice{writeTextureErr: errors.New("transient")}
	o := NewOverlay(dev, newTestUIContext(t), helloPanel, WithLogger(log.New(&bytes.Buffer{}, "", 0)))
	o.Resize(640, 480)

	require.Error(t, o.Render(0))
	dev.writeTextureErr = nil
	require.NoError(t, o.Render(1))

	assert.Equal(t, 1, dev.uploads)
	assert.Len(t, dev.draws, 1)
}

func TestBuilderCanReadStats(t *testing.T) {
	dev := &fakeDevice{}
	var o *Overlay
	var seen []int
	o = NewOverlay(dev, newTestUIContext(t), func(f *ui.Frame) {
		seen = append(seen, o.Stats().Frames)
		helloPanel(f)
	})
	o.Resize(640, 480)

	require.NoError(t, o.Render(0))
	require.NoError(t, o.Render(1))

	assert.Equal(t, []int{1, 2}, seen)
}

func TestAllMeshPolicyDrawsEveryLayer(t *testing.T) {
	dev := &fakeDevice{}
	o := NewOverlay(dev, newTestUIContext(t), func(f *ui.Frame) {
		helloPanel(f)
		f.Window("stats", ui.Pos2{X: 300, Y: 40}, 160, func(p *ui.Panel) { p.Label("frames") })
	}, WithMeshPolicy(MeshPolicyAll))
	o.Resize(640, 480)

	require.NoError(t, o.Render(0))

	require.Len(t, dev.draws, 2)
	assert.Equal(t, uint32(0), dev.draws[0].FirstIndex)
	assert.Equal(t, dev.draws[0].IndexCount, dev.draws[1].FirstIndex)
}

func TestReleaseFreesResources(t *testing.T) {
	dev := &fakeDevice{}
	o := NewOverlay(dev, newTestUIContext(t), helloPanel)
	o.Resize(640, 480)
	require.NoError(t, o.Render(0))

	o.Release()

	assert.True(t, dev.textures[0].released)
	assert.True(t, dev.pipelines[0].released)
	for _, b := range dev.buffers {
		assert.True(t, b.released)
	}
}

func TestStatsString(t *testing.T) {
	s := Stats{Frames: 3, Uploads: 1, Draws: 2, Failures: 4}
	assert.Equal(t, "frames=3 uploads=1 draws=2 failures=4", s.String())
}
