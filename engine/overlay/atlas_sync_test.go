package overlay

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-ui/engine/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAtlas(w, h int, version uint64) *ui.TextureAtlas {
	a := &ui.TextureAtlas{Width: w, Height: h, Pixels: make([]ui.Color32, w*h), Version: version}
	for i := range a.Pixels {
		a.Pixels[i] = ui.Color32{uint8(i), uint8(i + 1), uint8(i + 2), 255}
	}
	return a
}

func TestFirstSyncUploads(t *testing.T) {
	dev := &fakeDevice{}
	s := NewAtlasSync(dev, "atlas")
	atlas := testAtlas(4, 2, 0)

	_, ok := s.CachedVersion()
	assert.False(t, ok)

	_, err := s.EnsureTexture(4, 2)
	require.NoError(t, err)
	require.NoError(t, s.Sync(atlas))

	assert.Equal(t, 1, dev.uploads)
	v, ok := s.CachedVersion()
	assert.True(t, ok)
	assert.Equal(t, uint64(0), v)
}

func TestSyncIsIdempotentWithoutVersionChange(t *testing.T) {
	dev := &fakeDevice{}
	s := NewAtlasSync(dev, "atlas")
	atlas := testAtlas(4, 4, 1)

	for range 2 {
		_, err := s.EnsureTexture(4, 4)
		require.NoError(t, err)
		require.NoError(t, s.Sync(atlas))
	}

	assert.Equal(t, 1, dev.uploads)
	assert.Equal(t, 1, s.Uploads())
	assert.Len(t, dev.textures, 1)
}

func TestSyncUploadsOncePerVersionChange(t *testing.T) {
	dev := &fakeDevice{}
	s := NewAtlasSync(dev, "atlas")
	atlas := testAtlas(4, 4, 1)
	_, err := s.EnsureTexture(4, 4)
	require.NoError(t, err)
	require.NoError(t, s.Sync(atlas))

	atlas.Version = 7
	atlas.Pixels[0] = ui.ColorWhite
	require.NoError(t, s.Sync(atlas))
	require.NoError(t, s.Sync(atlas))

	assert.Equal(t, 2, dev.uploads)
	v, _ := s.CachedVersion()
	assert.Equal(t, uint64(7), v)
	assert.Equal(t, []byte{255, 255, 255, 255}, dev.lastUpload[:4])
}

func TestSyncFlattensRowMajorRGBA(t *testing.T) {
	dev := &fakeDevice{}
	s := NewAtlasSync(dev, "atlas")
	atlas := testAtlas(3, 2, 1)
	_, err := s.EnsureTexture(3, 2)
	require.NoError(t, err)

	require.NoError(t, s.Sync(atlas))

	require.Len(t, dev.lastUpload, 3*2*4)
	for i, p := range atlas.Pixels {
		assert.Equal(t, p[:], dev.lastUpload[i*4:i*4+4])
	}
}

func TestResizeReallocatesAndForcesUpload(t *testing.T) {
	dev := &fakeDevice{}
	s := NewAtlasSync(dev, "atlas")
	small := testAtlas(4, 4, 3)
	_, err := s.EnsureTexture(4, 4)
	require.NoError(t, err)
	require.NoError(t, s.Sync(small))

	// same version, larger atlas
	large := testAtlas(4, 8, 3)
	tex, err := s.EnsureTexture(4, 8)
	require.NoError(t, err)
	require.NoError(t, s.Sync(large))

	assert.Equal(t, uint32(8), tex.Height())
	assert.Len(t, dev.textures, 2)
	assert.True(t, dev.textures[0].released)
	assert.Equal(t, 2, dev.uploads)
}

func TestEnsureTextureFailures(t *testing.T) {
	var rerr *ResourceError

	s := NewAtlasSync(&fakeDevice{}, "atlas")
	_, err := s.EnsureTexture(0, 4)
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindTextureAllocation, rerr.Kind)

	backend := errors.New("out of memory")
	s = NewAtlasSync(&fakeDevice{createTextureErr: backend}, "atlas")
	_, err = s.EnsureTexture(4, 4)
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindTextureAllocation, rerr.Kind)
	assert.ErrorIs(t, err, backend)
	assert.Nil(t, s.Texture())
}

func TestSyncFailures(t *testing.T) {
	var rerr *ResourceError

	t.Run("no texture", func(t *testing.T) {
		s := NewAtlasSync(&fakeDevice{}, "atlas")
		err := s.Sync(testAtlas(2, 2, 1))
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, KindTextureUpload, rerr.Kind)
		assert.ErrorIs(t, err, ErrNoTexture)
	})

	t.Run("size mismatch", func(t *testing.T) {
		dev := &fakeDevice{}
		s := NewAtlasSync(dev, "atlas")
		_, err := s.EnsureTexture(2, 2)
		require.NoError(t, err)

		err = s.Sync(testAtlas(4, 4, 1))
		assert.ErrorIs(t, err, ErrSizeMismatch)
		assert.Zero(t, dev.uploads)
	})

	t.Run("backend rejects upload", func(t *testing.T) {
		backend := errors.New("device lost")
		dev := &fakeDevice{writeTextureErr: backend}
		s := NewAtlasSync(dev, "atlas")
		_, err := s.EnsureTexture(2, 2)
		require.NoError(t, err)

		err = s.Sync(testAtlas(2, 2, 5))
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, KindTextureUpload, rerr.Kind)
		assert.ErrorIs(t, err, backend)
		_, ok := s.CachedVersion()
		assert.False(t, ok)

		// the next frame retries once the backend recovers
		dev.writeTextureErr = nil
		require.NoError(t, s.Sync(testAtlas(2, 2, 5)))
		assert.Equal(t, 1, dev.uploads)
	})
}

func TestReleaseForgetsTexture(t *testing.T) {
	dev := &fakeDevice{}
	s := NewAtlasSync(dev, "atlas")
	_, err := s.EnsureTexture(2, 2)
	require.NoError(t, err)
	require.NoError(t, s.Sync(testAtlas(2, 2, 1)))

	s.Release()

	assert.Nil(t, s.Texture())
	assert.True(t, dev.textures[0].released)
	_, ok := s.CachedVersion()
	assert.False(t, ok)
}
