package overlay

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-ui/engine/ui"
)

// AtlasSync keeps one GPU texture in step with the UI library's font atlas. It owns the texture for
// its whole lifetime and uploads the full atlas only when the atlas version differs from the last
// version it uploaded.
type AtlasSync struct {
	device Device
	label  string

	texture       Texture
	cachedVersion uint64
	hasVersion    bool

	staging []byte
	uploads int
}

// NewAtlasSync creates an AtlasSync with no texture. EnsureTexture must be called before Sync.
//
// Parameters:
//   - device: the device used to allocate and upload the texture
//   - label: the debug label of the texture
//
// Returns:
//   - *AtlasSync: the synchronizer
func NewAtlasSync(device Device, label string) *AtlasSync {
	return &AtlasSync{
		device: device,
		label:  label,
	}
}

// EnsureTexture returns the current texture when it already has the requested size. Otherwise the
// old texture is released, a new one is allocated and the cached version is forgotten so the next
// Sync uploads.
//
// Parameters:
//   - width: the atlas width in texels
//   - height: the atlas height in texels
//
// Returns:
//   - Texture: the texture sized to the atlas
//   - error: a *ResourceError of kind KindTextureAllocation
func (a *AtlasSync) EnsureTexture(width, height uint32) (Texture, error) {
	if a.texture != nil && a.texture.Width() == width && a.texture.Height() == height {
		return a.texture, nil
	}
	if width == 0 || height == 0 {
		return nil, &ResourceError{
			Kind: KindTextureAllocation,
			Op:   "EnsureTexture",
			Err:  fmt.Errorf("invalid size %dx%d", width, height),
		}
	}

	a.Release()
	tex, err := a.device.CreateTexture(TextureDescriptor{Label: a.label, Width: width, Height: height})
	if err != nil {
		return nil, &ResourceError{Kind: KindTextureAllocation, Op: "EnsureTexture", Err: err}
	}
	a.texture = tex
	return tex, nil
}

// Sync uploads the atlas when its version differs from the cached one. A failed upload leaves the
// cached version unchanged so the next frame retries.
//
// Parameters:
//   - atlas: the UI library's atlas, read only
//
// Returns:
//   - error: a *ResourceError of kind KindTextureUpload
func (a *AtlasSync) Sync(atlas *ui.TextureAtlas) error {
	if atlas == nil {
		return &ResourceError{Kind: KindTextureUpload, Op: "Sync", Err: fmt.Errorf("atlas is nil")}
	}
	if a.hasVersion && a.cachedVersion == atlas.Version {
		return nil
	}
	if a.texture == nil {
		return &ResourceError{Kind: KindTextureUpload, Op: "Sync", Err: ErrNoTexture}
	}
	if uint32(atlas.Width) != a.texture.Width() || uint32(atlas.Height) != a.texture.Height() ||
		len(atlas.Pixels) != atlas.Width*atlas.Height {
		return &ResourceError{
			Kind: KindTextureUpload,
			Op:   "Sync",
			Err: fmt.Errorf("%w: atlas %dx%d with %d pixels, texture %dx%d", ErrSizeMismatch,
				atlas.Width, atlas.Height, len(atlas.Pixels), a.texture.Width(), a.texture.Height()),
		}
	}

	a.staging = a.staging[:0]
	for _, p := range atlas.Pixels {
		a.staging = append(a.staging, p[0], p[1], p[2], p[3])
	}
	if err := a.device.WriteTexture(a.texture, a.staging); err != nil {
		return &ResourceError{Kind: KindTextureUpload, Op: "Sync", Err: err}
	}

	a.cachedVersion = atlas.Version
	a.hasVersion = true
	a.uploads++
	return nil
}

// Texture returns the current texture, or nil before the first EnsureTexture.
func (a *AtlasSync) Texture() Texture {
	return a.texture
}

// CachedVersion returns the atlas version last uploaded and whether any upload happened since the
// texture was allocated.
func (a *AtlasSync) CachedVersion() (uint64, bool) {
	return a.cachedVersion, a.hasVersion
}

// Uploads returns the number of successful uploads.
func (a *AtlasSync) Uploads() int {
	return a.uploads
}

// Release frees the texture and forgets the cached version.
func (a *AtlasSync) Release() {
	if a.texture != nil {
		a.texture.Release()
		a.texture = nil
	}
	a.cachedVersion = 0
	a.hasVersion = false
}
