package overlay

import (
	"fmt"
)

type fakeTexture struct {
	width, height uint32
	released      bool
}

func (t *fakeTexture) Width() uint32  { return t.width }
func (t *fakeTexture) Height() uint32 { return t.height }
func (t *fakeTexture) Release()       { t.released = true }

type fakeBuffer struct {
	usage    BufferUsage
	size     uint64
	data     []byte
	released bool
}

func (b *fakeBuffer) Size() uint64 { return b.size }
func (b *fakeBuffer) Release()     { b.released = true }

type fakePipeline struct {
	desc     PipelineDescriptor
	released bool
}

func (p *fakePipeline) Release() { p.released = true }

// fakeDevice records every call and can be told to fail any of them.
type fakeDevice struct {
	textures   []*fakeTexture
	buffers    []*fakeBuffer
	pipelines  []*fakePipeline
	uploads    int
	lastUpload []byte
	draws      []DrawCommand

	createTextureErr  error
	writeTextureErr   error
	createBufferErr   error
	writeBufferErr    error
	createPipelineErr error
	drawErr           error
}

var _ Device = &fakeDevice{}

func (d *fakeDevice) CreateTexture(desc TextureDescriptor) (Texture, error) {
	if d.createTextureErr != nil {
		return nil, d.createTextureErr
	}
	t := &fakeTexture{width: desc.Width, height: desc.Height}
	d.textures = append(d.textures, t)
	return t, nil
}

func (d *fakeDevice) WriteTexture(tex Texture, data []byte) error {
	if d.writeTextureErr != nil {
		return d.writeTextureErr
	}
	if want := int(tex.Width() * tex.Height() * 4); len(data) != want {
		return fmt.Errorf("upload of %d bytes, texture needs %d", len(data), want)
	}
	d.uploads++
	d.lastUpload = append(d.lastUpload[:0], data...)
	return nil
}

func (d *fakeDevice) CreateBuffer(usage BufferUsage, label string, size uint64) (Buffer, error) {
	if d.createBufferErr != nil {
		return nil, d.createBufferErr
	}
	b := &fakeBuffer{usage: usage, size: size}
	d.buffers = append(d.buffers, b)
	return b, nil
}

func (d *fakeDevice) WriteBuffer(buf Buffer, data []byte) error {
	if d.writeBufferErr != nil {
		return d.writeBufferErr
	}
	b := buf.(*fakeBuffer)
	if uint64(len(data)) > b.size {
		return fmt.Errorf("write of %d bytes into %d byte buffer", len(data), b.size)
	}
	b.data = append(b.data[:0], data...)
	return nil
}

func (d *fakeDevice) CreatePipeline(desc PipelineDescriptor) (Pipeline, error) {
	if d.createPipelineErr != nil {
		return nil, d.createPipelineErr
	}
	p := &fakePipeline{desc: desc}
	d.pipelines = append(d.pipelines, p)
	return p, nil
}

func (d *fakeDevice) Draw(cmd DrawCommand) error {
	if d.drawErr != nil {
		return d.drawErr
	}
	d.draws = append(d.draws, cmd)
	return nil
}

func (d *fakeDevice) buffersOf(usage BufferUsage) []*fakeBuffer {
	var out []*fakeBuffer
	for _, b := range d.buffers {
		if b.usage == usage {
			out = append(out, b)
		}
	}
	return out
}
