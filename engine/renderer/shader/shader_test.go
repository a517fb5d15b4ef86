package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-ui/engine/overlay"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *Annotation
		wantErr string
	}{
		{name: "plain line", line: "let x = 1.0;"},
		{name: "include", line: "//@oxy:include ui_vertex", want: &Annotation{Type: annotationTypeInclude, Args: []AnnotationArg{AnnotationArgUIVertex}, Line: 1}},
		{name: "unknown include", line: "//@oxy:include light", wantErr: "unknown struct type"},
		{name: "include arity", line: "//@oxy:include", wantErr: "exactly one argument"},
		{name: "group arity", line: "//@oxy:group 0 0 storage_uniform u_screen_size", wantErr: "exactly five arguments"},
		{name: "group bad number", line: "//@oxy:group a 0 storage_uniform x screen_uniforms", wantErr: "invalid group number"},
		{name: "group negative binding", line: "//@oxy:group 0 -1 storage_uniform x screen_uniforms", wantErr: "invalid binding number"},
		{name: "group address space", line: "//@oxy:group 0 0 storage_write x screen_uniforms", wantErr: "unknown address space"},
		{name: "group array type", line: "//@oxy:group 0 1 storage_read verts array<ui_vertex>"},
		{name: "provider unknown identity", line: "//@oxy:provider 1 0 material", wantErr: "unknown provider identity"},
		{name: "provider unknown role", line: "//@oxy:provider 1 0 atlas diffuse_texture", wantErr: "unknown binding role"},
		{name: "unknown type", line: "//@oxy:bind 0 0", wantErr: "unknown @oxy annotation type"},
		{name: "empty", line: "//@oxy:", wantErr: "empty @oxy annotation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnnotation(tt.line, 1)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseAnnotationProvider(t *testing.T) {
	a, err := parseAnnotation("  //@oxy:provider 1 1 atlas atlas_sampler", 7)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, AnnotationTypeProvider, a.Type)
	assert.Equal(t, []AnnotationArg{AnnotationArgAtlas, AnnotationArgAtlasSampler}, a.Args)
	assert.Equal(t, 7, a.Line)
	assert.Equal(t, 1, *a.Group)
	assert.Equal(t, 1, *a.Binding)
}

func TestPreProcessorExpandsOverlayVertexShader(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process(overlay.VertexShaderSource)
	require.NoError(t, err)

	assert.NotContains(t, out, "@oxy:")
	assert.Contains(t, out, "struct UIVertexInput")
	assert.Contains(t, out, "struct ScreenUniforms")
	assert.Contains(t, out, "@group(0) @binding(0) var<uniform> u_screen_size: ScreenUniforms;")

	decls := pp.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, AnnotationTypeBindingGroup, decls[0].Type)
	assert.Equal(t, AnnotationArg("u_screen_size"), decls[0].Args[1])
}

func TestPreProcessorIncludesOnce(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("//@oxy:include screen_uniforms\n//@oxy:include screen_uniforms\n")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "struct ScreenUniforms"))
}

func TestPreProcessorResetsDeclarations(t *testing.T) {
	pp := NewPreProcessor()
	_, err := pp.Process(overlay.FragmentShaderSource)
	require.NoError(t, err)
	assert.Len(t, pp.Declarations(), 2)

	_, err = pp.Process("fn f() {}")
	require.NoError(t, err)
	assert.Empty(t, pp.Declarations())
}

func TestPreProcessorReportsLine(t *testing.T) {
	_, err := NewPreProcessor().Process("fn f() {}\n//@oxy:include nope\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestOverlayVertexShaderReflection(t *testing.T) {
	s, err := NewShaderFromSource("ui.vert", ShaderTypeVertex, overlay.VertexShaderSource)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	assert.Equal(t, "ui.vert", s.Module().Label)

	// the output struct carries @builtin(position) and is not an input layout
	require.Len(t, s.VertexLayouts(), 1)
	layout := s.VertexLayout(0)
	require.Len(t, layout, 1)
	assert.Equal(t, uint64(32), layout[0].ArrayStride)
	require.Len(t, layout[0].Attributes, 3)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, layout[0].Attributes[0].Format)
	assert.Equal(t, uint64(8), layout[0].Attributes[1].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x4, layout[0].Attributes[2].Format)
	assert.Equal(t, uint32(2), layout[0].Attributes[2].ShaderLocation)

	desc := s.BindGroupLayoutDescriptor(0)
	require.Len(t, desc.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, desc.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(16), desc.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex, desc.Entries[0].Visibility)

	assert.Equal(t, "u_screen_size", s.BindGroupVarName(0, 0))
	binding, ok := s.BindGroupFromVarName(0, "u_screen_size")
	assert.True(t, ok)
	assert.Equal(t, 0, binding)
	_, ok = s.BindGroupFromVarName(1, "u_screen_size")
	assert.False(t, ok)
}

func TestOverlayFragmentShaderReflection(t *testing.T) {
	s, err := NewShaderFromSource("ui.frag", ShaderTypeFragment, overlay.FragmentShaderSource)
	require.NoError(t, err)

	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Empty(t, s.VertexLayouts())

	desc := s.BindGroupLayoutDescriptor(1)
	require.Len(t, desc.Entries, 2)
	assert.Equal(t, uint32(0), desc.Entries[0].Binding)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, desc.Entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, desc.Entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, desc.Entries[1].Sampler.Type)
	assert.Equal(t, wgpu.ShaderStageFragment, desc.Entries[1].Visibility)

	tex, ok := s.Provider(AnnotationArgAtlas, AnnotationArgAtlasTexture)
	require.True(t, ok)
	assert.Equal(t, 1, *tex.Group)
	assert.Equal(t, 0, *tex.Binding)

	samp, ok := s.Provider(AnnotationArgAtlas, AnnotationArgAtlasSampler)
	require.True(t, ok)
	assert.Equal(t, 1, *samp.Binding)

	first, ok := s.Provider(AnnotationArgAtlas, "")
	require.True(t, ok)
	assert.Equal(t, 0, *first.Binding)

	_, ok = s.Provider(AnnotationArgCamera, "")
	assert.False(t, ok)
}

func TestNewShaderFromSourceErrors(t *testing.T) {
	_, err := NewShaderFromSource("empty", ShaderTypeVertex, "")
	assert.Error(t, err)

	_, err = NewShaderFromSource("no-entry", ShaderTypeFragment, overlay.VertexShaderSource)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no @fragment entry point")

	_, err = NewShaderFromSource("bad", ShaderTypeVertex, "//@oxy:include lights\n@vertex fn vs_main() {}")
	assert.Error(t, err)
}

func TestNewShaderPanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() { NewShader("missing", ShaderTypeVertex, "does/not/exist.wgsl") })
	assert.Panics(t, func() { NewShader("empty", ShaderTypeVertex, "") })
}

func TestComputeStructSizes(t *testing.T) {
	structs := parseStructBlocks(stripComments(`
struct CameraUniform {
    view_proj: mat4x4<f32>,
    camera_position: vec3<f32>,
    _pad: f32,
};
struct Wrapper {
    cam: CameraUniform,
    scale: f32, // trailing
};
`))
	sizes := computeStructSizes(structs)
	assert.Equal(t, wgslTypeLayout{size: 80, align: 16}, sizes["CameraUniform"])
	assert.Equal(t, wgslTypeLayout{size: 96, align: 16}, sizes["Wrapper"])
}

func TestResolveTypeLayoutArrays(t *testing.T) {
	fixed, ok := resolveTypeLayout("array<vec3<f32>, 4>", nil)
	require.True(t, ok)
	assert.Equal(t, uint64(64), fixed.size)

	runtime, ok := resolveTypeLayout("array<f32>", nil)
	require.True(t, ok)
	assert.Equal(t, uint64(4), runtime.size)

	_, ok = resolveTypeLayout("Unknown", nil)
	assert.False(t, ok)
}

func TestSplitAtTopLevelCommas(t *testing.T) {
	parts := splitAtTopLevelCommas("a: array<f32, 4>, b: vec2<f32>")
	assert.Equal(t, []string{"a: array<f32, 4>", " b: vec2<f32>"}, parts)
}

func TestStripCommentsNested(t *testing.T) {
	out := stripComments("a /* x /* y */ z */ b // tail\nc")
	assert.Equal(t, "a  b \nc", out)
}
