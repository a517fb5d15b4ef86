package shader

import (
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// structDecl is one `struct Name { ... }` block of a WGSL source.
type structDecl struct {
	name   string
	fields []structField
}

// structField is a struct member. location is -1 without a @location attribute.
type structField struct {
	typeName  string
	location  int
	isBuiltin bool
}

// wgslTypeLayout is the size and alignment of a host-shareable WGSL type.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

type vertexFormat struct {
	format wgpu.VertexFormat
	size   uint64
}

type textureKind struct {
	viewDimension wgpu.TextureViewDimension
	multisampled  bool
}

// hostShareableLayouts holds size and alignment of the WGSL scalar, vector and matrix types
// that can appear in a uniform or storage buffer of this engine's shaders.
// See https://www.w3.org/TR/WGSL/#alignment-and-size.
var hostShareableLayouts = map[string]wgslTypeLayout{
	"f32": {4, 4},
	"i32": {4, 4},
	"u32": {4, 4},

	"vec2<f32>": {8, 8}, "vec2f": {8, 8},
	"vec3<f32>": {12, 16}, "vec3f": {12, 16},
	"vec4<f32>": {16, 16}, "vec4f": {16, 16},
	"vec2<u32>": {8, 8}, "vec2u": {8, 8},
	"vec4<u32>": {16, 16}, "vec4u": {16, 16},

	"mat2x2<f32>": {16, 8},
	"mat3x3<f32>": {48, 16},
	"mat4x4<f32>": {64, 16}, "mat4x4f": {64, 16},
}

// alignUp rounds v up to a multiple of the power-of-two alignment a.
func alignUp(a, v uint64) uint64 {
	if a == 0 {
		return v
	}
	return (v + a - 1) &^ (a - 1)
}

// arrayParts splits "array<T, N>" into its element type and count string.
// The count is empty for a runtime-sized array. ok is false when typeName is not an array.
func arrayParts(typeName string) (elem, count string, ok bool) {
	inner, found := strings.CutPrefix(typeName, "array<")
	if !found || !strings.HasSuffix(inner, ">") {
		return "", "", false
	}
	inner = inner[:len(inner)-1]
	if i := strings.LastIndex(inner, ","); i >= 0 && strings.Count(inner[:i], "<") == strings.Count(inner[:i], ">") {
		return strings.TrimSpace(inner[:i]), strings.TrimSpace(inner[i+1:]), true
	}
	return strings.TrimSpace(inner), "", true
}

// resolveTypeLayout returns the size and alignment of a WGSL type, looking through the
// primitive table, the already resolved structs and array types. A runtime-sized array
// reports the stride of one element, which is the smallest binding that can hold it.
//
// Parameters:
//   - typeName: the WGSL type, e.g. "f32", "CameraUniform" or "array<vec4<f32>, 4>"
//   - knownTypes: struct layouts resolved so far, may be nil
//
// Returns:
//   - wgslTypeLayout: the layout
//   - bool: false when any part of the type is unknown
func resolveTypeLayout(typeName string, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if l, ok := hostShareableLayouts[typeName]; ok {
		return l, true
	}
	if l, ok := knownTypes[typeName]; ok {
		return l, true
	}

	elem, count, ok := arrayParts(typeName)
	if !ok {
		return wgslTypeLayout{}, false
	}
	el, ok := resolveTypeLayout(elem, knownTypes)
	if !ok {
		return wgslTypeLayout{}, false
	}
	stride := alignUp(el.align, el.size)
	if count == "" {
		return wgslTypeLayout{stride, el.align}, true
	}
	n, err := strconv.ParseUint(count, 10, 64)
	if err != nil {
		return wgslTypeLayout{}, false
	}
	return wgslTypeLayout{n * stride, el.align}, true
}

// computeStructLayout lays out the non-builtin fields of ps in declaration order.
// A trailing runtime-sized array ends the fixed part of the struct; a struct made only of
// such an array reports one element.
func computeStructLayout(ps structDecl, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	var offset uint64
	align := uint64(1)

	for _, f := range ps.fields {
		if f.isBuiltin {
			continue
		}
		if elem, count, isArray := arrayParts(f.typeName); isArray && count == "" {
			el, ok := resolveTypeLayout(elem, knownTypes)
			if !ok {
				return wgslTypeLayout{}, false
			}
			align = max(align, el.align)
			offset = alignUp(align, offset)
			if offset == 0 {
				return wgslTypeLayout{alignUp(el.align, el.size), el.align}, true
			}
			return wgslTypeLayout{offset, align}, true
		}

		fl, ok := resolveTypeLayout(f.typeName, knownTypes)
		if !ok {
			return wgslTypeLayout{}, false
		}
		offset = alignUp(fl.align, offset) + fl.size
		align = max(align, fl.align)
	}

	return wgslTypeLayout{alignUp(align, offset), align}, true
}

// computeStructSizes resolves every struct layout, repeating passes until structs nested
// inside other structs are all known or no pass makes progress.
//
// Parameters:
//   - structs: the parsed struct blocks
//
// Returns:
//   - map[string]wgslTypeLayout: layouts keyed by struct name; unresolvable structs are absent
func computeStructSizes(structs []structDecl) map[string]wgslTypeLayout {
	resolved := make(map[string]wgslTypeLayout, len(structs))
	pending := append([]structDecl(nil), structs...)

	for len(pending) > 0 {
		left := pending[:0]
		for _, ps := range pending {
			if l, ok := computeStructLayout(ps, resolved); ok {
				resolved[ps.name] = l
				continue
			}
			left = append(left, ps)
		}
		if len(left) == len(pending) {
			break
		}
		pending = left
	}

	return resolved
}

// classifyResource builds the bind group layout entry of one @group/@binding declaration.
// Buffers are told apart by address space, handles by type name.
//
// Parameters:
//   - binding: the @binding index
//   - visibility: the declaring shader stage
//   - addressSpace: the var<...> qualifier, empty for textures and samplers
//   - typeName: the declared WGSL type
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the populated entry
func classifyResource(binding uint32, visibility wgpu.ShaderStage, addressSpace, typeName string) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: visibility}

	switch {
	case addressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case strings.HasPrefix(addressSpace, "storage"):
		entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		if strings.Contains(addressSpace, "read_write") {
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		}
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case strings.HasPrefix(typeName, "texture_"):
		base, sample := splitTypeParams(typeName)
		if info, ok := wgslSampledTextureMap[base]; ok {
			entry.Texture.ViewDimension = info.viewDimension
			entry.Texture.Multisampled = info.multisampled
		}
		entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
		if st, ok := wgslSampleTypeMap[sample]; ok {
			entry.Texture.SampleType = st
		}
	}

	return entry
}

// splitTypeParams splits "texture_2d<f32>" into ("texture_2d", "f32").
func splitTypeParams(typeName string) (base, params string) {
	base, params, ok := strings.Cut(typeName, "<")
	if !ok {
		return typeName, ""
	}
	return base, strings.TrimSpace(strings.TrimSuffix(params, ">"))
}

// stripComments removes // and nested /* */ comments from WGSL source in one pass.
// Newlines ending line comments are kept so struct bodies still split cleanly.
//
// Parameters:
//   - source: raw WGSL source
//
// Returns:
//   - string: the source without comments
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))

	depth := 0
	for i := 0; i < len(source); i++ {
		c := source[i]
		next := byte(0)
		if i+1 < len(source) {
			next = source[i+1]
		}

		switch {
		case c == '/' && next == '*':
			depth++
			i++
		case depth > 0 && c == '*' && next == '/':
			depth--
			i++
		case depth > 0:
		case c == '/' && next == '/':
			for i < len(source) && source[i] != '\n' {
				i++
			}
			if i < len(source) {
				sb.WriteByte('\n')
			}
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

// isVertexInputStruct reports whether every field of ps is a @location attribute.
// Vertex outputs carry @builtin(position) and are excluded.
func isVertexInputStruct(ps structDecl) bool {
	if len(ps.fields) == 0 {
		return false
	}
	for _, f := range ps.fields {
		if f.isBuiltin || f.location < 0 {
			return false
		}
	}
	return true
}

// buildVertexBufferLayout packs the fields of a vertex input struct back to back.
//
// Parameters:
//   - ps: a struct accepted by isVertexInputStruct
//
// Returns:
//   - wgpu.VertexBufferLayout: per-vertex layout with the packed stride
//   - bool: false when a field type has no vertex format
func buildVertexBufferLayout(ps structDecl) (wgpu.VertexBufferLayout, bool) {
	layout := wgpu.VertexBufferLayout{
		StepMode:   wgpu.VertexStepModeVertex,
		Attributes: make([]wgpu.VertexAttribute, 0, len(ps.fields)),
	}

	for _, f := range ps.fields {
		info, ok := wgslVertexFormatMap[f.typeName]
		if !ok {
			return wgpu.VertexBufferLayout{}, false
		}
		layout.Attributes = append(layout.Attributes, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         layout.ArrayStride,
			ShaderLocation: uint32(f.location),
		})
		layout.ArrayStride += info.size
	}

	return layout, true
}

// splitAtTopLevelCommas splits a struct body on commas outside angle brackets, so
// "a: array<f32, 4>, b: f32" yields two fields.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, c := range s {
		switch {
		case c == '<':
			depth++
		case c == '>' && depth > 0:
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
