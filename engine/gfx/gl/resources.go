package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/canopy/engine/core"
)

type texture struct {
	id   uint32
	w, h int
}

func (t *texture) Size() (int, int) { return t.w, t.h }

func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return gl.Ptr(b)
}

func glFilter(s string) int32 {
	if s == "nearest" {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func glWrap(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", desc.Width, desc.Height)
	}
	if desc.Pixels != nil && len(desc.Pixels) != desc.Width*desc.Height*4 {
		return nil, fmt.Errorf("texture data is %d bytes, want %d", len(desc.Pixels), desc.Width*desc.Height*4)
	}
	internal := int32(gl.RGBA8)
	if desc.Format == core.TextureSRGBA8 {
		internal = gl.SRGB8_ALPHA8
	}
	t := &texture{w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(desc.WrapV))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, bytesPtr(desc.Pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.texCount++
	return t, nil
}

func (r *RendererGL) UpdateTexture(t core.Texture, region core.TextureRegion, pixels []byte) error {
	tex, ok := t.(*texture)
	if !ok || tex.id == 0 {
		return fmt.Errorf("update of unknown or deleted texture")
	}
	if region.X < 0 || region.Y < 0 || region.X+region.W > tex.w || region.Y+region.H > tex.h {
		return fmt.Errorf("region %+v outside %dx%d texture", region, tex.w, tex.h)
	}
	if len(pixels) != region.W*region.H*4 {
		return fmt.Errorf("region data is %d bytes, want %d", len(pixels), region.W*region.H*4)
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(region.X), int32(region.Y), int32(region.W), int32(region.H),
		gl.RGBA, gl.UNSIGNED_BYTE, bytesPtr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (r *RendererGL) DeleteTexture(t core.Texture) {
	tex, ok := t.(*texture)
	if !ok || tex.id == 0 {
		return
	}
	gl.DeleteTextures(1, &tex.id)
	tex.id = 0
	r.texCount--
}

type pipeline struct {
	program   uint32
	blend     bool
	depth     bool
	locations map[string]int32
}

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, err
	}
	return &pipeline{program: prog, blend: desc.Blend, depth: desc.DepthTest, locations: map[string]int32{}}, nil
}

func (p *pipeline) bind() {
	gl.UseProgram(p.program)
	if p.blend {
		gl.Enable(gl.BLEND)
		// premultiplied alpha
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFuncSeparate(gl.ONE, gl.ONE_MINUS_SRC_ALPHA, gl.ONE_MINUS_DST_ALPHA, gl.ONE)
	} else {
		gl.Disable(gl.BLEND)
	}
	if p.depth {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (p *pipeline) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func (p *pipeline) setUniform(name string, v any) {
	loc := p.location(name)
	if loc < 0 {
		return
	}
	switch val := v.(type) {
	case int32:
		gl.Uniform1i(loc, val)
	case int:
		gl.Uniform1i(loc, int32(val))
	case float32:
		gl.Uniform1f(loc, val)
	case [2]float32:
		gl.Uniform2f(loc, val[0], val[1])
	case [4]float32:
		gl.Uniform4f(loc, val[0], val[1], val[2], val[3])
	case [16]float32:
		gl.UniformMatrix4fv(loc, 1, false, &val[0])
	}
}

type mesh struct {
	vao, vbo, ebo uint32
	vcap, icap    int // bytes
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if desc.Layout.Stride <= 0 {
		return nil, fmt.Errorf("mesh layout has no stride")
	}
	m := &mesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)

	for _, a := range desc.Layout.Attributes {
		gl.EnableVertexAttribArray(uint32(a.Location))
		gl.VertexAttribPointerWithOffset(uint32(a.Location), int32(a.Size), gl.FLOAT, false,
			int32(desc.Layout.Stride), uintptr(a.Offset))
	}
	m.upload(desc.Vertices, desc.Indices)
	gl.BindVertexArray(0)
	return m, nil
}

// upload grows the buffers geometrically so per-frame updates rarely
// reallocate. The VAO must be bound.
func (m *mesh) upload(vertices []float32, indices []uint32) {
	vbytes := len(vertices) * 4
	ibytes := len(indices) * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if vbytes > m.vcap {
		m.vcap = grow(m.vcap, vbytes)
		gl.BufferData(gl.ARRAY_BUFFER, m.vcap, nil, gl.DYNAMIC_DRAW)
	}
	if vbytes > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, vbytes, gl.Ptr(vertices))
	}
	if ibytes > m.icap {
		m.icap = grow(m.icap, ibytes)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, m.icap, nil, gl.DYNAMIC_DRAW)
	}
	if ibytes > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, ibytes, gl.Ptr(indices))
	}
}

func grow(have, need int) int {
	if have == 0 {
		have = 64 * 1024
	}
	for have < need {
		have *= 2
	}
	return have
}

func (r *RendererGL) UpdateMesh(m core.Mesh, vertices []float32, indices []uint32) error {
	gm, ok := m.(*mesh)
	if !ok {
		return fmt.Errorf("unknown mesh type %T", m)
	}
	gl.BindVertexArray(gm.vao)
	gm.upload(vertices, indices)
	gl.BindVertexArray(0)
	return nil
}
