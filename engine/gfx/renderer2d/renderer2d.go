package renderer2d

import (
	"errors"
	"fmt"
	"math"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/ui"
)

// Vertex: pos2 + uv2 + color4 => 8 floats
const vStride = 8

var uiVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos (points)
		{Location: 1, Size: 2, Type: core.AttribFloat32, Offset: 2 * 4}, // uv
		{Location: 2, Size: 4, Type: core.AttribFloat32, Offset: 4 * 4}, // color, premultiplied
	},
}

// Statistics captures the counts generated during a painted frame.
type Statistics struct {
	DrawCalls      int
	VertexCount    int
	IndexCount     int
	TextureCount   int
	TexturesSet    int
	TexturesFreed  int
	SkippedBatches int
}

type batch struct {
	first, count int
	scissor      core.Rect
	tex          core.Texture
}

// Painter draws tessellated UI frames onto the surface. It owns the GPU
// copies of every UI texture.
type Painter struct {
	r    core.Renderer
	pipe core.Pipeline
	mesh core.Mesh

	textures map[ui.TextureID]core.Texture
	clear    colors.Color

	verts   []float32
	inds    []uint32
	batches []batch

	samplers map[string]core.Texture
	uniforms map[string]any
	stats    Statistics
}

// New compiles the UI pipeline and allocates the shared mesh.
func New(r core.Renderer, vertSrc, fragSrc string) (*Painter, error) {
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		DepthTest:      false,
		Blend:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create ui pipeline: %w", err)
	}
	mesh, err := r.CreateMesh(core.MeshDesc{Layout: uiVertexLayout})
	if err != nil {
		return nil, fmt.Errorf("create ui mesh: %w", err)
	}
	return &Painter{
		r: r, pipe: pipe, mesh: mesh,
		textures: map[ui.TextureID]core.Texture{},
		clear:    colors.DarkGray,
		samplers: make(map[string]core.Texture, 1),
		uniforms: make(map[string]any, 2),
	}, nil
}

// SetClearColor sets the color the surface is cleared to before painting.
func (p *Painter) SetClearColor(c colors.Color) { p.clear = c }

// Stats returns the statistics of the last painted frame.
func (p *Painter) Stats() Statistics { return p.stats }

// Texture returns the GPU texture for a UI texture id.
func (p *Painter) Texture(id ui.TextureID) (core.Texture, bool) {
	t, ok := p.textures[id]
	return t, ok
}

// Paint renders one frame onto target, which must have been acquired this
// redraw. Uploads happen before the pass; frees only after present, so a
// texture is never released while a draw may still reference it.
func (p *Painter) Paint(target core.SurfaceTexture, prims []ui.ClippedPrimitive, textures ui.TexturesDelta, pixelsPerPoint float32) error {
	p.stats = Statistics{}
	if pixelsPerPoint <= 0 {
		pixelsPerPoint = 1
	}
	var errs []error

	// (a) texture sets
	for _, up := range textures.Set {
		if err := p.setTexture(up); err != nil {
			errs = append(errs, err)
		}
	}

	// (b) vertex and index upload
	p.buildBatches(target, prims, pixelsPerPoint)
	if len(p.inds) > 0 {
		if err := p.r.UpdateMesh(p.mesh, p.verts, p.inds); err != nil {
			errs = append(errs, fmt.Errorf("upload ui mesh: %w", err))
			p.batches = p.batches[:0]
		}
	}

	// (c) begin pass, clearing the surface
	pass, err := p.r.BeginPass(core.PassDesc{
		Target:     target,
		Load:       core.LoadClear,
		ClearColor: p.clear.Premultiplied(),
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("begin pass: %w", err))
	} else {
		// (d) one draw per primitive
		p.uniforms["uProj"] = screenProjection(
			float32(target.Width)/pixelsPerPoint,
			float32(target.Height)/pixelsPerPoint,
		)
		for _, b := range p.batches {
			p.samplers["uTexture"] = b.tex
			pass.Draw(core.DrawCmd{
				Pipe:       p.pipe,
				Mesh:       p.mesh,
				FirstIndex: b.first,
				IndexCount: b.count,
				Scissor:    b.scissor,
				Uniforms:   p.uniforms,
				Samplers:   p.samplers,
			})
			p.stats.DrawCalls++
		}
		// (e) end pass
		pass.End()
	}

	// (f) submit, (g) present
	p.r.Submit()
	p.r.Present(target)

	// (h) frees
	for _, id := range textures.Free {
		if t, ok := p.textures[id]; ok {
			p.r.DeleteTexture(t)
			delete(p.textures, id)
			p.stats.TexturesFreed++
		}
	}
	p.stats.TextureCount = len(p.textures)
	return errors.Join(errs...)
}

func filterName(f ui.TextureFilter) string {
	if f == ui.FilterNearest {
		return "nearest"
	}
	return "linear"
}

func (p *Painter) setTexture(up ui.TextureUpdate) error {
	d := up.Delta
	if len(d.Pixels) != d.Width*d.Height*4 {
		return fmt.Errorf("texture %d: %d bytes for %dx%d", up.ID, len(d.Pixels), d.Width, d.Height)
	}
	existing, ok := p.textures[up.ID]
	if !d.IsWhole() {
		if !ok {
			return fmt.Errorf("texture %d: patch before full upload", up.ID)
		}
		region := core.TextureRegion{X: d.Pos[0], Y: d.Pos[1], W: d.Width, H: d.Height}
		if err := p.r.UpdateTexture(existing, region, d.Pixels); err != nil {
			return fmt.Errorf("texture %d: %w", up.ID, err)
		}
		p.stats.TexturesSet++
		return nil
	}
	if ok {
		if w, h := existing.Size(); w == d.Width && h == d.Height {
			if err := p.r.UpdateTexture(existing, core.TextureRegion{W: w, H: h}, d.Pixels); err != nil {
				return fmt.Errorf("texture %d: %w", up.ID, err)
			}
			p.stats.TexturesSet++
			return nil
		}
		p.r.DeleteTexture(existing)
		delete(p.textures, up.ID)
	}
	t, err := p.r.CreateTexture(core.TextureDesc{
		Width: d.Width, Height: d.Height,
		Format:    core.TextureRGBA8,
		Pixels:    d.Pixels,
		MinFilter: filterName(d.Filter), MagFilter: filterName(d.Filter),
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return fmt.Errorf("texture %d: %w", up.ID, err)
	}
	p.textures[up.ID] = t
	p.stats.TexturesSet++
	return nil
}

func (p *Painter) buildBatches(target core.SurfaceTexture, prims []ui.ClippedPrimitive, ppp float32) {
	p.verts = p.verts[:0]
	p.inds = p.inds[:0]
	p.batches = p.batches[:0]
	for _, prim := range prims {
		m := prim.Mesh
		if len(m.Indices) == 0 {
			continue
		}
		tex, ok := p.textures[m.Texture]
		if !ok {
			p.stats.SkippedBatches++
			continue
		}
		sc, ok := scissor(prim.Clip, ppp, target.Width, target.Height)
		if !ok {
			p.stats.SkippedBatches++
			continue
		}
		base := uint32(len(p.verts) / vStride)
		for _, v := range m.Vertices {
			p.verts = append(p.verts,
				v.Pos[0], v.Pos[1],
				v.UV[0], v.UV[1],
				v.Color[0], v.Color[1], v.Color[2], v.Color[3],
			)
		}
		first := len(p.inds)
		for _, i := range m.Indices {
			p.inds = append(p.inds, base+i)
		}
		p.batches = append(p.batches, batch{first: first, count: len(m.Indices), scissor: sc, tex: tex})
	}
	p.stats.VertexCount = len(p.verts) / vStride
	p.stats.IndexCount = len(p.inds)
}

// scissor converts a clip rect in points to whole pixels inside the target.
func scissor(clip ui.Rect, ppp float32, width, height int) (core.Rect, bool) {
	x0 := clampInt(int(math.Round(float64(clip.Min[0]*ppp))), 0, width)
	y0 := clampInt(int(math.Round(float64(clip.Min[1]*ppp))), 0, height)
	x1 := clampInt(int(math.Round(float64(clip.Max[0]*ppp))), x0, width)
	y1 := clampInt(int(math.Round(float64(clip.Max[1]*ppp))), y0, height)
	r := core.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	return r, r.W > 0 && r.H > 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Shutdown releases every texture the painter owns.
func (p *Painter) Shutdown() {
	for id, t := range p.textures {
		p.r.DeleteTexture(t)
		delete(p.textures, id)
	}
}
