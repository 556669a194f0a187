package coretest

import (
	"fmt"

	"github.com/hubastard/canopy/engine/core"
)

// Texture is the handle type produced by Renderer.
type Texture struct {
	ID     int
	W, H   int
	Pixels []byte
}

func (t *Texture) Size() (int, int) { return t.W, t.H }

type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

type Pipeline struct{ Desc core.PipelineDesc }

// Renderer records every GPU call in Calls so tests can assert ordering.
type Renderer struct {
	Calls []string
	Draws []core.DrawCmd

	// AcquireErr, when set, is returned by the next AcquireFrame calls.
	AcquireErr error
	LastClear  [4]float32

	Live     map[int]*Texture
	cfg      core.SurfaceConfig
	nextTex  int
	frame    uint64
	passOpen bool
	shutdown bool
}

func NewRenderer() *Renderer {
	return &Renderer{Live: map[int]*Texture{}}
}

func (r *Renderer) log(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

// Reset drops the recorded call log but keeps resources.
func (r *Renderer) Reset() {
	r.Calls = nil
	r.Draws = nil
}

func (r *Renderer) Configure(cfg core.SurfaceConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", cfg.Width, cfg.Height)
	}
	r.cfg = cfg
	r.log("configure %dx%d", cfg.Width, cfg.Height)
	return nil
}

func (r *Renderer) SurfaceConfig() core.SurfaceConfig { return r.cfg }

func (r *Renderer) AcquireFrame() (core.SurfaceTexture, error) {
	if r.AcquireErr != nil {
		r.log("acquire failed")
		return core.SurfaceTexture{}, r.AcquireErr
	}
	r.frame++
	r.log("acquire")
	return core.SurfaceTexture{Width: r.cfg.Width, Height: r.cfg.Height, Frame: r.frame}, nil
}

func (r *Renderer) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	r.nextTex++
	t := &Texture{ID: r.nextTex, W: desc.Width, H: desc.Height, Pixels: append([]byte(nil), desc.Pixels...)}
	r.Live[t.ID] = t
	r.log("create texture %d %dx%d", t.ID, t.W, t.H)
	return t, nil
}

func (r *Renderer) UpdateTexture(t core.Texture, region core.TextureRegion, pixels []byte) error {
	tex := t.(*Texture)
	if _, ok := r.Live[tex.ID]; !ok {
		return fmt.Errorf("update of freed texture %d", tex.ID)
	}
	r.log("update texture %d", tex.ID)
	return nil
}

func (r *Renderer) DeleteTexture(t core.Texture) {
	tex := t.(*Texture)
	delete(r.Live, tex.ID)
	r.log("delete texture %d", tex.ID)
}

func (r *Renderer) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	r.log("create pipeline")
	return &Pipeline{Desc: desc}, nil
}

func (r *Renderer) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	r.log("create mesh")
	return &Mesh{Vertices: desc.Vertices, Indices: desc.Indices}, nil
}

func (r *Renderer) UpdateMesh(m core.Mesh, vertices []float32, indices []uint32) error {
	mesh := m.(*Mesh)
	mesh.Vertices = append(mesh.Vertices[:0], vertices...)
	mesh.Indices = append(mesh.Indices[:0], indices...)
	r.log("update mesh %d %d", len(vertices), len(indices))
	return nil
}

func (r *Renderer) BeginPass(desc core.PassDesc) (core.RenderPass, error) {
	if r.passOpen {
		return nil, fmt.Errorf("render pass already open")
	}
	r.passOpen = true
	r.LastClear = desc.ClearColor
	if desc.Load == core.LoadClear {
		r.log("begin pass %d clear", desc.Target.Frame)
	} else {
		r.log("begin pass %d", desc.Target.Frame)
	}
	return &pass{r: r}, nil
}

func (r *Renderer) Submit() {
	if r.passOpen {
		r.log("submit with open pass")
		return
	}
	r.log("submit")
}

func (r *Renderer) Present(target core.SurfaceTexture) { r.log("present %d", target.Frame) }

func (r *Renderer) Info() core.GPUInfo {
	return core.GPUInfo{Vendor: "coretest", Renderer: "recorder", Version: "1"}
}

func (r *Renderer) Shutdown() {
	r.shutdown = true
	r.log("shutdown")
}

func (r *Renderer) IsShutdown() bool { return r.shutdown }

type pass struct{ r *Renderer }

func (p *pass) Draw(cmd core.DrawCmd) {
	for _, t := range cmd.Samplers {
		if tex, ok := t.(*Texture); ok {
			if _, live := p.r.Live[tex.ID]; !live {
				p.r.log("draw with freed texture %d", tex.ID)
			}
		}
	}
	p.r.Draws = append(p.r.Draws, cmd)
	p.r.log("draw %d", cmd.IndexCount)
}

func (p *pass) End() {
	p.r.passOpen = false
	p.r.log("end pass")
}
