package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/canopy/engine/core"
)

// swapIntervaler is implemented by windows that own the GL context and can
// switch vsync.
type swapIntervaler interface {
	SetSwapInterval(n int)
}

// RendererGL implements core.Renderer on an OpenGL 3.3 core context. The
// window's default framebuffer is the surface.
type RendererGL struct {
	win   core.Window
	cfg   core.SurfaceConfig
	frame uint64
	info  core.GPUInfo

	passOpen bool
	texCount int
}

// NewRendererGL loads GL entry points for the window's current context.
func NewRendererGL(win core.Window, cfg core.Config) (*RendererGL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	r := &RendererGL{win: win}
	r.info = core.GPUInfo{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	return r, nil
}

func (r *RendererGL) Info() core.GPUInfo { return r.info }

func (r *RendererGL) Configure(cfg core.SurfaceConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", cfg.Width, cfg.Height)
	}
	r.cfg = cfg
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	if cfg.Format == core.TextureSRGBA8 {
		gl.Enable(gl.FRAMEBUFFER_SRGB)
	} else {
		gl.Disable(gl.FRAMEBUFFER_SRGB)
	}
	if s, ok := r.win.(swapIntervaler); ok {
		if cfg.PresentMode == core.PresentImmediate {
			s.SetSwapInterval(0)
		} else {
			s.SetSwapInterval(1)
		}
	}
	return nil
}

func (r *RendererGL) SurfaceConfig() core.SurfaceConfig { return r.cfg }

// AcquireFrame reports ErrSurfaceOutdated while the framebuffer is empty
// (minimized) or no longer matches the configured size.
func (r *RendererGL) AcquireFrame() (core.SurfaceTexture, error) {
	w, h := r.win.FramebufferSize()
	if w == 0 || h == 0 || r.cfg.Width == 0 {
		return core.SurfaceTexture{}, core.ErrSurfaceOutdated
	}
	if w != r.cfg.Width || h != r.cfg.Height {
		return core.SurfaceTexture{}, core.ErrSurfaceOutdated
	}
	r.frame++
	return core.SurfaceTexture{Width: w, Height: h, Frame: r.frame}, nil
}

func (r *RendererGL) BeginPass(desc core.PassDesc) (core.RenderPass, error) {
	if r.passOpen {
		return nil, fmt.Errorf("render pass already open")
	}
	if desc.Target.Frame != r.frame {
		return nil, fmt.Errorf("surface texture %d is stale (current %d)", desc.Target.Frame, r.frame)
	}
	r.passOpen = true
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(desc.Target.Width), int32(desc.Target.Height))
	gl.Disable(gl.SCISSOR_TEST)
	if desc.Load == core.LoadClear {
		c := desc.ClearColor
		gl.ClearColor(c[0], c[1], c[2], c[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}
	return &pass{r: r, height: desc.Target.Height}, nil
}

func (r *RendererGL) Submit() { gl.Flush() }

func (r *RendererGL) Present(target core.SurfaceTexture) {
	if target.Frame != r.frame {
		return
	}
	r.win.SwapBuffers()
}

func (r *RendererGL) Shutdown() {
	gl.UseProgram(0)
	gl.BindVertexArray(0)
}

type pass struct {
	r      *RendererGL
	height int
	ended  bool
}

func (p *pass) Draw(cmd core.DrawCmd) {
	if p.ended || cmd.IndexCount == 0 {
		return
	}
	pipe := cmd.Pipe.(*pipeline)
	m := cmd.Mesh.(*mesh)
	pipe.bind()

	if cmd.Scissor.W > 0 && cmd.Scissor.H > 0 {
		gl.Enable(gl.SCISSOR_TEST)
		// GL scissor origin is bottom-left.
		gl.Scissor(int32(cmd.Scissor.X), int32(p.height-cmd.Scissor.Y-cmd.Scissor.H),
			int32(cmd.Scissor.W), int32(cmd.Scissor.H))
	} else {
		gl.Disable(gl.SCISSOR_TEST)
	}

	for name, v := range cmd.Uniforms {
		pipe.setUniform(name, v)
	}
	unit := int32(0)
	for name, t := range cmd.Samplers {
		tex, ok := t.(*texture)
		if !ok || tex == nil {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		pipe.setUniform(name, unit)
		unit++
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(cmd.IndexCount), gl.UNSIGNED_INT, uintptr(cmd.FirstIndex*4))
	gl.BindVertexArray(0)
}

func (p *pass) End() {
	if p.ended {
		return
	}
	p.ended = true
	p.r.passOpen = false
	gl.Disable(gl.SCISSOR_TEST)
	gl.UseProgram(0)
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}
