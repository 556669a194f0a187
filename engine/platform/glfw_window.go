package platform

import (
	"fmt"
	"image"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/canopy/engine/core"
)

// GLFWWindow implements core.Window and pushes events to the app via a handler.
type GLFWWindow struct {
	w       *glfw.Window
	onEv    func(core.Event)
	log     *slog.Logger
	cursors map[core.Cursor]*glfw.Cursor
	cursor  core.Cursor
}

// NewGLFWWindow opens a window with a current OpenGL 3.3 core context.
// Must be called on the main thread before any GL calls.
func NewGLFWWindow(cfg core.Config, log *slog.Logger) (*GLFWWindow, error) {
	if log == nil {
		log = slog.Default()
	}
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	// Shown once positioned so restored windows do not jump.
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	if cfg.HasPosition {
		win.SetPos(cfg.X, cfg.Y)
	}
	if cfg.Icon != nil {
		win.SetIcon([]image.Image{cfg.Icon})
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	win.Show()

	gw := &GLFWWindow{w: win, log: log, cursors: map[core.Cursor]*glfw.Cursor{}}
	log.Info("window created", "width", cfg.Width, "height", cfg.Height, "restored_position", cfg.HasPosition)

	// Callbacks -> translate to core.Event
	win.SetCloseCallback(func(*glfw.Window) { gw.emit(core.EventCloseRequested{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(core.EventResize{W: w, H: h})
	})
	win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		gw.emit(core.EventMove{X: x, Y: y})
	})
	win.SetContentScaleCallback(func(_ *glfw.Window, x, _ float32) {
		gw.emit(core.EventScaleChanged{Scale: x})
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		gw.emit(core.EventFocus{Focused: focused})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		// glfw reports screen coordinates; the rest of the app works in
		// framebuffer pixels.
		sx, sy := gw.pixelRatio()
		gw.emit(core.EventMouseMove{X: x * sx, Y: y * sy})
	})
	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			gw.emit(core.EventCursorLeft{})
		}
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		btn, ok := translateButton(b)
		if !ok {
			return
		}
		gw.emit(core.EventMouseButton{Button: btn, Down: action == glfw.Press, Mods: translateMods(mods)})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		gw.emit(core.EventKey{
			Key:    k,
			Down:   action != glfw.Release,
			Repeat: action == glfw.Repeat,
			Mods:   translateMods(mods),
		})
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		gw.emit(core.EventChar{Char: r})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(core.EventScroll{Xoff: xoff, Yoff: yoff})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// pixelRatio is framebuffer pixels per window coordinate.
func (g *GLFWWindow) pixelRatio() (float64, float64) {
	fw, fh := g.w.GetFramebufferSize()
	ww, wh := g.w.GetSize()
	if ww == 0 || wh == 0 {
		return 1, 1
	}
	return float64(fw) / float64(ww), float64(fh) / float64(wh)
}

// core.Window impl
func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) WaitEvents()                          { glfw.WaitEvents() }
func (g *GLFWWindow) Wake()                                { glfw.PostEmptyEvent() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) RequestClose()                        { g.w.SetShouldClose(true) }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) Position() (int, int)                 { return g.w.GetPos() }
func (g *GLFWWindow) Size() (int, int)                     { return g.w.GetSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }
func (g *GLFWWindow) Clipboard() string                    { return glfw.GetClipboardString() }
func (g *GLFWWindow) SetClipboard(text string)             { glfw.SetClipboardString(text) }

// SetSwapInterval switches vsync for the window's context.
func (g *GLFWWindow) SetSwapInterval(n int) { glfw.SwapInterval(n) }

func (g *GLFWWindow) ContentScale() float32 {
	x, _ := g.w.GetContentScale()
	if x <= 0 {
		return 1
	}
	return x
}

func (g *GLFWWindow) SetCursor(c core.Cursor) {
	if c == g.cursor {
		return
	}
	g.cursor = c
	if c == core.CursorHidden {
		g.w.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
		return
	}
	g.w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	if c == core.CursorDefault {
		g.w.SetCursor(nil)
		return
	}
	cur, ok := g.cursors[c]
	if !ok {
		cur = glfw.CreateStandardCursor(standardCursor(c))
		g.cursors[c] = cur
	}
	g.w.SetCursor(cur)
}

func (g *GLFWWindow) Destroy() {
	for _, c := range g.cursors {
		c.Destroy()
	}
	g.w.Destroy()
	glfw.Terminate()
}

func standardCursor(c core.Cursor) glfw.StandardCursor {
	switch c {
	case core.CursorText:
		return glfw.IBeamCursor
	case core.CursorPointer, core.CursorGrab:
		return glfw.HandCursor
	case core.CursorCrosshair:
		return glfw.CrosshairCursor
	case core.CursorResizeHorizontal:
		return glfw.HResizeCursor
	case core.CursorResizeVertical:
		return glfw.VResizeCursor
	default:
		return glfw.ArrowCursor
	}
}

func translateButton(b glfw.MouseButton) (core.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseLeft, true
	case glfw.MouseButtonRight:
		return core.MouseRight, true
	case glfw.MouseButtonMiddle:
		return core.MouseMiddle, true
	default:
		return 0, false
	}
}

func translateKey(k glfw.Key) core.Key {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return core.KeyEnter
	case glfw.KeyTab:
		return core.KeyTab
	case glfw.KeyBackspace:
		return core.KeyBackspace
	case glfw.KeyDelete:
		return core.KeyDelete
	case glfw.KeyLeft:
		return core.KeyLeft
	case glfw.KeyRight:
		return core.KeyRight
	case glfw.KeyUp:
		return core.KeyUp
	case glfw.KeyDown:
		return core.KeyDown
	case glfw.KeyHome:
		return core.KeyHome
	case glfw.KeyEnd:
		return core.KeyEnd
	case glfw.KeySpace:
		return core.KeySpace
	case glfw.KeyA:
		return core.KeyA
	case glfw.KeyC:
		return core.KeyC
	case glfw.KeyD:
		return core.KeyD
	case glfw.KeyP:
		return core.KeyP
	case glfw.KeyS:
		return core.KeyS
	case glfw.KeyV:
		return core.KeyV
	case glfw.KeyW:
		return core.KeyW
	case glfw.KeyX:
		return core.KeyX
	case glfw.KeyZ:
		return core.KeyZ
	default:
		return core.KeyUnknown
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
