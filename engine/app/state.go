package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hubastard/canopy/engine/assets"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/persist"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/ui"
	"github.com/hubastard/canopy/engine/uistate"
)

// State is everything the running application owns. Only the loop thread
// touches it; the style watcher goroutine communicates through a channel.
type State struct {
	Window   core.Window
	Renderer core.Renderer
	UI       *ui.Context
	Bridge   *uistate.State
	Painter  *renderer2d.Painter
	Store    *persist.Store
	Layers   LayerStack

	// ShowProfiler is the visibility of the profiler overlay.
	ShowProfiler bool
	// Continuous is the redraw policy; see Options.
	Continuous bool

	surface   core.SurfaceConfig
	geometry  persist.WindowAttributes // last geometry with a usable size
	style     *persist.StyleDocument
	watcher   *persist.StyleWatcher
	dirty     bool
	persisted bool
	attached  bool
	frames    uint64
	skipped   uint64
	log       *slog.Logger
}

// NewState creates the window, GPU context and UI, restoring the saved
// geometry, UI memory and style.
func NewState(opts Options, newWindow WindowFactory, newRenderer RendererFactory) (*State, error) {
	opts = opts.withDefaults()
	log := opts.Logger
	profiler.SetEnabled(opts.Profile)

	store, err := persist.NewStore(opts.ConfigDir, log)
	if err != nil {
		return nil, err
	}
	icon, err := assets.AppIcon()
	if err != nil {
		return nil, fmt.Errorf("load icon: %w", err)
	}
	fonts, err := assets.Fonts()
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	vs, err := assets.LoadShader("ui.vert")
	if err != nil {
		return nil, err
	}
	fs, err := assets.LoadShader("ui.frag")
	if err != nil {
		return nil, err
	}

	winCfg := core.Config{
		Title:  opts.Title,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		VSync:  opts.VSync,
		Icon:   icon,
	}
	saved, haveConfig := store.LoadConfig()
	if haveConfig {
		wa := saved.WindowAttributes
		winCfg.Width, winCfg.Height = wa.Width, wa.Height
		winCfg.X, winCfg.Y, winCfg.HasPosition = wa.PosX, wa.PosY, true
	}

	win, err := newWindow(winCfg)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	rend, err := newRenderer(win, winCfg)
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	info := rend.Info()
	log.Info("gpu ready", "vendor", info.Vendor, "renderer", info.Renderer, "version", info.Version)

	s := &State{
		Window:       win,
		Renderer:     rend,
		UI:           ui.NewContext(),
		Bridge:       uistate.New(win),
		Store:        store,
		ShowProfiler: opts.ProfilerWindow,
		Continuous:   opts.Continuous,
		dirty:        true,
		log:          log,
	}
	s.surface = core.SurfaceConfig{Format: core.TextureRGBA8, PresentMode: core.PresentFifo}
	if !opts.VSync {
		s.surface.PresentMode = core.PresentImmediate
	}
	s.trackGeometry()
	s.Resize(win.FramebufferSize())

	if err := s.UI.SetFonts(fonts); err != nil {
		s.Shutdown()
		return nil, fmt.Errorf("install fonts: %w", err)
	}
	if haveConfig {
		s.UI.SetMemory(saved.Memory)
	}

	s.Painter, err = renderer2d.New(rend, vs, fs)
	if err != nil {
		s.Shutdown()
		return nil, err
	}

	s.UI.SetStyle(ui.DefaultStyle())
	s.ReloadStyle()
	// Leave an editable copy of the active style on disk.
	_ = store.SaveStyle(s.UI.Style())

	s.watcher, err = store.WatchStyle(win.Wake)
	if err != nil {
		log.Warn("style hot reload disabled", "err", err)
	}

	win.SetEventCallback(s.HandleEvent)
	for _, l := range opts.Layers {
		s.Layers.Push(l)
	}
	s.Layers.Push(&profilerLayer{})
	s.Layers.ForEach(func(l Layer) { l.OnAttach(s) })
	s.attached = true
	return s, nil
}

// HandleEvent is the window's event callback.
func (s *State) HandleEvent(ev core.Event) {
	switch e := ev.(type) {
	case core.EventCloseRequested:
		s.Persist()
		s.Window.RequestClose()
		return
	case core.EventResize:
		s.trackGeometry()
		s.Resize(e.W, e.H)
	case core.EventMove:
		s.trackGeometry()
	}

	resp := s.Bridge.OnEvent(s.UI, ev)
	if resp.Repaint {
		s.dirty = true
	}
	if resp.Consumed {
		return
	}
	s.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(s, ev) })
}

// Resize reconfigures the surface. Zero sizes, sent while minimized, are
// ignored so the surface keeps its last usable size.
func (s *State) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		s.log.Debug("ignoring zero-size resize", "width", w, "height", h)
		return
	}
	cfg := s.surface
	cfg.Width, cfg.Height = w, h
	if err := s.Renderer.Configure(cfg); err != nil {
		s.log.Error("configure surface", "err", err)
		return
	}
	s.surface = cfg
	s.dirty = true
}

// SurfaceConfig is the configuration last applied to the surface.
func (s *State) SurfaceConfig() core.SurfaceConfig { return s.surface }

// ReloadStyle loads the style document and applies it. A missing or broken
// document leaves the current style in place.
func (s *State) ReloadStyle() bool {
	doc, ok := s.Store.LoadStyle()
	if !ok {
		return false
	}
	s.style = doc
	s.UI.SetStyle(doc.Style)
	if s.Painter != nil {
		s.Painter.SetClearColor(doc.Style.Visuals.ClearColor)
	}
	s.dirty = true
	s.log.Info("style loaded", "path", s.StylePath())
	return true
}

// StylePath is where the active style came from, or "embedded".
func (s *State) StylePath() string {
	if s.style == nil || s.style.Embedded() {
		return "embedded"
	}
	return s.style.Path
}

func (s *State) stylePending() bool {
	return s.watcher != nil && s.watcher.Pending()
}

// Redraw renders one frame.
func (s *State) Redraw() {
	profiler.NewFrame()
	defer profiler.Start("redraw")()

	if s.watcher != nil && s.watcher.Poll() {
		s.ReloadStyle()
	}

	target, err := s.Renderer.AcquireFrame()
	if err != nil {
		s.dirty = false
		s.skipped++
		if !errors.Is(err, core.ErrSurfaceOutdated) {
			s.log.Error("acquire surface texture", "err", err)
		}
		return
	}

	endUI := profiler.Start("ui")
	s.UI.BeginFrame(s.Bridge.TakeFrameInput(s.Window))
	s.Layers.ForEach(func(l Layer) { l.OnUI(s, s.UI) })
	out := s.UI.EndFrame()
	endUI()

	endTess := profiler.Start("tessellate")
	prims := s.UI.Tessellate(out.Shapes, out.PixelsPerPoint)
	endTess()

	s.Bridge.ApplyPlatformOutput(s.Window, out.Platform)

	endPaint := profiler.Start("paint")
	if err := s.Painter.Paint(target, prims, out.Textures, out.PixelsPerPoint); err != nil {
		s.log.Warn("paint", "err", err)
	}
	endPaint()

	s.dirty = out.NeedsRepaint
	s.frames++
}

// Frames is the number of frames painted; Skipped counts redraws dropped
// because no surface texture was available.
func (s *State) Frames() uint64  { return s.frames }
func (s *State) Skipped() uint64 { return s.skipped }

// trackGeometry records the window position and size in screen
// coordinates, the space the window is created in. A minimized window
// reports no size and is skipped so its placeholder position is not kept.
func (s *State) trackGeometry() {
	x, y := s.Window.Position()
	w, h := s.Window.Size()
	if w > 0 && h > 0 {
		s.geometry = persist.WindowAttributes{PosX: x, PosY: y, Width: w, Height: h}
	}
}

// Persist writes the window geometry, UI memory and style to disk. While
// minimized the last usable geometry is written instead.
func (s *State) Persist() {
	s.trackGeometry()
	g := s.geometry
	_ = s.Store.SaveConfig(persist.AppConfig{WindowAttributes: g, Memory: s.UI.Memory()})
	_ = s.Store.SaveStyle(s.UI.Style())
	s.persisted = true
	s.log.Info("state saved", "dir", s.Store.Dir(), "width", g.Width, "height", g.Height)
}

// Loop runs until the window closes.
func (s *State) Loop() {
	for !s.Window.ShouldClose() {
		if s.Continuous || s.dirty {
			s.Window.PollEvents()
		} else {
			s.Window.WaitEvents()
		}
		if s.Window.ShouldClose() {
			break
		}
		if s.stylePending() {
			s.dirty = true
		}
		if s.Continuous || s.dirty {
			s.Redraw()
		}
	}
	if !s.persisted {
		s.Persist()
	}
	s.log.Info("loop exited", "frames", s.frames, "skipped", s.skipped)
}

// Shutdown releases everything NewState created, in reverse order.
func (s *State) Shutdown() {
	if s.attached {
		s.Layers.ForEachReverse(func(l Layer) bool { l.OnDetach(s); return false })
		s.attached = false
	}
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.log.Warn("close style watcher", "err", err)
		}
		s.watcher = nil
	}
	if s.Painter != nil {
		s.Painter.Shutdown()
		s.Painter = nil
	}
	if s.UI != nil {
		s.UI.Close()
	}
	if s.Renderer != nil {
		s.Renderer.Shutdown()
		s.Renderer = nil
	}
	if s.Window != nil {
		s.Window.Destroy()
		s.Window = nil
	}
}
