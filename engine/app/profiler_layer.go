package app

import (
	"fmt"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/ui"
)

// profilerLayer shows frame timings, scope summaries and renderer
// statistics, and dumps the capture on Ctrl+P.
type profilerLayer struct {
	gpu       core.GPUInfo
	lastDump  string
	dumpError error
}

func (l *profilerLayer) OnAttach(s *State) { l.gpu = s.Renderer.Info() }
func (l *profilerLayer) OnDetach(s *State) {}

func heading(s string) ui.UIElement {
	return ui.Label(s).Padding4(0, 8, 0, 0).Color(colors.Yellow)
}

func (l *profilerLayer) OnUI(s *State, ctx *ui.Context) {
	if !s.ShowProfiler {
		return
	}
	stats := s.Painter.Stats()

	rows := []ui.UIElement{
		ui.Checkbox("Record scopes", ptr(profiler.Enabled())).OnChange(profiler.SetEnabled),
		heading(fmt.Sprintf("Frame: %d", s.Frames())),
	}
	if avg := profiler.AverageFrameTime(); avg > 0 {
		ms := float32(avg.Seconds() * 1000)
		rows = append(rows, ui.Label(fmt.Sprintf("  %2.3f ms (%.2f FPS)", ms, 1000/ms)).Monospace())
	}
	if f, ok := profiler.LastFrame(); ok {
		for _, sc := range f.Scopes {
			indent := fmt.Sprintf("%*s", 2+2*sc.Depth, "")
			rows = append(rows, ui.Label(fmt.Sprintf("%s%-12s %7.3f ms x%d",
				indent, sc.Name, float32(sc.Total.Seconds()*1000), sc.Count)).Monospace())
		}
	}
	rows = append(rows,
		heading("Painter"),
		ui.Label(fmt.Sprintf("  Draw Calls: %d", stats.DrawCalls)),
		ui.Label(fmt.Sprintf("  Vertices: %d", stats.VertexCount)),
		ui.Label(fmt.Sprintf("  Indices: %d", stats.IndexCount)),
		ui.Label(fmt.Sprintf("  Textures: %d", stats.TextureCount)),
		heading("Memory"),
		ui.Label(fmt.Sprintf("  Usage: %.3f MB", float32(profiler.MemoryUsage())/(1<<20))),
		ui.Label(fmt.Sprintf("  Allocs: %d", profiler.MemoryAllocs())),
		ui.Label(fmt.Sprintf("  Goroutines: %d", profiler.NumGoroutine())),
		heading("CPU"),
		ui.Label(fmt.Sprintf("  Count: %d", profiler.NumCPU())),
		heading("GPU"),
		ui.Label(fmt.Sprintf("  Vendor: %s", l.gpu.Vendor)),
		ui.Label(fmt.Sprintf("  Renderer: %s", l.gpu.Renderer)),
		ui.Label(fmt.Sprintf("  Version: %s", l.gpu.Version)),
		ui.Separator(),
		ui.Button("Save capture (Ctrl+P)").OnClick(func() { l.dump(s) }),
	)
	switch {
	case l.dumpError != nil:
		rows = append(rows, ui.Label(l.dumpError.Error()).Small().Color(colors.Red))
	case l.lastDump != "":
		rows = append(rows, ui.Label(l.lastDump).Small().Weak())
	}

	ctx.Window("Profiler", &s.ShowProfiler, ui.View(rows...))
	if profiler.Enabled() {
		// timings change every frame
		ctx.RequestRepaint()
	}
}

func (l *profilerLayer) OnEvent(s *State, ev core.Event) bool {
	if v, ok := ev.(core.EventKey); ok {
		if v.Down && !v.Repeat && v.Key == core.KeyP && v.Mods&core.ModCtrl != 0 {
			l.dump(s)
			return true
		}
	}
	return false
}

func (l *profilerLayer) dump(s *State) {
	path, err := profiler.OpenProfilerGraph()
	l.lastDump, l.dumpError = path, err
	if err != nil {
		s.log.Warn("profiler dump", "err", err)
		return
	}
	s.log.Info("speedscope dump", "path", path)
}

// ptr returns a pointer to a copy of v, for widgets whose change is handled
// through a callback.
func ptr[T any](v T) *T { return &v }
