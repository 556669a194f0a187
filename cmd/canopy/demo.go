//go:build !nodemo

package main

import (
	"fmt"
	"image"
	"time"

	"github.com/hubastard/canopy/engine/app"
	"github.com/hubastard/canopy/engine/assets"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/ui"
	xdraw "golang.org/x/image/draw"
)

const demoAvailable = true

func demoLayers() []app.Layer { return []app.Layer{&demoLayer{now: time.Now}} }

// demoLayer is a small tour of the widgets.
type demoLayer struct {
	now     func() time.Time
	icon    ui.TextureID
	hasIcon bool
	clicks  int
	light   bool
	body    float32
	about   bool
}

const iconSize = 48

func (d *demoLayer) OnAttach(s *app.State) {
	d.body = s.UI.Style().Text.Body
	d.light = !s.UI.Style().Visuals.DarkMode
	d.about = true
	if delta, ok := iconDelta(); ok {
		d.icon = s.UI.AllocTexture("app-icon", delta)
		d.hasIcon = true
	}
}

func (d *demoLayer) OnDetach(s *app.State) {
	if d.hasIcon {
		s.UI.FreeTexture(d.icon)
		d.hasIcon = false
	}
}

// iconDelta scales the app icon up with hard edges and converts it to the
// premultiplied pixels the UI expects.
func iconDelta() (ui.ImageDelta, bool) {
	icon, err := assets.AppIcon()
	if err != nil {
		return ui.ImageDelta{}, false
	}
	dst := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), icon, icon.Bounds(), xdraw.Src, nil)
	return ui.ImageDelta{Width: iconSize, Height: iconSize, Pixels: dst.Pix, Filter: ui.FilterNearest}, true
}

func secondsSinceMidnight(t time.Time) float64 {
	y, m, day := t.Date()
	midnight := time.Date(y, m, day, 0, 0, 0, 0, t.Location())
	return t.Sub(midnight).Seconds()
}

func (d *demoLayer) OnUI(s *app.State, ctx *ui.Context) {
	now := d.now()
	clock := now.Format("15:04:05")
	st := ctx.Style()
	body := d.body

	header := ui.Row(ui.Label("canopy").Heading())
	if d.hasIcon {
		header = ui.Row(ui.Image(d.icon, iconSize/2, iconSize/2), ui.Label("canopy").Heading())
	}

	ctx.Window("Demo", nil, ui.View(
		header,
		ui.Label(fmt.Sprintf("Time: %s", clock)).Monospace(),
		ui.Label(fmt.Sprintf("%.0f seconds since midnight", secondsSinceMidnight(now))).Small().Weak(),
		ui.Separator(),
		ui.Checkbox("Show profiler", &s.ShowProfiler),
		ui.Checkbox("Continuous redraw", &s.Continuous),
		ui.Checkbox("Light theme", &d.light).OnChange(func(light bool) {
			if light {
				st.Visuals = ui.LightVisuals()
			} else {
				st.Visuals = ui.DarkVisuals()
			}
			d.apply(s, ctx, st)
		}),
		ui.Slider("Body text", &d.body, 8, 32).Format("%.0f pt"),
		ui.Separator(),
		ui.Row(
			ui.Button("Click me").OnClick(func() { d.clicks++ }),
			ui.Label(fmt.Sprintf("clicked %d times", d.clicks)),
		),
		ui.Row(
			ui.Button("Copy time").OnClick(func() { ctx.CopyText(clock) }),
			ui.Button("Reload style").OnClick(func() { s.ReloadStyle() }),
			ui.Button("About").OnClick(func() { d.about = true }),
		),
		ui.Label(fmt.Sprintf("style: %s", s.StylePath())).Small().Weak(),
	))

	ctx.Window("About", &d.about, ui.View(
		ui.Label("Window position and UI memory are saved to egui.yaml on exit. "+
			"Edit style.yaml while the app runs to restyle it.").Wrap(true).MaxWidth(280),
		ui.Label("Ctrl+P writes a profiler capture.").Small(),
	))

	if d.body != body {
		st = ctx.Style()
		st.Text.Body = d.body
		d.apply(s, ctx, st)
	}
}

func (d *demoLayer) apply(s *app.State, ctx *ui.Context, st ui.Style) {
	ctx.SetStyle(st)
	s.Painter.SetClearColor(st.Visuals.ClearColor)
}

func (d *demoLayer) OnEvent(s *app.State, ev core.Event) bool { return false }
