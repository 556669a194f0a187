//go:build !nodemo

package main

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hubastard/canopy/engine/app"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/core/coretest"
)

func TestSecondsSinceMidnight(t *testing.T) {
	at := time.Date(2024, 3, 1, 1, 2, 3, 500_000_000, time.UTC)
	if got := secondsSinceMidnight(at); got != 3723.5 {
		t.Fatalf("seconds = %v, want 3723.5", got)
	}
}

func TestIconDeltaIsPremultiplied(t *testing.T) {
	d, ok := iconDelta()
	if !ok {
		t.Fatalf("no icon")
	}
	if d.Width != iconSize || d.Height != iconSize || len(d.Pixels) != iconSize*iconSize*4 {
		t.Fatalf("delta %dx%d with %d bytes", d.Width, d.Height, len(d.Pixels))
	}
	for i := 0; i < len(d.Pixels); i += 4 {
		a := d.Pixels[i+3]
		if d.Pixels[i] > a || d.Pixels[i+1] > a || d.Pixels[i+2] > a {
			t.Fatalf("pixel %d not premultiplied: %v", i/4, d.Pixels[i:i+4])
		}
	}
}

func TestDemoLayerDraws(t *testing.T) {
	win := coretest.NewWindow(1280, 720)
	rend := coretest.NewRenderer()
	layer := &demoLayer{now: func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }}
	s, err := app.NewState(app.Options{
		ConfigDir: t.TempDir(),
		Layers:    []app.Layer{layer},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	},
		func(core.Config) (core.Window, error) { return win, nil },
		func(core.Window, core.Config) (core.Renderer, error) { return rend, nil },
	)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	defer s.Shutdown()

	s.Redraw()
	s.Redraw()
	if !layer.hasIcon {
		t.Fatalf("icon texture not allocated")
	}
	if _, ok := s.Painter.Texture(layer.icon); !ok {
		t.Fatalf("icon texture not uploaded")
	}
	if s.Painter.Stats().DrawCalls == 0 {
		t.Fatalf("demo drew nothing")
	}
	mem := s.UI.Memory()
	for _, name := range []string{"Demo", "About"} {
		if _, ok := mem.Areas[name]; !ok {
			t.Fatalf("window %q not shown", name)
		}
	}
}
