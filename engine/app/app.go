// Package app runs the window: it owns every piece of application state and
// drives the event, redraw and persistence cycle.
package app

import (
	"log/slog"
	"runtime"

	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/persist"
)

const (
	DefaultTitle  = "canopy"
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

type Options struct {
	Title     string
	ConfigDir string
	// Continuous redraws on every loop iteration. When false the loop
	// sleeps until input, a resize, a style change or the UI asks for
	// another frame.
	Continuous bool
	VSync      bool
	// Profile enables scope recording; ProfilerWindow shows the overlay
	// at startup.
	Profile        bool
	ProfilerWindow bool
	// Layers are pushed in order, below the profiler overlay.
	Layers []Layer
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.ConfigDir == "" {
		o.ConfigDir = persist.DefaultDir
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

type (
	WindowFactory   func(core.Config) (core.Window, error)
	RendererFactory func(core.Window, core.Config) (core.Renderer, error)
)

// Run opens the window and drives it until it closes. Initialization errors
// are returned; everything after that is logged and survived.
func Run(opts Options, newWindow WindowFactory, newRenderer RendererFactory) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	s, err := NewState(opts, newWindow, newRenderer)
	if err != nil {
		return err
	}
	defer s.Shutdown()
	s.Loop()
	return nil
}
