// Command canopy opens the application window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/hubastard/canopy/engine/app"
	"github.com/hubastard/canopy/engine/core"
	glbackend "github.com/hubastard/canopy/engine/gfx/gl"
	"github.com/hubastard/canopy/engine/platform"
)

func init() {
	// glfw must run on the main thread.
	runtime.LockOSThread()
}

type cliOptions struct {
	demo       bool
	profile    bool
	profiler   bool
	continuous bool
	configDir  string
	logLevel   slog.Level
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var o cliOptions
	var level string
	fs := flag.NewFlagSet("canopy", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if demoAvailable {
		fs.BoolVar(&o.demo, "demo", true, "show the bundled demo UI")
	}
	fs.BoolVar(&o.profile, "profile", true, "record profiler scopes")
	fs.BoolVar(&o.profiler, "profiler", false, "show the profiler window")
	fs.BoolVar(&o.continuous, "continuous", true, "redraw continuously instead of on change")
	fs.StringVar(&o.configDir, "config-dir", "config", "directory for egui.yaml and style.yaml")
	fs.StringVar(&level, "log-level", "info", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := o.logLevel.UnmarshalText([]byte(level)); err != nil {
		return o, fmt.Errorf("invalid -log-level %q", level)
	}
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: o.logLevel}))
	slog.SetDefault(logger)

	opts := app.Options{
		ConfigDir:      o.configDir,
		Continuous:     o.continuous,
		VSync:          true,
		Profile:        o.profile,
		ProfilerWindow: o.profiler,
		Logger:         logger,
	}
	if o.demo {
		opts.Layers = demoLayers()
	}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, logger)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := app.Run(opts, newWindow, newRenderer); err != nil {
		logger.Error("startup failed", "err", err)
		os.Exit(1)
	}
}
