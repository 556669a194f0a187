package main

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"testing"
)

func TestParseFlagsDefaults(t *testing.T) {
	o, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if o.demo != demoAvailable {
		t.Fatalf("demo = %v, want %v", o.demo, demoAvailable)
	}
	if !o.profile || o.profiler || !o.continuous {
		t.Fatalf("defaults = %+v", o)
	}
	if o.configDir != "config" || o.logLevel != slog.LevelInfo {
		t.Fatalf("config dir %q, level %v", o.configDir, o.logLevel)
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	o, err := parseFlags([]string{
		"--profile=false", "--profiler", "--continuous=false",
		"--config-dir", "/tmp/canopy", "--log-level", "debug",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if o.profile || !o.profiler || o.continuous || o.configDir != "/tmp/canopy" || o.logLevel != slog.LevelDebug {
		t.Fatalf("parsed = %+v", o)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--log-level", "loud"},
		{"--nope"},
		{"extra"},
	} {
		if _, err := parseFlags(args, io.Discard); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
	if _, err := parseFlags([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("-h error = %v, want flag.ErrHelp", err)
	}
}
