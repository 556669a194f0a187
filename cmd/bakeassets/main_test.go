package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/canopy/engine/assets"
)

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	b, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBakeWritesDecodableBlobs(t *testing.T) {
	dir := t.TempDir()
	copyFile(t, "../../engine/assets/icon.ico", filepath.Join(dir, "icon.ico"))
	copyFile(t, "../../engine/assets/fonts.yaml", filepath.Join(dir, "fonts.yaml"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := bake(dir, "icon.ico", "fonts.yaml", logger); err != nil {
		t.Fatalf("bake: %v", err)
	}

	iconBlob, err := os.ReadFile(filepath.Join(dir, "baked", "icon-rgba.lz4"))
	if err != nil {
		t.Fatal(err)
	}
	icon, err := assets.DecodeIcon(iconBlob)
	if err != nil {
		t.Fatalf("decode icon: %v", err)
	}
	if icon.Width != 32 || icon.Height != 32 {
		t.Fatalf("icon is %dx%d, want 32x32", icon.Width, icon.Height)
	}

	fontBlob, err := os.ReadFile(filepath.Join(dir, "baked", "fonts.cbor.lz4"))
	if err != nil {
		t.Fatal(err)
	}
	defs, err := assets.DecodeFonts(fontBlob)
	if err != nil {
		t.Fatalf("decode fonts: %v", err)
	}
	if len(defs.FontData) != 2 {
		t.Fatalf("got %d fonts, want 2", len(defs.FontData))
	}
	if _, err := os.Stat(filepath.Join(dir, "baked", "fonts.cbor.lz4.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temporary file left behind")
	}
}

func TestBakeMissingIcon(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := bake(t.TempDir(), "icon.ico", "fonts.yaml", logger); err == nil {
		t.Fatalf("expected error without an icon")
	}
}
