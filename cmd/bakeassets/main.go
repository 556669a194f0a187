// Command bakeassets packs the application icon and font set into the
// compressed blobs embedded by engine/assets. It runs from go generate.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hubastard/canopy/engine/assets"
)

func main() {
	fs := flag.NewFlagSet("bakeassets", flag.ExitOnError)
	dir := fs.String("dir", ".", "assets directory holding icon.ico and fonts.yaml")
	icon := fs.String("icon", "icon.ico", "icon file, relative to -dir")
	manifest := fs.String("fonts", "fonts.yaml", "font manifest, relative to -dir")
	_ = fs.Parse(os.Args[1:])

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := bake(*dir, *icon, *manifest, logger); err != nil {
		logger.Error("bake failed", "err", err)
		os.Exit(1)
	}
}

func bake(dir, iconName, manifestName string, logger *slog.Logger) error {
	out := filepath.Join(dir, "baked")
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}

	ico, err := os.ReadFile(filepath.Join(dir, iconName))
	if err != nil {
		return fmt.Errorf("read icon: %w", err)
	}
	iconBlob, err := assets.PackIcon(ico)
	if err != nil {
		return fmt.Errorf("pack icon: %w", err)
	}
	if err := writeFile(filepath.Join(out, "icon-rgba.lz4"), iconBlob); err != nil {
		return err
	}
	logger.Info("baked icon", "bytes", len(iconBlob))

	defs, err := assets.LoadFontManifest(filepath.Join(dir, manifestName))
	if err != nil {
		return err
	}
	fontBlob, err := assets.PackFonts(defs)
	if err != nil {
		return fmt.Errorf("pack fonts: %w", err)
	}
	if err := writeFile(filepath.Join(out, "fonts.cbor.lz4"), fontBlob); err != nil {
		return err
	}
	logger.Info("baked fonts", "fonts", len(defs.FontData), "bytes", len(fontBlob))
	return nil
}

// writeFile replaces path through a temporary file and a rename.
func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
