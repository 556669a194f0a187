package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hubastard/canopy/engine/ui"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"
)

// builtinFonts can be named in a manifest instead of a file.
var builtinFonts = map[string][]byte{
	"goregular": goregular.TTF,
	"gomono":    gomono.TTF,
}

type FontEntry struct {
	Name    string       `yaml:"name"`
	File    string       `yaml:"file,omitempty"`
	Builtin string       `yaml:"builtin,omitempty"`
	Tweak   ui.FontTweak `yaml:"tweak,omitempty"`
}

// FontManifest lists the fonts to bake and the fallback order per family.
type FontManifest struct {
	Fonts    []FontEntry                `yaml:"fonts"`
	Families map[ui.FontFamily][]string `yaml:"families"`
}

// LoadFontManifest reads a manifest and the font files it names, relative
// to the manifest's directory.
func LoadFontManifest(path string) (ui.FontDefinitions, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ui.FontDefinitions{}, fmt.Errorf("read font manifest: %w", err)
	}
	var m FontManifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return ui.FontDefinitions{}, fmt.Errorf("parse font manifest %s: %w", path, err)
	}
	return m.Resolve(filepath.Dir(path))
}

// Resolve loads font data; file paths are relative to dir.
func (m FontManifest) Resolve(dir string) (ui.FontDefinitions, error) {
	defs := ui.FontDefinitions{
		FontData: make(map[string]ui.FontData, len(m.Fonts)),
		Families: m.Families,
	}
	for _, f := range m.Fonts {
		if f.Name == "" {
			return ui.FontDefinitions{}, fmt.Errorf("font entry without a name")
		}
		if _, dup := defs.FontData[f.Name]; dup {
			return ui.FontDefinitions{}, fmt.Errorf("font %q listed twice", f.Name)
		}
		var data []byte
		switch {
		case f.Builtin != "":
			b, ok := builtinFonts[f.Builtin]
			if !ok {
				return ui.FontDefinitions{}, fmt.Errorf("font %q: unknown builtin %q", f.Name, f.Builtin)
			}
			data = b
		case f.File != "":
			b, err := os.ReadFile(filepath.Join(dir, f.File))
			if err != nil {
				return ui.FontDefinitions{}, fmt.Errorf("font %q: %w", f.Name, err)
			}
			data = b
		default:
			return ui.FontDefinitions{}, fmt.Errorf("font %q: needs a file or builtin", f.Name)
		}
		defs.FontData[f.Name] = ui.FontData{Data: data, Tweak: f.Tweak}
	}
	if err := defs.Validate(); err != nil {
		return ui.FontDefinitions{}, err
	}
	return defs, nil
}
