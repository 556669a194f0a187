package ui

import (
	"fmt"
	"sort"

	"github.com/hubastard/canopy/engine/text"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

type FontFamily string

const (
	Proportional FontFamily = "proportional"
	Monospace    FontFamily = "monospace"
)

type FontTweak struct {
	Scale                float32 `cbor:"scale" yaml:"scale,omitempty"`
	YOffsetFactor        float32 `cbor:"y_offset_factor" yaml:"y_offset_factor,omitempty"`
	YOffset              float32 `cbor:"y_offset" yaml:"y_offset,omitempty"`
	BaselineOffsetFactor float32 `cbor:"baseline_offset_factor" yaml:"baseline_offset_factor,omitempty"`
}

type FontData struct {
	Data  []byte    `cbor:"data"`
	Tweak FontTweak `cbor:"tweak"`
}

// FontDefinitions names font files and, per family, the fallback order in
// which they are searched for a glyph.
type FontDefinitions struct {
	FontData map[string]FontData     `cbor:"font_data"`
	Families map[FontFamily][]string `cbor:"families"`
}

// DefaultFonts uses the Go fonts.
func DefaultFonts() FontDefinitions {
	return FontDefinitions{
		FontData: map[string]FontData{
			"go-regular": {Data: goregular.TTF},
			"go-mono":    {Data: gomono.TTF},
		},
		Families: map[FontFamily][]string{
			Proportional: {"go-regular", "go-mono"},
			Monospace:    {"go-mono", "go-regular"},
		},
	}
}

func (d FontDefinitions) Validate() error {
	for _, fam := range []FontFamily{Proportional, Monospace} {
		names, ok := d.Families[fam]
		if !ok || len(names) == 0 {
			return fmt.Errorf("font family %q is not defined", fam)
		}
	}
	for fam, names := range d.Families {
		for _, n := range names {
			if _, ok := d.FontData[n]; !ok {
				return fmt.Errorf("font family %q references unknown font %q", fam, n)
			}
		}
	}
	return nil
}

func (d FontDefinitions) buildAtlas(sizePx float32) (*text.Atlas, error) {
	names := make([]string, 0, len(d.FontData))
	for n := range d.FontData {
		names = append(names, n)
	}
	sort.Strings(names)
	sources := make([]text.Source, 0, len(names))
	for _, n := range names {
		fd := d.FontData[n]
		sources = append(sources, text.Source{
			Name: n,
			Data: fd.Data,
			Tweak: text.Tweak{
				Scale:                fd.Tweak.Scale,
				YOffsetFactor:        fd.Tweak.YOffsetFactor,
				YOffset:              fd.Tweak.YOffset,
				BaselineOffsetFactor: fd.Tweak.BaselineOffsetFactor,
			},
		})
	}
	families := make(map[string][]string, len(d.Families))
	for fam, chain := range d.Families {
		families[string(fam)] = chain
	}
	return text.BuildAtlas(sources, families, sizePx, nil)
}
