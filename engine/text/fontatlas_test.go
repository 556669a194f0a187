package text

import (
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func testAtlas(t *testing.T) *Atlas {
	t.Helper()
	sources := []Source{
		{Name: "regular", Data: goregular.TTF},
		{Name: "mono", Data: gomono.TTF, Tweak: Tweak{Scale: 0.9, YOffsetFactor: 0.05}},
	}
	families := map[string][]string{
		"proportional": {"regular", "mono"},
		"monospace":    {"mono", "regular"},
	}
	a, err := BuildAtlas(sources, families, 16, nil)
	if err != nil {
		t.Fatalf("build atlas: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestBuildAtlasProducesFamilies(t *testing.T) {
	a := testAtlas(t)
	if len(a.Pixels) != a.Width*a.Height*4 {
		t.Fatalf("pixel buffer %d does not match %dx%d", len(a.Pixels), a.Width, a.Height)
	}
	for _, fam := range []string{"proportional", "monospace"} {
		f, ok := a.Fonts[fam]
		if !ok {
			t.Fatalf("missing family %q", fam)
		}
		if _, ok := f.Glyphs['A']; !ok {
			t.Fatalf("family %q has no glyph for 'A'", fam)
		}
		if LineHeight(f) <= 0 {
			t.Fatalf("family %q has non-positive line height", fam)
		}
	}
}

func TestBuildAtlasWhiteTexelIsOpaque(t *testing.T) {
	a := testAtlas(t)
	x := int(a.WhiteUV[0] * float32(a.Width))
	y := int(a.WhiteUV[1] * float32(a.Height))
	i := (y*a.Width + x) * 4
	for c := 0; c < 4; c++ {
		if a.Pixels[i+c] != 255 {
			t.Fatalf("white texel channel %d = %d", c, a.Pixels[i+c])
		}
	}
}

func TestBuildAtlasRejectsUnknownFont(t *testing.T) {
	_, err := BuildAtlas([]Source{{Name: "regular", Data: goregular.TTF}},
		map[string][]string{"proportional": {"missing"}}, 16, nil)
	if err == nil {
		t.Fatalf("expected error for unknown font in family")
	}
}

func TestBuildAtlasRejectsGarbageFont(t *testing.T) {
	_, err := BuildAtlas([]Source{{Name: "bad", Data: []byte("not a font")}},
		map[string][]string{"proportional": {"bad"}}, 16, nil)
	if err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMonospaceAdvancesAreEqual(t *testing.T) {
	f := testAtlas(t).Fonts["monospace"]
	if f.Glyphs['i'].Advance != f.Glyphs['W'].Advance {
		t.Fatalf("expected monospace advances, got i=%v W=%v", f.Glyphs['i'].Advance, f.Glyphs['W'].Advance)
	}
}
