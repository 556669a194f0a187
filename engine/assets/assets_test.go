package assets

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/hubastard/canopy/engine/ui"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestCompressRoundTrip(t *testing.T) {
	for _, in := range [][]byte{
		nil,
		[]byte("a"),
		bytes.Repeat([]byte("canopy "), 1000),
	} {
		blob, err := Compress(in)
		if err != nil {
			t.Fatalf("Compress(%d bytes): %v", len(in), err)
		}
		if got := binary.LittleEndian.Uint32(blob); int(got) != len(in) {
			t.Fatalf("size prefix = %d, want %d", got, len(in))
		}
		out, err := Decompress(blob)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("round trip mismatch for %d bytes", len(in))
		}
	}
}

func TestDecompressRejectsCorruptBlobs(t *testing.T) {
	if _, err := Decompress([]byte{1, 2}); err == nil {
		t.Fatalf("expected error for short blob")
	}
	blob, _ := Compress([]byte("hello hello hello hello"))
	binary.LittleEndian.PutUint32(blob, 5)
	if _, err := Decompress(blob); err == nil {
		t.Fatalf("expected error for wrong size prefix")
	}
	huge := []byte{0xff, 0xff, 0xff, 0xff, 0}
	if _, err := Decompress(huge); err == nil {
		t.Fatalf("expected error for oversized prefix")
	}
}

func pngICO(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return icoWith(img.Bounds().Dx(), img.Bounds().Dy(), 32, buf.Bytes())
}

func icoWith(w, h int, bpp uint16, payload []byte) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, [3]uint16{0, 1, 1})
	b.WriteByte(byte(w))
	b.WriteByte(byte(h))
	b.Write([]byte{0, 0})
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, bpp)
	binary.Write(&b, binary.LittleEndian, uint32(len(payload)))
	binary.Write(&b, binary.LittleEndian, uint32(22))
	b.Write(payload)
	return b.Bytes()
}

func TestPackIconTrailerAndRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(2, 1, color.NRGBA{0, 0, 255, 128})

	blob, err := PackIcon(pngICO(t, img))
	if err != nil {
		t.Fatalf("PackIcon: %v", err)
	}
	raw, err := Decompress(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 3*2*4+2 || raw[len(raw)-2] != 2 || raw[len(raw)-1] != 1 {
		t.Fatalf("trailer = %v (len %d), want [2 1]", raw[len(raw)-2:], len(raw))
	}

	icon, err := DecodeIcon(blob)
	if err != nil {
		t.Fatalf("DecodeIcon: %v", err)
	}
	if icon.Width != 3 || icon.Height != 2 {
		t.Fatalf("icon size %dx%d", icon.Width, icon.Height)
	}
	if !bytes.Equal(icon.RGBA, img.Pix) {
		t.Fatalf("pixels differ:\n got %v\nwant %v", icon.RGBA, img.Pix)
	}
	if c := icon.Image().NRGBAAt(2, 1); c != (color.NRGBA{0, 0, 255, 128}) {
		t.Fatalf("pixel (2,1) = %v", c)
	}
}

func TestParseICOBitmapEntry(t *testing.T) {
	// 2x2, 32 bpp, bottom-up rows, followed by the AND mask.
	const w, h = 2, 2
	var dib bytes.Buffer
	binary.Write(&dib, binary.LittleEndian, uint32(40))
	binary.Write(&dib, binary.LittleEndian, int32(w))
	binary.Write(&dib, binary.LittleEndian, int32(h*2))
	binary.Write(&dib, binary.LittleEndian, uint16(1))
	binary.Write(&dib, binary.LittleEndian, uint16(32))
	dib.Write(make([]byte, 24))
	// BGRA; bottom row first
	dib.Write([]byte{
		0, 0, 255, 255, 0, 255, 0, 128, // bottom: red opaque, green half
		255, 0, 0, 255, 0, 0, 0, 0, // top: blue opaque, transparent
	})
	dib.Write(make([]byte, 8)) // AND mask, 4-byte aligned rows

	img, err := ParseICO(icoWith(w, h, 32, dib.Bytes()))
	if err != nil {
		t.Fatalf("ParseICO: %v", err)
	}
	n := imageToNRGBA(img)
	if n.Rect.Dx() != w || n.Rect.Dy() != h {
		t.Fatalf("size %v", n.Rect)
	}
	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{0, 0, 255, 255}},
		{1, 0, color.NRGBA{0, 0, 0, 0}},
		{0, 1, color.NRGBA{255, 0, 0, 255}},
		{1, 1, color.NRGBA{0, 255, 0, 128}},
	}
	for _, c := range checks {
		if got := n.NRGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestParseICOErrors(t *testing.T) {
	cases := map[string][]byte{
		"short":     {0, 0},
		"not icon":  {0, 0, 2, 0, 1, 0},
		"empty":     {0, 0, 1, 0, 0, 0},
		"truncated": {0, 0, 1, 0, 1, 0, 1, 2},
		"bad range": icoWith(1, 1, 32, nil)[:22],
	}
	for name, data := range cases {
		if _, err := ParseICO(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestPackIconRejectsLargeImages(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 300, 1))
	if _, err := PackIcon(pngICO(t, img)); err == nil {
		t.Fatalf("expected error for a 300px icon")
	}
}

func TestBakedIconMatchesSource(t *testing.T) {
	src, err := os.ReadFile("icon.ico")
	if err != nil {
		t.Fatal(err)
	}
	blob, err := PackIcon(src)
	if err != nil {
		t.Fatal(err)
	}
	fresh, err := DecodeIcon(blob)
	if err != nil {
		t.Fatal(err)
	}
	baked, err := DecodeIcon(iconBlob)
	if err != nil {
		t.Fatalf("baked icon: %v", err)
	}
	if fresh.Width != baked.Width || fresh.Height != baked.Height || !bytes.Equal(fresh.RGBA, baked.RGBA) {
		t.Fatalf("baked icon is stale; run go generate ./engine/assets")
	}
	if _, err := AppIcon(); err != nil {
		t.Fatal(err)
	}
}

func TestFontsRoundTrip(t *testing.T) {
	defs := ui.FontDefinitions{
		FontData: map[string]ui.FontData{
			"a": {Data: []byte{1, 2, 3}, Tweak: ui.FontTweak{Scale: 0.5, YOffset: -1}},
			"b": {Data: []byte{4}},
		},
		Families: map[ui.FontFamily][]string{
			ui.Proportional: {"a", "b"},
			ui.Monospace:    {"b"},
		},
	}
	blob, err := PackFonts(defs)
	if err != nil {
		t.Fatalf("PackFonts: %v", err)
	}
	got, err := DecodeFonts(blob)
	if err != nil {
		t.Fatalf("DecodeFonts: %v", err)
	}
	if got.FontData["a"].Tweak != defs.FontData["a"].Tweak || !bytes.Equal(got.FontData["b"].Data, []byte{4}) {
		t.Fatalf("decoded %+v", got)
	}
	if strings.Join(got.Families[ui.Proportional], ",") != "a,b" {
		t.Fatalf("families = %v", got.Families)
	}

	defs.Families[ui.Monospace] = []string{"missing"}
	if _, err := PackFonts(defs); err == nil {
		t.Fatalf("expected error for unknown font in family")
	}
}

func TestBakedFontsMatchManifest(t *testing.T) {
	baked, err := Fonts()
	if err != nil {
		t.Fatalf("baked fonts: %v", err)
	}
	manifest, err := LoadFontManifest("fonts.yaml")
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	for name, want := range manifest.FontData {
		got, ok := baked.FontData[name]
		if !ok {
			t.Fatalf("baked bundle lacks %q", name)
		}
		if got.Tweak != want.Tweak || !bytes.Equal(got.Data, want.Data) {
			t.Fatalf("baked %q differs from manifest; run go generate ./engine/assets", name)
		}
	}
	if !bytes.Equal(baked.FontData["go-regular"].Data, goregular.TTF) || !bytes.Equal(baked.FontData["go-mono"].Data, gomono.TTF) {
		t.Fatalf("baked font data is not the Go fonts")
	}
	for fam, chain := range manifest.Families {
		if strings.Join(baked.Families[fam], ",") != strings.Join(chain, ",") {
			t.Fatalf("family %s = %v, want %v", fam, baked.Families[fam], chain)
		}
	}
}

func TestManifestErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]FontManifest{
		"no name":     {Fonts: []FontEntry{{Builtin: "gomono"}}},
		"no source":   {Fonts: []FontEntry{{Name: "x"}}},
		"bad builtin": {Fonts: []FontEntry{{Name: "x", Builtin: "comic"}}},
		"missing file": {
			Fonts:    []FontEntry{{Name: "x", File: "nope.ttf"}},
			Families: map[ui.FontFamily][]string{ui.Proportional: {"x"}, ui.Monospace: {"x"}},
		},
		"duplicate": {Fonts: []FontEntry{{Name: "x", Builtin: "gomono"}, {Name: "x", Builtin: "gomono"}}},
		"no family": {Fonts: []FontEntry{{Name: "x", Builtin: "gomono"}}},
	}
	for name, m := range cases {
		if _, err := m.Resolve(dir); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestShadersEmbedded(t *testing.T) {
	for _, name := range []string{"ui.vert", "ui.frag"} {
		src, err := LoadShader(name)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(src, "#version 330 core") {
			t.Fatalf("%s does not start with a version line", name)
		}
	}
	if _, err := LoadShader("missing.frag"); err == nil {
		t.Fatalf("expected error for missing shader")
	}
}
