package renderer2d

import (
	"math"
	"strings"
	"testing"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/core/coretest"
	"github.com/hubastard/canopy/engine/ui"
)

func newPainter(t *testing.T) (*Painter, *coretest.Renderer) {
	t.Helper()
	r := coretest.NewRenderer()
	if err := r.Configure(core.SurfaceConfig{Width: 200, Height: 100}); err != nil {
		t.Fatal(err)
	}
	p, err := New(r, "vs", "fs")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Reset()
	return p, r
}

func quad(tex ui.TextureID, clip ui.Rect) ui.ClippedPrimitive {
	return ui.ClippedPrimitive{
		Clip: clip,
		Mesh: ui.Mesh{
			Texture:  tex,
			Indices:  []uint32{0, 1, 2, 2, 1, 3},
			Vertices: make([]ui.Vertex, 4),
		},
	}
}

func whole(w, h int) ui.ImageDelta {
	return ui.ImageDelta{Width: w, Height: h, Pixels: make([]byte, w*h*4)}
}

func acquire(t *testing.T, r *coretest.Renderer) core.SurfaceTexture {
	t.Helper()
	st, err := r.AcquireFrame()
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func indexOf(calls []string, prefix string) int {
	for i, c := range calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

func TestPaintStepOrder(t *testing.T) {
	p, r := newPainter(t)
	screen := ui.Rect{Max: ui.Vec2{200, 100}}

	// frame 1: upload font and a user texture
	st := acquire(t, r)
	err := p.Paint(st, []ui.ClippedPrimitive{quad(ui.FontTexture, screen), quad(5, screen)}, ui.TexturesDelta{
		Set: []ui.TextureUpdate{{ID: ui.FontTexture, Delta: whole(4, 4)}, {ID: 5, Delta: whole(2, 2)}},
	}, 1)
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	want := []string{
		"acquire",
		"create texture 1 4x4",
		"create texture 2 2x2",
		"update mesh 64 12",
		"begin pass 1 clear",
		"draw 6",
		"draw 6",
		"end pass",
		"submit",
		"present 1",
	}
	if strings.Join(r.Calls, "|") != strings.Join(want, "|") {
		t.Fatalf("calls:\n got %q\nwant %q", r.Calls, want)
	}

	// frame 2: the user texture is still drawn and freed in the same frame
	r.Reset()
	st = acquire(t, r)
	err = p.Paint(st, []ui.ClippedPrimitive{quad(5, screen)}, ui.TexturesDelta{Free: []ui.TextureID{5}}, 1)
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	present := indexOf(r.Calls, "present")
	del := indexOf(r.Calls, "delete texture 2")
	if present < 0 || del < 0 || del < present {
		t.Fatalf("free did not follow present: %q", r.Calls)
	}
	if indexOf(r.Calls, "draw with freed texture") >= 0 {
		t.Fatalf("drew a freed texture: %q", r.Calls)
	}
	if _, ok := p.Texture(5); ok {
		t.Fatalf("texture 5 still tracked after free")
	}
	if got := p.Stats().TexturesFreed; got != 1 {
		t.Fatalf("TexturesFreed = %d", got)
	}
}

func TestIndicesRebasedAcrossPrimitives(t *testing.T) {
	p, r := newPainter(t)
	screen := ui.Rect{Max: ui.Vec2{200, 100}}
	st := acquire(t, r)
	err := p.Paint(st, []ui.ClippedPrimitive{quad(0, screen), quad(0, screen)}, ui.TexturesDelta{
		Set: []ui.TextureUpdate{{ID: 0, Delta: whole(1, 1)}},
	}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Draws) != 2 {
		t.Fatalf("draws = %d", len(r.Draws))
	}
	if r.Draws[1].FirstIndex != 6 || r.Draws[1].IndexCount != 6 {
		t.Fatalf("second draw = first %d count %d", r.Draws[1].FirstIndex, r.Draws[1].IndexCount)
	}
	mesh := p.mesh.(*coretest.Mesh)
	if mesh.Indices[6] != 4 {
		t.Fatalf("second primitive indices not rebased: %v", mesh.Indices)
	}
}

func TestScissorInPixels(t *testing.T) {
	p, r := newPainter(t)
	st := acquire(t, r)
	clip := ui.Rect{Min: ui.Vec2{10, 5}, Max: ui.Vec2{60, 200}}
	err := p.Paint(st, []ui.ClippedPrimitive{
		quad(0, clip),
		quad(0, ui.Rect{Min: ui.Vec2{150, 0}, Max: ui.Vec2{160, 10}}), // off screen at 2x
	}, ui.TexturesDelta{Set: []ui.TextureUpdate{{ID: 0, Delta: whole(1, 1)}}}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Draws) != 1 {
		t.Fatalf("draws = %d, want the off-screen primitive skipped", len(r.Draws))
	}
	want := core.Rect{X: 20, Y: 10, W: 100, H: 90}
	if r.Draws[0].Scissor != want {
		t.Fatalf("scissor = %+v, want %+v", r.Draws[0].Scissor, want)
	}
	proj := r.Draws[0].Uniforms["uProj"].([16]float32)
	// 100x50 points: bottom-right corner maps to (1,-1)
	x := proj[0]*100 + proj[4]*50 + proj[12]
	y := proj[1]*100 + proj[5]*50 + proj[13]
	if math.Abs(float64(x-1)) > 1e-5 || math.Abs(float64(y+1)) > 1e-5 {
		t.Fatalf("projection maps (100,50) to (%v,%v)", x, y)
	}
}

func TestUnknownTextureAndBadUploads(t *testing.T) {
	p, r := newPainter(t)
	screen := ui.Rect{Max: ui.Vec2{200, 100}}
	st := acquire(t, r)
	err := p.Paint(st, []ui.ClippedPrimitive{quad(9, screen)}, ui.TexturesDelta{
		Set: []ui.TextureUpdate{
			{ID: 3, Delta: ui.ImageDelta{Width: 2, Height: 2, Pixels: []byte{1}}},
			{ID: 4, Delta: ui.ImageDelta{Width: 1, Height: 1, Pixels: make([]byte, 4), Pos: &[2]int{0, 0}}},
		},
	}, 1)
	if err == nil {
		t.Fatalf("expected upload errors")
	}
	if indexOf(r.Calls, "present") < 0 {
		t.Fatalf("frame not presented after upload errors: %q", r.Calls)
	}
	if p.Stats().SkippedBatches != 1 || len(r.Draws) != 0 {
		t.Fatalf("primitive with unknown texture was drawn")
	}
}

func TestReuploadSameSizeUpdatesInPlace(t *testing.T) {
	p, r := newPainter(t)
	st := acquire(t, r)
	set := ui.TexturesDelta{Set: []ui.TextureUpdate{{ID: 0, Delta: whole(8, 8)}}}
	if err := p.Paint(st, nil, set, 1); err != nil {
		t.Fatal(err)
	}
	r.Reset()
	st = acquire(t, r)
	set.Set = append(set.Set, ui.TextureUpdate{ID: 0, Delta: ui.ImageDelta{Width: 2, Height: 2, Pixels: make([]byte, 16), Pos: &[2]int{1, 1}}})
	if err := p.Paint(st, nil, set, 1); err != nil {
		t.Fatal(err)
	}
	if indexOf(r.Calls, "create texture") >= 0 {
		t.Fatalf("same-size upload recreated the texture: %q", r.Calls)
	}
	if indexOf(r.Calls, "update texture 1") < 0 {
		t.Fatalf("no in-place update: %q", r.Calls)
	}

	r.Reset()
	st = acquire(t, r)
	if err := p.Paint(st, nil, ui.TexturesDelta{Set: []ui.TextureUpdate{{ID: 0, Delta: whole(16, 16)}}}, 1); err != nil {
		t.Fatal(err)
	}
	if indexOf(r.Calls, "delete texture 1") < 0 || indexOf(r.Calls, "create texture 2 16x16") < 0 {
		t.Fatalf("resize did not recreate the texture: %q", r.Calls)
	}
}

func TestClearColorPremultiplied(t *testing.T) {
	p, r := newPainter(t)
	p.SetClearColor(colors.Color{1, 1, 1, 0.5})
	if err := p.Paint(acquire(t, r), nil, ui.TexturesDelta{}, 1); err != nil {
		t.Fatal(err)
	}
	if r.LastClear != [4]float32{0.5, 0.5, 0.5, 0.5} {
		t.Fatalf("clear = %v", r.LastClear)
	}
	if indexOf(r.Calls, "update mesh") >= 0 {
		t.Fatalf("empty frame uploaded a mesh: %q", r.Calls)
	}
}
