package ui

import "testing"

var screen = Rect{Max: Vec2{800, 600}}

func frame(ctx *Context, events []Event, build func()) FullOutput {
	ctx.BeginFrame(RawInput{ScreenRect: screen, PixelsPerPoint: 1, Events: events, Focused: true})
	if build != nil {
		build()
	}
	return ctx.EndFrame()
}

func press(pos Vec2) []Event {
	return []Event{
		{Kind: EventPointerMoved, Pos: pos},
		{Kind: EventPointerButton, Pos: pos, Button: PointerPrimary, Pressed: true},
	}
}

func release(pos Vec2) []Event {
	return []Event{{Kind: EventPointerButton, Pos: pos, Button: PointerPrimary}}
}

func TestFontTextureSentOnceAndOnScaleChange(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	out := frame(ctx, nil, nil)
	if len(out.Textures.Set) != 1 || out.Textures.Set[0].ID != FontTexture {
		t.Fatalf("first frame sets = %+v, want the font texture", out.Textures.Set)
	}
	d := out.Textures.Set[0].Delta
	if !d.IsWhole() || len(d.Pixels) != d.Width*d.Height*4 {
		t.Fatalf("font delta not a whole RGBA image: %dx%d, %d bytes", d.Width, d.Height, len(d.Pixels))
	}

	out = frame(ctx, nil, nil)
	if !out.Textures.IsEmpty() {
		t.Fatalf("second frame textures = %+v, want none", out.Textures)
	}

	ctx.BeginFrame(RawInput{ScreenRect: screen, PixelsPerPoint: 2, Focused: true})
	out = ctx.EndFrame()
	if len(out.Textures.Set) != 1 || out.Textures.Set[0].Delta.Width <= d.Width && out.Textures.Set[0].Delta.Height <= d.Height {
		t.Fatalf("scale change did not resend a larger font texture: %+v", out.Textures.Set)
	}
	if out.PixelsPerPoint != 2 {
		t.Fatalf("PixelsPerPoint = %v, want 2", out.PixelsPerPoint)
	}
}

func TestUserTextureFreedAfterAlloc(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()
	frame(ctx, nil, nil)

	id := ctx.AllocTexture("swatch", ImageDelta{Width: 1, Height: 1, Pixels: []byte{255, 0, 0, 255}})
	if id == FontTexture {
		t.Fatalf("user texture got the font id")
	}
	out := frame(ctx, nil, nil)
	if len(out.Textures.Set) != 1 || out.Textures.Set[0].ID != id {
		t.Fatalf("sets = %+v, want texture %d", out.Textures.Set, id)
	}

	ctx.FreeTexture(id)
	ctx.FreeTexture(id)
	ctx.FreeTexture(FontTexture)
	out = frame(ctx, nil, nil)
	if len(out.Textures.Free) != 1 || out.Textures.Free[0] != id {
		t.Fatalf("frees = %v, want [%d]", out.Textures.Free, id)
	}
}

func TestButtonClickFiresOnRelease(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	clicks := 0
	var btn *UIButton
	build := func() {
		btn = Button("Press me").OnClick(func() { clicks++ })
		ctx.Window("Demo", nil, View(Label("hello"), btn))
	}

	frame(ctx, nil, build)
	center := btn.Response().Rect.Center()

	frame(ctx, press(center), build)
	if clicks != 0 {
		t.Fatalf("clicked on press")
	}
	if !btn.Response().Active {
		t.Fatalf("button not active while held")
	}
	if !ctx.WantsPointerInput() {
		t.Fatalf("UI should want the pointer while a button is held")
	}

	out := frame(ctx, release(center), build)
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}
	if !out.NeedsRepaint {
		t.Fatalf("input frame should request a repaint")
	}
	frame(ctx, nil, build)
	if clicks != 1 {
		t.Fatalf("clicks = %d after idle frame, want 1", clicks)
	}
}

func TestReleaseOutsideDoesNotClick(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	clicks := 0
	var btn *UIButton
	build := func() {
		btn = Button("Press me").OnClick(func() { clicks++ })
		ctx.Window("Demo", nil, btn)
	}
	frame(ctx, nil, build)
	frame(ctx, press(btn.Response().Rect.Center()), build)
	frame(ctx, append([]Event{{Kind: EventPointerMoved, Pos: Vec2{700, 500}}}, release(Vec2{700, 500})...), build)
	if clicks != 0 {
		t.Fatalf("clicks = %d, want 0", clicks)
	}
}

func TestCheckboxToggles(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	on := false
	var cb *UICheckbox
	build := func() {
		cb = Checkbox("enabled", &on)
		ctx.CentralPanel(View(cb))
	}
	frame(ctx, nil, build)
	pos := cb.base.Rect().Center()
	frame(ctx, press(pos), build)
	frame(ctx, release(pos), build)
	if !on {
		t.Fatalf("checkbox did not toggle")
	}
	frame(ctx, press(pos), build)
	frame(ctx, release(pos), build)
	if on {
		t.Fatalf("checkbox did not toggle back")
	}
}

func TestSliderDragAndKeys(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	v := float32(0)
	var s *UISlider
	build := func() {
		s = Slider("value", &v, 0, 10).TrackWidth(100)
		ctx.CentralPanel(View(s))
	}
	frame(ctx, nil, build)
	inner := s.base.innerRect()
	y := inner.Center()[1]

	frame(ctx, press(Vec2{inner.Min[0] + 50, y}), build)
	if v < 4.9 || v > 5.1 {
		t.Fatalf("value after press at middle = %v, want 5", v)
	}
	frame(ctx, []Event{{Kind: EventPointerMoved, Pos: Vec2{inner.Min[0] + 500, y}}}, build)
	if v != 10 {
		t.Fatalf("value dragged past the end = %v, want 10", v)
	}
	frame(ctx, release(Vec2{inner.Min[0] + 500, y}), build)
	if !ctx.WantsKeyboardInput() {
		t.Fatalf("slider should keep keyboard focus after a click")
	}

	frame(ctx, []Event{{Kind: EventKey, Key: KeyArrowLeft, Pressed: true}}, build)
	if v < 9.85 || v > 9.95 {
		t.Fatalf("value after left arrow = %v, want 9.9", v)
	}
	frame(ctx, []Event{{Kind: EventKey, Key: KeyEscape, Pressed: true}}, build)
	if ctx.WantsKeyboardInput() {
		t.Fatalf("escape should drop focus")
	}
}

func titleBar(ctx *Context, name string) Rect {
	st := ctx.Style()
	r := ctx.prevAreas[name]
	h := ctx.lineHeight(Proportional, st.Text.Body) + 2*st.Spacing.ButtonPadding[1]
	return Rect{Min: r.Min, Max: Vec2{r.Max[0], r.Min[1] + h}}
}

func TestWindowDragUpdatesMemory(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	build := func() { ctx.Window("Tools", nil, Label("content")) }
	frame(ctx, nil, build)
	start := ctx.Memory().Areas["Tools"].Pos

	tb := titleBar(ctx, "Tools")
	grab := Vec2{tb.Center()[0], tb.Center()[1]}
	frame(ctx, press(grab), build)
	to := grab.Add(Vec2{50, 20})
	frame(ctx, []Event{{Kind: EventPointerMoved, Pos: to}}, build)
	frame(ctx, release(to), build)

	got := ctx.Memory().Areas["Tools"].Pos
	want := start.Add(Vec2{50, 20})
	if got != want {
		t.Fatalf("window pos = %v, want %v", got, want)
	}

	// The stored position is used by a fresh context.
	other := NewContext()
	defer other.Close()
	other.SetMemory(ctx.Memory())
	frame(other, nil, func() { other.Window("Tools", nil, Label("content")) })
	if other.prevAreas["Tools"].Min != want {
		t.Fatalf("restored window at %v, want %v", other.prevAreas["Tools"].Min, want)
	}
}

func TestWindowCloseAndCollapse(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	open := true
	build := func() { ctx.Window("Closable", &open, Label("body")) }
	frame(ctx, nil, build)

	st := ctx.Style()
	tb := titleBar(ctx, "Closable")
	icon := st.Spacing.IconSize
	pad := st.Spacing.WindowPadding

	collapse := Vec2{tb.Min[0] + pad[0] + icon*0.5, tb.Center()[1]}
	full := ctx.prevAreas["Closable"].Height()
	frame(ctx, press(collapse), build)
	frame(ctx, release(collapse), build)
	if !ctx.Memory().Areas["Closable"].Collapsed {
		t.Fatalf("window not collapsed")
	}
	if h := ctx.prevAreas["Closable"].Height(); h >= full {
		t.Fatalf("collapsed height %v, want less than %v", h, full)
	}

	tb = titleBar(ctx, "Closable")
	closeAt := Vec2{tb.Max[0] - pad[0] - icon*0.5, tb.Center()[1]}
	frame(ctx, press(closeAt), build)
	frame(ctx, release(closeAt), build)
	if open {
		t.Fatalf("window still open")
	}
	out := frame(ctx, nil, build)
	if len(out.Shapes) != 0 {
		t.Fatalf("closed window still painted %d shapes", len(out.Shapes))
	}
}

func TestPressRaisesWindow(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	build := func() {
		ctx.Window("A", nil, Label("first window with some width"))
		ctx.Window("B", nil, Label("second window"))
	}
	frame(ctx, nil, build)
	mem := ctx.Memory()
	if mem.Order[len(mem.Order)-1] != "B" {
		t.Fatalf("order = %v, want B on top", mem.Order)
	}

	// A peeks out above and left of B because of the cascade.
	a := ctx.prevAreas["A"]
	pos := Vec2{a.Min[0] + 2, a.Max[1] - 2}
	if ctx.prevAreas["B"].Contains(pos) {
		pos = Vec2{a.Min[0] + 2, a.Min[1] + 2}
	}
	frame(ctx, press(pos), build)
	frame(ctx, release(pos), build)
	mem = ctx.Memory()
	if mem.Order[len(mem.Order)-1] != "A" {
		t.Fatalf("order = %v, want A on top", mem.Order)
	}
}

func TestPlatformOutput(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	var btn *UIButton
	build := func() {
		btn = Button("copy").OnClick(func() { ctx.CopyText("12:00:00") })
		ctx.CentralPanel(btn)
	}
	frame(ctx, nil, build)
	pos := btn.Response().Rect.Center()
	out := frame(ctx, []Event{{Kind: EventPointerMoved, Pos: pos}}, build)
	if out.Platform.Cursor != CursorPointingHand {
		t.Fatalf("cursor = %v, want pointing hand", out.Platform.Cursor)
	}
	frame(ctx, press(pos), build)
	out = frame(ctx, release(pos), build)
	if out.Platform.CopiedText != "12:00:00" {
		t.Fatalf("copied = %q", out.Platform.CopiedText)
	}
	out = frame(ctx, nil, build)
	if out.Platform.CopiedText != "" {
		t.Fatalf("copied text repeated on the next frame")
	}
}

func TestIdleFrameNeedsNoRepaint(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()
	frame(ctx, nil, nil)
	out := frame(ctx, nil, func() { ctx.Window("Idle", nil, Label("x")) })
	if out.NeedsRepaint {
		t.Fatalf("idle frame requested a repaint")
	}
	ctx.RequestRepaint()
	if out = frame(ctx, nil, nil); !out.NeedsRepaint {
		t.Fatalf("RequestRepaint ignored")
	}
}

func layoutRoot(ctx *Context, root UIElement) {
	var shapes []ClippedShape
	root.Layout(newPainter(ctx, "layout", screen, &shapes), Constraints{Max: screen.Size()})
}

func wantRect(t *testing.T, name string, e UIElement, pos, size Vec2) {
	t.Helper()
	n := e.Node()
	if n.Pos() != pos || n.Size() != size {
		t.Fatalf("%s at %v size %v, want %v size %v", name, n.Pos(), n.Size(), pos, size)
	}
}

func TestViewLayout(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	t.Run("align", func(t *testing.T) {
		a, b := Image(1, 10, 20), Image(1, 30, 10)
		v := View(a, b).Gap(4).Padding(5).WidthFixed(200).HeightFixed(100).
			AlignMain(AlignCenter).AlignCross(AlignEnd)
		layoutRoot(ctx, v)
		wantRect(t, "view", v, Vec2{0, 0}, Vec2{200, 100})
		wantRect(t, "a", a, Vec2{185, 33}, Vec2{10, 20})
		wantRect(t, "b", b, Vec2{165, 57}, Vec2{30, 10})
	})

	t.Run("expand and stretch", func(t *testing.T) {
		a, b, c := Image(1, 20, 10), Image(2, 5, 5).WidthExpand(), Image(3, 10, 10)
		v := View(a, b, c).FlowDirection(LayoutHorizontal).Gap(2).
			WidthFixed(100).HeightFixed(40).AlignCross(AlignStretch)
		layoutRoot(ctx, v)
		wantRect(t, "a", a, Vec2{0, 0}, Vec2{20, 40})
		wantRect(t, "b", b, Vec2{22, 0}, Vec2{66, 40})
		wantRect(t, "c", c, Vec2{90, 0}, Vec2{10, 40})
	})

	t.Run("main end", func(t *testing.T) {
		a := Image(1, 10, 10)
		v := View(a).FlowDirection(LayoutHorizontal).WidthFixed(50).AlignMain(AlignEnd)
		layoutRoot(ctx, v)
		wantRect(t, "a", a, Vec2{40, 0}, Vec2{10, 10})
	})

	t.Run("nested rows follow their parent", func(t *testing.T) {
		img := Image(1, 8, 8)
		row := Row(img).Gap(0)
		v := View(Image(2, 10, 10), row).Gap(0).Position(50, 60)
		layoutRoot(ctx, v)
		wantRect(t, "row", row, Vec2{50, 70}, Vec2{8, 8})
		wantRect(t, "image", img, Vec2{50, 70}, Vec2{8, 8})
	})
}

func TestUnbuildableAtlasKeepsPreviousFont(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()
	frame(ctx, nil, nil)
	before := ctx.atlas

	st := ctx.Style()
	st.Text.Heading = 3000
	ctx.SetStyle(st)
	for i := 0; i < 2; i++ {
		out := frame(ctx, nil, func() { ctx.Window("w", nil, Label("x")) })
		if len(out.Textures.Set) != 0 {
			t.Fatalf("frame %d sent a font texture for an oversized atlas", i)
		}
	}
	if ctx.atlas != before || ctx.failedPx != ctx.atlasSize(1) {
		t.Fatalf("failed atlas size not remembered: failedPx=%v", ctx.failedPx)
	}
}
