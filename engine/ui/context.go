package ui

import (
	"fmt"
	"sort"

	"github.com/hubastard/canopy/engine/text"
)

type pointerState struct {
	pos      Vec2
	valid    bool
	down     bool
	pressed  bool // went down this frame
	released bool // went up this frame
	delta    Vec2
}

// Context owns all UI state that lives across frames. A frame is
// BeginFrame, any number of Window/CentralPanel calls, then EndFrame.
type Context struct {
	style  Style
	memory Memory
	fonts  FontDefinitions

	atlas      *text.Atlas
	atlasPx    float32
	atlasPPP   float32
	fontsDirty bool
	failedPx   float32 // last atlas size that could not be built

	textures textureManager

	input   RawInput
	ppp     float32
	pointer pointerState
	keys    map[Key]bool

	activeID string
	focusID  string

	// Area rectangles of the previous frame, used for hit testing before
	// this frame's windows are laid out.
	prevAreas map[string]Rect
	curAreas  map[string]Rect
	layers    map[string]*[]ClippedShape
	shown     []string
	cascade   int

	platform       PlatformOutput
	repaint        bool
	inFrame        bool
	frameCount     uint64
	backgroundDraw []ClippedShape
}

func NewContext() *Context {
	return &Context{
		style:      DefaultStyle(),
		fonts:      DefaultFonts(),
		fontsDirty: true,
		textures:   newTextureManager(),
		ppp:        1,
		keys:       map[Key]bool{},
		prevAreas:  map[string]Rect{},
		curAreas:   map[string]Rect{},
		layers:     map[string]*[]ClippedShape{},
	}
}

func (c *Context) Style() Style            { return c.style }
func (c *Context) SetStyle(s Style)        { c.style = s; c.repaint = true }
func (c *Context) Memory() Memory          { return c.memory.Clone() }
func (c *Context) SetMemory(m Memory)      { c.memory = m.Clone() }
func (c *Context) PixelsPerPoint() float32 { return c.ppp }
func (c *Context) FrameCount() uint64      { return c.frameCount }

// Input is the raw input of the current frame.
func (c *Context) Input() RawInput { return c.input }

// SetFonts replaces the font set. The atlas is rebuilt immediately so bad
// font data is reported here rather than mid-frame.
func (c *Context) SetFonts(defs FontDefinitions) error {
	if err := defs.Validate(); err != nil {
		return err
	}
	atlas, err := defs.buildAtlas(c.atlasSize(c.ppp))
	if err != nil {
		return fmt.Errorf("build font atlas: %w", err)
	}
	c.fonts = defs
	c.installAtlas(atlas, c.ppp)
	return nil
}

func (c *Context) atlasSize(ppp float32) float32 {
	return maxf(c.style.Text.Heading, c.style.Text.Body) * ppp
}

func (c *Context) installAtlas(a *text.Atlas, ppp float32) {
	c.atlas.Close()
	c.atlas = a
	c.atlasPx = c.atlasSize(ppp)
	c.atlasPPP = ppp
	c.fontsDirty = false
	c.textures.live[FontTexture] = textureMeta{name: "font", width: a.Width, height: a.Height}
	c.textures.pending.Set = append(c.textures.pending.Set, TextureUpdate{
		ID:    FontTexture,
		Delta: ImageDelta{Width: a.Width, Height: a.Height, Pixels: a.Pixels, Filter: FilterLinear},
	})
	c.repaint = true
}

// BeginFrame starts a frame with the given input.
func (c *Context) BeginFrame(in RawInput) {
	if in.PixelsPerPoint <= 0 {
		in.PixelsPerPoint = 1
	}
	c.input = in
	c.ppp = in.PixelsPerPoint
	c.inFrame = true
	c.platform = PlatformOutput{}
	c.shown = c.shown[:0]
	c.curAreas = map[string]Rect{}
	c.layers = map[string]*[]ClippedShape{}
	c.backgroundDraw = nil
	c.cascade = 0

	if want := c.atlasSize(c.ppp); want != c.failedPx &&
		(c.atlas == nil || c.fontsDirty || c.atlasPPP != c.ppp || c.atlasPx != want) {
		if a, err := c.fonts.buildAtlas(want); err == nil {
			c.installAtlas(a, c.ppp)
			c.failedPx = 0
		} else {
			c.failedPx = want
		}
	}

	for k := range c.keys {
		delete(c.keys, k)
	}
	ptr := &c.pointer
	ptr.pressed, ptr.released = false, false
	from, fromValid := ptr.pos, ptr.valid
	for _, ev := range in.Events {
		switch ev.Kind {
		case EventPointerMoved:
			ptr.pos = ev.Pos
			ptr.valid = true
		case EventPointerButton:
			if ev.Button != PointerPrimary {
				continue
			}
			ptr.pos = ev.Pos
			ptr.valid = true
			if ev.Pressed {
				ptr.down, ptr.pressed = true, true
				// drags start where the button went down
				from, fromValid = ev.Pos, true
			} else if ptr.down {
				ptr.down, ptr.released = false, true
			}
		case EventPointerGone:
			ptr.valid = false
		case EventKey:
			if ev.Pressed {
				c.keys[ev.Key] = true
			}
		}
	}
	ptr.delta = Vec2{}
	if fromValid && ptr.valid {
		ptr.delta = ptr.pos.Sub(from)
	}
	if !in.Focused && !ptr.down {
		c.activeID = ""
	}
	if c.keys[KeyEscape] {
		c.focusID = ""
	}
	if ptr.pressed && c.layerAt(ptr.pos) != "" && c.activeID == "" {
		// windows come forward even when the press lands on no widget
		c.memory.raise(c.layerAt(ptr.pos))
	}
}

// EndFrame finishes the frame. Shapes are ordered background first, then
// windows bottom to top.
func (c *Context) EndFrame() FullOutput {
	c.inFrame = false
	c.frameCount++
	if !c.pointer.down {
		c.activeID = ""
	}
	c.prevAreas = c.curAreas

	shapes := append([]ClippedShape(nil), c.backgroundDraw...)
	order := c.visibleOrder()
	for _, name := range order {
		if l := c.layers[name]; l != nil {
			shapes = append(shapes, *l...)
		}
	}

	out := FullOutput{
		Platform:       c.platform,
		Textures:       c.textures.take(),
		Shapes:         shapes,
		PixelsPerPoint: c.ppp,
		NeedsRepaint:   c.repaint || c.activeID != "" || len(c.input.Events) > 0,
	}
	c.repaint = false
	return out
}

// visibleOrder is this frame's windows in stacking order.
func (c *Context) visibleOrder() []string {
	shown := make([]string, len(c.shown))
	copy(shown, c.shown)
	sort.SliceStable(shown, func(i, j int) bool {
		return c.memory.layer(shown[i]) < c.memory.layer(shown[j])
	})
	return shown
}

// layerAt returns the topmost window under pos from the last frame, or ""
// for the background.
func (c *Context) layerAt(pos Vec2) string {
	best, bestLayer := "", -1
	for name, r := range c.prevAreas {
		if !r.Contains(pos) {
			continue
		}
		if l := c.memory.layer(name); l > bestLayer {
			best, bestLayer = name, l
		}
	}
	return best
}

// Tessellate converts shapes into meshes ready for the painter.
func (c *Context) Tessellate(shapes []ClippedShape, pixelsPerPoint float32) []ClippedPrimitive {
	t := Tessellator{}
	if c.atlas != nil {
		t.WhiteUV = Vec2(c.atlas.WhiteUV)
	}
	prims := t.Tessellate(shapes)
	if pixelsPerPoint > 0 {
		// Snap clip rects to whole pixels so scissors match what was laid out.
		for i := range prims {
			prims[i].Clip = snapRect(prims[i].Clip, pixelsPerPoint)
		}
	}
	return prims
}

func snapRect(r Rect, ppp float32) Rect {
	round := func(v float32) float32 {
		px := v * ppp
		if px < 0 {
			return float32(int(px-0.5)) / ppp
		}
		return float32(int(px+0.5)) / ppp
	}
	return Rect{
		Min: Vec2{round(r.Min[0]), round(r.Min[1])},
		Max: Vec2{round(r.Max[0]), round(r.Max[1])},
	}
}

// WantsPointerInput reports whether the pointer is over UI or a widget holds it.
func (c *Context) WantsPointerInput() bool {
	if c.activeID != "" {
		return true
	}
	return c.pointer.valid && c.layerAt(c.pointer.pos) != ""
}

// WantsKeyboardInput reports whether a widget has keyboard focus.
func (c *Context) WantsKeyboardInput() bool { return c.focusID != "" }

// RequestRepaint asks for another frame after this one.
func (c *Context) RequestRepaint() { c.repaint = true }

// KeyPressed reports whether key went down this frame.
func (c *Context) KeyPressed(k Key) bool { return c.keys[k] }

// CopyText puts s on the clipboard at the end of the frame.
func (c *Context) CopyText(s string) { c.platform.CopiedText = s }

// SetCursor sets the cursor icon for this frame.
func (c *Context) SetCursor(icon CursorIcon) { c.platform.Cursor = icon }

// AllocTexture registers a user image; it is uploaded before the next paint.
func (c *Context) AllocTexture(name string, img ImageDelta) TextureID {
	return c.textures.alloc(name, img)
}

// SetTexture replaces a texture or patches part of it.
func (c *Context) SetTexture(id TextureID, img ImageDelta) { c.textures.set(id, img) }

// FreeTexture releases a texture once the current frame has been presented.
func (c *Context) FreeTexture(id TextureID) {
	if id == FontTexture {
		return
	}
	c.textures.free(id)
}

// ScreenRect is the usable area in points.
func (c *Context) ScreenRect() Rect { return c.input.ScreenRect }

func (c *Context) font(family FontFamily) *text.Font {
	if c.atlas == nil {
		return nil
	}
	if f, ok := c.atlas.Fonts[string(family)]; ok {
		return f
	}
	return c.atlas.Fonts[string(Proportional)]
}

// fontScale maps atlas pixels to points for text of the given size.
func (c *Context) fontScale(size float32) float32 {
	if c.atlasPx <= 0 {
		return 1
	}
	return size / c.atlasPx
}

func (c *Context) measureText(family FontFamily, size float32, s string) Vec2 {
	f := c.font(family)
	if f == nil {
		return Vec2{}
	}
	w, h := text.MeasureText(f, s, c.fontScale(size))
	return Vec2{w, h}
}

func (c *Context) lineHeight(family FontFamily, size float32) float32 {
	f := c.font(family)
	if f == nil {
		return size
	}
	return text.LineHeight(f) * c.fontScale(size)
}

// Close releases font faces.
func (c *Context) Close() {
	c.atlas.Close()
	c.atlas = nil
}
