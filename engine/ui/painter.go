package ui

import (
	"strconv"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
)

// Painter draws into one layer of the frame and resolves interaction for the
// widgets of that layer.
type Painter struct {
	ctx    *Context
	layer  string
	clip   Rect
	shapes *[]ClippedShape
	seq    *int // shared with clipped copies
}

func newPainter(c *Context, layer string, clip Rect, shapes *[]ClippedShape) *Painter {
	return &Painter{ctx: c, layer: layer, clip: clip, shapes: shapes, seq: new(int)}
}

func (p *Painter) Context() *Context { return p.ctx }
func (p *Painter) Style() *Style     { return &p.ctx.style }
func (p *Painter) Clip() Rect        { return p.clip }

// WithClip returns a painter for the same layer clipped to r as well.
func (p *Painter) WithClip(r Rect) *Painter {
	c := *p
	c.clip = p.clip.Intersect(r)
	return &c
}

func (p *Painter) add(s Shape) {
	*p.shapes = append(*p.shapes, ClippedShape{Clip: p.clip, Shape: s})
}

func (p *Painter) Rect(r Rect, fill colors.Color) {
	p.add(RectShape{Rect: r, Fill: fill})
}

func (p *Painter) RectStroke(r Rect, stroke colors.Color, width float32) {
	p.add(RectShape{Rect: r, Stroke: stroke, StrokeWidth: width})
}

func (p *Painter) Line(from, to Vec2, width float32, c colors.Color) {
	p.add(LineShape{From: from, To: to, Width: width, Color: c})
}

func (p *Painter) Image(r Rect, tex TextureID, tint colors.Color) {
	p.add(ImageShape{Rect: r, Texture: tex, UV: Rect{Max: Vec2{1, 1}}, Tint: tint})
}

// Text paints s with its top-left corner at pos and returns its size.
func (p *Painter) Text(pos Vec2, family FontFamily, size float32, s string, c colors.Color) Vec2 {
	f := p.ctx.font(family)
	if f == nil || s == "" {
		return Vec2{}
	}
	glyphs, w, h := text.Layout(f, s, p.ctx.fontScale(size), nil)
	if len(glyphs) > 0 {
		p.add(TextShape{Pos: pos, Glyphs: glyphs, Color: c})
	}
	return Vec2{w, h}
}

// MeasureText returns the size s would have when painted.
func (p *Painter) MeasureText(family FontFamily, size float32, s string) Vec2 {
	return p.ctx.measureText(family, size, s)
}

// autoID names an element by the order it is drawn in within the layer.
func (p *Painter) autoID(b *Base, kind string) string {
	if b.id != "" {
		return p.layer + "/" + b.id
	}
	*p.seq++
	return p.layer + "/" + kind + "#" + strconv.Itoa(*p.seq)
}

// Interact resolves pointer interaction for a widget covering r.
func (p *Painter) Interact(id string, r Rect) Response {
	return p.ctx.interact(p.layer, id, r.Intersect(p.clip))
}
