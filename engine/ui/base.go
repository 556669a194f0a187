package ui

import (
	"math"

	"github.com/hubastard/canopy/engine/colors"
)

type SizeMode int

const (
	SizeModeFit SizeMode = iota
	SizeModeFixed
	SizeModeExpand
)

type Constraints struct {
	Min Vec2
	Max Vec2
}

type LayoutResult struct {
	Size Vec2
}

// UIElement is a node of a widget tree. The tree is rebuilt every frame:
// Layout sizes and places it, Draw paints it and handles interaction.
type UIElement interface {
	Node() *Base
	Layout(p *Painter, constraints Constraints) LayoutResult
	Draw(p *Painter)
}

type Base struct {
	parent    UIElement
	children  []UIElement
	position  Vec2
	size      Vec2
	color     colors.Color
	widthMod  SizeMode
	heightMod SizeMode
	widthVal  float32
	heightVal float32
	padding   [4]float32 // left, top, right, bottom
	id        string
}

func (b *Base) Parent() UIElement       { return b.parent }
func (b *Base) Children() []UIElement   { return b.children }
func (b *Base) Pos() Vec2               { return b.position }
func (b *Base) Size() Vec2              { return b.size }
func (b *Base) Rect() Rect              { return RectFromPosSize(b.position, b.size) }
func (b *Base) SetPos(x, y float32)     { b.position = Vec2{x, y} }
func (b *Base) SetSize(w, h float32)    { b.size = Vec2{w, h} }
func (b *Base) SetColor(c colors.Color) { b.color = c }
func (b *Base) Padding() [4]float32     { return b.padding }
func (b *Base) SetPadding(l, t, r, btm float32) {
	b.padding = [4]float32{l, t, r, btm}
}

func resolveConstraint(max float32) float32 {
	if max == 0 {
		return float32(math.MaxFloat32)
	}
	return max
}

func (b *Base) resolveAxis(mode SizeMode, fixed, content, min, max float32) float32 {
	switch mode {
	case SizeModeFixed:
		if fixed > 0 {
			return clamp(fixed, min, resolveConstraint(max))
		}
		return clamp(content, min, resolveConstraint(max))
	case SizeModeExpand:
		return clamp(resolveConstraint(max), min, resolveConstraint(max))
	default:
		return clamp(content, min, resolveConstraint(max))
	}
}

// resolve sizes b from its content size plus padding.
func (b *Base) resolve(content Vec2, c Constraints) Vec2 {
	w := b.resolveAxis(b.widthMod, b.widthVal, content[0]+b.padding[0]+b.padding[2], c.Min[0], c.Max[0])
	h := b.resolveAxis(b.heightMod, b.heightVal, content[1]+b.padding[1]+b.padding[3], c.Min[1], c.Max[1])
	b.SetSize(w, h)
	return b.size
}

// moveTo places b at pos and carries its already laid out descendants along.
func (b *Base) moveTo(pos Vec2) {
	d := pos.Sub(b.position)
	b.position = pos
	if d != (Vec2{}) {
		for _, c := range b.children {
			c.Node().shift(d)
		}
	}
}

func (b *Base) shift(d Vec2) {
	b.position = b.position.Add(d)
	for _, c := range b.children {
		c.Node().shift(d)
	}
}

func (b *Base) innerPosition() (float32, float32) {
	return b.position[0] + b.padding[0], b.position[1] + b.padding[1]
}

func (b *Base) innerSize() (float32, float32) {
	innerW := b.size[0] - b.padding[0] - b.padding[2]
	innerH := b.size[1] - b.padding[1] - b.padding[3]
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}
	return innerW, innerH
}

func (b *Base) innerRect() Rect {
	x, y := b.innerPosition()
	w, h := b.innerSize()
	return RectFromPosSize(Vec2{x, y}, Vec2{w, h})
}

// ------ Helper ------

type Common[T any] struct {
	owner T
	base  Base
}

func NewCommon[T any](owner T) Common[T] {
	return Common[T]{owner: owner}
}

func (c *Common[T]) Node() *Base              { return &c.base }
func (c *Common[T]) Position(x, y float32) T  { c.base.SetPos(x, y); return c.owner }
func (c *Common[T]) Size(w, h float32) T      { c.base.SetSize(w, h); return c.owner }
func (c *Common[T]) Color(col colors.Color) T { c.base.SetColor(col); return c.owner }

// ID gives the element a stable identity. Interactive elements without one
// are identified by their position in the tree.
func (c *Common[T]) ID(id string) T { c.base.id = id; return c.owner }

func (c *Common[T]) WidthFit() T {
	c.base.widthMod = SizeModeFit
	return c.owner
}

func (c *Common[T]) WidthFixed(width float32) T {
	c.base.widthMod = SizeModeFixed
	c.base.widthVal = width
	return c.owner
}

func (c *Common[T]) WidthExpand() T {
	c.base.widthMod = SizeModeExpand
	return c.owner
}

func (c *Common[T]) HeightFit() T {
	c.base.heightMod = SizeModeFit
	return c.owner
}

func (c *Common[T]) HeightFixed(height float32) T {
	c.base.heightMod = SizeModeFixed
	c.base.heightVal = height
	return c.owner
}

func (c *Common[T]) HeightExpand() T {
	c.base.heightMod = SizeModeExpand
	return c.owner
}

func (c *Common[T]) Padding(all float32) T {
	c.base.SetPadding(all, all, all, all)
	return c.owner
}

func (c *Common[T]) Padding2(horizontal, vertical float32) T {
	c.base.SetPadding(horizontal, vertical, horizontal, vertical)
	return c.owner
}

func (c *Common[T]) Padding4(left, top, right, bottom float32) T {
	c.base.SetPadding(left, top, right, bottom)
	return c.owner
}

func (c *Common[T]) Children(kids ...UIElement) T {
	for _, k := range kids {
		if k == nil {
			continue
		}
		k.Node().parent = any(c.owner).(UIElement)
		c.base.children = append(c.base.children, k)
	}
	return c.owner
}
