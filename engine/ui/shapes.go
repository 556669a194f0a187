package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
)

// Shape is a paint primitive in points.
type Shape interface{ isShape() }

type RectShape struct {
	Rect        Rect
	Fill        colors.Color
	Stroke      colors.Color
	StrokeWidth float32
}

func (RectShape) isShape() {}

type LineShape struct {
	From, To Vec2
	Width    float32
	Color    colors.Color
}

func (LineShape) isShape() {}

// TextShape holds glyph quads laid out relative to Pos.
type TextShape struct {
	Pos    Vec2
	Glyphs []text.PlacedGlyph
	Color  colors.Color
}

func (TextShape) isShape() {}

type ImageShape struct {
	Rect    Rect
	Texture TextureID
	UV      Rect
	Tint    colors.Color
}

func (ImageShape) isShape() {}

type ClippedShape struct {
	Clip  Rect
	Shape Shape
}
