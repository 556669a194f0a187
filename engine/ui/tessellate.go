package ui

import (
	"math"

	"github.com/hubastard/canopy/engine/colors"
)

// Vertex is what the GPU receives: position in points, UV, premultiplied color.
type Vertex struct {
	Pos   Vec2
	UV    Vec2
	Color colors.Color
}

type Mesh struct {
	Indices  []uint32
	Vertices []Vertex
	Texture  TextureID
}

type ClippedPrimitive struct {
	Clip Rect
	Mesh Mesh
}

// Tessellator turns shapes into triangle meshes. Consecutive shapes that share
// a clip rectangle and texture end up in the same mesh.
type Tessellator struct {
	// WhiteUV is a texel of FontTexture that is opaque white.
	WhiteUV Vec2
}

func (t Tessellator) Tessellate(shapes []ClippedShape) []ClippedPrimitive {
	var out []ClippedPrimitive
	for _, cs := range shapes {
		if cs.Clip.IsEmpty() {
			continue
		}
		tex := shapeTexture(cs.Shape)
		if len(out) == 0 || out[len(out)-1].Clip != cs.Clip || out[len(out)-1].Mesh.Texture != tex {
			out = append(out, ClippedPrimitive{Clip: cs.Clip, Mesh: Mesh{Texture: tex}})
		}
		m := &out[len(out)-1].Mesh
		t.add(m, cs.Shape)
	}
	// drop primitives that produced nothing (fully transparent shapes)
	n := 0
	for _, p := range out {
		if len(p.Mesh.Indices) > 0 {
			out[n] = p
			n++
		}
	}
	return out[:n]
}

func shapeTexture(s Shape) TextureID {
	if img, ok := s.(ImageShape); ok {
		return img.Texture
	}
	return FontTexture
}

func (t Tessellator) add(m *Mesh, s Shape) {
	switch v := s.(type) {
	case RectShape:
		if !v.Fill.IsTransparent() {
			t.quad(m, v.Rect, Rect{Min: t.WhiteUV, Max: t.WhiteUV}, v.Fill)
		}
		if v.StrokeWidth > 0 && !v.Stroke.IsTransparent() {
			w := v.StrokeWidth
			r := v.Rect
			white := Rect{Min: t.WhiteUV, Max: t.WhiteUV}
			t.quad(m, Rect{Min: r.Min, Max: Vec2{r.Max[0], r.Min[1] + w}}, white, v.Stroke)
			t.quad(m, Rect{Min: Vec2{r.Min[0], r.Max[1] - w}, Max: r.Max}, white, v.Stroke)
			t.quad(m, Rect{Min: Vec2{r.Min[0], r.Min[1] + w}, Max: Vec2{r.Min[0] + w, r.Max[1] - w}}, white, v.Stroke)
			t.quad(m, Rect{Min: Vec2{r.Max[0] - w, r.Min[1] + w}, Max: Vec2{r.Max[0], r.Max[1] - w}}, white, v.Stroke)
		}
	case LineShape:
		t.line(m, v)
	case TextShape:
		if v.Color.IsTransparent() {
			return
		}
		for _, g := range v.Glyphs {
			rect := RectFromPosSize(Vec2{v.Pos[0] + g.X, v.Pos[1] + g.Y}, Vec2{g.W, g.H})
			t.quad(m, rect, Rect{Min: Vec2{g.U0, g.V0}, Max: Vec2{g.U1, g.V1}}, v.Color)
		}
	case ImageShape:
		t.quad(m, v.Rect, v.UV, v.Tint)
	}
}

func (t Tessellator) quad(m *Mesh, r Rect, uv Rect, c colors.Color) {
	if r.IsEmpty() {
		return
	}
	c = c.Premultiplied()
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: r.Min, UV: uv.Min, Color: c},
		Vertex{Pos: Vec2{r.Max[0], r.Min[1]}, UV: Vec2{uv.Max[0], uv.Min[1]}, Color: c},
		Vertex{Pos: Vec2{r.Min[0], r.Max[1]}, UV: Vec2{uv.Min[0], uv.Max[1]}, Color: c},
		Vertex{Pos: r.Max, UV: uv.Max, Color: c},
	)
	m.Indices = append(m.Indices,
		base+0, base+2, base+1,
		base+1, base+2, base+3,
	)
}

func (t Tessellator) line(m *Mesh, l LineShape) {
	if l.Width <= 0 || l.Color.IsTransparent() {
		return
	}
	dx := l.To[0] - l.From[0]
	dy := l.To[1] - l.From[1]
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	// perpendicular, half width
	nx := -dy / length * l.Width * 0.5
	ny := dx / length * l.Width * 0.5
	c := l.Color.Premultiplied()
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: Vec2{l.From[0] + nx, l.From[1] + ny}, UV: t.WhiteUV, Color: c},
		Vertex{Pos: Vec2{l.From[0] - nx, l.From[1] - ny}, UV: t.WhiteUV, Color: c},
		Vertex{Pos: Vec2{l.To[0] + nx, l.To[1] + ny}, UV: t.WhiteUV, Color: c},
		Vertex{Pos: Vec2{l.To[0] - nx, l.To[1] - ny}, UV: t.WhiteUV, Color: c},
	)
	m.Indices = append(m.Indices,
		base+0, base+1, base+2,
		base+2, base+1, base+3,
	)
}
