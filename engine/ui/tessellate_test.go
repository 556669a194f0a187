package ui

import (
	"testing"

	"github.com/hubastard/canopy/engine/colors"
)

func TestTessellateMergesByClipAndTexture(t *testing.T) {
	clipA := Rect{Max: Vec2{100, 100}}
	clipB := Rect{Max: Vec2{50, 50}}
	shapes := []ClippedShape{
		{Clip: clipA, Shape: RectShape{Rect: Rect{Max: Vec2{10, 10}}, Fill: colors.Red}},
		{Clip: clipA, Shape: LineShape{From: Vec2{0, 0}, To: Vec2{10, 0}, Width: 1, Color: colors.White}},
		{Clip: clipA, Shape: ImageShape{Rect: Rect{Max: Vec2{5, 5}}, Texture: 7, UV: Rect{Max: Vec2{1, 1}}, Tint: colors.White}},
		{Clip: clipB, Shape: RectShape{Rect: Rect{Max: Vec2{10, 10}}, Fill: colors.Blue}},
		{Clip: clipB, Shape: RectShape{Rect: Rect{Max: Vec2{10, 10}}, Fill: colors.Transparent}},
		{Clip: Rect{}, Shape: RectShape{Rect: Rect{Max: Vec2{10, 10}}, Fill: colors.Blue}},
	}
	prims := Tessellator{WhiteUV: Vec2{0.01, 0.01}}.Tessellate(shapes)
	if len(prims) != 3 {
		t.Fatalf("got %d primitives, want 3", len(prims))
	}
	if got := len(prims[0].Mesh.Indices); got != 12 {
		t.Fatalf("first mesh has %d indices, want two quads", got)
	}
	if prims[1].Mesh.Texture != 7 || prims[1].Clip != clipA {
		t.Fatalf("image primitive = %+v", prims[1])
	}
	if prims[2].Clip != clipB || len(prims[2].Mesh.Vertices) != 4 {
		t.Fatalf("last primitive = %+v", prims[2])
	}
	for _, p := range prims {
		for _, idx := range p.Mesh.Indices {
			if int(idx) >= len(p.Mesh.Vertices) {
				t.Fatalf("index %d out of range %d", idx, len(p.Mesh.Vertices))
			}
		}
	}
}

func TestTessellatePremultipliesColor(t *testing.T) {
	shapes := []ClippedShape{{
		Clip:  Rect{Max: Vec2{10, 10}},
		Shape: RectShape{Rect: Rect{Max: Vec2{10, 10}}, Fill: colors.Color{1, 0.5, 0, 0.5}},
	}}
	prims := Tessellator{}.Tessellate(shapes)
	got := prims[0].Mesh.Vertices[0].Color
	want := colors.Color{0.5, 0.25, 0, 0.5}
	if got != want {
		t.Fatalf("vertex color = %v, want %v", got, want)
	}
}

func TestStrokeProducesFourEdges(t *testing.T) {
	shapes := []ClippedShape{{
		Clip:  Rect{Max: Vec2{100, 100}},
		Shape: RectShape{Rect: Rect{Min: Vec2{10, 10}, Max: Vec2{50, 30}}, Stroke: colors.White, StrokeWidth: 1},
	}}
	prims := Tessellator{}.Tessellate(shapes)
	if len(prims) != 1 || len(prims[0].Mesh.Vertices) != 16 {
		t.Fatalf("stroke tessellation = %+v", prims)
	}
}

func TestContextTessellateSnapsClip(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()
	shapes := []ClippedShape{{
		Clip:  Rect{Min: Vec2{0.3, 0.3}, Max: Vec2{10.2, 10.6}},
		Shape: RectShape{Rect: Rect{Max: Vec2{5, 5}}, Fill: colors.White},
	}}
	prims := ctx.Tessellate(shapes, 2)
	want := Rect{Min: Vec2{0.5, 0.5}, Max: Vec2{10, 10.5}}
	if prims[0].Clip != want {
		t.Fatalf("clip = %v, want %v", prims[0].Clip, want)
	}
}
