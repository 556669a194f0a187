package ui

import "github.com/hubastard/canopy/engine/colors"

type UISeparator struct {
	Common[*UISeparator]
}

// Separator is a thin horizontal rule across the parent's width.
func Separator() *UISeparator {
	s := &UISeparator{}
	s.Common = NewCommon(s)
	s.base.widthMod = SizeModeExpand
	return s
}

func (s *UISeparator) Layout(p *Painter, constraints Constraints) LayoutResult {
	h := p.Style().Spacing.ItemSpacing[1]
	size := Vec2{constraints.Min[0], h}
	s.base.SetSize(size[0], size[1])
	return LayoutResult{Size: size}
}

func (s *UISeparator) Draw(p *Painter) {
	r := s.base.Rect()
	y := r.Center()[1]
	c := p.Style().Visuals.WindowStroke
	if s.base.color != (colors.Color{}) {
		c = s.base.color
	}
	p.Line(Vec2{r.Min[0], y}, Vec2{r.Max[0], y}, 1, c)
}

type UIImage struct {
	Common[*UIImage]
	tex  TextureID
	tint colors.Color
}

// Image shows a texture allocated with Context.AllocTexture.
func Image(tex TextureID, w, h float32) *UIImage {
	i := &UIImage{tex: tex, tint: colors.White}
	i.Common = NewCommon(i)
	i.WidthFixed(w)
	i.HeightFixed(h)
	return i
}

func (i *UIImage) Tint(c colors.Color) *UIImage { i.tint = c; return i }

func (i *UIImage) Layout(p *Painter, constraints Constraints) LayoutResult {
	return LayoutResult{Size: i.base.resolve(Vec2{}, constraints)}
}

func (i *UIImage) Draw(p *Painter) {
	p.Image(i.base.innerRect(), i.tex, i.tint)
}
