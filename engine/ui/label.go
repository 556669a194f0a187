package ui

import (
	"strings"

	"github.com/hubastard/canopy/engine/colors"
)

// TextSize picks one of the style's text sizes.
type TextSize int

const (
	TextBody TextSize = iota
	TextSmall
	TextHeading
	TextMono
)

func (s TextSize) points(st *Style) float32 {
	switch s {
	case TextSmall:
		return st.Text.Small
	case TextHeading:
		return st.Text.Heading
	case TextMono:
		return st.Text.Monospace
	default:
		return st.Text.Body
	}
}

type UILabel struct {
	Common[*UILabel]
	text      string
	size      TextSize
	fontSize  float32
	family    FontFamily
	colorSet  bool
	fallback  colors.Color // used by containers that pick the text color
	weak      bool
	wrap      bool
	maxWidth  float32
	layoutStr string
}

func Label(str string) *UILabel {
	l := &UILabel{text: str, family: Proportional}
	l.Common = NewCommon(l)
	return l
}

func (l *UILabel) Text() string                   { return l.text }
func (l *UILabel) FontSize(size float32) *UILabel { l.fontSize = size; return l }
func (l *UILabel) Small() *UILabel                { l.size = TextSmall; return l }
func (l *UILabel) Heading() *UILabel              { l.size = TextHeading; return l }
func (l *UILabel) Weak() *UILabel                 { l.weak = true; return l }
func (l *UILabel) Wrap(enabled bool) *UILabel     { l.wrap = enabled; return l }
func (l *UILabel) Monospace() *UILabel {
	l.size = TextMono
	l.family = Monospace
	return l
}
func (l *UILabel) Color(c colors.Color) *UILabel {
	l.base.color = c
	l.colorSet = true
	return l
}
func (l *UILabel) MaxWidth(width float32) *UILabel {
	l.maxWidth = width
	if width > 0 {
		l.wrap = true
	}
	return l
}

func (l *UILabel) points(p *Painter) float32 {
	if l.fontSize > 0 {
		return l.fontSize
	}
	return l.size.points(p.Style())
}

func (l *UILabel) textColor(p *Painter) colors.Color {
	switch {
	case l.colorSet:
		return l.base.color
	case l.fallback[3] > 0:
		return l.fallback
	case l.weak:
		return p.Style().Visuals.WeakTextColor
	default:
		return p.Style().Visuals.TextColor
	}
}

func (l *UILabel) Layout(p *Painter, constraints Constraints) LayoutResult {
	padding := l.base.Padding()
	effectiveMax := constraints.Max[0]
	if l.maxWidth > 0 && (effectiveMax == 0 || l.maxWidth < effectiveMax) {
		effectiveMax = l.maxWidth
	}
	if effectiveMax > 0 {
		effectiveMax = maxf(0, effectiveMax-padding[0]-padding[2])
	}

	content, laidOut := l.measureText(p, effectiveMax)
	l.layoutStr = laidOut
	return LayoutResult{Size: l.base.resolve(content, constraints)}
}

func (l *UILabel) Draw(p *Painter) {
	if l.layoutStr == "" {
		l.layoutStr = l.text
	}
	c := l.textColor(p)
	if l.layoutStr == "" || c[3] <= 0 {
		return
	}
	x, y := l.base.innerPosition()
	p.Text(Vec2{x, y}, l.family, l.points(p), l.layoutStr, c)
}

func (l *UILabel) measureText(p *Painter, maxWidth float32) (Vec2, string) {
	if l.text == "" {
		return Vec2{}, ""
	}
	size := l.points(p)
	measure := func(s string) float32 { return p.MeasureText(l.family, size, s)[0] }
	if !l.wrap || maxWidth <= 0 {
		return p.MeasureText(l.family, size, l.text), l.text
	}

	spaceWidth := measure(" ")

	var wrapped []string
	var maxLineWidth float32

	for _, raw := range strings.Split(l.text, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			wrapped = append(wrapped, "")
			continue
		}

		current := words[0]
		currentWidth := measure(current)
		for _, word := range words[1:] {
			wordWidth := measure(word)
			if currentWidth+spaceWidth+wordWidth > maxWidth {
				wrapped = append(wrapped, current)
				maxLineWidth = maxf(maxLineWidth, currentWidth)
				current = word
				currentWidth = wordWidth
			} else {
				current += " " + word
				currentWidth += spaceWidth + wordWidth
			}
		}
		wrapped = append(wrapped, current)
		maxLineWidth = maxf(maxLineWidth, currentWidth)
	}

	lineHeight := p.ctx.lineHeight(l.family, size)
	if lineHeight == 0 {
		lineHeight = 1
	}
	return Vec2{maxLineWidth, lineHeight * float32(len(wrapped))}, strings.Join(wrapped, "\n")
}
