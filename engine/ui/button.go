package ui

import "github.com/hubastard/canopy/engine/colors"

type UIButton struct {
	Common[*UIButton]
	label    *UILabel
	bgSet    bool
	onClick  func()
	resp     Response
	disabled bool
}

func Button(str string) *UIButton {
	l := &UIButton{}
	l.Common = NewCommon(l)
	l.label = Label(str)
	l.label.base.parent = l
	l.base.children = append(l.base.children, l.label)
	// negative means the style's button padding
	l.base.padding = [4]float32{-1, -1, -1, -1}
	return l
}

func (l *UIButton) BgColor(color colors.Color) *UIButton {
	l.base.color = color
	l.bgSet = true
	return l
}
func (l *UIButton) TextColor(color colors.Color) *UIButton { l.label.Color(color); return l }
func (l *UIButton) FontSize(size float32) *UIButton        { l.label.fontSize = size; return l }
func (l *UIButton) Small() *UIButton                       { l.label.Small(); return l }
func (l *UIButton) Enabled(on bool) *UIButton              { l.disabled = !on; return l }

// OnClick runs f during Draw on the frame the button is clicked.
func (l *UIButton) OnClick(f func()) *UIButton { l.onClick = f; return l }

// Response is the interaction result once the button has been drawn.
func (l *UIButton) Response() Response { return l.resp }

func (l *UIButton) Layout(p *Painter, constraints Constraints) LayoutResult {
	if l.base.padding[0] < 0 {
		bp := p.Style().Spacing.ButtonPadding
		l.base.SetPadding(bp[0], bp[1], bp[0], bp[1])
	}
	padding := l.base.Padding()
	innerConstraints := Constraints{
		Max: Vec2{
			maxf(0, resolveConstraint(constraints.Max[0])-padding[0]-padding[2]),
			maxf(0, resolveConstraint(constraints.Max[1])-padding[1]-padding[3]),
		},
	}

	res := l.label.Layout(p, innerConstraints)
	size := l.base.resolve(res.Size, constraints)
	innerWidth, innerHeight := l.base.innerSize()

	child := l.label.Node()
	child.SetSize(clamp(res.Size[0], 0, innerWidth), clamp(res.Size[1], 0, innerHeight))
	return LayoutResult{Size: size}
}

func (l *UIButton) Draw(p *Painter) {
	id := p.autoID(&l.base, "button:"+l.label.text)
	rect := l.base.Rect()
	if !l.disabled {
		l.resp = p.Interact(id, rect)
	}
	vis := p.Style().Visuals
	wc := vis.widget(l.resp)
	bg := wc.BgFill
	if l.bgSet {
		bg = l.base.color
		if l.resp.Hovered {
			bg = bg.Scale(1.15)
		}
	}
	p.Rect(rect, bg)
	if l.resp.Hovered {
		p.Context().SetCursor(CursorPointingHand)
	}

	l.label.fallback = wc.FgStroke
	if l.disabled {
		l.label.fallback = vis.WeakTextColor
	}
	// center the label in the button
	inner := l.base.innerRect()
	child := l.label.Node()
	child.SetPos(
		inner.Min[0]+maxf(0, (inner.Width()-child.size[0])*0.5),
		inner.Min[1]+maxf(0, (inner.Height()-child.size[1])*0.5),
	)
	l.label.Draw(p)

	if l.resp.Clicked && l.onClick != nil {
		l.onClick()
	}
}
