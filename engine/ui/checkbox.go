package ui

type UICheckbox struct {
	Common[*UICheckbox]
	value    *bool
	label    *UILabel
	onChange func(bool)
}

// Checkbox toggles *value when clicked.
func Checkbox(str string, value *bool) *UICheckbox {
	c := &UICheckbox{value: value, label: Label(str)}
	c.Common = NewCommon(c)
	c.label.base.parent = c
	c.base.children = append(c.base.children, c.label)
	return c
}

func (c *UICheckbox) OnChange(f func(bool)) *UICheckbox { c.onChange = f; return c }

func (c *UICheckbox) Layout(p *Painter, constraints Constraints) LayoutResult {
	st := p.Style()
	icon := st.Spacing.IconSize
	gap := st.Spacing.ItemSpacing[0]
	res := c.label.Layout(p, Constraints{Max: Vec2{maxf(0, constraints.Max[0]-icon-gap), constraints.Max[1]}})
	content := Vec2{icon + gap + res.Size[0], maxf(icon, res.Size[1])}
	return LayoutResult{Size: c.base.resolve(content, constraints)}
}

func (c *UICheckbox) Draw(p *Painter) {
	st := p.Style()
	icon := st.Spacing.IconSize
	gap := st.Spacing.ItemSpacing[0]
	rect := c.base.Rect()
	resp := p.Interact(p.autoID(&c.base, "checkbox:"+c.label.text), rect)
	if resp.Clicked && c.value != nil {
		*c.value = !*c.value
		if c.onChange != nil {
			c.onChange(*c.value)
		}
	}
	if resp.Hovered {
		p.Context().SetCursor(CursorPointingHand)
	}

	inner := c.base.innerRect()
	box := RectFromPosSize(Vec2{inner.Min[0], inner.Center()[1] - icon*0.5}, Vec2{icon, icon})
	wc := st.Visuals.widget(resp)
	p.Rect(box, wc.BgFill)
	if c.value != nil && *c.value {
		in := box.Shrink(icon*0.2, icon*0.2, icon*0.2, icon*0.2)
		p.Line(Vec2{in.Min[0], in.Center()[1]}, Vec2{in.Min[0] + in.Width()*0.4, in.Max[1]}, 2, wc.FgStroke)
		p.Line(Vec2{in.Min[0] + in.Width()*0.4, in.Max[1]}, Vec2{in.Max[0], in.Min[1]}, 2, wc.FgStroke)
	}

	n := c.label.Node()
	n.SetPos(box.Max[0]+gap, inner.Center()[1]-n.size[1]*0.5)
	c.label.Draw(p)
}
