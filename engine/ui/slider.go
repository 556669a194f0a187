package ui

import "fmt"

type UISlider struct {
	Common[*UISlider]
	value    *float32
	min, max float32
	label    *UILabel
	format   string
	width    float32
	readoutW float32
}

// Slider edits *value within [min, max] by dragging, or with the arrow keys
// once focused by a click.
func Slider(str string, value *float32, min, max float32) *UISlider {
	s := &UISlider{value: value, min: min, max: max, label: Label(str), format: "%.2f"}
	s.Common = NewCommon(s)
	s.label.base.parent = s
	s.base.children = append(s.base.children, s.label)
	return s
}

// Format sets the fmt verb used for the value readout.
func (s *UISlider) Format(f string) *UISlider { s.format = f; return s }

// TrackWidth overrides the style's slider width.
func (s *UISlider) TrackWidth(w float32) *UISlider { s.width = w; return s }

func (s *UISlider) trackWidth(st *Style) float32 {
	if s.width > 0 {
		return s.width
	}
	return st.Spacing.SliderWidth
}

func (s *UISlider) readout() string {
	if s.value == nil {
		return ""
	}
	return fmt.Sprintf(s.format, *s.value)
}

func (s *UISlider) Layout(p *Painter, constraints Constraints) LayoutResult {
	st := p.Style()
	gap := st.Spacing.ItemSpacing[0]
	track := s.trackWidth(st)
	// size the readout for the widest value so the label does not jitter
	s.readoutW = maxf(
		p.MeasureText(Proportional, st.Text.Body, fmt.Sprintf(s.format, s.min))[0],
		p.MeasureText(Proportional, st.Text.Body, fmt.Sprintf(s.format, s.max))[0],
	)
	res := s.label.Layout(p, Constraints{})
	h := maxf(st.Spacing.IconSize, res.Size[1])
	content := Vec2{track + gap + s.readoutW + gap + res.Size[0], h}
	return LayoutResult{Size: s.base.resolve(content, constraints)}
}

func (s *UISlider) Draw(p *Painter) {
	st := p.Style()
	gap := st.Spacing.ItemSpacing[0]
	inner := s.base.innerRect()
	track := RectFromPosSize(Vec2{inner.Min[0], inner.Min[1]}, Vec2{s.trackWidth(st), inner.Height()})
	id := p.autoID(&s.base, "slider:"+s.label.text)
	resp := p.Interact(id, track)
	ctx := p.Context()

	if s.value != nil && s.max > s.min {
		if resp.Pressed {
			ctx.focusID = id
		}
		if resp.Active && ctx.pointer.valid {
			t := clamp((ctx.pointer.pos[0]-track.Min[0])/maxf(1, track.Width()), 0, 1)
			*s.value = s.min + t*(s.max-s.min)
		}
		if ctx.focusID == id {
			step := (s.max - s.min) / 100
			if ctx.KeyPressed(KeyArrowLeft) {
				*s.value -= step
			}
			if ctx.KeyPressed(KeyArrowRight) {
				*s.value += step
			}
		}
		*s.value = clamp(*s.value, s.min, s.max)
	}

	wc := st.Visuals.widget(resp)
	rail := Rect{
		Min: Vec2{track.Min[0], track.Center()[1] - 2},
		Max: Vec2{track.Max[0], track.Center()[1] + 2},
	}
	p.Rect(rail, st.Visuals.Widgets.Inactive.BgFill)
	t := float32(0)
	if s.value != nil && s.max > s.min {
		t = (*s.value - s.min) / (s.max - s.min)
	}
	fill := rail
	fill.Max[0] = rail.Min[0] + rail.Width()*t
	p.Rect(fill, st.Visuals.Selection)
	knob := st.Spacing.IconSize * 0.5
	kx := track.Min[0] + track.Width()*t
	p.Rect(Rect{
		Min: Vec2{kx - knob*0.5, track.Center()[1] - knob},
		Max: Vec2{kx + knob*0.5, track.Center()[1] + knob},
	}, wc.FgStroke)
	if ctx.focusID == id {
		p.RectStroke(track, st.Visuals.Selection, 1)
	}

	readout := s.readout()
	sz := p.MeasureText(Proportional, st.Text.Body, readout)
	x := track.Max[0] + gap
	p.Text(Vec2{x, inner.Center()[1] - sz[1]*0.5}, Proportional, st.Text.Body, readout, st.Visuals.TextColor)

	n := s.label.Node()
	n.SetPos(x+maxf(sz[0], s.readoutW)+gap, inner.Center()[1]-n.size[1]*0.5)
	s.label.Draw(p)
}
