package ui

import "github.com/hubastard/canopy/engine/colors"

// CentralPanel lays content out over the whole screen, beneath all windows.
func (c *Context) CentralPanel(content UIElement) {
	screen := c.input.ScreenRect
	p := newPainter(c, "", screen, &c.backgroundDraw)
	pad := c.style.Spacing.WindowPadding
	inner := screen.Shrink(pad[0], pad[1], pad[0], pad[1])
	n := content.Node()
	n.SetPos(inner.Min[0], inner.Min[1])
	content.Layout(p, Constraints{Max: inner.Size()})
	content.Draw(p)
}

// Window shows content in a movable window. A nil open hides the close
// button; a false *open skips the window entirely. Position, collapsed state
// and stacking order are kept in Memory under title.
func (c *Context) Window(title string, open *bool, content UIElement) {
	if open != nil && !*open {
		return
	}
	st := &c.style
	state, known := c.memory.area(title)
	if !known {
		state.Pos = Vec2{32 + 24*float32(c.cascade), 32 + 24*float32(c.cascade)}
		c.cascade++
	}

	shapes := make([]ClippedShape, 0, 64)
	c.layers[title] = &shapes
	c.shown = append(c.shown, title)
	screen := c.input.ScreenRect
	p := newPainter(c, title, screen, &shapes)

	pad := st.Spacing.WindowPadding
	titleH := c.lineHeight(Proportional, st.Text.Body) + 2*st.Spacing.ButtonPadding[1]
	titleW := c.measureText(Proportional, st.Text.Body, title)[0]
	icon := st.Spacing.IconSize

	var contentSize Vec2
	if !state.Collapsed && content != nil {
		maxSize := Vec2{
			maxf(1, screen.Width()-2*pad[0]),
			maxf(1, screen.Height()-titleH-2*pad[1]),
		}
		contentSize = content.Layout(p, Constraints{Max: maxSize}).Size
	}

	width := maxf(contentSize[0]+2*pad[0], titleW+2*icon+4*pad[0])
	height := titleH
	if !state.Collapsed {
		height += contentSize[1] + 2*pad[1]
	}

	// Title bar drag, applied before painting so the window follows the
	// pointer without a frame of lag.
	titleRect := RectFromPosSize(state.Pos, Vec2{width, titleH})
	collapseRect := RectFromPosSize(
		Vec2{titleRect.Min[0] + pad[0], titleRect.Center()[1] - icon*0.5}, Vec2{icon, icon})
	closeRect := RectFromPosSize(
		Vec2{titleRect.Max[0] - pad[0] - icon, titleRect.Center()[1] - icon*0.5}, Vec2{icon, icon})

	collapse := p.Interact(title+"#collapse", collapseRect)
	var closeResp Response
	if open != nil {
		closeResp = p.Interact(title+"#close", closeRect)
	}
	drag := p.Interact(title+"#title", titleRect)
	if drag.Active {
		state.Pos = state.Pos.Add(drag.DragDelta)
		c.SetCursor(CursorGrabbing)
	} else if drag.Hovered {
		c.SetCursor(CursorGrab)
	}
	if collapse.Clicked {
		state.Collapsed = !state.Collapsed
		if state.Collapsed {
			height = titleH
		} else {
			// content was not laid out this frame
			c.repaint = true
		}
	}
	if closeResp.Clicked {
		*open = false
	}

	// Keep the title bar reachable.
	state.Pos[0] = clamp(state.Pos[0], screen.Min[0]-width+2*icon, maxf(screen.Min[0], screen.Max[0]-2*icon))
	state.Pos[1] = clamp(state.Pos[1], screen.Min[1], maxf(screen.Min[1], screen.Max[1]-titleH))

	frame := RectFromPosSize(state.Pos, Vec2{width, height})
	titleRect = RectFromPosSize(state.Pos, Vec2{width, titleH})
	collapseRect = RectFromPosSize(
		Vec2{titleRect.Min[0] + pad[0], titleRect.Center()[1] - icon*0.5}, Vec2{icon, icon})
	closeRect = RectFromPosSize(
		Vec2{titleRect.Max[0] - pad[0] - icon, titleRect.Center()[1] - icon*0.5}, Vec2{icon, icon})

	vis := st.Visuals
	p.Rect(frame, vis.WindowFill)
	p.Rect(titleRect, vis.TitleBarFill)
	p.RectStroke(frame, vis.WindowStroke, 1)
	drawCollapseIcon(p, collapseRect, state.Collapsed, vis.widget(collapse).FgStroke)
	p.Text(Vec2{collapseRect.Max[0] + pad[0], titleRect.Min[1] + st.Spacing.ButtonPadding[1]},
		Proportional, st.Text.Body, title, vis.TextColor)
	if open != nil {
		fg := vis.widget(closeResp).FgStroke
		in := closeRect.Shrink(icon*0.2, icon*0.2, icon*0.2, icon*0.2)
		p.Line(in.Min, in.Max, 1.5, fg)
		p.Line(Vec2{in.Min[0], in.Max[1]}, Vec2{in.Max[0], in.Min[1]}, 1.5, fg)
	}

	if !state.Collapsed && content != nil && !collapse.Clicked {
		body := Rect{Min: Vec2{frame.Min[0], titleRect.Max[1]}, Max: frame.Max}
		n := content.Node()
		n.SetPos(body.Min[0]+pad[0], body.Min[1]+pad[1])
		// Lay out again now that the origin is known.
		content.Layout(p, Constraints{Max: contentSize})
		content.Draw(p.WithClip(body))
	}

	// Registered last so widgets inside the window win the press.
	p.Interact(title+"#bg", frame)

	c.curAreas[title] = frame
	c.memory.setArea(title, state)
}

func drawCollapseIcon(p *Painter, r Rect, collapsed bool, c colors.Color) {
	in := r.Shrink(r.Width()*0.25, r.Height()*0.25, r.Width()*0.25, r.Height()*0.25)
	mid := in.Center()
	if collapsed {
		// pointing right
		p.Line(in.Min, Vec2{in.Max[0], mid[1]}, 1.5, c)
		p.Line(Vec2{in.Max[0], mid[1]}, Vec2{in.Min[0], in.Max[1]}, 1.5, c)
		return
	}
	// pointing down
	p.Line(in.Min, Vec2{mid[0], in.Max[1]}, 1.5, c)
	p.Line(Vec2{mid[0], in.Max[1]}, Vec2{in.Max[0], in.Min[1]}, 1.5, c)
}
