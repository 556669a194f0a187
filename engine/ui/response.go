package ui

// Response is the interaction state of a widget for this frame.
type Response struct {
	ID      string
	Rect    Rect
	Hovered bool
	// Pressed is true on the frame the primary button went down on the widget.
	Pressed bool
	// Clicked is true on the frame the button was released over the widget
	// that received the press.
	Clicked bool
	// Active is true while the widget holds the pointer.
	Active    bool
	DragDelta Vec2
	Focused   bool
}

func (c *Context) interact(layer, id string, r Rect) Response {
	resp := Response{ID: id, Rect: r}
	ptr := &c.pointer
	over := ptr.valid && r.Contains(ptr.pos) && c.layerAt(ptr.pos) == layer
	resp.Hovered = over && (c.activeID == "" || c.activeID == id)

	if ptr.pressed && over && c.activeID == "" {
		c.activeID = id
		c.focusID = ""
		resp.Pressed = true
		if layer != "" {
			c.memory.raise(layer)
		}
	}
	if c.activeID == id {
		resp.Active = ptr.down || ptr.released
		resp.DragDelta = ptr.delta
		if ptr.released && over {
			resp.Clicked = true
		}
	}
	resp.Focused = c.focusID == id
	return resp
}
