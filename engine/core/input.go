package core

// Input tracks the latest key, button and pointer state seen in events.
type Input struct {
	keys           map[Key]bool
	buttons        map[MouseButton]bool
	mods           Mod
	mouseX, mouseY float64
	hasMouse       bool
}

func NewInput() *Input {
	return &Input{keys: map[Key]bool{}, buttons: map[MouseButton]bool{}}
}

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
		in.mods = e.Mods
	case EventMouseButton:
		in.buttons[e.Button] = e.Down
		in.mods = e.Mods
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
		in.hasMouse = true
	case EventCursorLeft:
		in.hasMouse = false
	case EventFocus:
		if !e.Focused {
			// key-up events are lost while unfocused
			clear(in.keys)
			clear(in.buttons)
			in.mods = ModNone
		}
	}
}

func (in *Input) IsKeyDown(k Key) bool            { return in.keys[k] }
func (in *Input) IsButtonDown(b MouseButton) bool { return in.buttons[b] }
func (in *Input) Mods() Mod                       { return in.mods }
func (in *Input) Mouse() (float64, float64, bool) { return in.mouseX, in.mouseY, in.hasMouse }
