// Package uistate translates window events into UI input and applies the
// UI's platform requests (clipboard, cursor) back to the window.
package uistate

import (
	"time"
	"unicode"

	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/ui"
)

// scrollLine is how far one wheel notch scrolls, in points.
const scrollLine = 50

// EventResponse tells the event loop what an event meant to the UI.
type EventResponse struct {
	// Consumed is set when the UI wants this input for itself, so it should
	// not reach application layers.
	Consumed bool
	Repaint  bool
}

// State accumulates input between frames.
type State struct {
	win   core.Window
	input *core.Input
	raw   ui.RawInput
	ppp   float32
	start time.Time
	now   func() time.Time

	pointer   ui.Vec2
	cursor    core.Cursor
	cursorSet bool
	ime       *ui.IMEOutput
}

func New(win core.Window) *State {
	s := &State{
		win:   win,
		input: core.NewInput(),
		ppp:   win.ContentScale(),
		now:   time.Now,
	}
	if s.ppp <= 0 {
		s.ppp = 1
	}
	s.start = s.now()
	s.raw.Focused = true
	return s
}

func (s *State) PixelsPerPoint() float32 { return s.ppp }

// IME is the last input-method area the UI asked for. The window has no IME
// API, so it is kept for inspection only.
func (s *State) IME() *ui.IMEOutput { return s.ime }

// OnEvent records ev for the next frame.
func (s *State) OnEvent(ctx *ui.Context, ev core.Event) EventResponse {
	s.input.Handle(ev)
	mods := toModifiers(s.input.Mods())

	switch e := ev.(type) {
	case core.EventMouseMove:
		s.pointer = ui.Vec2{float32(e.X) / s.ppp, float32(e.Y) / s.ppp}
		s.push(ui.Event{Kind: ui.EventPointerMoved, Pos: s.pointer})
		return EventResponse{Consumed: ctx.WantsPointerInput(), Repaint: true}

	case core.EventMouseButton:
		btn, ok := toButton(e.Button)
		if !ok {
			return EventResponse{}
		}
		s.push(ui.Event{Kind: ui.EventPointerButton, Pos: s.pointer, Button: btn, Pressed: e.Down, Modifiers: mods})
		return EventResponse{Consumed: ctx.WantsPointerInput(), Repaint: true}

	case core.EventCursorLeft:
		s.push(ui.Event{Kind: ui.EventPointerGone})
		return EventResponse{Repaint: true}

	case core.EventScroll:
		s.push(ui.Event{
			Kind:      ui.EventScroll,
			Delta:     ui.Vec2{float32(e.Xoff) * scrollLine, float32(e.Yoff) * scrollLine},
			Modifiers: mods,
		})
		return EventResponse{Consumed: ctx.WantsPointerInput(), Repaint: true}

	case core.EventKey:
		if e.Down && (mods.Ctrl || mods.Command) {
			switch e.Key {
			case core.KeyC:
				s.push(ui.Event{Kind: ui.EventCopy})
			case core.KeyX:
				s.push(ui.Event{Kind: ui.EventCut})
			case core.KeyV:
				if text := s.win.Clipboard(); text != "" {
					s.push(ui.Event{Kind: ui.EventPaste, Text: text})
				}
			}
		}
		if key := toKey(e.Key); key != ui.KeyUnknown {
			s.push(ui.Event{Kind: ui.EventKey, Key: key, Pressed: e.Down, Modifiers: mods})
		}
		return EventResponse{Consumed: ctx.WantsKeyboardInput(), Repaint: true}

	case core.EventChar:
		if mods.Ctrl || mods.Command || unicode.IsControl(e.Char) {
			return EventResponse{}
		}
		s.push(ui.Event{Kind: ui.EventText, Text: string(e.Char)})
		return EventResponse{Consumed: ctx.WantsKeyboardInput(), Repaint: true}

	case core.EventFocus:
		s.raw.Focused = e.Focused
		return EventResponse{Repaint: true}

	case core.EventScaleChanged:
		if e.Scale > 0 {
			s.ppp = e.Scale
		}
		return EventResponse{Repaint: true}

	case core.EventResize, core.EventMove:
		return EventResponse{Repaint: true}
	}
	return EventResponse{}
}

func (s *State) push(ev ui.Event) { s.raw.Events = append(s.raw.Events, ev) }

// TakeFrameInput returns the input gathered since the last call, stamped
// with the current screen size in points.
func (s *State) TakeFrameInput(win core.Window) ui.RawInput {
	w, h := win.FramebufferSize()
	s.raw.ScreenRect = ui.Rect{Max: ui.Vec2{float32(w) / s.ppp, float32(h) / s.ppp}}
	s.raw.PixelsPerPoint = s.ppp
	s.raw.Time = s.now().Sub(s.start).Seconds()
	s.raw.Modifiers = toModifiers(s.input.Mods())
	return s.raw.Take()
}

// ApplyPlatformOutput carries out what the UI asked for during the frame.
func (s *State) ApplyPlatformOutput(win core.Window, out ui.PlatformOutput) {
	if out.CopiedText != "" {
		win.SetClipboard(out.CopiedText)
	}
	if c := toCursor(out.Cursor); !s.cursorSet || c != s.cursor {
		win.SetCursor(c)
		s.cursor, s.cursorSet = c, true
	}
	s.ime = out.IME
}

func toModifiers(m core.Mod) ui.Modifiers {
	return ui.Modifiers{
		Shift:   m&core.ModShift != 0,
		Ctrl:    m&core.ModCtrl != 0,
		Alt:     m&core.ModAlt != 0,
		Command: m&core.ModSuper != 0,
	}
}

func toButton(b core.MouseButton) (ui.PointerButton, bool) {
	switch b {
	case core.MouseLeft:
		return ui.PointerPrimary, true
	case core.MouseRight:
		return ui.PointerSecondary, true
	case core.MouseMiddle:
		return ui.PointerMiddle, true
	}
	return 0, false
}

var keys = map[core.Key]ui.Key{
	core.KeyEscape:    ui.KeyEscape,
	core.KeyEnter:     ui.KeyEnter,
	core.KeyTab:       ui.KeyTab,
	core.KeyBackspace: ui.KeyBackspace,
	core.KeyDelete:    ui.KeyDelete,
	core.KeyLeft:      ui.KeyArrowLeft,
	core.KeyRight:     ui.KeyArrowRight,
	core.KeyUp:        ui.KeyArrowUp,
	core.KeyDown:      ui.KeyArrowDown,
	core.KeyHome:      ui.KeyHome,
	core.KeyEnd:       ui.KeyEnd,
	core.KeySpace:     ui.KeySpace,
	core.KeyA:         ui.KeyA,
	core.KeyC:         ui.KeyC,
	core.KeyP:         ui.KeyP,
	core.KeyV:         ui.KeyV,
	core.KeyX:         ui.KeyX,
	core.KeyZ:         ui.KeyZ,
}

func toKey(k core.Key) ui.Key { return keys[k] }

func toCursor(c ui.CursorIcon) core.Cursor {
	switch c {
	case ui.CursorText:
		return core.CursorText
	case ui.CursorPointingHand:
		return core.CursorPointer
	case ui.CursorGrab, ui.CursorGrabbing:
		return core.CursorGrab
	case ui.CursorResizeHorizontal:
		return core.CursorResizeHorizontal
	case ui.CursorResizeVertical:
		return core.CursorResizeVertical
	case ui.CursorNone:
		return core.CursorHidden
	}
	return core.CursorDefault
}
