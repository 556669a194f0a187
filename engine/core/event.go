package core

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

// EventResize carries the framebuffer size in physical pixels. Zero sizes are
// sent by some platforms when the window is minimized.
type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventMove struct{ X, Y int }

func (EventMove) isEvent() {}

type EventKey struct {
	Key    Key
	Down   bool
	Repeat bool
	Mods   Mod
}

func (EventKey) isEvent() {}

type EventChar struct{ Char rune }

func (EventChar) isEvent() {}

// EventMouseMove is in physical pixels, origin top-left.
type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	Mods   Mod
}

func (EventMouseButton) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

type EventFocus struct{ Focused bool }

func (EventFocus) isEvent() {}

type EventScaleChanged struct{ Scale float32 }

func (EventScaleChanged) isEvent() {}

type EventCursorLeft struct{}

func (EventCursorLeft) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeySpace
	KeyA
	KeyC
	KeyD
	KeyP
	KeyS
	KeyV
	KeyW
	KeyX
	KeyZ
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Cursor is the pointer icon requested by the UI.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorText
	CursorPointer
	CursorCrosshair
	CursorResizeHorizontal
	CursorResizeVertical
	CursorGrab
	CursorHidden
)
