package ui

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyHome
	KeyEnd
	KeySpace
	KeyA
	KeyC
	KeyP
	KeyV
	KeyX
	KeyZ
)

type PointerButton int

const (
	PointerPrimary PointerButton = iota
	PointerSecondary
	PointerMiddle
)

type Modifiers struct {
	Shift, Ctrl, Alt, Command bool
}

type EventKind int

const (
	EventPointerMoved EventKind = iota
	EventPointerButton
	EventPointerGone
	EventScroll
	EventKey
	EventText
	EventCopy
	EventCut
	EventPaste
)

// Event is one input event in UI points.
type Event struct {
	Kind      EventKind
	Pos       Vec2
	Button    PointerButton
	Pressed   bool
	Delta     Vec2
	Key       Key
	Text      string
	Modifiers Modifiers
}

// RawInput is everything the UI needs to build one frame.
type RawInput struct {
	ScreenRect     Rect
	PixelsPerPoint float32
	Time           float64 // seconds since start
	Events         []Event
	Modifiers      Modifiers
	Focused        bool
}

// Take returns the input and leaves r with no events, keeping screen state.
func (r *RawInput) Take() RawInput {
	out := *r
	r.Events = nil
	return out
}
