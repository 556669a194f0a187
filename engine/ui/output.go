package ui

type CursorIcon int

const (
	CursorDefault CursorIcon = iota
	CursorText
	CursorPointingHand
	CursorGrab
	CursorGrabbing
	CursorResizeHorizontal
	CursorResizeVertical
	CursorNone
)

// IMEOutput describes where an active text cursor is, for input methods.
type IMEOutput struct {
	Rect       Rect
	CursorRect Rect
}

// PlatformOutput is what the UI asks of the windowing side each frame.
type PlatformOutput struct {
	CopiedText string
	Cursor     CursorIcon
	IME        *IMEOutput
}

// FullOutput is the result of one UI frame.
type FullOutput struct {
	Platform       PlatformOutput
	Textures       TexturesDelta
	Shapes         []ClippedShape
	PixelsPerPoint float32
	// NeedsRepaint is set when the UI has pending state (animations,
	// interactions) that needs another frame even without new input.
	NeedsRepaint bool
}
