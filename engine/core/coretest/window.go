// Package coretest provides in-memory core.Window and core.Renderer
// implementations for driving the engine without a display or GPU.
package coretest

import (
	"sync"

	"github.com/hubastard/canopy/engine/core"
)

// Window is a scripted core.Window. Each PollEvents/WaitEvents call delivers
// the next batch from Script; once the script is exhausted the window asks to
// close so loops terminate.
type Window struct {
	Script [][]core.Event

	// W and H are the window size in screen coordinates. The framebuffer is
	// that times PixelRatio, as on a high-density display.
	X, Y          int
	W, H          int
	PixelRatio    float32
	Scale         float32
	Title         string
	ClipboardText string
	Cursor        core.Cursor
	Polls         int
	Waits         int
	Swaps         int
	Destroyed     bool

	mu          sync.Mutex
	wakes       int
	closing     bool
	cb          func(core.Event)
	CloseOnDone bool
}

func NewWindow(w, h int) *Window {
	return &Window{W: w, H: h, PixelRatio: 1, Scale: 1, CloseOnDone: true}
}

func (w *Window) PollEvents() {
	w.Polls++
	w.deliver()
}

func (w *Window) WaitEvents() {
	w.Waits++
	w.deliver()
}

func (w *Window) deliver() {
	if len(w.Script) == 0 {
		if w.CloseOnDone {
			w.Emit(core.EventCloseRequested{})
		}
		return
	}
	batch := w.Script[0]
	w.Script = w.Script[1:]
	for _, ev := range batch {
		w.Emit(ev)
	}
}

// Emit delivers ev immediately, applying size and position side effects first
// the way a real platform would.
func (w *Window) Emit(ev core.Event) {
	switch e := ev.(type) {
	case core.EventResize:
		w.W, w.H = int(float32(e.W)/w.ratio()), int(float32(e.H)/w.ratio())
	case core.EventMove:
		w.X, w.Y = e.X, e.Y
	case core.EventScaleChanged:
		w.Scale = e.Scale
	}
	if w.cb != nil {
		w.cb(ev)
	}
}

func (w *Window) ratio() float32 {
	if w.PixelRatio <= 0 {
		return 1
	}
	return w.PixelRatio
}

// FramebufferSize is the window size in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return int(float32(w.W) * w.ratio()), int(float32(w.H) * w.ratio())
}

func (w *Window) Wake() {
	w.mu.Lock()
	w.wakes++
	w.mu.Unlock()
}

func (w *Window) Wakes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wakes
}

func (w *Window) SwapBuffers()                         { w.Swaps++ }
func (w *Window) ShouldClose() bool                    { return w.closing }
func (w *Window) RequestClose()                        { w.closing = true }
func (w *Window) Position() (int, int)                 { return w.X, w.Y }
func (w *Window) Size() (int, int)                     { return w.W, w.H }
func (w *Window) ContentScale() float32                { return w.Scale }
func (w *Window) SetTitle(title string)                { w.Title = title }
func (w *Window) SetEventCallback(cb func(core.Event)) { w.cb = cb }
func (w *Window) Clipboard() string                    { return w.ClipboardText }
func (w *Window) SetClipboard(text string)             { w.ClipboardText = text }
func (w *Window) SetCursor(c core.Cursor)              { w.Cursor = c }
func (w *Window) Destroy()                             { w.Destroyed = true }
