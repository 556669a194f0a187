package core

import "testing"

func TestInputTracksKeysAndMouse(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyP, Down: true, Mods: ModCtrl})
	in.Handle(EventMouseMove{X: 10, Y: 20})

	if !in.IsKeyDown(KeyP) {
		t.Fatalf("expected P down")
	}
	if in.Mods() != ModCtrl {
		t.Fatalf("expected ctrl modifier, got %v", in.Mods())
	}
	x, y, ok := in.Mouse()
	if !ok || x != 10 || y != 20 {
		t.Fatalf("unexpected mouse state %v,%v,%v", x, y, ok)
	}

	in.Handle(EventCursorLeft{})
	if _, _, ok := in.Mouse(); ok {
		t.Fatalf("expected pointer to be gone after cursor left")
	}
}

func TestInputFocusLossReleasesEverything(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyW, Down: true, Mods: ModShift})
	in.Handle(EventMouseButton{Button: MouseLeft, Down: true})
	in.Handle(EventFocus{Focused: false})

	if in.IsKeyDown(KeyW) || in.IsButtonDown(MouseLeft) || in.Mods() != ModNone {
		t.Fatalf("expected all input released on focus loss")
	}
}
