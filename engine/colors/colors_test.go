package colors

import "testing"

func TestScaleClampsAndKeepsAlpha(t *testing.T) {
	c := Color{0.8, 0.5, 0.1, 0.3}.Scale(2)
	want := Color{1, 1, 0.2, 0.3}
	if c != want {
		t.Fatalf("expected %v, got %v", want, c)
	}
}

func TestLerpEndpoints(t *testing.T) {
	if got := Black.Lerp(White, 0); got != Black {
		t.Fatalf("t=0: expected black, got %v", got)
	}
	if got := Black.Lerp(White, 1); got != White {
		t.Fatalf("t=1: expected white, got %v", got)
	}
	if got := Black.Lerp(White, 5); got != White {
		t.Fatalf("t>1 should clamp, got %v", got)
	}
}

func TestPremultiplied(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.Premultiplied()
	want := Color{0.5, 0.25, 0, 0.5}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
