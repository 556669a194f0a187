package text

import "testing"

func TestLayoutMatchesMeasure(t *testing.T) {
	f := testAtlas(t).Fonts["proportional"]
	for _, s := range []string{"Hello", "two\nlines", "tab\there", ""} {
		_, lw, lh := Layout(f, s, 1, nil)
		mw, mh := MeasureText(f, s, 1)
		if lw != mw || lh != mh {
			t.Fatalf("%q: layout %vx%v != measure %vx%v", s, lw, lh, mw, mh)
		}
	}
}

func TestLayoutScales(t *testing.T) {
	f := testAtlas(t).Fonts["proportional"]
	_, w1, h1 := Layout(f, "Scale", 1, nil)
	_, w2, h2 := Layout(f, "Scale", 2, nil)
	if w2 != 2*w1 || h2 != 2*h1 {
		t.Fatalf("expected doubled extent, got %vx%v vs %vx%v", w2, h2, w1, h1)
	}
}

func TestLayoutSkipsWhitespaceQuads(t *testing.T) {
	f := testAtlas(t).Fonts["proportional"]
	quads, _, _ := Layout(f, "a b", 1, nil)
	if len(quads) != 2 {
		t.Fatalf("expected 2 quads, got %d", len(quads))
	}
	if quads[1].X <= quads[0].X {
		t.Fatalf("expected second glyph to the right of the first")
	}
}

func TestMultilineHeight(t *testing.T) {
	f := testAtlas(t).Fonts["proportional"]
	_, h1 := MeasureText(f, "a", 1)
	_, h3 := MeasureText(f, "a\nb\nc", 1)
	if h3 != 3*h1 {
		t.Fatalf("expected three line heights, got %v vs %v", h3, h1)
	}
}
