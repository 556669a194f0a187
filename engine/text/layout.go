package text

const tabSpaces = 4

// PlacedGlyph is a glyph quad relative to the text origin (top-left), in the
// caller's units.
type PlacedGlyph struct {
	X, Y, W, H     float32
	U0, V0, U1, V1 float32
}

// Layout positions s with its top-left corner at the origin and appends the
// quads to dst. scale converts atlas pixels into the output unit. It returns
// the extended slice and the text extent.
func Layout(f *Font, s string, scale float32, dst []PlacedGlyph) ([]PlacedGlyph, float32, float32) {
	penX := float32(0)
	baseY := f.Ascent // move origin to top left
	lineH := LineHeight(f)
	width := float32(0)
	var prev rune = -1

	for _, r := range s {
		switch r {
		case '\n':
			width = maxf(width, penX)
			penX = 0
			baseY += lineH
			prev = -1
			continue
		case '\t':
			penX += spaceAdvance(f) * tabSpaces
			prev = -1
			continue
		}

		g, ok := f.Glyphs[r]
		if !ok {
			penX += spaceAdvance(f)
			prev = -1
			continue
		}

		penX += kern(f, prev, r)

		if g.W > 0 && g.H > 0 {
			dst = append(dst, PlacedGlyph{
				X:  (penX + g.BearingX) * scale,
				Y:  (baseY - g.BearingY) * scale,
				W:  float32(g.W) * scale,
				H:  float32(g.H) * scale,
				U0: g.U0, V0: g.V0, U1: g.U1, V1: g.V1,
			})
		}

		penX += g.Advance
		prev = r
	}
	width = maxf(width, penX)
	height := baseY - f.Ascent + lineH
	return dst, width * scale, height * scale
}

// MeasureText returns the extent of s without producing quads.
func MeasureText(f *Font, s string, scale float32) (width, height float32) {
	var lineW float32
	var prev rune = -1
	lineH := LineHeight(f)
	height = lineH

	for _, r := range s {
		switch r {
		case '\n':
			width = maxf(width, lineW)
			lineW = 0
			height += lineH
			prev = -1
			continue
		case '\t':
			lineW += spaceAdvance(f) * tabSpaces
			prev = -1
			continue
		}

		g, ok := f.Glyphs[r]
		if !ok {
			lineW += spaceAdvance(f)
			prev = -1
			continue
		}
		lineW += kern(f, prev, r)
		lineW += g.Advance
		prev = r
	}

	width = maxf(width, lineW)
	return width * scale, height * scale
}

// Baseline-to-top distance (useful to position text by top-left).
func BaselineToTop(f *Font) float32    { return f.Ascent }
func BaselineToBottom(f *Font) float32 { return -f.Descent }
func LineHeight(f *Font) float32       { return f.Ascent - f.Descent + f.LineGap }

func spaceAdvance(f *Font) float32 {
	if sp, ok := f.Glyphs[' ']; ok {
		return sp.Advance
	}
	return f.SizePx * 0.5
}

// kern only applies between glyphs of the primary face; fallback glyphs come
// from fonts the primary face has no pair table for.
func kern(f *Font, prev, r rune) float32 {
	if prev < 0 || f.Face == nil || !f.primary[prev] || !f.primary[r] {
		return 0
	}
	return float32(f.Face.Kern(prev, r)) / 64.0
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
