package renderer2d

// ---- tiny mat helpers (column-major, GLSL-style) ----

// ortho maps l..r, t..b to clip space. Passing t < b gives a top-left origin.
func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

// screenProjection maps UI points, origin top-left, to clip space.
func screenProjection(widthPt, heightPt float32) [16]float32 {
	return ortho(0, widthPt, heightPt, 0, -1, 1)
}
