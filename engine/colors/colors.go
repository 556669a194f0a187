package colors

type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Scale multiplies the RGB channels by f and clamps to [0,1]; alpha is kept.
func (c Color) Scale(f float32) Color {
	for i := 0; i < 3; i++ {
		c[i] = clamp01(c[i] * f)
	}
	return c
}

// Lerp blends from c towards o by t in [0,1].
func (c Color) Lerp(o Color, t float32) Color {
	t = clamp01(t)
	for i := range c {
		c[i] += (o[i] - c[i]) * t
	}
	return c
}

// Premultiplied returns the color with RGB multiplied by alpha, the form the
// UI pipeline blends with.
func (c Color) Premultiplied() Color {
	return Color{c[0] * c[3], c[1] * c[3], c[2] * c[3], c[3]}
}

func (c Color) IsTransparent() bool { return c[3] <= 0 }

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
