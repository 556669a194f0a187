package ui

// Vec2 is a point or size in UI points.
type Vec2 [2]float32

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v[0] + o[0], v[1] + o[1]} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v[0] - o[0], v[1] - o[1]} }

// Rect is an axis-aligned rectangle in points, origin top-left.
type Rect struct {
	Min, Max Vec2
}

func RectFromPosSize(pos, size Vec2) Rect {
	return Rect{Min: pos, Max: pos.Add(size)}
}

func (r Rect) Width() float32  { return r.Max[0] - r.Min[0] }
func (r Rect) Height() float32 { return r.Max[1] - r.Min[1] }
func (r Rect) Size() Vec2      { return Vec2{r.Width(), r.Height()} }
func (r Rect) Center() Vec2 {
	return Vec2{(r.Min[0] + r.Max[0]) * 0.5, (r.Min[1] + r.Max[1]) * 0.5}
}

func (r Rect) IsEmpty() bool { return r.Max[0] <= r.Min[0] || r.Max[1] <= r.Min[1] }

func (r Rect) Contains(p Vec2) bool {
	return p[0] >= r.Min[0] && p[0] < r.Max[0] && p[1] >= r.Min[1] && p[1] < r.Max[1]
}

func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Min: Vec2{maxf(r.Min[0], o.Min[0]), maxf(r.Min[1], o.Min[1])},
		Max: Vec2{minf(r.Max[0], o.Max[0]), minf(r.Max[1], o.Max[1])},
	}
	if out.IsEmpty() {
		return Rect{Min: out.Min, Max: out.Min}
	}
	return out
}

// Shrink insets the rectangle by l,t,r,b.
func (r Rect) Shrink(l, t, rt, b float32) Rect {
	return Rect{Min: Vec2{r.Min[0] + l, r.Min[1] + t}, Max: Vec2{r.Max[0] - rt, r.Max[1] - b}}
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
