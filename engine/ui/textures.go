package ui

type TextureID uint64

// FontTexture is the atlas with every glyph and the solid white texel.
const FontTexture TextureID = 0

type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
)

// ImageDelta is a full image, or a patch of one when Pos is set.
// Pixels are premultiplied RGBA8, tightly packed.
type ImageDelta struct {
	Width, Height int
	Pixels        []byte
	Pos           *[2]int
	Filter        TextureFilter
}

func (d ImageDelta) IsWhole() bool { return d.Pos == nil }

type TextureUpdate struct {
	ID    TextureID
	Delta ImageDelta
}

// TexturesDelta lists textures to upload before painting and textures to free
// after the frame has been presented.
type TexturesDelta struct {
	Set  []TextureUpdate
	Free []TextureID
}

func (d TexturesDelta) IsEmpty() bool { return len(d.Set) == 0 && len(d.Free) == 0 }

func (d *TexturesDelta) Append(o TexturesDelta) {
	d.Set = append(d.Set, o.Set...)
	d.Free = append(d.Free, o.Free...)
}

type textureMeta struct {
	name          string
	width, height int
}

type textureManager struct {
	next    TextureID
	live    map[TextureID]textureMeta
	pending TexturesDelta
}

func newTextureManager() textureManager {
	return textureManager{next: FontTexture + 1, live: map[TextureID]textureMeta{}}
}

func (m *textureManager) alloc(name string, img ImageDelta) TextureID {
	id := m.next
	m.next++
	m.live[id] = textureMeta{name: name, width: img.Width, height: img.Height}
	m.pending.Set = append(m.pending.Set, TextureUpdate{ID: id, Delta: img})
	return id
}

func (m *textureManager) set(id TextureID, img ImageDelta) {
	meta := m.live[id]
	if img.IsWhole() {
		meta.width, meta.height = img.Width, img.Height
	}
	m.live[id] = meta
	m.pending.Set = append(m.pending.Set, TextureUpdate{ID: id, Delta: img})
}

func (m *textureManager) free(id TextureID) {
	if _, ok := m.live[id]; !ok {
		return
	}
	delete(m.live, id)
	m.pending.Free = append(m.pending.Free, id)
}

func (m *textureManager) take() TexturesDelta {
	out := m.pending
	m.pending = TexturesDelta{}
	return out
}
