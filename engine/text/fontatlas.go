package text

import (
	"fmt"
	"image"
	"image/draw"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Tweak adjusts how one font source is rasterized relative to the others in
// its family.
type Tweak struct {
	Scale                float32 // multiplies the size; 0 means 1
	YOffsetFactor        float32 // glyph shift down, in units of the scaled size
	YOffset              float32 // glyph shift down, in pixels
	BaselineOffsetFactor float32 // row baseline shift for the family's primary font
}

// Source is one font file participating in the atlas.
type Source struct {
	Name  string
	Data  []byte
	Tweak Tweak
}

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (distance from baseline to glyph top)
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Font is one family resolved against its fallback chain.
type Font struct {
	Family                   string
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Face                     font.Face // primary face, used for kerning
	primary                  map[rune]bool
}

// Atlas is a premultiplied RGBA8 image holding every glyph of every family,
// plus a solid white block used for untextured fills.
type Atlas struct {
	Width, Height int
	Pixels        []byte
	Fonts         map[string]*Font
	WhiteUV       [2]float32
	faces         []font.Face
}

func (a *Atlas) Close() {
	if a == nil {
		return
	}
	for _, f := range a.faces {
		_ = f.Close()
	}
	a.faces = nil
}

// DefaultRunes is printable ASCII plus Latin-1.
func DefaultRunes() []rune {
	var runes []rune
	for r := rune(32); r <= rune(126); r++ {
		runes = append(runes, r)
	}
	for r := rune(160); r <= rune(255); r++ {
		runes = append(runes, r)
	}
	return runes
}

type glyphKey struct {
	src int
	r   rune
}

type meas struct {
	key    glyphKey
	w, h   int
	adv    float32
	bx, by float32
	pos    image.Point
}

// BuildAtlas rasterizes runes at sizePx for every family. Each family lists
// source names in fallback order; a rune comes from the first source that has
// it.
func BuildAtlas(sources []Source, families map[string][]string, sizePx float32, runes []rune) (*Atlas, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", sizePx)
	}
	if len(runes) == 0 {
		runes = DefaultRunes()
	}

	byName := make(map[string]int, len(sources))
	faces := make([]font.Face, len(sources))
	atlas := &Atlas{Fonts: make(map[string]*Font, len(families))}
	for i, src := range sources {
		ft, err := opentype.Parse(src.Data)
		if err != nil {
			atlas.Close()
			return nil, fmt.Errorf("parse font %q: %w", src.Name, err)
		}
		face, err := opentype.NewFace(ft, &opentype.FaceOptions{
			Size: float64(scaledSize(sizePx, src.Tweak)), DPI: 72, Hinting: font.HintingFull,
		})
		if err != nil {
			atlas.Close()
			return nil, fmt.Errorf("new face %q: %w", src.Name, err)
		}
		faces[i] = face
		atlas.faces = append(atlas.faces, face)
		byName[src.Name] = i
	}

	// Resolve which source provides each rune, per family.
	chosen := map[glyphKey]*meas{}
	var order []glyphKey
	familyGlyphs := make(map[string]map[rune]glyphKey, len(families))
	familyNames := make([]string, 0, len(families))
	for fam := range families {
		familyNames = append(familyNames, fam)
	}
	sort.Strings(familyNames)

	for _, fam := range familyNames {
		chain := families[fam]
		var idx []int
		for _, name := range chain {
			i, ok := byName[name]
			if !ok {
				atlas.Close()
				return nil, fmt.Errorf("family %q references unknown font %q", fam, name)
			}
			idx = append(idx, i)
		}
		if len(idx) == 0 {
			continue
		}
		mapping := make(map[rune]glyphKey, len(runes))
		for _, r := range runes {
			for _, i := range idx {
				br, adv, ok := faces[i].GlyphBounds(r)
				if !ok {
					continue
				}
				key := glyphKey{src: i, r: r}
				mapping[r] = key
				if _, seen := chosen[key]; !seen {
					yOff := glyphYOffset(sizePx, sources[i].Tweak)
					chosen[key] = &meas{
						key: key,
						w:   br.Max.X.Ceil() - br.Min.X.Floor(),
						h:   br.Max.Y.Ceil() - br.Min.Y.Floor(),
						adv: float32(adv.Round()),
						bx:  float32(br.Min.X.Floor()),
						by:  float32(-br.Min.Y.Floor()) - yOff, // distance from baseline to top
					}
					order = append(order, key)
				}
				break
			}
		}
		familyGlyphs[fam] = mapping

		primary := idx[0]
		m := faces[primary].Metrics()
		baseline := sources[primary].Tweak.BaselineOffsetFactor * scaledSize(sizePx, sources[primary].Tweak)
		ascent := float32(m.Ascent.Round()) + baseline
		descent := float32(-m.Descent.Round()) + baseline
		atlas.Fonts[fam] = &Font{
			Family:  fam,
			SizePx:  sizePx,
			Ascent:  ascent,
			Descent: descent,
			LineGap: float32(m.Height.Round()) - ascent + descent,
			Face:    faces[primary],
			Glyphs:  make(map[rune]Glyph, len(mapping)),
			primary: make(map[rune]bool, len(mapping)),
		}
	}

	measure := make([]*meas, 0, len(order))
	for _, k := range order {
		measure = append(measure, chosen[k])
	}

	// Very simple shelf packer (rows). Start with 256^2 and grow until everything fits.
	const padding = 2
	const whiteSize = 3
	atlasW := 256
	atlasH := 256
	for {
		if pack(measure, atlasW, atlasH, padding, whiteSize) {
			break
		}
		if atlasH < atlasW {
			atlasH *= 2
		} else {
			atlasW *= 2
		}
		if atlasW > 8192 {
			atlas.Close()
			return nil, fmt.Errorf("font atlas too large (>%d)", 8192)
		}
	}

	// Transparent background; premultiplied white coverage.
	dst := image.NewRGBA(image.Rect(0, 0, atlasW, atlasH))
	white := image.Rect(padding, padding, padding+whiteSize, padding+whiteSize)
	draw.Draw(dst, white, image.White, image.Point{}, draw.Src)
	atlas.WhiteUV = [2]float32{
		(float32(padding) + whiteSize*0.5) / float32(atlasW),
		(float32(padding) + whiteSize*0.5) / float32(atlasH),
	}

	drawer := &font.Drawer{Dst: dst, Src: image.White}
	glyphs := make(map[glyphKey]Glyph, len(measure))
	for _, g := range measure {
		out := Glyph{
			Rune: g.key.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
		}
		if g.w > 0 && g.h > 0 {
			p := g.pos
			yOff := glyphYOffset(sizePx, sources[g.key.src].Tweak)
			// Drawer expects a dot at the baseline; undo the tweak shift so the
			// bitmap itself stays inside its slot.
			drawer.Face = faces[g.key.src]
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by+yOff))
			drawer.DrawString(string(g.key.r))

			out.U0 = float32(p.X) / float32(atlasW)
			out.V0 = float32(p.Y) / float32(atlasH)
			out.U1 = float32(p.X+g.w) / float32(atlasW)
			out.V1 = float32(p.Y+g.h) / float32(atlasH)
		}
		glyphs[g.key] = out
	}

	for fam, mapping := range familyGlyphs {
		f := atlas.Fonts[fam]
		primary := byName[families[fam][0]]
		for r, key := range mapping {
			f.Glyphs[r] = glyphs[key]
			f.primary[r] = key.src == primary
		}
	}

	atlas.Width, atlas.Height = atlasW, atlasH
	atlas.Pixels = dst.Pix
	return atlas, nil
}

func pack(measure []*meas, atlasW, atlasH, padding, reserved int) bool {
	x, y, rowH := padding+reserved+padding, padding, reserved
	for _, g := range measure {
		if g.w == 0 || g.h == 0 {
			continue
		}
		if g.w+padding*2 > atlasW || g.h+padding*2 > atlasH {
			return false
		}
		if x+g.w+padding > atlasW {
			x = padding
			y += rowH + padding
			rowH = 0
		}
		if y+g.h+padding > atlasH {
			return false
		}
		g.pos = image.Pt(x, y)
		x += g.w + padding
		if g.h > rowH {
			rowH = g.h
		}
	}
	return true
}

func scaledSize(sizePx float32, t Tweak) float32 {
	if t.Scale <= 0 {
		return sizePx
	}
	return sizePx * t.Scale
}

func glyphYOffset(sizePx float32, t Tweak) float32 {
	return t.YOffsetFactor*scaledSize(sizePx, t) + t.YOffset
}
