package assets

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/fxamacker/cbor/v2"
	"github.com/hubastard/canopy/engine/ui"
	"github.com/pierrec/lz4/v4"
)

// maxUnpacked bounds the size prefix so a corrupt blob cannot request a
// huge allocation.
const maxUnpacked = 256 << 20

// Compress LZ4-compresses data as a single block preceded by the
// uncompressed length as a little-endian uint32.
func Compress(data []byte) ([]byte, error) {
	out := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(out, uint32(len(data)))
	if len(data) == 0 {
		out[4] = 0 // empty block: a single zero token
		return out[:5], nil
	}
	var c lz4.Compressor
	n, err := c.CompressBlock(data, out[4:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 {
		return nil, errors.New("lz4 compress: block did not fit its bound")
	}
	return out[:4+n], nil
}

// Decompress reverses Compress.
func Decompress(blob []byte) ([]byte, error) {
	if len(blob) < 4 {
		return nil, errors.New("lz4 blob: missing size prefix")
	}
	size := binary.LittleEndian.Uint32(blob)
	if size > maxUnpacked {
		return nil, fmt.Errorf("lz4 blob: size %d too large", size)
	}
	out := make([]byte, size)
	if size == 0 {
		return out, nil
	}
	n, err := lz4.UncompressBlock(blob[4:], out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, want %d", n, size)
	}
	return out, nil
}

// Icon is a decoded application icon: straight-alpha RGBA8, row-major.
type Icon struct {
	Width, Height int
	RGBA          []byte
}

// Image wraps the pixels for APIs that take an image.Image.
func (i Icon) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    i.RGBA,
		Stride: i.Width * 4,
		Rect:   image.Rect(0, 0, i.Width, i.Height),
	}
}

// PackIcon decodes the first image of an .ico file and packs it as RGBA
// bytes followed by width-1 and height-1 (one byte each, so icons are at
// most 256x256), compressed with Compress.
func PackIcon(ico []byte) ([]byte, error) {
	img, err := ParseICO(ico)
	if err != nil {
		return nil, err
	}
	rgba := imageToNRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w < 1 || h < 1 || w > 256 || h > 256 {
		return nil, fmt.Errorf("icon size %dx%d outside 1..256", w, h)
	}
	raw := make([]byte, 0, w*h*4+2)
	raw = append(raw, rgba.Pix[:w*h*4]...)
	raw = append(raw, byte(w-1), byte(h-1))
	return Compress(raw)
}

// DecodeIcon reverses PackIcon.
func DecodeIcon(blob []byte) (Icon, error) {
	raw, err := Decompress(blob)
	if err != nil {
		return Icon{}, fmt.Errorf("icon: %w", err)
	}
	if len(raw) < 2 {
		return Icon{}, errors.New("icon: missing size trailer")
	}
	w := int(raw[len(raw)-2]) + 1
	h := int(raw[len(raw)-1]) + 1
	pix := raw[:len(raw)-2]
	if len(pix) != w*h*4 {
		return Icon{}, fmt.Errorf("icon: %d pixel bytes for %dx%d", len(pix), w, h)
	}
	return Icon{Width: w, Height: h, RGBA: pix}, nil
}

// PackFonts serializes font definitions to CBOR and compresses them.
func PackFonts(defs ui.FontDefinitions) ([]byte, error) {
	if err := defs.Validate(); err != nil {
		return nil, err
	}
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	raw, err := em.Marshal(defs)
	if err != nil {
		return nil, fmt.Errorf("encode fonts: %w", err)
	}
	return Compress(raw)
}

// DecodeFonts reverses PackFonts.
func DecodeFonts(blob []byte) (ui.FontDefinitions, error) {
	raw, err := Decompress(blob)
	if err != nil {
		return ui.FontDefinitions{}, fmt.Errorf("fonts: %w", err)
	}
	var defs ui.FontDefinitions
	if err := cbor.Unmarshal(raw, &defs); err != nil {
		return ui.FontDefinitions{}, fmt.Errorf("decode fonts: %w", err)
	}
	if err := defs.Validate(); err != nil {
		return ui.FontDefinitions{}, fmt.Errorf("fonts: %w", err)
	}
	return defs, nil
}
