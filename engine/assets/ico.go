package assets

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/bmp"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// ParseICO decodes the first image of a Windows .ico file. Entries may hold a
// PNG stream or a headerless BMP (DIB) whose height covers the AND mask too.
func ParseICO(data []byte) (image.Image, error) {
	if len(data) < 6 {
		return nil, errors.New("ico: file too short")
	}
	if binary.LittleEndian.Uint16(data[0:]) != 0 || binary.LittleEndian.Uint16(data[2:]) != 1 {
		return nil, errors.New("ico: bad header")
	}
	count := int(binary.LittleEndian.Uint16(data[4:]))
	if count == 0 {
		return nil, errors.New("ico: no images")
	}
	if len(data) < 6+16*count {
		return nil, errors.New("ico: truncated directory")
	}
	entry := data[6:22]
	size := int(binary.LittleEndian.Uint32(entry[8:]))
	offset := int(binary.LittleEndian.Uint32(entry[12:]))
	if offset < 0 || size <= 0 || offset+size > len(data) {
		return nil, fmt.Errorf("ico: image data [%d, %d) outside file of %d bytes", offset, offset+size, len(data))
	}
	payload := data[offset : offset+size]

	if bytes.HasPrefix(payload, pngMagic) {
		img, err := png.Decode(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("ico: png entry: %w", err)
		}
		return img, nil
	}
	return decodeDIB(payload)
}

// decodeDIB wraps an icon DIB in a BMP file header so x/image/bmp can read it.
func decodeDIB(dib []byte) (image.Image, error) {
	if len(dib) < 40 {
		return nil, errors.New("ico: dib header too short")
	}
	hdrSize := binary.LittleEndian.Uint32(dib[0:])
	width := int32(binary.LittleEndian.Uint32(dib[4:]))
	height := int32(binary.LittleEndian.Uint32(dib[8:]))
	bpp := binary.LittleEndian.Uint16(dib[14:])
	if hdrSize < 40 || width <= 0 || height == 0 {
		return nil, fmt.Errorf("ico: unsupported dib (header %d, %dx%d)", hdrSize, width, height)
	}

	fixed := make([]byte, len(dib))
	copy(fixed, dib)
	// The stored height counts the XOR image and the AND mask.
	binary.LittleEndian.PutUint32(fixed[8:], uint32(height/2))

	var paletteSize uint32
	if bpp <= 8 {
		colors := binary.LittleEndian.Uint32(dib[32:])
		if colors == 0 {
			colors = 1 << bpp
		}
		paletteSize = colors * 4
	}
	fileHdr := make([]byte, 14)
	copy(fileHdr, "BM")
	binary.LittleEndian.PutUint32(fileHdr[2:], uint32(14+len(fixed)))
	binary.LittleEndian.PutUint32(fileHdr[10:], 14+hdrSize+paletteSize)

	img, err := bmp.Decode(bytes.NewReader(append(fileHdr, fixed...)))
	if err != nil {
		return nil, fmt.Errorf("ico: bmp entry: %w", err)
	}
	if bpp == 32 && hdrSize == 40 {
		return withDIBAlpha(img, dib[hdrSize:]), nil
	}
	return img, nil
}

// withDIBAlpha restores the alpha channel bmp drops for 40-byte headers.
// Rows are stored bottom-up. An all-zero alpha means the icon relies on its
// AND mask instead, so the opaque decode is kept.
func withDIBAlpha(img image.Image, pix []byte) image.Image {
	out := imageToNRGBA(img)
	w, h := out.Rect.Dx(), out.Rect.Dy()
	if len(pix) < w*h*4 {
		return out
	}
	hasAlpha := false
	for i := 3; i < w*h*4; i += 4 {
		if pix[i] != 0 {
			hasAlpha = true
			break
		}
	}
	if !hasAlpha {
		return out
	}
	for y := 0; y < h; y++ {
		src := pix[(h-1-y)*w*4:]
		row := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			row[x*4+3] = src[x*4+3]
		}
	}
	return out
}
