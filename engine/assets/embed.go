// Package assets holds the files baked into the binary and the helpers that
// produce and read them.
package assets

import (
	"embed"
	"fmt"
	"image"
	"io/fs"
	"sync"

	"github.com/hubastard/canopy/engine/ui"
)

//go:generate go run ../../cmd/bakeassets -dir .

//go:embed style.yaml
var DefaultStyle []byte

//go:embed baked/icon-rgba.lz4
var iconBlob []byte

//go:embed baked/fonts.cbor.lz4
var fontsBlob []byte

//go:embed shaders
var shaderFS embed.FS

// LoadShader returns a GLSL source from the embedded shaders directory.
func LoadShader(name string) (string, error) {
	b, err := fs.ReadFile(shaderFS, "shaders/"+name)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	return string(b), nil
}

var (
	iconOnce sync.Once
	icon     Icon
	iconErr  error
)

// AppIcon decodes the baked icon.
func AppIcon() (image.Image, error) {
	iconOnce.Do(func() { icon, iconErr = DecodeIcon(iconBlob) })
	if iconErr != nil {
		return nil, iconErr
	}
	return icon.Image(), nil
}

// Fonts decodes the baked font bundle.
func Fonts() (ui.FontDefinitions, error) {
	return DecodeFonts(fontsBlob)
}
