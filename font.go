package img2ascii

import (
	"fmt"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// DefaultFontSize is the pixel size of the default face; it matches the
// default 12 pixel line height.
const DefaultFontSize = 12.0

// DefaultFontFace returns Go Mono at the given pixel size.
func DefaultFontFace(size float64) (font.Face, error) {
	ttf, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go Mono: %w", err)
	}
	return newFace(ttf, size), nil
}

// LoadFontFace loads a TrueType font from path at the given pixel size.
func LoadFontFace(path string, size float64) (font.Face, error) {
	ttf, err := loadFont(path)
	if err != nil {
		return nil, err
	}
	return newFace(ttf, size), nil
}

// loadFont loads a TrueType font from file
func loadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}

	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}

	return ttf, nil
}

// newFace renders at 72 DPI so that size is in pixels.
func newFace(ttf *truetype.Font, size float64) font.Face {
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
