package img2ascii

import (
	"fmt"
	"math"
	"strings"
)

// Palette is an ordered set of glyphs running from the visually densest
// (index 0) to the sparsest (last index).
type Palette []rune

// FallbackPalette replaces an empty palette: a dense marker and a space.
const FallbackPalette = "@ "

// Built-in charsets, densest first.
const (
	CharsetSimple   = "@%#*+=-:. "
	CharsetDetailed = "$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?-_+~<>i!lI;:,\"^`'. "
	CharsetBlock    = "█▓▒░ "
	CharsetBinary   = "01 "
)

// CustomCharset is the charset name that selects a caller-provided string.
const CustomCharset = "custom"

var charsets = NewOrderedMap[string, Palette]()

func init() {
	charsets.Set("simple", NewPalette(CharsetSimple))
	charsets.Set("detailed", NewPalette(CharsetDetailed))
	charsets.Set("block", NewPalette(CharsetBlock))
	charsets.Set("binary", NewPalette(CharsetBinary))
}

// NewPalette splits chars into glyphs.
func NewPalette(chars string) Palette {
	return Palette([]rune(chars))
}

// CharsetNames lists the built-in charsets in display order, followed by
// CustomCharset.
func CharsetNames() []string {
	names := make([]string, 0, charsets.Len()+1)
	charsets.Iterate(func(name string, _ Palette) {
		names = append(names, name)
	})
	return append(names, CustomCharset)
}

// LookupCharset resolves a charset name. For CustomCharset the palette is
// built from custom; it may be empty, in which case conversion falls back
// to FallbackPalette.
func LookupCharset(name, custom string) (Palette, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == CustomCharset {
		return NewPalette(custom), nil
	}
	p, ok := charsets.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown charset %q (have %s)",
			ErrInvalidParameters, name, strings.Join(CharsetNames(), ", "))
	}
	return append(Palette(nil), p...), nil
}

// Resolve returns p, or FallbackPalette when p is empty.
func (p Palette) Resolve() Palette {
	if len(p) == 0 {
		return NewPalette(FallbackPalette)
	}
	return p
}

// String returns the glyphs as a string.
func (p Palette) String() string {
	return string(p)
}

// Index returns the palette index selected for an adjusted brightness in
// [0, 255]. The brightness-scaled index is mirrored: 0 selects the last
// (sparsest) glyph and 255 selects the first (densest) one.
func (p Palette) Index(adjusted float64) int {
	n := len(p)
	idx := int(math.Floor(adjusted / 255 * float64(n-1)))
	if idx < 0 {
		idx = 0
	} else if idx > n-1 {
		idx = n - 1
	}
	return n - 1 - idx
}

// Glyph returns the glyph selected for an adjusted brightness.
func (p Palette) Glyph(adjusted float64) rune {
	return p[p.Index(adjusted)]
}
