package img2ascii

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/img2ascii/imageutil"
)

// ColorMode selects how a rendered grid is colored.
type ColorMode int

const (
	// Monochrome draws dark slate glyphs on white.
	Monochrome ColorMode = iota
	// VintageGreen draws phosphor-green glyphs on near-black.
	VintageGreen
	// CyberPink draws magenta glyphs on dark magenta.
	CyberPink
	// OriginalColor draws each glyph in its cell's sampled color on
	// near-white.
	OriginalColor
)

var colorModeNames = []struct {
	mode  ColorMode
	names []string
}{
	{Monochrome, []string{"mono", "monochrome"}},
	{VintageGreen, []string{"green", "vintage_green"}},
	{CyberPink, []string{"pink", "cyber_pink"}},
	{OriginalColor, []string{"original", "color"}},
}

// String returns the canonical flag name of the mode.
func (m ColorMode) String() string {
	for _, entry := range colorModeNames {
		if entry.mode == m {
			return entry.names[0]
		}
	}
	return fmt.Sprintf("ColorMode(%d)", int(m))
}

// ParseColorMode accepts a mode's canonical or long name, in any case.
func ParseColorMode(name string) (ColorMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "_")
	for _, entry := range colorModeNames {
		for _, n := range entry.names {
			if n == name {
				return entry.mode, nil
			}
		}
	}
	return Monochrome, fmt.Errorf("%w: unknown color mode %q", ErrInvalidParameters, name)
}

func (m ColorMode) valid() bool {
	for _, entry := range colorModeNames {
		if entry.mode == m {
			return true
		}
	}
	return false
}

// ColorModes lists every mode in declaration order.
func ColorModes() []ColorMode {
	modes := make([]ColorMode, len(colorModeNames))
	for i, entry := range colorModeNames {
		modes[i] = entry.mode
	}
	return modes
}

// Theme is the pair of colors a mode paints with. OriginalColor ignores
// Foreground in favor of each cell's color.
type Theme struct {
	Background imageutil.RGB
	Foreground imageutil.RGB
}

// ParseTheme builds a Theme from two hex colors such as "#051a05".
func ParseTheme(background, foreground string) (Theme, error) {
	bg, err := parseHex(background)
	if err != nil {
		return Theme{}, err
	}
	fg, err := parseHex(foreground)
	if err != nil {
		return Theme{}, err
	}
	return Theme{Background: bg, Foreground: fg}, nil
}

func parseHex(s string) (imageutil.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return imageutil.RGB{}, fmt.Errorf("%w: bad color %q: %v", ErrInvalidParameters, s, err)
	}
	r, g, b := c.RGB255()
	return imageutil.RGB{R: r, G: g, B: b}, nil
}

// Dark modes get dark backgrounds, light modes light ones.
var defaultThemeHex = map[ColorMode][2]string{
	Monochrome:    {"#ffffff", "#334155"},
	VintageGreen:  {"#051a05", "#00ff41"},
	CyberPink:     {"#2a0a18", "#ff00ff"},
	OriginalColor: {"#f8fafc", "#334155"},
}

// DefaultThemes returns a fresh copy of the built-in theme table.
func DefaultThemes() map[ColorMode]Theme {
	themes := make(map[ColorMode]Theme, len(defaultThemeHex))
	for mode, hex := range defaultThemeHex {
		theme, err := ParseTheme(hex[0], hex[1])
		if err != nil {
			panic(err)
		}
		themes[mode] = theme
	}
	return themes
}

// foregroundFor returns the glyph color for cell under mode.
func (t Theme) foregroundFor(mode ColorMode, cell Cell) imageutil.RGB {
	if mode == OriginalColor {
		return cell.Color
	}
	return t.Foreground
}
