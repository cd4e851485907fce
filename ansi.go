package img2ascii

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
	"github.com/wbrown/img2ascii/imageutil"
)

// RenderToAnsi renders grid as terminal text colored with mode's default
// theme. With the termenv.Ascii profile the result equals grid.String().
func RenderToAnsi(grid *Grid, mode ColorMode, profile termenv.Profile) (string, error) {
	theme, ok := DefaultThemes()[mode]
	if !ok {
		return "", fmt.Errorf("%w: unknown color mode %v", ErrInvalidParameters, mode)
	}
	return RenderToAnsiWithTheme(grid, mode, theme, profile)
}

// RenderToAnsiWithTheme renders grid as terminal text colored with theme.
// Adjacent cells that share a foreground color are written as a single
// styled run.
func RenderToAnsiWithTheme(grid *Grid, mode ColorMode, theme Theme, profile termenv.Profile) (string, error) {
	if !grid.valid() {
		return "", fmt.Errorf("%w: malformed grid", ErrInvalidParameters)
	}
	if !mode.valid() {
		return "", fmt.Errorf("%w: unknown color mode %v", ErrInvalidParameters, mode)
	}
	if profile == termenv.Ascii {
		return grid.String(), nil
	}

	bg := profile.Color(theme.Background.Hex())
	lines := make([]string, len(grid.Rows))
	for y, row := range grid.Rows {
		var sb strings.Builder
		var run strings.Builder
		var runColor imageutil.RGB

		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := profile.String(run.String()).
				Foreground(profile.Color(runColor.Hex())).
				Background(bg)
			sb.WriteString(style.String())
			run.Reset()
		}

		for _, cell := range row {
			fg := theme.foregroundFor(mode, cell)
			if run.Len() > 0 && fg != runColor {
				flush()
			}
			runColor = fg
			run.WriteRune(cell.Glyph)
		}
		flush()
		lines[y] = sb.String()
	}

	return strings.Join(lines, "\n"), nil
}
