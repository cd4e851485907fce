package img2ascii

import (
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// Cell is one glyph of a converted image. Color is the sampled source
// color, before any contrast adjustment.
type Cell struct {
	Glyph rune
	Color imageutil.RGB
}

// Grid is a row-major glyph grid. Every row holds exactly Width cells and
// there are Height rows.
type Grid struct {
	Width  int
	Height int
	Rows   [][]Cell
}

func newGrid(width, height int) *Grid {
	rows := make([][]Cell, height)
	for i := range rows {
		rows[i] = make([]Cell, width)
	}
	return &Grid{Width: width, Height: height, Rows: rows}
}

// At returns the cell at column x, row y.
func (g *Grid) At(x, y int) Cell {
	return g.Rows[y][x]
}

// Lines returns each row's glyphs as a string.
func (g *Grid) Lines() []string {
	lines := make([]string, len(g.Rows))
	for y, row := range g.Rows {
		var sb strings.Builder
		for _, cell := range row {
			sb.WriteRune(cell.Glyph)
		}
		lines[y] = sb.String()
	}
	return lines
}

// String joins the rows with newlines, for plain-text export.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// valid reports whether g is a well-formed, non-empty grid.
func (g *Grid) valid() bool {
	if g == nil || g.Width < 1 || g.Height < 1 || len(g.Rows) != g.Height {
		return false
	}
	for _, row := range g.Rows {
		if len(row) != g.Width {
			return false
		}
	}
	return true
}
