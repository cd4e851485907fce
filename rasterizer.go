package img2ascii

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii/imageutil"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Default cell geometry, in pixels.
const (
	DefaultCellWidth  = 7
	DefaultCellHeight = 12
	DefaultMargin     = 10
)

// DefaultMaxSurfacePixels bounds the surfaces a Rasterizer will allocate.
const DefaultMaxSurfacePixels = 64 << 20

// Shade glyphs are painted as flat fills at a fixed coverage.
var shadeCoverage = map[rune]uint8{
	'█': 255,
	'▓': 191,
	'▒': 128,
	'░': 64,
}

// Rasterizer draws glyph grids onto RGBA surfaces with fixed cell
// geometry. Render calls are serialized because font faces cache glyphs.
type Rasterizer struct {
	CellWidth        int
	CellHeight       int
	Margin           int
	MaxSurfacePixels int

	themes map[ColorMode]Theme
	face   font.Face
	err    error
	log    logrus.FieldLogger
	mu     sync.Mutex
}

// RasterizerOption is a functional option for configuring a Rasterizer.
type RasterizerOption func(*Rasterizer)

// NewRasterizer creates a Rasterizer with the given options.
// Default values: 7x12 cells, 10 pixel margin, Go Mono at 12px, the
// DefaultThemes table.
func NewRasterizer(opts ...RasterizerOption) (*Rasterizer, error) {
	r := &Rasterizer{
		CellWidth:        DefaultCellWidth,
		CellHeight:       DefaultCellHeight,
		Margin:           DefaultMargin,
		MaxSurfacePixels: DefaultMaxSurfacePixels,
		themes:           DefaultThemes(),
		log:              discardLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.err != nil {
		return nil, r.err
	}

	if err := r.checkGeometry(); err != nil {
		return nil, err
	}

	if r.face == nil {
		face, err := DefaultFontFace(DefaultFontSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
		}
		r.face = face
	}

	return r, nil
}

// WithCellSize sets the per-glyph cell size in pixels.
func WithCellSize(width, height int) RasterizerOption {
	return func(r *Rasterizer) {
		r.CellWidth = width
		r.CellHeight = height
	}
}

// WithMargin sets the blank border around the grid in pixels.
func WithMargin(margin int) RasterizerOption {
	return func(r *Rasterizer) {
		r.Margin = margin
	}
}

// WithMaxSurfacePixels caps surface allocation; 0 disables the cap.
func WithMaxSurfacePixels(limit int) RasterizerOption {
	return func(r *Rasterizer) {
		r.MaxSurfacePixels = limit
	}
}

// WithTheme overrides the colors of one mode.
func WithTheme(mode ColorMode, theme Theme) RasterizerOption {
	return func(r *Rasterizer) {
		r.themes[mode] = theme
	}
}

// WithFace draws glyphs with face, for example basicfont.Face7x13.
func WithFace(face font.Face) RasterizerOption {
	return func(r *Rasterizer) {
		r.face = face
	}
}

// WithFontFile draws glyphs with a TrueType font loaded from path.
func WithFontFile(path string, size float64) RasterizerOption {
	return func(r *Rasterizer) {
		face, err := LoadFontFace(path, size)
		if err != nil {
			r.err = fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
			return
		}
		r.face = face
	}
}

// WithRasterizerLogger sets the logger used for debug output.
func WithRasterizerLogger(log logrus.FieldLogger) RasterizerOption {
	return func(r *Rasterizer) {
		if log != nil {
			r.log = log
		}
	}
}

// checkGeometry rejects cell sizes and margins that cannot lay out a grid.
func (r *Rasterizer) checkGeometry() error {
	if r.CellWidth < 1 || r.CellHeight < 1 || r.Margin < 0 {
		return fmt.Errorf("%w: cell %dx%d, margin %d",
			ErrInvalidParameters, r.CellWidth, r.CellHeight, r.Margin)
	}
	return nil
}

// Theme returns the colors used for mode.
func (r *Rasterizer) Theme(mode ColorMode) (Theme, bool) {
	theme, ok := r.themes[mode]
	return theme, ok
}

// SurfaceSize returns the pixel size of the surface for a grid of the
// given dimensions.
func (r *Rasterizer) SurfaceSize(columns, rows int) (int, int) {
	return columns*r.CellWidth + 2*r.Margin, rows*r.CellHeight + 2*r.Margin
}

// CellOrigin returns the top-left pixel of the cell at column x, row y.
func (r *Rasterizer) CellOrigin(x, y int) image.Point {
	return image.Pt(r.Margin+x*r.CellWidth, r.Margin+y*r.CellHeight)
}

// Render draws grid onto a new surface using mode's colors.
func (r *Rasterizer) Render(grid *Grid, mode ColorMode) (*image.RGBA, error) {
	if !grid.valid() {
		return nil, fmt.Errorf("%w: malformed grid", ErrInvalidParameters)
	}
	if err := r.checkGeometry(); err != nil {
		return nil, err
	}
	theme, ok := r.themes[mode]
	if !ok {
		return nil, fmt.Errorf("%w: unknown color mode %v", ErrInvalidParameters, mode)
	}
	if r.face == nil {
		return nil, fmt.Errorf("%w: no font face", ErrSurfaceUnavailable)
	}

	width, height := r.SurfaceSize(grid.Width, grid.Height)
	if r.MaxSurfacePixels > 0 && width*height > r.MaxSurfacePixels {
		return nil, fmt.Errorf("%w: %dx%d surface exceeds %d pixels",
			ErrSurfaceUnavailable, width, height, r.MaxSurfacePixels)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(theme.Background.ToColor()),
		image.Point{}, draw.Src)

	ascent := r.face.Metrics().Ascent.Ceil()
	drawer := &font.Drawer{Dst: img, Face: r.face}

	for y, row := range grid.Rows {
		for x, cell := range row {
			fg := theme.foregroundFor(mode, cell)
			r.drawCell(img, drawer, r.CellOrigin(x, y), ascent, cell.Glyph, fg)
		}
	}

	r.log.WithFields(logrus.Fields{
		"mode":    mode,
		"columns": grid.Width,
		"rows":    grid.Height,
		"surface": fmt.Sprintf("%dx%d", width, height),
	}).Debug("rendered grid")

	return img, nil
}

// drawCell draws one glyph top-aligned in the cell at origin.
func (r *Rasterizer) drawCell(
	img *image.RGBA,
	drawer *font.Drawer,
	origin image.Point,
	ascent int,
	glyph rune,
	fg imageutil.RGB,
) {
	if glyph == ' ' {
		return
	}
	src := image.NewUniform(fg.ToColor())

	if coverage, ok := shadeCoverage[glyph]; ok {
		rect := image.Rect(origin.X, origin.Y,
			origin.X+r.CellWidth, origin.Y+r.CellHeight)
		mask := image.NewUniform(color.Alpha{A: coverage})
		draw.DrawMask(img, rect, src, image.Point{}, mask, image.Point{}, draw.Over)
		return
	}

	drawer.Src = src
	drawer.Dot = fixed.P(origin.X, origin.Y+ascent)
	drawer.DrawString(string(glyph))
}

// SavePNG renders grid and writes it to path as PNG.
func (r *Rasterizer) SavePNG(grid *Grid, mode ColorMode, path string) error {
	img, err := r.Render(grid, mode)
	if err != nil {
		return err
	}
	return imageutil.SavePNG(img, path)
}
