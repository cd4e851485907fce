// Package img2ascii converts images into grids of text glyphs whose
// density follows the image's luminance, and rasterizes those grids onto
// RGBA surfaces for display and export.
//
// Conversion is a pure function of its inputs:
//
//	grid, err := img2ascii.Convert(img, img2ascii.Params{
//		Columns:  120,
//		Palette:  img2ascii.NewPalette(img2ascii.CharsetSimple),
//		Contrast: 1.0,
//	})
//
// The grid can be exported as text with Grid.String, colored for a
// terminal with RenderToAnsi, or drawn with a Rasterizer.
package img2ascii

import (
	"fmt"
	"image"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii/imageutil"
)

// Params are the per-call conversion parameters.
type Params struct {
	// Columns is the grid width in glyphs. It must be at least 1.
	Columns int
	// Palette lists glyphs densest first. An empty palette is replaced by
	// FallbackPalette.
	Palette Palette
	// Contrast scales brightness around mid-gray (128). 1.0 leaves it
	// unchanged; it is not clamped.
	Contrast float64
}

// DefaultParams returns 120 columns of the detailed charset at neutral
// contrast.
func DefaultParams() Params {
	return Params{
		Columns:  120,
		Palette:  NewPalette(CharsetDetailed),
		Contrast: 1.0,
	}
}

// Converter turns images into glyph grids. The zero configuration from
// NewConverter is suitable for most callers; a Converter holds no mutable
// state and is safe for concurrent use.
type Converter struct {
	// ScaleFactor is the height-to-width ratio of a glyph cell. Row count
	// is divided by it so the text keeps the image's proportions.
	ScaleFactor float64
	// Interpolation selects how the image is resampled to one pixel per
	// glyph.
	Interpolation imageutil.Interpolation

	log logrus.FieldLogger
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*Converter)

// NewConverter creates a Converter with the given options.
// Default values: ScaleFactor=2.0, Interpolation=InterpolationBox.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		ScaleFactor:   2.0,
		Interpolation: imageutil.InterpolationBox,
		log:           discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithScaleFactor sets the glyph cell aspect ratio (height / width).
func WithScaleFactor(factor float64) ConverterOption {
	return func(c *Converter) {
		c.ScaleFactor = factor
	}
}

// WithInterpolation sets the resampling method.
func WithInterpolation(interp imageutil.Interpolation) ConverterOption {
	return func(c *Converter) {
		c.Interpolation = interp
	}
}

// WithConverterLogger sets the logger used for debug output.
func WithConverterLogger(log logrus.FieldLogger) ConverterOption {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

var defaultConverter = NewConverter()

// Convert converts img with the default Converter.
func Convert(img image.Image, params Params) (*Grid, error) {
	return defaultConverter.Convert(img, params)
}

// GridSize returns the grid dimensions for an image of the given pixel
// size: columns as given and rows = floor(columns * height/width /
// ScaleFactor), at least 1.
func (c *Converter) GridSize(imgWidth, imgHeight, columns int) (int, int) {
	aspectRatio := float64(imgHeight) / float64(imgWidth)
	rows := int(math.Floor(float64(columns) * aspectRatio / c.ScaleFactor))
	if rows < 1 {
		rows = 1
	}
	return columns, rows
}

// Sample resamples img to exactly columns x rows pixels. img is not
// modified.
func (c *Converter) Sample(img image.Image, columns, rows int) (*imageutil.RGBAImage, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrImageDecode)
	}
	if columns < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: sample size %dx%d", ErrInvalidParameters, columns, rows)
	}
	return imageutil.Resize(imageutil.RGBAImageFromImage(img), columns, rows, c.Interpolation), nil
}

// Convert maps img to a glyph grid. Each cell's glyph is chosen from the
// contrast-adjusted luminance of its sample; its color is the sample's
// original RGB.
func (c *Converter) Convert(img image.Image, params Params) (*Grid, error) {
	if params.Columns < 1 {
		return nil, fmt.Errorf("%w: columns must be at least 1, got %d",
			ErrInvalidParameters, params.Columns)
	}
	if math.IsNaN(params.Contrast) || math.IsInf(params.Contrast, 0) {
		return nil, fmt.Errorf("%w: contrast must be finite, got %v",
			ErrInvalidParameters, params.Contrast)
	}
	if !(c.ScaleFactor > 0) {
		return nil, fmt.Errorf("%w: scale factor must be positive, got %v",
			ErrInvalidParameters, c.ScaleFactor)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrImageDecode)
	}

	palette := params.Palette
	if len(palette) == 0 {
		c.log.WithField("fallback", FallbackPalette).Debug("empty palette, using fallback")
		palette = palette.Resolve()
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w: palette is empty", ErrInvalidParameters)
	}

	bounds := img.Bounds()
	cols, rows := c.GridSize(bounds.Dx(), bounds.Dy(), params.Columns)
	sampled, err := c.Sample(img, cols, rows)
	if err != nil {
		return nil, err
	}

	luma := imageutil.ToGrayscaleFloat(sampled)
	grid := newGrid(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			color := sampled.GetRGB(x, y)
			adjusted := AdjustBrightness(luma[y][x], params.Contrast)
			grid.Rows[y][x] = Cell{
				Glyph: palette.Glyph(adjusted),
				Color: color,
			}
		}
	}

	c.log.WithFields(logrus.Fields{
		"image":         fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
		"columns":       cols,
		"rows":          rows,
		"glyphs":        len(palette),
		"contrast":      params.Contrast,
		"interpolation": c.Interpolation,
	}).Debug("converted image")

	return grid, nil
}

// AdjustBrightness applies contrast around mid-gray and clamps the result
// to [0, 255]: clamp((brightness-128)*contrast + 128).
func AdjustBrightness(brightness, contrast float64) float64 {
	adjusted := (brightness-128)*contrast + 128
	if adjusted < 0 {
		return 0
	}
	if adjusted > 255 {
		return 255
	}
	return adjusted
}
