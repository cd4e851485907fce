package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/muesli/termenv"
	log "github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the output; .png writes the rendered surface, "+
			"anything else writes text (if not specified, prints to stdout)")
	pngOut := flag.Bool("png", false,
		"Write the rendered surface to DIAGNOSIS_<timestamp>.png when -output is not set")
	width := flag.Int("width", 120,
		"Target width of the output in characters")
	charset := flag.String("charset", "detailed",
		"Character set: "+strings.Join(img2ascii.CharsetNames(), ", "))
	customChars := flag.String("chars", "",
		"Glyphs for -charset custom, densest first")
	contrast := flag.Float64("contrast", 1.0,
		"Contrast factor around mid-gray (1.0 leaves brightness unchanged)")
	modeName := flag.String("mode", "mono",
		"Color mode: mono, green, pink, or original")
	ansi := flag.Bool("ansi", false,
		"Color text output for the terminal")
	fontPath := flag.String("font", "",
		"TrueType font for PNG output (default: embedded Go Mono)")
	fontSize := flag.Float64("fontsize", img2ascii.DefaultFontSize,
		"Font size in pixels for PNG output")
	interpName := flag.String("interp", "box",
		"Resampling: box, area, linear, nearest, or opencv")
	debugDir := flag.String("debug", "",
		"Directory to write the sampled and grayscale images to")
	watch := flag.Bool("watch", false,
		"Re-render whenever the input file changes")
	verbose := flag.Bool("v", false,
		"Enable debug logging")
	flag.Parse()

	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(2)
	}

	palette, err := img2ascii.LookupCharset(*charset, *customChars)
	if err != nil {
		logger.Fatalf("Error selecting charset: %v", err)
	}
	mode, err := img2ascii.ParseColorMode(*modeName)
	if err != nil {
		logger.Fatalf("Error selecting color mode: %v", err)
	}
	interp, err := imageutil.ParseInterpolation(*interpName)
	if err != nil {
		logger.Fatalf("Error selecting interpolation: %v", err)
	}
	if interp == imageutil.InterpolationOpenCV && !imageutil.OpenCVAvailable {
		logger.Warn("built without the gocv tag, using box resampling")
	}

	beginInit := time.Now()
	img, err := imageutil.LoadImage(*inputFile)
	if err != nil {
		logger.Fatalf("Error loading image: %v", err)
	}
	logger.WithFields(log.Fields{
		"path":    *inputFile,
		"size":    fmt.Sprintf("%dx%d", img.Width(), img.Height()),
		"elapsed": time.Since(beginInit),
	}).Debug("loaded image")

	conv := img2ascii.NewConverter(
		img2ascii.WithInterpolation(interp),
		img2ascii.WithConverterLogger(logger),
	)
	params := img2ascii.Params{
		Columns:  *width,
		Palette:  palette,
		Contrast: *contrast,
	}

	beginConvert := time.Now()
	grid, err := conv.Convert(img, params)
	if err != nil {
		logger.Fatalf("Error converting image: %v", err)
	}
	logger.WithField("elapsed", time.Since(beginConvert)).Debug("conversion done")

	if *debugDir != "" {
		if err := writeDebugImages(conv, img, grid, *debugDir); err != nil {
			logger.Warnf("Error writing debug images: %v", err)
		}
	}

	target := *outputFile
	if target == "" && *pngOut {
		target = fmt.Sprintf("DIAGNOSIS_%d.png", time.Now().UnixMilli())
	}

	opts := []img2ascii.RasterizerOption{img2ascii.WithRasterizerLogger(logger)}
	if *fontPath != "" {
		opts = append(opts, img2ascii.WithFontFile(*fontPath, *fontSize))
	}
	rast, err := img2ascii.NewRasterizer(opts...)
	if err != nil {
		logger.Fatalf("Error creating rasterizer: %v", err)
	}

	out := output{log: logger, rast: rast, mode: mode, ansi: *ansi, target: target}
	if err := out.write(grid); err != nil {
		logger.Fatal(err)
	}

	if *watch {
		watchInput(logger, conv, rast, out, *inputFile, params)
	}

	logger.WithFields(log.Fields{
		"columns": grid.Width,
		"rows":    grid.Height,
		"total":   time.Since(beginInit),
	}).Debug("finished")
}

// output writes a grid to stdout, a text file or a PNG.
type output struct {
	log    log.FieldLogger
	rast   *img2ascii.Rasterizer
	mode   img2ascii.ColorMode
	ansi   bool
	target string
}

func (o output) write(grid *img2ascii.Grid) error {
	if o.isPNG() {
		surface, err := o.rast.Render(grid, o.mode)
		if err != nil {
			return fmt.Errorf("error rendering PNG: %w", err)
		}
		return o.writeSurface(surface)
	}
	return o.writeText(grid)
}

// writeResult writes a preview result, reusing its rendered surface.
func (o output) writeResult(res img2ascii.PreviewResult) error {
	if o.isPNG() {
		return o.writeSurface(res.Surface)
	}
	return o.writeText(res.Grid)
}

func (o output) isPNG() bool {
	return strings.HasSuffix(strings.ToLower(o.target), ".png")
}

func (o output) writeSurface(surface *image.RGBA) error {
	if err := imageutil.SavePNG(surface, o.target); err != nil {
		return fmt.Errorf("error writing PNG: %w", err)
	}
	o.log.Infof("PNG output written to %s", o.target)
	return nil
}

func (o output) writeText(grid *img2ascii.Grid) error {
	text, err := textOutput(grid, o.mode, o.ansi)
	if err != nil {
		return fmt.Errorf("error formatting text: %w", err)
	}
	if o.target == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(o.target, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("error writing to file: %w", err)
	}
	o.log.Infof("Output written to %s", o.target)
	return nil
}

// watchInput polls the input file and re-renders through a Previewer, so
// bursts of writes produce one render.
func watchInput(
	logger *log.Logger,
	conv *img2ascii.Converter,
	rast *img2ascii.Rasterizer,
	out output,
	path string,
	params img2ascii.Params,
) {
	preview := img2ascii.NewPreviewer(conv, rast, img2ascii.DefaultPreviewDelay,
		func(res img2ascii.PreviewResult) {
			if res.Err != nil {
				logger.Errorf("Error rendering generation %d: %v", res.Generation, res.Err)
				return
			}
			if err := out.writeResult(res); err != nil {
				logger.Error(err)
			}
		})
	defer preview.Close()

	var lastMod time.Time
	if info, err := os.Stat(path); err == nil {
		lastMod = info.ModTime()
	}
	logger.Infof("Watching %s for changes", path)
	for range time.Tick(500 * time.Millisecond) {
		info, err := os.Stat(path)
		if err != nil || !info.ModTime().After(lastMod) {
			continue
		}
		lastMod = info.ModTime()
		img, err := imageutil.LoadImage(path)
		if err != nil {
			logger.Warnf("Error reloading image: %v", err)
			continue
		}
		gen := preview.Update(img, params, out.mode)
		logger.WithField("generation", gen).Debug("input changed")
	}
}

// textOutput returns plain glyph rows, or terminal-colored rows when
// colored is set.
func textOutput(grid *img2ascii.Grid, mode img2ascii.ColorMode, colored bool) (string, error) {
	if !colored {
		return grid.String(), nil
	}
	return img2ascii.RenderToAnsi(grid, mode, termenv.ColorProfile())
}

// writeDebugImages saves the per-glyph samples and their luma, for
// checking what the converter saw.
func writeDebugImages(
	conv *img2ascii.Converter,
	img *imageutil.RGBAImage,
	grid *img2ascii.Grid,
	dir string,
) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	sampled, err := conv.Sample(img, grid.Width, grid.Height)
	if err != nil {
		return err
	}
	if err := imageutil.SaveImage(sampled.NRGBA, filepath.Join(dir, "sampled.png")); err != nil {
		return err
	}
	gray := imageutil.ToGrayscale(sampled)
	return imageutil.SaveImage(gray.Gray, filepath.Join(dir, "gray.png"))
}
