package main

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func TestWriteResultReusesSurface(t *testing.T) {
	target := filepath.Join(t.TempDir(), "preview.png")
	// No rasterizer: writing must not render the grid again.
	out := output{log: quietLogger(), mode: img2ascii.Monochrome, target: target}

	rgba := image.NewRGBA(image.Rect(0, 0, 33, 21))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.RGBA{R: 5, G: 26, B: 5, A: 255}),
		image.Point{}, draw.Src)

	if err := out.writeResult(img2ascii.PreviewResult{Generation: 3, Surface: rgba}); err != nil {
		t.Fatalf("writeResult: %v", err)
	}
	loaded, err := imageutil.LoadImage(target)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if loaded.Width() != 33 || loaded.Height() != 21 {
		t.Errorf("Expected the preview surface 33x21, got %dx%d", loaded.Width(), loaded.Height())
	}
	if got := loaded.GetRGB(10, 10); got != (imageutil.RGB{R: 5, G: 26, B: 5}) {
		t.Errorf("Saved pixel = %v", got)
	}
}

func TestWriteResultText(t *testing.T) {
	target := filepath.Join(t.TempDir(), "preview.txt")
	out := output{log: quietLogger(), mode: img2ascii.Monochrome, target: target}

	grid, err := img2ascii.Convert(
		imageutil.CreateSolidImage(8, 8, imageutil.RGB{R: 255, G: 255, B: 255}),
		img2ascii.Params{Columns: 4, Palette: img2ascii.NewPalette("@ "), Contrast: 1},
	)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if err := out.writeResult(img2ascii.PreviewResult{Generation: 1, Grid: grid}); err != nil {
		t.Fatalf("writeResult: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), grid.String()+"\n"; got != want {
		t.Errorf("Text output = %q, want %q", got, want)
	}
}
