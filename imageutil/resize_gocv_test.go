//go:build gocv

// These tests compare the pure Go box resampler against OpenCV's
// INTER_AREA. They require OpenCV to be installed.
//
// Run with: go test -tags gocv ./imageutil
package imageutil

import "testing"

func TestOpenCVAreaMatchesBox(t *testing.T) {
	if !OpenCVAvailable {
		t.Fatal("gocv build should report OpenCV as available")
	}

	img := CreateColorBarsImage(160, 90)
	opencv := Resize(img, 40, 18, InterpolationOpenCV)
	box := Resize(img, 40, 18, InterpolationBox)

	if opencv.Width() != 40 || opencv.Height() != 18 {
		t.Fatalf("Expected 40x18, got %dx%d", opencv.Width(), opencv.Height())
	}
	if mse := CalculateMSE(opencv, box); mse > 25 {
		t.Errorf("INTER_AREA and box resampling diverge: MSE=%.2f", mse)
	}
}

func TestOpenCVAreaSolid(t *testing.T) {
	c := RGB{R: 12, G: 200, B: 99}
	img := CreateSolidImage(33, 21, c)
	out := Resize(img, 5, 3, InterpolationOpenCV)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if got := out.GetRGB(x, y); got != c {
				t.Errorf("(%d,%d): expected %v, got %v", x, y, c, got)
			}
		}
	}
}
