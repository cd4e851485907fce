package imageutil

import "image/color"

// Luma returns the BT.601 luminance of c in [0, 255]:
// Y = 0.299*R + 0.587*G + 0.114*B.
//
// The weights are applied as integers over 1000 so that pure white maps
// to exactly 255 rather than a value a few ulps below it.
func Luma(c RGB) float64 {
	return float64(299*int(c.R)+587*int(c.G)+114*int(c.B)) / 1000
}

// ToGrayscale converts an RGBA image to grayscale using Luma, rounded to
// the nearest integer.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.NRGBAAt(x, y)
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			gray.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}

	return gray
}

// ToGrayscaleFloat returns the unrounded Luma of every pixel, indexed
// [y][x].
func ToGrayscaleFloat(img *RGBAImage) [][]float64 {
	width, height := img.Width(), img.Height()
	gray := make([][]float64, height)

	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			gray[y][x] = Luma(img.GetRGB(x, y))
		}
	}

	return gray
}
