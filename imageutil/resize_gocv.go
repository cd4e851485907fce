//go:build gocv

package imageutil

import (
	"image"

	"gocv.io/x/gocv"
)

// OpenCVAvailable reports whether InterpolationOpenCV is backed by OpenCV.
const OpenCVAvailable = true

func resizeOpenCV(img *RGBAImage, width, height int) *RGBAImage {
	src := rgbaToMat(img)
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.Resize(src, &dst, image.Pt(width, height), 0, 0, gocv.InterpolationArea)
	return matToRGBA(dst)
}

// rgbaToMat converts an RGBAImage to a gocv.Mat (BGR).
func rgbaToMat(img *RGBAImage) gocv.Mat {
	mat := gocv.NewMatWithSize(img.Height(), img.Width(), gocv.MatTypeCV8UC3)

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.GetRGB(x, y)
			// gocv uses BGR format
			mat.SetUCharAt(y, x*3, c.B)
			mat.SetUCharAt(y, x*3+1, c.G)
			mat.SetUCharAt(y, x*3+2, c.R)
		}
	}
	return mat
}

// matToRGBA converts a gocv.Mat (BGR) to an RGBAImage.
func matToRGBA(mat gocv.Mat) *RGBAImage {
	height, width := mat.Rows(), mat.Cols()
	img := NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			vec := mat.GetVecbAt(y, x)
			img.SetRGB(x, y, RGB{R: vec[2], G: vec[1], B: vec[0]})
		}
	}
	return img
}
