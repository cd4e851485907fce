//go:build !gocv

package imageutil

// OpenCVAvailable reports whether InterpolationOpenCV is backed by OpenCV.
const OpenCVAvailable = false

func resizeOpenCV(img *RGBAImage, width, height int) *RGBAImage {
	return resizeBox(img, width, height)
}
