package img2ascii

import (
	"errors"

	"github.com/wbrown/img2ascii/imageutil"
)

var (
	// ErrInvalidParameters is wrapped by errors caused by unusable
	// conversion or render arguments, such as a non-positive column count.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrImageDecode is wrapped by errors caused by an image that could not
	// be decoded or sampled. It is the same value as imageutil.ErrDecode.
	ErrImageDecode = imageutil.ErrDecode

	// ErrSurfaceUnavailable is wrapped by errors raised when the Rasterizer
	// cannot obtain a drawing surface or font face.
	ErrSurfaceUnavailable = errors.New("surface unavailable")
)
