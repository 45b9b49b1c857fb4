package core

import (
	"math"

	image2 "github.com/kpfaulkner/pixtensor/image"
)

// InferLayout works out the layout and spatial size of a tensor from its shape.
// Recognised shapes, checked in order: [1,3,H,W], [1,H,W,3], [3,H,W], [H,W,3].
// Anything else is assumed interleaved with the fallback size. Non positive
// (dynamic) dimensions and ones too large for uint32 are replaced by the
// fallback as well.
func InferLayout(shape []int64, fallbackWidth uint32, fallbackHeight uint32) (image2.Layout, uint32, uint32) {
	dim := func(d int64, fallback uint32) uint32 {
		if d <= 0 || d > math.MaxUint32 {
			return fallback
		}
		return uint32(d)
	}

	switch {
	case len(shape) == 4 && shape[1] == 3:
		return image2.LayoutNCHW, dim(shape[3], fallbackWidth), dim(shape[2], fallbackHeight)
	case len(shape) == 4 && shape[3] == 3:
		return image2.LayoutNHWC, dim(shape[2], fallbackWidth), dim(shape[1], fallbackHeight)
	case len(shape) == 3 && shape[0] == 3:
		return image2.LayoutNCHW, dim(shape[2], fallbackWidth), dim(shape[1], fallbackHeight)
	case len(shape) == 3 && shape[2] == 3:
		return image2.LayoutNHWC, dim(shape[1], fallbackWidth), dim(shape[0], fallbackHeight)
	}
	return image2.LayoutNHWC, fallbackWidth, fallbackHeight
}
