package core

import (
	"github.com/kpfaulkner/pixtensor/util"
)

// ScaleDims returns the size a width x height image should be resized to so that
// its longer side is at most maxSide, keeping the aspect ratio. It never upscales
// and maxSide 0 means no resizing.
//
// The factor and products are computed in float32 and each side is rounded half
// away from zero independently. Existing consumers depend on this exact rounding.
func ScaleDims(width uint32, height uint32, maxSide uint32) (uint32, uint32) {
	if maxSide == 0 {
		return width, height
	}
	m := util.Max(width, height)
	if m <= maxSide {
		return width, height
	}
	s := float32(maxSide) / float32(m)
	return util.RoundToUint32(float32(float32(width) * s)),
		util.RoundToUint32(float32(float32(height) * s))
}
