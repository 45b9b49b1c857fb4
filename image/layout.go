package image

import (
	"fmt"
	"strings"
)

// Layout is the channel ordering of a float tensor.
type Layout int

const (
	// LayoutNCHW is planar, channels first: all R, then all G, then all B.
	LayoutNCHW Layout = iota
	// LayoutNHWC is interleaved, channels last: R,G,B triplets per pixel.
	LayoutNHWC
)

func (l Layout) String() string {
	switch l {
	case LayoutNCHW:
		return "nchw"
	case LayoutNHWC:
		return "nhwc"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// ParseLayout accepts nchw/chw and nhwc/hwc, case insensitive.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nchw", "chw", "planar":
		return LayoutNCHW, nil
	case "nhwc", "hwc", "interleaved":
		return LayoutNHWC, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayout, s)
}

// Range is the numeric range tensor values are normalised into.
type Range int

const (
	// RangeZeroOne maps byte 0..255 to 0.0..1.0.
	RangeZeroOne Range = iota
	// RangeMinusOneOne maps byte 0..255 to -1.0..1.0.
	RangeMinusOneOne
	// RangeAuto picks between the two fixed ranges by comparing output variance.
	// Only meaningful when converting tensors back to pixels.
	RangeAuto
	// RangeMinMax inspects the tensor's value range and stretches if needed.
	// Only meaningful when converting tensors back to pixels.
	RangeMinMax
)

func (r Range) String() string {
	switch r {
	case RangeZeroOne:
		return "0to1"
	case RangeMinusOneOne:
		return "m1to1"
	case RangeAuto:
		return "auto"
	case RangeMinMax:
		return "minmax"
	default:
		return fmt.Sprintf("range(%d)", int(r))
	}
}

// IsFixed reports whether r is one of the two fixed normalisation ranges.
func (r Range) IsFixed() bool {
	return r == RangeZeroOne || r == RangeMinusOneOne
}

func ParseRange(s string) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0to1", "01", "zero-one":
		return RangeZeroOne, nil
	case "m1to1", "-1to1", "minus1to1", "minus-one-one":
		return RangeMinusOneOne, nil
	case "auto":
		return RangeAuto, nil
	case "minmax", "minmax255":
		return RangeMinMax, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRange, s)
}
