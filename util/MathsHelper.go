package util

import (
	"cmp"
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func Max[T cmp.Ordered](args ...T) T {
	if len(args) == 0 {
		return *new(T)
	}

	if isNan(args[0]) {
		return args[0]
	}

	max := args[0]
	for _, arg := range args[1:] {

		if isNan(arg) {
			return arg
		}

		if arg > max {
			max = arg
		}
	}
	return max
}

func Min[T cmp.Ordered](args ...T) T {
	if len(args) == 0 {
		return *new(T)
	}

	if isNan(args[0]) {
		return args[0]
	}

	min := args[0]
	for _, arg := range args[1:] {

		if isNan(arg) {
			return arg
		}

		if arg < min {
			min = arg
		}
	}
	return min
}

// Clamp limits v to [lo, hi]. NaN is passed through untouched.
func Clamp[T Number](v T, lo T, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampToByte clamps to [0,255] and then truncates toward zero.
// NaN maps to 0, same as a saturating float to int cast.
func ClampToByte(v float32) uint8 {
	if isNan(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// RoundToUint32 rounds half away from zero in float32 space.
// Negative values and NaN saturate to 0, larger than MaxUint32 saturates to MaxUint32.
func RoundToUint32(v float32) uint32 {
	r := math.Round(float64(v))
	if isNan(r) || r <= 0 {
		return 0
	}
	if r >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(r)
}

func isNan[T comparable](arg T) bool {
	return arg != arg
}
