package core

import (
	"math"

	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/util"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

const (
	autoRangeSampleLimit = 500
	autoRangeSampleStep  = 5
)

// DetectRange guesses whether a tensor holds [0,1] or [-1,1] values.
// Every fifth pixel among the first 500 is mapped to bytes under both
// interpretations and the one producing the larger variance of per pixel
// means wins. Ties (including empty tensors) resolve to RangeZeroOne.
func DetectRange(tb *image2.TensorBuffer) image2.Range {
	limit := util.Min(tb.Plane(), autoRangeSampleLimit)
	n := (limit + autoRangeSampleStep - 1) / autoRangeSampleStep
	as01 := make([]float64, 0, n)
	asM11 := make([]float64, 0, n)

	for p := 0; p < limit; p += autoRangeSampleStep {
		r, g, b := tb.RGB(p)
		as01 = append(as01, mappedMean(r, g, b, func(v float64) float64 { return v * 255 }))
		asM11 = append(asM11, mappedMean(r, g, b, func(v float64) float64 { return (v + 1) * 127.5 }))
	}

	if len(as01) == 0 {
		return image2.RangeZeroOne
	}

	v01 := stat.Variance(as01, nil)
	vM11 := stat.Variance(asM11, nil)
	rng := util.IfThenElse(vM11 > v01, image2.RangeMinusOneOne, image2.RangeZeroOne)
	log.Debugf("auto range: variance 0to1 %f m1to1 %f, picked %s", v01, vM11, rng)
	return rng
}

func mappedMean(r float32, g float32, b float32, m func(float64) float64) float64 {
	clamp := func(v float32) float64 {
		return util.Clamp(m(float64(v)), 0, 255)
	}
	return (clamp(r) + clamp(g) + clamp(b)) / 3
}

// minMaxDenormalizer inspects the full value range of the tensor:
// values that already look like [0,1] or [-1,1] are mapped as such,
// anything else is stretched linearly so min becomes 0 and max 255.
func minMaxDenormalizer(tb *image2.TensorBuffer) func(float32) float32 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for p := 0; p < tb.Plane(); p++ {
		r, g, b := tb.RGB(p)
		for _, v := range [3]float64{float64(r), float64(g), float64(b)} {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	switch {
	case hi <= 1.2 && lo >= -0.2:
		log.Debugf("minmax: [%f,%f] treated as 0to1", lo, hi)
		return func(v float32) float32 { return float32(float64(v) * 255) }
	case hi <= 1.1 && lo >= -1.1:
		log.Debugf("minmax: [%f,%f] treated as m1to1", lo, hi)
		return func(v float32) float32 { return float32((float64(v)*0.5 + 0.5) * 255) }
	}

	gain := 1.0
	if hi != lo {
		gain = 255 / (hi - lo)
	}
	log.Debugf("minmax: stretching [%f,%f] with gain %f", lo, hi, gain)
	return func(v float32) float32 { return float32((float64(v) - lo) * gain) }
}
