package core

import (
	"fmt"

	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/options"
	"github.com/kpfaulkner/pixtensor/util"
	log "github.com/sirupsen/logrus"
)

// PostprocessToRGBA converts a float tensor back to interleaved RGBA bytes.
// nchw selects planar input, otherwise the tensor is read as interleaved RGB triplets.
// Each channel is denormalised, clamped to [0,255] and truncated; alpha is always 255.
func PostprocessToRGBA(tensor []float32, width uint32, height uint32, nchw bool, rangeM1to1 bool) ([]byte, error) {
	return Postprocess(tensor, width, height, &options.PostprocessOptions{
		Layout: options.LayoutFromFlag(nchw),
		Range:  options.RangeFromFlag(rangeM1to1),
	})
}

// Postprocess is PostprocessToRGBA with the full option set, which adds the
// RangeAuto and RangeMinMax value mappings.
func Postprocess(tensor []float32, width uint32, height uint32, opts *options.PostprocessOptions) ([]byte, error) {
	defer reportPanic("postprocess")

	opt := options.NewPostprocessOptions(opts)
	tb, err := image2.WrapTensorBuffer(tensor, width, height, opt.Layout)
	if err != nil {
		log.Errorf("postprocess: %v", err)
		return nil, err
	}

	var denorm func(float32) float32
	switch opt.Range {
	case image2.RangeZeroOne:
		denorm = fromZeroOne
	case image2.RangeMinusOneOne:
		denorm = fromMinusOneOne
	case image2.RangeAuto:
		denorm = fixedDenormalizer(DetectRange(tb))
	case image2.RangeMinMax:
		denorm = minMaxDenormalizer(tb)
	default:
		return nil, fmt.Errorf("postprocess: %w: %s", image2.ErrUnknownRange, opt.Range)
	}
	log.Debugf("postprocess %dx%d range %s layout %s", width, height, opt.Range, opt.Layout)

	out := &image2.PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, tb.Plane()*image2.BytesPerPixel),
	}
	for p := 0; p < tb.Plane(); p++ {
		r, g, b := tb.RGB(p)
		out.SetOpaque(p, util.ClampToByte(denorm(r)), util.ClampToByte(denorm(g)), util.ClampToByte(denorm(b)))
	}
	return out.Pix, nil
}

func fixedDenormalizer(rng image2.Range) func(float32) float32 {
	if rng == image2.RangeMinusOneOne {
		return fromMinusOneOne
	}
	return fromZeroOne
}

func fromZeroOne(v float32) float32 {
	return float32(v * 255.0)
}

func fromMinusOneOne(v float32) float32 {
	return float32(float32(v+1.0) * 127.5)
}
