package core

import (
	"fmt"

	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/options"
	"github.com/kpfaulkner/pixtensor/util"
	log "github.com/sirupsen/logrus"
)

// PreprocessResult is a normalised tensor plus the dimensions actually used,
// which may differ from the source when it was resized.
type PreprocessResult struct {
	Tensor []float32
	Width  uint32
	Height uint32
	Layout image2.Layout
}

// Buffer views the result as a TensorBuffer without copying.
func (r *PreprocessResult) Buffer() *image2.TensorBuffer {
	return &image2.TensorBuffer{Width: r.Width, Height: r.Height, Layout: r.Layout, Data: r.Tensor}
}

// Shape is the engine facing tensor shape, [1,3,H,W] or [1,H,W,3].
func (r *PreprocessResult) Shape() []int64 {
	return r.Buffer().Shape()
}

// PreprocessRGBAToNCHW converts interleaved RGBA bytes into a planar float32 tensor,
// downscaling so the longer side is at most maxSide (0 keeps the source size).
// Values are mapped to [-1,1] when rangeM1to1 is set, [0,1] otherwise.
func PreprocessRGBAToNCHW(pixels []byte, width uint32, height uint32, maxSide uint32, rangeM1to1 bool) (*PreprocessResult, error) {
	return Preprocess(pixels, width, height, &options.PreprocessOptions{
		MaxSide: maxSide,
		Range:   options.RangeFromFlag(rangeM1to1),
		Layout:  image2.LayoutNCHW,
	})
}

// Preprocess is PreprocessRGBAToNCHW with the full option set: output layout and
// letterboxing to a fixed size.
func Preprocess(pixels []byte, width uint32, height uint32, opts *options.PreprocessOptions) (*PreprocessResult, error) {
	defer reportPanic("preprocess")

	opt := options.NewPreprocessOptions(opts)
	if !opt.Range.IsFixed() {
		return nil, fmt.Errorf("preprocess with range %s: %w", opt.Range, image2.ErrUnsupportedRange)
	}
	if opt.Layout != image2.LayoutNCHW && opt.Layout != image2.LayoutNHWC {
		return nil, image2.ErrUnknownLayout
	}

	src, err := image2.WrapPixelBuffer(pixels, width, height)
	if err != nil {
		log.Errorf("preprocess: %v", err)
		return nil, err
	}

	if opt.Letterbox != nil {
		boxed, err := Letterbox(src.Pix, width, height, opt.Letterbox.Width, opt.Letterbox.Height, opt.Letterbox.Fill)
		if err != nil {
			return nil, err
		}
		src = &image2.PixelBuffer{Width: opt.Letterbox.Width, Height: opt.Letterbox.Height, Pix: boxed}
	}

	tw, th := src.Width, src.Height
	if opt.Letterbox == nil {
		tw, th = ScaleDims(src.Width, src.Height, opt.MaxSide)
	}
	log.Debugf("preprocess %dx%d -> %dx%d range %s layout %s", src.Width, src.Height, tw, th, opt.Range, opt.Layout)

	tmp := util.GetScratch[uint8](util.PixelCount(tw, th) * image2.BytesPerPixel)
	defer util.ReturnScratch(tmp)
	opaque := &image2.PixelBuffer{Width: tw, Height: th, Pix: tmp}

	if tw == src.Width && th == src.Height {
		copyOpaque(src, opaque)
	} else {
		sampleNearest(src, opaque)
	}

	out := image2.NewTensorBuffer(tw, th, opt.Layout)
	normalize(opaque, out, opt.Range)

	return &PreprocessResult{
		Tensor: out.Data,
		Width:  tw,
		Height: th,
		Layout: opt.Layout,
	}, nil
}

// copyOpaque copies colour channels pixel for pixel, forcing alpha to 255.
func copyOpaque(src *image2.PixelBuffer, dst *image2.PixelBuffer) {
	for p := 0; p < dst.PixelCount(); p++ {
		r, g, b := src.RGB(p)
		dst.SetOpaque(p, r, g, b)
	}
}

// sampleNearest picks, for every destination pixel, the source pixel at
// floor(x*width/tw), floor(y*height/th). No averaging takes place.
func sampleNearest(src *image2.PixelBuffer, dst *image2.PixelBuffer) {
	if dst.Width == 0 || dst.Height == 0 || src.Width == 0 || src.Height == 0 {
		return
	}
	sx := float32(src.Width) / float32(dst.Width)
	sy := float32(src.Height) / float32(dst.Height)
	for y := uint32(0); y < dst.Height; y++ {
		srcY := util.Min(uint32(float32(float32(y)*sy)), src.Height-1)
		for x := uint32(0); x < dst.Width; x++ {
			srcX := util.Min(uint32(float32(float32(x)*sx)), src.Width-1)
			r, g, b := src.RGB(int(srcY)*int(src.Width) + int(srcX))
			dst.SetOpaque(int(y)*int(dst.Width)+int(x), r, g, b)
		}
	}
}

func normalize(src *image2.PixelBuffer, dst *image2.TensorBuffer, rng image2.Range) {
	norm := toZeroOne
	if rng == image2.RangeMinusOneOne {
		norm = toMinusOneOne
	}
	for p := 0; p < src.PixelCount(); p++ {
		r, g, b := src.RGB(p)
		dst.SetRGB(p, norm(r), norm(g), norm(b))
	}
}

func toZeroOne(c uint8) float32 {
	return float32(c) / 255.0
}

func toMinusOneOne(c uint8) float32 {
	return float32(float32(c)/127.5) - 1.0
}
