package options

import (
	"image/color"

	image2 "github.com/kpfaulkner/pixtensor/image"
)

// DefaultLetterboxFill is the light grey used to pad letterboxed images.
var DefaultLetterboxFill = color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}

// LetterboxOptions requests an exact output size. The source is scaled to fit,
// centred, and the remainder filled with Fill.
type LetterboxOptions struct {
	Width  uint32
	Height uint32
	// Fill paints the padding. The zero value means DefaultLetterboxFill, so
	// transparent black cannot be requested.
	Fill color.NRGBA
}

type PreprocessOptions struct {
	// MaxSide bounds the longer side. 0 disables resizing.
	MaxSide uint32
	Range   image2.Range
	Layout  image2.Layout

	// Letterbox, when set, replaces MaxSide scaling.
	Letterbox *LetterboxOptions
}

// NewPreprocessOptions copies options, or returns defaults (no resize, [0,1], NCHW) when nil.
func NewPreprocessOptions(options *PreprocessOptions) *PreprocessOptions {

	opt := &PreprocessOptions{
		Range:  image2.RangeZeroOne,
		Layout: image2.LayoutNCHW,
	}
	if options != nil {
		opt.MaxSide = options.MaxSide
		opt.Range = options.Range
		opt.Layout = options.Layout
		if options.Letterbox != nil {
			lb := *options.Letterbox
			if lb.Fill == (color.NRGBA{}) {
				lb.Fill = DefaultLetterboxFill
			}
			opt.Letterbox = &lb
		}
	}
	return opt
}

type PostprocessOptions struct {
	Layout image2.Layout
	Range  image2.Range
}

// NewPostprocessOptions copies options, or returns defaults (NCHW, [0,1]) when nil.
func NewPostprocessOptions(options *PostprocessOptions) *PostprocessOptions {

	opt := &PostprocessOptions{
		Layout: image2.LayoutNCHW,
		Range:  image2.RangeZeroOne,
	}
	if options != nil {
		opt.Layout = options.Layout
		opt.Range = options.Range
	}
	return opt
}

// RangeFromFlag maps the boolean range flag of the boundary operations.
func RangeFromFlag(rangeM1to1 bool) image2.Range {
	if rangeM1to1 {
		return image2.RangeMinusOneOne
	}
	return image2.RangeZeroOne
}

// LayoutFromFlag maps the boolean nchw flag of the boundary operations.
func LayoutFromFlag(nchw bool) image2.Layout {
	if nchw {
		return image2.LayoutNCHW
	}
	return image2.LayoutNHWC
}
