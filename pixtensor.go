package pixtensor

import (
	"image"

	"github.com/kpfaulkner/pixtensor/core"
	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/options"
	"golang.org/x/image/draw"
)

var (
	ErrBufferTooShort    = image2.ErrBufferTooShort
	ErrInvalidDimensions = image2.ErrInvalidDimensions
	ErrUnknownLayout     = image2.ErrUnknownLayout
	ErrUnknownRange      = image2.ErrUnknownRange
	ErrUnsupportedRange  = image2.ErrUnsupportedRange
)

// PreprocessRGBAToNCHW converts tightly packed RGBA pixels into a planar float tensor,
// downscaling so neither side exceeds maxSide (0 disables).
func PreprocessRGBAToNCHW(pixels []byte, width uint32, height uint32, maxSide uint32, rangeM1to1 bool) (*core.PreprocessResult, error) {
	return core.PreprocessRGBAToNCHW(pixels, width, height, maxSide, rangeM1to1)
}

// PostprocessToRGBA converts a float tensor back into opaque RGBA pixels.
func PostprocessToRGBA(tensor []float32, width uint32, height uint32, nchw bool, rangeM1to1 bool) ([]byte, error) {
	return core.PostprocessToRGBA(tensor, width, height, nchw, rangeM1to1)
}

func ScaleDims(width uint32, height uint32, maxSide uint32) (uint32, uint32) {
	return core.ScaleDims(width, height, maxSide)
}

// InferLayout reads layout and size from a model tensor shape, using the
// fallback size for dynamic or unrecognised dimensions.
func InferLayout(shape []int64, fallbackWidth uint32, fallbackHeight uint32) (image2.Layout, uint32, uint32) {
	return core.InferLayout(shape, fallbackWidth, fallbackHeight)
}

func InstallDiagnostics() {
	core.InstallDiagnostics()
}

// FromImage preprocesses any image.Image. Alpha is discarded by preprocessing,
// so pixels are taken non premultiplied: *image.NRGBA pixels are used as is and
// other images are converted to NRGBA first. Colour of fully transparent pixels
// survives only for *image.NRGBA, since other models report premultiplied values.
func FromImage(img image.Image, opts *options.PreprocessOptions) (*core.PreprocessResult, error) {
	b := img.Bounds()
	nrgba := toNRGBA(img)
	return core.Preprocess(nrgba.Pix, uint32(b.Dx()), uint32(b.Dy()), opts)
}

// toNRGBA returns img as a tightly packed NRGBA image starting at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	src, ok := img.(*image.NRGBA)
	if ok && src.Stride == 4*w {
		return src
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if ok {
		for y := 0; y < h; y++ {
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[y*src.Stride:y*src.Stride+4*w])
		}
		return dst
	}
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// ToImage postprocesses a tensor into an opaque *image.RGBA.
func ToImage(tensor []float32, width uint32, height uint32, opts *options.PostprocessOptions) (*image.RGBA, error) {
	pix, err := core.Postprocess(tensor, width, height, opts)
	if err != nil {
		return nil, err
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: int(width) * 4,
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}, nil
}
