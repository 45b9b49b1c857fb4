package core

import (
	"fmt"
	"image"
	"image/color"
	"math"

	image2 "github.com/kpfaulkner/pixtensor/image"
	"golang.org/x/image/draw"
)

// Letterbox fits a width x height RGBA image inside targetWidth x targetHeight
// without stretching. The image is scaled by min(tw/w, th/h), centred, and the
// uncovered area painted with fill. Sampling is nearest neighbour and the
// scaled image is opaque whatever the source alpha.
func Letterbox(pixels []byte, width uint32, height uint32, targetWidth uint32, targetHeight uint32, fill color.NRGBA) ([]byte, error) {
	if width == 0 || height == 0 || targetWidth == 0 || targetHeight == 0 {
		return nil, fmt.Errorf("letterbox %dx%d into %dx%d: %w", width, height, targetWidth, targetHeight, image2.ErrInvalidDimensions)
	}
	src, err := image2.WrapPixelBuffer(pixels, width, height)
	if err != nil {
		return nil, err
	}

	// source alpha is ignored, so it must not blend into the fill
	opaque := image2.NewPixelBuffer(width, height)
	copyOpaque(src, opaque)
	srcImg := &image.NRGBA{
		Pix:    opaque.Pix,
		Stride: int(width) * image2.BytesPerPixel,
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}
	dst := image.NewNRGBA(image.Rect(0, 0, int(targetWidth), int(targetHeight)))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	dr := letterboxRect(width, height, targetWidth, targetHeight)
	if !dr.Empty() {
		draw.NearestNeighbor.Scale(dst, dr, srcImg, srcImg.Bounds(), draw.Src, nil)
	}
	return dst.Pix, nil
}

// letterboxRect is the destination rectangle of the scaled source inside the target.
func letterboxRect(width uint32, height uint32, targetWidth uint32, targetHeight uint32) image.Rectangle {
	s := math.Min(float64(targetWidth)/float64(width), float64(targetHeight)/float64(height))
	dw := int(math.Round(float64(width) * s))
	dh := int(math.Round(float64(height) * s))
	dx := (int(targetWidth) - dw) / 2
	dy := (int(targetHeight) - dh) / 2
	return image.Rect(dx, dy, dx+dw, dy+dh)
}
