package image

import (
	"github.com/kpfaulkner/pixtensor/util"
)

const BytesPerPixel = 4

// PixelBuffer is an interleaved 8-bit RGBA image, row major, 4 bytes per pixel.
type PixelBuffer struct {
	Width  uint32
	Height uint32
	Pix    []uint8
}

// NewPixelBuffer allocates an opaque black buffer.
func NewPixelBuffer(width uint32, height uint32) *PixelBuffer {
	pb := &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, util.PixelCount(width, height)*BytesPerPixel),
	}
	for i := 3; i < len(pb.Pix); i += BytesPerPixel {
		pb.Pix[i] = 255
	}
	return pb
}

// WrapPixelBuffer wraps pix without copying after checking it is long enough.
func WrapPixelBuffer(pix []uint8, width uint32, height uint32) (*PixelBuffer, error) {
	pb := &PixelBuffer{Width: width, Height: height, Pix: pix}
	if err := pb.Validate(); err != nil {
		return nil, err
	}
	return pb, nil
}

func (pb *PixelBuffer) PixelCount() int {
	return util.PixelCount(pb.Width, pb.Height)
}

// Validate checks Pix holds at least Width*Height*4 bytes.
// Trailing bytes are tolerated and ignored.
func (pb *PixelBuffer) Validate() error {
	want := pb.PixelCount() * BytesPerPixel
	if len(pb.Pix) < want {
		return &BufferSizeError{Buffer: "pixel", Width: pb.Width, Height: pb.Height, Want: want, Got: len(pb.Pix)}
	}
	return nil
}

// RGB returns the colour channels of pixel index p. Alpha is ignored.
func (pb *PixelBuffer) RGB(p int) (uint8, uint8, uint8) {
	i := p * BytesPerPixel
	return pb.Pix[i], pb.Pix[i+1], pb.Pix[i+2]
}

// SetOpaque writes r,g,b at pixel index p and forces alpha to 255.
func (pb *PixelBuffer) SetOpaque(p int, r uint8, g uint8, b uint8) {
	i := p * BytesPerPixel
	pb.Pix[i] = r
	pb.Pix[i+1] = g
	pb.Pix[i+2] = b
	pb.Pix[i+3] = 255
}

// Equals compares dimensions and pixel data.
func (pb *PixelBuffer) Equals(other PixelBuffer) bool {
	if pb.Width != other.Width || pb.Height != other.Height || len(pb.Pix) != len(other.Pix) {
		return false
	}
	for i := range pb.Pix {
		if pb.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}
