package image

import (
	"github.com/kpfaulkner/pixtensor/util"
)

const Channels = 3

// TensorBuffer is a single batch, three channel float32 tensor.
// The batch dimension is implicit.
type TensorBuffer struct {
	Width  uint32
	Height uint32
	Layout Layout
	Data   []float32
}

func NewTensorBuffer(width uint32, height uint32, layout Layout) *TensorBuffer {
	return &TensorBuffer{
		Width:  width,
		Height: height,
		Layout: layout,
		Data:   make([]float32, util.PixelCount(width, height)*Channels),
	}
}

// WrapTensorBuffer wraps data without copying after checking it is long enough.
func WrapTensorBuffer(data []float32, width uint32, height uint32, layout Layout) (*TensorBuffer, error) {
	tb := &TensorBuffer{Width: width, Height: height, Layout: layout, Data: data}
	if err := tb.Validate(); err != nil {
		return nil, err
	}
	return tb, nil
}

// Plane is the number of pixels in one channel.
func (tb *TensorBuffer) Plane() int {
	return util.PixelCount(tb.Width, tb.Height)
}

func (tb *TensorBuffer) Validate() error {
	if tb.Layout != LayoutNCHW && tb.Layout != LayoutNHWC {
		return ErrUnknownLayout
	}
	want := tb.Plane() * Channels
	if len(tb.Data) < want {
		return &BufferSizeError{Buffer: "tensor", Width: tb.Width, Height: tb.Height, Want: want, Got: len(tb.Data)}
	}
	return nil
}

// RGB reads the three channel values of pixel index p.
func (tb *TensorBuffer) RGB(p int) (float32, float32, float32) {
	if tb.Layout == LayoutNCHW {
		plane := tb.Plane()
		return tb.Data[p], tb.Data[plane+p], tb.Data[2*plane+p]
	}
	i := p * Channels
	return tb.Data[i], tb.Data[i+1], tb.Data[i+2]
}

func (tb *TensorBuffer) SetRGB(p int, r float32, g float32, b float32) {
	if tb.Layout == LayoutNCHW {
		plane := tb.Plane()
		tb.Data[p] = r
		tb.Data[plane+p] = g
		tb.Data[2*plane+p] = b
		return
	}
	i := p * Channels
	tb.Data[i] = r
	tb.Data[i+1] = g
	tb.Data[i+2] = b
}

// Shape returns the four dimensional shape an inference engine expects,
// [1,3,H,W] for NCHW and [1,H,W,3] for NHWC.
func (tb *TensorBuffer) Shape() []int64 {
	h, w := int64(tb.Height), int64(tb.Width)
	if tb.Layout == LayoutNCHW {
		return []int64{1, Channels, h, w}
	}
	return []int64{1, h, w, Channels}
}
