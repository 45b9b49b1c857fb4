package imageformats

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	image2 "github.com/kpfaulkner/pixtensor/image"
)

// WritePFM writes a colour portable float map of the tensor, useful for
// inspecting tensors in image viewers. Rows go bottom to top and samples are
// big endian, as indicated by the positive scale in the header.
func WritePFM(output io.Writer, tensor []float32, width uint32, height uint32, layout image2.Layout) error {

	tb, err := image2.WrapTensorBuffer(tensor, width, height, layout)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("PF\n%d %d\n1.0\n", width, height)
	if _, err := output.Write([]byte(header)); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := int(width)
	for y := int(height) - 1; y >= 0; y-- {
		buf.Reset()
		for x := 0; x < w; x++ {
			r, g, b := tb.RGB(y*w + x)
			if err := binary.Write(&buf, binary.BigEndian, [3]float32{r, g, b}); err != nil {
				return err
			}
		}
		if _, err := output.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
