package imageformats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"
)

var ErrUnknownDType = errors.New("unknown tensor element type")

// DType is the on disk element type of a raw tensor dump.
type DType int

const (
	Float32 DType = iota
	Float16
	BFloat16
)

func (dt DType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	case BFloat16:
		return "bfloat16"
	default:
		return fmt.Sprintf("dtype(%d)", int(dt))
	}
}

// Size is the number of bytes per element.
func (dt DType) Size() int {
	if dt == Float32 {
		return 4
	}
	return 2
}

func ParseDType(s string) (DType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float32", "f32", "fp32", "tensor(float)":
		return Float32, nil
	case "float16", "f16", "fp16", "tensor(float16)":
		return Float16, nil
	case "bfloat16", "bf16", "tensor(bfloat16)":
		return BFloat16, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDType, s)
}

// EncodeTensor converts float32 values to little endian bytes of the given type.
func EncodeTensor(tensor []float32, dt DType) ([]byte, error) {
	switch dt {
	case Float32:
		buf := make([]byte, len(tensor)*4)
		for i, v := range tensor {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
		}
		return buf, nil
	case Float16:
		buf := make([]byte, len(tensor)*2)
		for i, v := range tensor {
			binary.LittleEndian.PutUint16(buf[i*2:], float16.Fromfloat32(v).Bits())
		}
		return buf, nil
	case BFloat16:
		return bfloat16.EncodeFloat32(tensor), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDType, dt)
}

// DecodeTensor is the inverse of EncodeTensor.
func DecodeTensor(data []byte, dt DType) ([]float32, error) {
	if dt != Float32 && dt != Float16 && dt != BFloat16 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDType, dt)
	}
	if len(data)%dt.Size() != 0 {
		return nil, fmt.Errorf("%d bytes is not a whole number of %s elements", len(data), dt)
	}

	switch dt {
	case Float16:
		out := make([]float32, len(data)/2)
		for i := range out {
			out[i] = float16.Frombits(binary.LittleEndian.Uint16(data[i*2:])).Float32()
		}
		return out, nil
	case BFloat16:
		return bfloat16.DecodeFloat32(data), nil
	}

	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, nil
}

// WriteTensor writes a raw little endian dump with no header.
func WriteTensor(output io.Writer, tensor []float32, dt DType) error {
	buf, err := EncodeTensor(tensor, dt)
	if err != nil {
		return err
	}
	_, err = output.Write(buf)
	return err
}

// ReadTensor reads a raw dump written by WriteTensor until EOF.
func ReadTensor(input io.Reader, dt DType) ([]float32, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}
	return DecodeTensor(data, dt)
}
