package image

import (
	"errors"
	"fmt"
)

var (
	ErrBufferTooShort    = errors.New("buffer too short")
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrUnknownLayout     = errors.New("unknown tensor layout")
	ErrUnknownRange      = errors.New("unknown value range")
	ErrUnsupportedRange  = errors.New("range not supported for this operation")
)

// BufferSizeError reports a buffer shorter than its declared dimensions need.
type BufferSizeError struct {
	Buffer string
	Width  uint32
	Height uint32
	Want   int
	Got    int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("%s buffer too short for %dx%d: need %d elements, got %d",
		e.Buffer, e.Width, e.Height, e.Want, e.Got)
}

func (e *BufferSizeError) Unwrap() error {
	return ErrBufferTooShort
}
