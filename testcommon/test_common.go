package testcommon

import (
	"math/rand"
)

// SolidRGBA returns a width x height RGBA buffer where every pixel is r,g,b,a.
func SolidRGBA(width int, height int, r uint8, g uint8, b uint8, a uint8) []uint8 {
	pix := make([]uint8, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
	return pix
}

// GradientRGBA encodes each pixel's coordinates into its colour so sampling
// positions can be recovered: R = x, G = y, B = x+y (all mod 256).
// Alpha is deliberately not 255 so tests can check it gets replaced.
func GradientRGBA(width int, height int) []uint8 {
	pix := make([]uint8, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			pix[i] = uint8(x)
			pix[i+1] = uint8(y)
			pix[i+2] = uint8(x + y)
			pix[i+3] = 17
		}
	}
	return pix
}

// RandomRGBA returns reproducible noise for the given seed.
func RandomRGBA(width int, height int, seed int64) []uint8 {
	rnd := rand.New(rand.NewSource(seed))
	pix := make([]uint8, width*height*4)
	rnd.Read(pix)
	return pix
}

// ConstantTensor returns a 3 channel tensor of width*height pixels filled with v.
func ConstantTensor(width int, height int, v float32) []float32 {
	t := make([]float32, width*height*3)
	for i := range t {
		t[i] = v
	}
	return t
}
