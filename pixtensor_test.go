package pixtensor

import (
	"image"
	"image/color"
	"testing"

	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/options"
	"github.com/kpfaulkner/pixtensor/testcommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromImageMatchesRawPixels(t *testing.T) {

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.Set(0, 0, color.RGBA{R: 255, A: 255})
	rgba.Set(1, 0, color.RGBA{G: 255, A: 255})
	rgba.Set(0, 1, color.RGBA{B: 255, A: 255})
	rgba.Set(1, 1, color.RGBA{A: 255})

	fromImage, err := FromImage(rgba, nil)
	require.Nil(t, err)

	raw, err := PreprocessRGBAToNCHW(rgba.Pix, 2, 2, 0, false)
	require.Nil(t, err)

	assert.Equal(t, raw.Tensor, fromImage.Tensor)
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0}, fromImage.Tensor)
}

func TestFromImageConvertsOtherModels(t *testing.T) {

	for _, tc := range []struct {
		name string
		img  image.Image
	}{
		{
			name: "gray",
			img: func() image.Image {
				g := image.NewGray(image.Rect(0, 0, 3, 1))
				for x := 0; x < 3; x++ {
					g.SetGray(x, 0, color.Gray{Y: 51})
				}
				return g
			}(),
		},
		{
			name: "offset sub image",
			img: func() image.Image {
				big := image.NewRGBA(image.Rect(0, 0, 6, 4))
				for y := 0; y < 4; y++ {
					for x := 0; x < 6; x++ {
						big.SetRGBA(x, y, color.RGBA{R: 51, G: 51, B: 51, A: 255})
					}
				}
				return big.SubImage(image.Rect(2, 1, 5, 2))
			}(),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res, err := FromImage(tc.img, nil)
			require.Nil(t, err)
			assert.Equal(t, uint32(3), res.Width)
			assert.Equal(t, uint32(1), res.Height)
			for _, v := range res.Tensor {
				assert.InDelta(t, 0.2, v, 1e-6)
			}
		})
	}
}

func TestFromImageIgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})

	raw, err := PreprocessRGBAToNCHW(img.Pix, 2, 1, 0, false)
	require.Nil(t, err)
	assert.Equal(t, []float32{1, 200.0 / 255.0, 0, 100.0 / 255.0, 0, 50.0 / 255.0}, raw.Tensor)

	for _, tc := range []struct {
		name string
		img  image.Image
	}{
		{name: "nrgba", img: img},
		{name: "nrgba sub image", img: func() image.Image {
			big := image.NewNRGBA(image.Rect(0, 0, 4, 3))
			big.SetNRGBA(1, 1, img.NRGBAAt(0, 0))
			big.SetNRGBA(2, 1, img.NRGBAAt(1, 0))
			return big.SubImage(image.Rect(1, 1, 3, 2))
		}()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res, err := FromImage(tc.img, nil)
			require.Nil(t, err)
			assert.Equal(t, raw.Tensor, res.Tensor)
		})
	}
}

func TestFromImageUnpremultipliesOtherModels(t *testing.T) {
	// half transparent red in a palette must not come out darkened
	p := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{
		color.NRGBA{R: 255, G: 0, B: 0, A: 128},
		color.NRGBA{R: 200, G: 100, B: 50, A: 255},
	})
	p.SetColorIndex(1, 0, 1)

	res, err := FromImage(p, nil)
	require.Nil(t, err)
	assert.Equal(t, []float32{1, 200.0 / 255.0, 0, 100.0 / 255.0, 0, 50.0 / 255.0}, res.Tensor)
}

func TestFromImageResizes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	res, err := FromImage(img, &options.PreprocessOptions{MaxSide: 10, Layout: image2.LayoutNHWC})
	require.Nil(t, err)
	assert.Equal(t, uint32(10), res.Width)
	assert.Equal(t, uint32(5), res.Height)
	assert.Equal(t, []int64{1, 5, 10, 3}, res.Shape())
}

func TestToImage(t *testing.T) {
	tensor := []float32{1, 0, 0, 1, 0.5, 0}

	img, err := ToImage(tensor, 2, 1, &options.PostprocessOptions{Layout: image2.LayoutNHWC})
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 127, B: 0, A: 255}, img.RGBAAt(1, 0))
}

func TestToImageErrors(t *testing.T) {
	_, err := ToImage(make([]float32, 5), 1, 2, nil)
	assert.ErrorIs(t, err, ErrBufferTooShort)
}

func TestScaleDimsReexport(t *testing.T) {
	w, h := ScaleDims(1024, 768, 512)
	assert.Equal(t, uint32(512), w)
	assert.Equal(t, uint32(384), h)
}

func TestPipelineWithEngine(t *testing.T) {

	for _, tc := range []struct {
		name      string
		transform func(float32) float32
		expected  func(c uint8) uint8
	}{
		{name: "identity", expected: func(c uint8) uint8 { return c }},
		{name: "invert", transform: func(v float32) float32 { return -v }, expected: func(c uint8) uint8 { return 255 - c }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pix := []uint8{0, 255, 0, 255, 255, 0, 255, 255}
			engine := &testcommon.FakeEngine{Transform: tc.transform}

			res, err := PreprocessRGBAToNCHW(pix, 2, 1, 512, true)
			require.Nil(t, err)

			out, err := PostprocessToRGBA(engine.Run(res.Tensor), res.Width, res.Height, true, true)
			require.Nil(t, err)
			assert.Equal(t, 1, engine.Calls)

			for p := 0; p < 2; p++ {
				for c := 0; c < 3; c++ {
					assert.Equal(t, tc.expected(pix[p*4+c]), out[p*4+c], "pixel %d channel %d", p, c)
				}
				assert.Equal(t, uint8(255), out[p*4+3])
			}
		})
	}
}
