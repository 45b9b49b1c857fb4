package core

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/options"
	"github.com/kpfaulkner/pixtensor/testcommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rgbkPixels = []uint8{
	255, 0, 0, 255,
	0, 255, 0, 255,
	0, 0, 255, 255,
	0, 0, 0, 255,
}

func TestPreprocessRGBAToNCHWScenario(t *testing.T) {
	res, err := PreprocessRGBAToNCHW(rgbkPixels, 2, 2, 0, false)
	require.Nil(t, err)

	expected := []float32{
		1, 0, 0, 0, // R plane
		0, 1, 0, 0, // G plane
		0, 0, 1, 0, // B plane
	}
	if diff := cmp.Diff(expected, res.Tensor); diff != "" {
		t.Errorf("tensor mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, uint32(2), res.Width)
	assert.Equal(t, uint32(2), res.Height)
	assert.Equal(t, image2.LayoutNCHW, res.Layout)
	assert.Equal(t, []int64{1, 3, 2, 2}, res.Shape())
}

func TestPreprocessMinusOneOneEndpoints(t *testing.T) {
	pix := []uint8{0, 0, 0, 255, 255, 255, 255, 0}
	res, err := PreprocessRGBAToNCHW(pix, 2, 1, 0, true)
	require.Nil(t, err)

	// planar: R0 R1 G0 G1 B0 B1
	assert.Equal(t, []float32{-1, 1, -1, 1, -1, 1}, res.Tensor)
}

func TestPreprocessNoResizeMatchesDirectNormalisation(t *testing.T) {
	const w, h = 7, 5
	pix := testcommon.RandomRGBA(w, h, 42)

	for _, tc := range []struct {
		name       string
		maxSide    uint32
		rangeM1to1 bool
	}{
		{name: "no max side 0to1", maxSide: 0},
		{name: "max side larger m1to1", maxSide: 10, rangeM1to1: true},
		{name: "max side equal 0to1", maxSide: 7},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res, err := PreprocessRGBAToNCHW(pix, w, h, tc.maxSide, tc.rangeM1to1)
			require.Nil(t, err)
			require.Equal(t, uint32(w), res.Width)
			require.Equal(t, uint32(h), res.Height)

			plane := w * h
			expected := make([]float32, plane*3)
			for p := 0; p < plane; p++ {
				for c := 0; c < 3; c++ {
					v := float32(pix[p*4+c])
					if tc.rangeM1to1 {
						expected[c*plane+p] = v/127.5 - 1.0
					} else {
						expected[c*plane+p] = v / 255.0
					}
				}
			}
			if diff := cmp.Diff(expected, res.Tensor); diff != "" {
				t.Errorf("tensor mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPreprocessNearestSampling(t *testing.T) {
	// 4x2 gradient, max side 2 -> 2x1, samples source (0,0) and (2,0)
	pix := testcommon.GradientRGBA(4, 2)
	res, err := PreprocessRGBAToNCHW(pix, 4, 2, 2, false)
	require.Nil(t, err)
	require.Equal(t, uint32(2), res.Width)
	require.Equal(t, uint32(1), res.Height)

	expected := []float32{
		0, 2.0 / 255.0, // R = x
		0, 0, // G = y
		0, 2.0 / 255.0, // B = x+y
	}
	assert.Equal(t, expected, res.Tensor)
}

func TestPreprocessDownscaleSamplesFloorPositions(t *testing.T) {
	const w, h = 10, 6
	pix := testcommon.GradientRGBA(w, h)

	res, err := Preprocess(pix, w, h, &options.PreprocessOptions{MaxSide: 4, Layout: image2.LayoutNHWC})
	require.Nil(t, err)
	// 10x6 scaled to 4 -> 4x2 (6*0.4 = 2.4)
	require.Equal(t, uint32(4), res.Width)
	require.Equal(t, uint32(2), res.Height)

	sx := float32(w) / float32(res.Width)
	sy := float32(h) / float32(res.Height)
	tb := res.Buffer()
	for y := 0; y < int(res.Height); y++ {
		for x := 0; x < int(res.Width); x++ {
			r, g, _ := tb.RGB(y*int(res.Width) + x)
			assert.Equal(t, float32(uint32(float32(x)*sx))/255.0, r, "x=%d", x)
			assert.Equal(t, float32(uint32(float32(y)*sy))/255.0, g, "y=%d", y)
		}
	}
}

func TestPreprocessNHWC(t *testing.T) {
	res, err := Preprocess(rgbkPixels, 2, 2, &options.PreprocessOptions{Layout: image2.LayoutNHWC})
	require.Nil(t, err)

	assert.Equal(t, []float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		0, 0, 0,
	}, res.Tensor)
	assert.Equal(t, []int64{1, 2, 2, 3}, res.Shape())
}

func TestPreprocessLetterbox(t *testing.T) {
	// 2x1: red, blue. Letterboxed into 4x4 -> scaled 2x to 4x2 at rows 1..2
	pix := []uint8{255, 0, 0, 255, 0, 0, 255, 255}
	res, err := Preprocess(pix, 2, 1, &options.PreprocessOptions{
		Layout:    image2.LayoutNHWC,
		Letterbox: &options.LetterboxOptions{Width: 4, Height: 4},
	})
	require.Nil(t, err)
	require.Equal(t, uint32(4), res.Width)
	require.Equal(t, uint32(4), res.Height)

	tb := res.Buffer()
	grey := float32(0xf2) / 255.0
	for _, p := range []int{0, 3, 12, 15} {
		r, g, b := tb.RGB(p)
		assert.Equal(t, []float32{grey, grey, grey}, []float32{r, g, b}, "pixel %d should be fill", p)
	}
	r, _, b := tb.RGB(4)
	assert.Equal(t, float32(1), r)
	assert.Equal(t, float32(0), b)
	r, _, b = tb.RGB(7)
	assert.Equal(t, float32(0), r)
	assert.Equal(t, float32(1), b)
}

func TestPreprocessErrors(t *testing.T) {

	for _, tc := range []struct {
		name     string
		pixels   []uint8
		width    uint32
		height   uint32
		opts     *options.PreprocessOptions
		expected error
	}{
		{name: "short buffer", pixels: make([]uint8, 15), width: 2, height: 2, expected: image2.ErrBufferTooShort},
		{name: "nil buffer", pixels: nil, width: 1, height: 1, expected: image2.ErrBufferTooShort},
		{name: "auto range", pixels: make([]uint8, 16), width: 2, height: 2,
			opts: &options.PreprocessOptions{Range: image2.RangeAuto}, expected: image2.ErrUnsupportedRange},
		{name: "bad layout", pixels: make([]uint8, 16), width: 2, height: 2,
			opts: &options.PreprocessOptions{Layout: image2.Layout(9)}, expected: image2.ErrUnknownLayout},
		{name: "letterbox to nothing", pixels: make([]uint8, 16), width: 2, height: 2,
			opts: &options.PreprocessOptions{Letterbox: &options.LetterboxOptions{}}, expected: image2.ErrInvalidDimensions},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Preprocess(tc.pixels, tc.width, tc.height, tc.opts)
			assert.Nil(t, res)
			if !errors.Is(err, tc.expected) {
				t.Errorf("expected %v but got %v", tc.expected, err)
			}
		})
	}
}

func TestPreprocessShortBufferReportsSizes(t *testing.T) {
	_, err := PreprocessRGBAToNCHW(make([]uint8, 10), 2, 2, 0, false)
	var sizeErr *image2.BufferSizeError
	require.True(t, errors.As(err, &sizeErr))
	assert.Equal(t, 16, sizeErr.Want)
	assert.Equal(t, 10, sizeErr.Got)
	assert.Contains(t, err.Error(), "2x2")
}

func TestPreprocessZeroDimensions(t *testing.T) {
	res, err := PreprocessRGBAToNCHW(nil, 0, 4, 0, false)
	require.Nil(t, err)
	assert.Empty(t, res.Tensor)
	assert.Equal(t, uint32(0), res.Width)
	assert.Equal(t, uint32(4), res.Height)

	// thin strip that collapses to zero height when resized
	res, err = PreprocessRGBAToNCHW(make([]uint8, 5000*4), 5000, 1, 10, false)
	require.Nil(t, err)
	assert.Empty(t, res.Tensor)
}

func TestPreprocessLeavesInputUntouched(t *testing.T) {
	pix := testcommon.GradientRGBA(8, 8)
	orig := append([]uint8(nil), pix...)

	_, err := PreprocessRGBAToNCHW(pix, 8, 8, 3, true)
	require.Nil(t, err)
	assert.Equal(t, orig, pix)
}

func TestPreprocessConcurrentCallsAreIndependent(t *testing.T) {
	pix := testcommon.RandomRGBA(64, 48, 7)
	want, err := PreprocessRGBAToNCHW(pix, 64, 48, 32, false)
	require.Nil(t, err)

	var wg sync.WaitGroup
	results := make([]*PreprocessResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = PreprocessRGBAToNCHW(pix, 64, 48, 32, false)
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		require.NotNil(t, res, "result %d", i)
		assert.Equal(t, want.Tensor, res.Tensor, "result %d", i)
	}
}

func BenchmarkPreprocess512(b *testing.B) {
	pix := testcommon.RandomRGBA(1920, 1080, 1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := PreprocessRGBAToNCHW(pix, 1920, 1080, 512, true); err != nil {
			b.Fatal(err)
		}
	}
}

func TestPreprocessLetterboxIgnoresMaxSide(t *testing.T) {
	pix := testcommon.SolidRGBA(8, 4, 10, 20, 30, 255)
	res, err := Preprocess(pix, 8, 4, &options.PreprocessOptions{
		MaxSide:   2,
		Letterbox: &options.LetterboxOptions{Width: 6, Height: 6},
	})
	require.Nil(t, err)
	assert.Equal(t, uint32(6), res.Width)
	assert.Equal(t, uint32(6), res.Height)
	assert.Len(t, res.Tensor, 3*6*6)
}
