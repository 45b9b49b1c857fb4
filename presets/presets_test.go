package presets

import (
	"testing"

	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {

	for _, tc := range []struct {
		name      string
		key       string
		label     string
		file      string
		expectErr bool
	}{
		{name: "ghibli", key: "ghibli", label: "Ghibli", file: "/models/agan_ghibli.onnx"},
		{name: "mixed case", key: " OilPaint ", label: "Oil Paint", file: "/models/animeganv3_oil.onnx"},
		{name: "unknown", key: "vangogh", expectErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Lookup(tc.key)
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrUnknownPreset)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tc.label, p.Label)
			assert.Equal(t, tc.file, p.File)
		})
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"candy", "cyber", "disney", "ghibli", "oilpaint"}, Keys())
}

func TestPresetPreprocessOptions(t *testing.T) {
	p, err := Lookup("disney")
	require.Nil(t, err)

	opts := p.PreprocessOptions()
	assert.Equal(t, ResizeMax, opts.MaxSide)
	assert.Nil(t, opts.Letterbox)
	assert.Equal(t, image2.LayoutNHWC, opts.Layout)

	post := p.PostprocessOptions()
	assert.Equal(t, image2.RangeAuto, post.Range)
}

func TestFixedSizePresetLetterboxes(t *testing.T) {
	p, err := Lookup("candy")
	require.Nil(t, err)
	require.True(t, p.IsFixedSize())

	opts := p.PreprocessOptions()
	assert.Zero(t, opts.MaxSide)
	require.NotNil(t, opts.Letterbox)
	assert.Equal(t, uint32(224), opts.Letterbox.Width)
	assert.Equal(t, uint32(224), opts.Letterbox.Height)
	assert.Equal(t, options.DefaultLetterboxFill, opts.Letterbox.Fill)
	assert.Equal(t, image2.RangeMinMax, p.PostprocessOptions().Range)
}
