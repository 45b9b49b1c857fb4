package presets

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/options"
)

// ResizeMax is the longest side fed to the style transfer models.
const ResizeMax uint32 = 512

var ErrUnknownPreset = errors.New("unknown preset")

// Preset describes one bundled style transfer model and how its tensors are shaped.
type Preset struct {
	Key   string
	Label string
	File  string
	Hint  string

	// InputRange is used to normalise pixels going into the model.
	InputRange image2.Range
	// OutputRange is used to turn the model output back into pixels.
	OutputRange image2.Range
	Layout      image2.Layout

	// FixedWidth and FixedHeight are non zero for models with a fixed input size.
	// Those inputs are letterboxed rather than scaled to ResizeMax.
	FixedWidth  uint32
	FixedHeight uint32
}

var builtin = map[string]Preset{
	"ghibli": {
		Key:         "ghibli",
		Label:       "Ghibli",
		File:        "/models/agan_ghibli.onnx",
		Hint:        "Studio look",
		InputRange:  image2.RangeZeroOne,
		OutputRange: image2.RangeAuto,
		Layout:      image2.LayoutNHWC,
	},
	"disney": {
		Key:         "disney",
		Label:       "Disney",
		File:        "/models/animeganv3_disney.onnx",
		Hint:        "Clean & bright",
		InputRange:  image2.RangeZeroOne,
		OutputRange: image2.RangeAuto,
		Layout:      image2.LayoutNHWC,
	},
	"cyber": {
		Key:         "cyber",
		Label:       "Cyberpunk",
		File:        "/models/animeganv3_cyber.onnx",
		Hint:        "Bold edges",
		InputRange:  image2.RangeZeroOne,
		OutputRange: image2.RangeAuto,
		Layout:      image2.LayoutNHWC,
	},
	"oilpaint": {
		Key:         "oilpaint",
		Label:       "Oil Paint",
		File:        "/models/animeganv3_oil.onnx",
		Hint:        "Painterly",
		InputRange:  image2.RangeZeroOne,
		OutputRange: image2.RangeAuto,
		Layout:      image2.LayoutNHWC,
	},
	"candy": {
		Key:         "candy",
		Label:       "Candy",
		File:        "/models/fns_candy.onnx",
		Hint:        "Fast neural style",
		InputRange:  image2.RangeZeroOne,
		OutputRange: image2.RangeMinMax,
		Layout:      image2.LayoutNCHW,
		FixedWidth:  224,
		FixedHeight: 224,
	},
}

// Lookup returns the built in preset for key, case insensitive.
func Lookup(key string) (Preset, error) {
	p, ok := builtin[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
	}
	return p, nil
}

// Keys lists the built in presets in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(builtin))
	for k := range builtin {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p Preset) IsFixedSize() bool {
	return p.FixedWidth != 0 && p.FixedHeight != 0
}

func (p Preset) PreprocessOptions() *options.PreprocessOptions {
	opts := &options.PreprocessOptions{
		MaxSide: ResizeMax,
		Range:   p.InputRange,
		Layout:  p.Layout,
	}
	if p.IsFixedSize() {
		opts.MaxSide = 0
		opts.Letterbox = &options.LetterboxOptions{Width: p.FixedWidth, Height: p.FixedHeight}
	}
	return options.NewPreprocessOptions(opts)
}

func (p Preset) PostprocessOptions() *options.PostprocessOptions {
	return options.NewPostprocessOptions(&options.PostprocessOptions{
		Layout: p.Layout,
		Range:  p.OutputRange,
	})
}
