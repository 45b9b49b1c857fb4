package presets

import (
	"fmt"
	"io"
	"strings"

	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/imageformats"
	"github.com/kpfaulkner/pixtensor/options"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Entry is what is known about a model's first input. H and W are nil when
// the model accepts dynamic sizes.
type Entry struct {
	Input     string `yaml:"input"`
	Layout    string `yaml:"layout"`
	H         *int   `yaml:"H"`
	W         *int   `yaml:"W"`
	DType     string `yaml:"dtype"`
	IRVersion int    `yaml:"ir_version"`
	Opset     int    `yaml:"opset"`
}

// Manifest maps model file names, relative to the models directory, to entries.
type Manifest map[string]Entry

// LoadManifest parses a YAML manifest. JSON manifests parse too.
func LoadManifest(r io.Reader) (Manifest, error) {
	m := Manifest{}
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if err == io.EOF {
			return m, nil
		}
		return nil, fmt.Errorf("decoding model manifest: %w", err)
	}
	log.Debugf("loaded manifest with %d models", len(m))
	return m, nil
}

// EntryFor looks up a model by its served path, e.g. /models/fns_candy.onnx.
func (m Manifest) EntryFor(path string) (Entry, bool) {
	key := strings.TrimPrefix(path, "/")
	key = strings.TrimPrefix(key, "models/")
	e, ok := m[key]
	return e, ok
}

// TensorLayout returns the entry's layout, ok is false when unknown.
func (e Entry) TensorLayout() (image2.Layout, bool) {
	l, err := image2.ParseLayout(e.Layout)
	if err != nil {
		return image2.LayoutNHWC, false
	}
	return l, true
}

// FixedSize reports the entry's static input size, if it has one.
func (e Entry) FixedSize() (uint32, uint32, bool) {
	if e.W == nil || e.H == nil || *e.W <= 0 || *e.H <= 0 {
		return 0, 0, false
	}
	return uint32(*e.W), uint32(*e.H), true
}

// ElementType maps the manifest dtype to a tensor dump type. Numeric values
// are ONNX element type codes.
func (e Entry) ElementType() (imageformats.DType, error) {
	switch strings.TrimSpace(e.DType) {
	case "1":
		return imageformats.Float32, nil
	case "10":
		return imageformats.Float16, nil
	case "16":
		return imageformats.BFloat16, nil
	}
	return imageformats.ParseDType(e.DType)
}

// PreprocessOptions overlays the entry's layout and size onto base.
func (e Entry) PreprocessOptions(base *options.PreprocessOptions) *options.PreprocessOptions {
	opts := options.NewPreprocessOptions(base)
	if l, ok := e.TensorLayout(); ok {
		opts.Layout = l
	}
	if w, h, ok := e.FixedSize(); ok {
		opts.MaxSide = 0
		fill := options.DefaultLetterboxFill
		if opts.Letterbox != nil {
			fill = opts.Letterbox.Fill
		}
		opts.Letterbox = &options.LetterboxOptions{Width: w, Height: h, Fill: fill}
	}
	return opts
}

// PostprocessOptions overlays the entry's layout onto base.
func (e Entry) PostprocessOptions(base *options.PostprocessOptions) *options.PostprocessOptions {
	opts := options.NewPostprocessOptions(base)
	if l, ok := e.TensorLayout(); ok {
		opts.Layout = l
	}
	return opts
}
