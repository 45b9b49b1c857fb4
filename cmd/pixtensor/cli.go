package main

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/kpfaulkner/pixtensor"
	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/imageformats"
	"github.com/kpfaulkner/pixtensor/options"
	"github.com/kpfaulkner/pixtensor/presets"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pixtensor",
		Short:         "Convert images to and from model input tensors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			pixtensor.InstallDiagnostics()
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	dimsCmd := &cobra.Command{
		Use:   "dims WIDTH HEIGHT",
		Short: "Print the dimensions an image would be scaled to",
		Args:  cobra.ExactArgs(2),
		RunE:  DimsHandler,
	}
	dimsCmd.Flags().Uint32("max-side", presets.ResizeMax, "Longest side after scaling (0 = no resize)")

	preprocessCmd := &cobra.Command{
		Use:   "preprocess IMAGE",
		Short: "Convert an image into a raw tensor file",
		Args:  cobra.ExactArgs(1),
		RunE:  PreprocessHandler,
	}
	preprocessCmd.Flags().StringP("output", "o", "", "Output tensor file")
	preprocessCmd.Flags().Uint32("max-side", presets.ResizeMax, "Longest side after scaling (0 = no resize)")
	preprocessCmd.Flags().String("range", "0to1", "Value range: 0to1 or m1to1")
	preprocessCmd.Flags().String("letterbox", "", "Letterbox to a fixed WIDTHxHEIGHT instead of scaling")
	preprocessCmd.Flags().String("pfm", "", "Also write a PFM debug dump to this file")
	registerTensorFlags(preprocessCmd)
	preprocessCmd.MarkFlagRequired("output")

	postprocessCmd := &cobra.Command{
		Use:   "postprocess TENSOR",
		Short: "Convert a raw tensor file into a PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  PostprocessHandler,
	}
	postprocessCmd.Flags().StringP("output", "o", "", "Output PNG file")
	postprocessCmd.Flags().Uint32P("width", "W", 0, "Tensor width")
	postprocessCmd.Flags().Uint32P("height", "H", 0, "Tensor height")
	postprocessCmd.Flags().String("shape", "", "Model output shape, e.g. 1,3,224,224; sets layout and size")
	postprocessCmd.Flags().String("range", "0to1", "Value range: 0to1, m1to1, auto or minmax")
	registerTensorFlags(postprocessCmd)
	postprocessCmd.MarkFlagRequired("output")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built in model presets",
		Args:  cobra.NoArgs,
		RunE:  PresetsHandler,
	}

	rootCmd.AddCommand(dimsCmd, preprocessCmd, postprocessCmd, presetsCmd)
	return rootCmd
}

func registerTensorFlags(cmd *cobra.Command) {
	cmd.Flags().String("layout", "nchw", "Tensor layout: nchw or nhwc")
	cmd.Flags().String("dtype", "float32", "Element type: float32, float16 or bfloat16")
	cmd.Flags().String("preset", "", "Start from a built in preset")
	cmd.Flags().String("manifest", "", "Model manifest (YAML or JSON)")
	cmd.Flags().String("model", "", "Model path to look up in the manifest")
}

func DimsHandler(cmd *cobra.Command, args []string) error {
	width, err := parseUint32(args[0])
	if err != nil {
		return fmt.Errorf("width: %w", err)
	}
	height, err := parseUint32(args[1])
	if err != nil {
		return fmt.Errorf("height: %w", err)
	}
	maxSide, _ := cmd.Flags().GetUint32("max-side")

	w, h := pixtensor.ScaleDims(width, height, maxSide)
	fmt.Fprintf(cmd.OutOrStdout(), "%dx%d\n", w, h)
	return nil
}

func PreprocessHandler(cmd *cobra.Command, args []string) error {
	entry, err := manifestEntryFromFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := preprocessOptionsFromFlags(cmd, entry)
	if err != nil {
		return err
	}
	dtype, err := dtypeFromFlags(cmd, entry)
	if err != nil {
		return err
	}

	img, err := decodeImage(args[0])
	if err != nil {
		return err
	}

	res, err := pixtensor.FromImage(img, opts)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if err := writeFile(output, func(f *os.File) error {
		return imageformats.WriteTensor(f, res.Tensor, dtype)
	}); err != nil {
		return err
	}

	if pfm, _ := cmd.Flags().GetString("pfm"); pfm != "" {
		if err := writeFile(pfm, func(f *os.File) error {
			return imageformats.WritePFM(f, res.Tensor, res.Width, res.Height, res.Layout)
		}); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %v %s\n", output, res.Shape(), dtype)
	return nil
}

func PostprocessHandler(cmd *cobra.Command, args []string) error {
	entry, err := manifestEntryFromFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := postprocessOptionsFromFlags(cmd, entry)
	if err != nil {
		return err
	}
	dtype, err := dtypeFromFlags(cmd, entry)
	if err != nil {
		return err
	}
	width, _ := cmd.Flags().GetUint32("width")
	height, _ := cmd.Flags().GetUint32("height")
	if s, _ := cmd.Flags().GetString("shape"); s != "" {
		shape, err := parseShape(s)
		if err != nil {
			return fmt.Errorf("shape: %w", err)
		}
		opts.Layout, width, height = pixtensor.InferLayout(shape, width, height)
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("tensor size %dx%d: %w", width, height, pixtensor.ErrInvalidDimensions)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	tensor, err := imageformats.ReadTensor(bufio.NewReader(f), dtype)
	if err != nil {
		return err
	}

	img, err := pixtensor.ToImage(tensor, width, height, opts)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if err := writeFile(output, func(f *os.File) error {
		return png.Encode(f, img)
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %dx%d\n", output, width, height)
	return nil
}

func PresetsHandler(cmd *cobra.Command, args []string) error {
	for _, key := range presets.Keys() {
		p, _ := presets.Lookup(key)
		size := fmt.Sprintf("max %d", presets.ResizeMax)
		if p.IsFixedSize() {
			size = fmt.Sprintf("%dx%d", p.FixedWidth, p.FixedHeight)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-10s %-9s %s\n", p.Key, p.Label, size, p.File)
	}
	return nil
}

// preprocessOptionsFromFlags layers preset, then manifest entry (nil when none),
// then any explicitly set flags.
func preprocessOptionsFromFlags(cmd *cobra.Command, entry *presets.Entry) (*options.PreprocessOptions, error) {
	flags := cmd.Flags()
	opts := options.NewPreprocessOptions(&options.PreprocessOptions{MaxSide: presets.ResizeMax})

	if key, _ := flags.GetString("preset"); key != "" {
		p, err := presets.Lookup(key)
		if err != nil {
			return nil, err
		}
		opts = p.PreprocessOptions()
	}

	if entry != nil {
		opts = entry.PreprocessOptions(opts)
	}

	var err error
	if flags.Changed("max-side") {
		opts.MaxSide, _ = flags.GetUint32("max-side")
	}
	if flags.Changed("range") {
		s, _ := flags.GetString("range")
		if opts.Range, err = image2.ParseRange(s); err != nil {
			return nil, err
		}
	}
	if flags.Changed("layout") {
		s, _ := flags.GetString("layout")
		if opts.Layout, err = image2.ParseLayout(s); err != nil {
			return nil, err
		}
	}
	if s, _ := flags.GetString("letterbox"); s != "" {
		w, h, err := parseSize(s)
		if err != nil {
			return nil, fmt.Errorf("letterbox: %w", err)
		}
		opts.Letterbox = &options.LetterboxOptions{Width: w, Height: h}
	}
	return options.NewPreprocessOptions(opts), nil
}

func postprocessOptionsFromFlags(cmd *cobra.Command, entry *presets.Entry) (*options.PostprocessOptions, error) {
	flags := cmd.Flags()
	opts := options.NewPostprocessOptions(nil)

	if key, _ := flags.GetString("preset"); key != "" {
		p, err := presets.Lookup(key)
		if err != nil {
			return nil, err
		}
		opts = p.PostprocessOptions()
	}

	if entry != nil {
		opts = entry.PostprocessOptions(opts)
	}

	var err error
	if flags.Changed("range") {
		s, _ := flags.GetString("range")
		if opts.Range, err = image2.ParseRange(s); err != nil {
			return nil, err
		}
	}
	if flags.Changed("layout") {
		s, _ := flags.GetString("layout")
		if opts.Layout, err = image2.ParseLayout(s); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// manifestEntryFromFlags resolves --manifest and --model (or the preset's model
// file) to a manifest entry. It returns nil when no manifest is given or the
// model is not listed.
func manifestEntryFromFlags(cmd *cobra.Command) (*presets.Entry, error) {
	path, _ := cmd.Flags().GetString("manifest")
	if path == "" {
		return nil, nil
	}
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		if key, _ := cmd.Flags().GetString("preset"); key != "" {
			p, err := presets.Lookup(key)
			if err != nil {
				return nil, err
			}
			model = p.File
		}
	}
	if model == "" {
		return nil, fmt.Errorf("--manifest needs --model or --preset")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := presets.LoadManifest(f)
	if err != nil {
		return nil, err
	}
	entry, ok := m.EntryFor(model)
	if !ok {
		log.Warnf("model %s not in manifest %s, using defaults", model, path)
		return nil, nil
	}
	return &entry, nil
}

func dtypeFromFlags(cmd *cobra.Command, entry *presets.Entry) (imageformats.DType, error) {
	if cmd.Flags().Changed("dtype") {
		s, _ := cmd.Flags().GetString("dtype")
		return imageformats.ParseDType(s)
	}
	if entry != nil && entry.DType != "" {
		return entry.ElementType()
	}
	return imageformats.Float32, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	log.Debugf("decoded %s as %s %v", path, format, img.Bounds().Size())
	return img, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// parseShape parses comma separated dimensions. Dynamic dimensions may be given as -1.
func parseShape(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	shape := make([]int64, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		shape = append(shape, d)
	}
	return shape, nil
}

// parseSize parses WIDTHxHEIGHT.
func parseSize(s string) (uint32, uint32, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WIDTHxHEIGHT, got %q", s)
	}
	w, err := parseUint32(parts[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := parseUint32(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}
