package main

import (
	"bufio"
	"flag"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/kpfaulkner/pixtensor"
	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/imageformats"
	"github.com/kpfaulkner/pixtensor/options"
	log "github.com/sirupsen/logrus"
)

func main() {
	infile := flag.String("i", "", "input raw tensor file")
	outfile := flag.String("o", "", "output png file")
	width := flag.Uint("w", 0, "tensor width")
	height := flag.Uint("h", 0, "tensor height")
	layout := flag.String("layout", "nchw", "tensor layout, nchw or nhwc")
	rng := flag.String("range", "auto", "value range, 0to1, m1to1, auto or minmax")
	dtype := flag.String("dtype", "float32", "element type, float32, float16 or bfloat16")
	flag.Parse()

	if *infile == "" || *outfile == "" || *width == 0 || *height == 0 {
		fmt.Printf("input, output, width and height must be specified\n")
		os.Exit(1)
	}

	pixtensor.InstallDiagnostics()

	opts := &options.PostprocessOptions{}
	var err error
	if opts.Layout, err = image2.ParseLayout(*layout); err != nil {
		log.Fatalf("layout: %v", err)
	}
	if opts.Range, err = image2.ParseRange(*rng); err != nil {
		log.Fatalf("range: %v", err)
	}
	dt, err := imageformats.ParseDType(*dtype)
	if err != nil {
		log.Fatalf("dtype: %v", err)
	}

	f, err := os.Open(*infile)
	if err != nil {
		log.Errorf("Error opening file: %v\n", err)
		return
	}
	defer f.Close()

	start := time.Now()
	tensor, err := imageformats.ReadTensor(bufio.NewReader(f), dt)
	if err != nil {
		log.Fatalf("reading tensor: %v", err)
	}
	img, err := pixtensor.ToImage(tensor, uint32(*width), uint32(*height), opts)
	if err != nil {
		log.Fatalf("converting tensor: %v", err)
	}
	fmt.Printf("converting took %d ms\n", time.Since(start).Milliseconds())

	startEncoding := time.Now()
	out, err := os.Create(*outfile)
	if err != nil {
		log.Fatalf("creating %s: %v", *outfile, err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		log.Fatalf("encoding png: %v", err)
	}
	fmt.Printf("encoding took %d ms\n", time.Since(startEncoding).Milliseconds())
}
