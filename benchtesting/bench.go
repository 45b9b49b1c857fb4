package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kpfaulkner/pixtensor/core"
	"github.com/kpfaulkner/pixtensor/presets"
	"github.com/kpfaulkner/pixtensor/testcommon"
	"github.com/kpfaulkner/pixtensor/util"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

func main() {
	width := flag.Uint("w", 4032, "source width")
	height := flag.Uint("h", 3024, "source height")
	iterations := flag.Int("n", 10, "round trips to run")
	mode := flag.String("profile", "cpu", "cpu or mem")
	flag.Parse()

	w, h := uint32(*width), uint32(*height)
	pixels := testcommon.RandomRGBA(int(w), int(h), 1)

	var p interface{ Stop() }
	switch *mode {
	case "mem":
		p = profile.Start(profile.MemProfileHeap, profile.ProfilePath("."))
	case "cpu":
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	default:
		fmt.Printf("unknown profile mode %s\n", *mode)
		os.Exit(1)
	}
	defer p.Stop()

	start := time.Now()
	for count := 0; count < *iterations; count++ {
		startPre := time.Now()
		res, err := core.PreprocessRGBAToNCHW(pixels, w, h, presets.ResizeMax, count%2 == 1)
		if err != nil {
			log.Errorf("preprocess: %v", err)
			return
		}
		fmt.Printf("preprocess %dx%d -> %dx%d took %d ms\n", w, h, res.Width, res.Height, time.Since(startPre).Milliseconds())

		startPost := time.Now()
		if _, err := core.PostprocessToRGBA(res.Tensor, res.Width, res.Height, true, count%2 == 1); err != nil {
			log.Errorf("postprocess: %v", err)
			return
		}
		fmt.Printf("postprocess took %d ms\n", time.Since(startPost).Milliseconds())
	}
	fmt.Printf("total time %d ms\n", time.Since(start).Milliseconds())

	for name, m := range util.GetPoolMetrics() {
		fmt.Printf("scratch pool %s: %v\n", name, m)
	}
}
