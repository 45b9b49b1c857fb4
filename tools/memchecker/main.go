package main

import (
	"fmt"
	"reflect"

	"github.com/kpfaulkner/pixtensor/core"
	image2 "github.com/kpfaulkner/pixtensor/image"
	"github.com/kpfaulkner/pixtensor/options"
)

// displays sizes of the pipeline structs to spot padding waste
func memStats(input any) {

	rType := reflect.TypeOf(input)
	fmt.Printf("Size of %s : %d bytes\n", rType.Name(), rType.Size())

	if rType.Kind() == reflect.Struct {
		for i := 0; i < rType.NumField(); i++ {
			field := rType.Field(i)
			fmt.Printf("  Name %s\n", field.Name)
			fmt.Printf("    Offset of    : %d bytes\n", field.Offset)
			fmt.Printf("    Size of      : %d bytes\n", field.Type.Size())
			fmt.Printf("    Alignment of : %d bytes\n", field.Type.Align())
			fmt.Println()
		}
	}
}

func main() {
	memStats(image2.PixelBuffer{})
	memStats(image2.TensorBuffer{})
	memStats(core.PreprocessResult{})
	memStats(options.PreprocessOptions{})
	memStats(options.LetterboxOptions{})
}
