// mkicon writes the sample app icon PNG used as an iconize source.
// Usage: go run ./cmd/mkicon <output.png> [size]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Mavwarf/iconize/internal/imageio"
	"github.com/Mavwarf/iconize/internal/sample"
)

const defaultSize = 1024

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: mkicon <output.png> [size]\n")
		os.Exit(1)
	}
	size := defaultSize
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "Error: size must be a positive integer\n")
			os.Exit(1)
		}
		size = n
	}
	if _, err := imageio.WritePNG(os.Args[1], sample.Draw(size)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
