package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// EncodePPM writes frame as plain-text P3, one "r g b" line per pixel, top row first
func EncodePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			rgb := renderer.ToneMap(frame.At(x, y))
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", rgb[0], rgb[1], rgb[2]); err != nil {
				return fmt.Errorf("writing ppm pixel (%d, %d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing ppm: %w", err)
	}
	return nil
}
