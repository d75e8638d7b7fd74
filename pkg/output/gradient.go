package output

import (
	"bufio"
	"fmt"
	"io"
)

// WriteGradientPPM writes the P3 test pattern: red grows left to right, green
// grows bottom to top, blue is fixed at 0.25. Channels are scaled by 255.999
// without gamma so the pattern checks viewer and pipeline plumbing only.
func WriteGradientPPM(w io.Writer, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("gradient size must be positive, got %dx%d", width, height)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}

	blue := 0.25
	for j := height - 1; j >= 0; j-- {
		for i := 0; i < width; i++ {
			r := int(255.999 * unitCoordinate(i, width))
			g := int(255.999 * unitCoordinate(j, height))
			b := int(255.999 * blue)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return fmt.Errorf("writing ppm pixel (%d, %d): %w", i, j, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing ppm: %w", err)
	}
	return nil
}

// unitCoordinate maps index i of n onto [0, 1]; a single column sits at 0.5
func unitCoordinate(i, n int) float64 {
	if n == 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}
