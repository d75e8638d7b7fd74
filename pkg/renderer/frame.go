package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Frame holds averaged linear pixel colors, top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color at column x of row y, where row 0 is the top
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color at column x of row y
func (f *Frame) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// Image converts the frame to 8-bit RGBA through ToneMap
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			rgb := ToneMap(f.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}

// ToneMap applies gamma 2, clamps to [0, 0.999] and scales to 8-bit, truncating
func ToneMap(c core.Vec3) [3]uint8 {
	return [3]uint8{toByte(c.X), toByte(c.Y), toByte(c.Z)}
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	v = math.Sqrt(v)
	if v > 0.999 {
		v = 0.999
	}
	return uint8(256 * v)
}
