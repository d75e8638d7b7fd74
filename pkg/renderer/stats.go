package renderer

import (
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// PathOutcome describes how a traced path terminated
type PathOutcome int

const (
	PathEscaped   PathOutcome = iota // Left the scene and picked up the background
	PathAbsorbed                     // A material absorbed the ray
	PathExhausted                    // Ran out of bounces
)

// String returns the metric label for the outcome
func (o PathOutcome) String() string {
	switch o {
	case PathEscaped:
		return "escaped"
	case PathAbsorbed:
		return "absorbed"
	case PathExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

type pathResult struct {
	outcome PathOutcome
	bounces int
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken per pixel
	EscapedPaths    int           // Paths that reached the background
	AbsorbedPaths   int           // Paths absorbed by a material
	ExhaustedPaths  int           // Paths cut off by the depth limit
	TotalBounces    int           // Scatter events across all paths
	Duration        time.Duration // Wall time of the render
}

func (s *RenderStats) record(result pathResult) {
	s.TotalSamples++
	s.TotalBounces += result.bounces
	switch result.outcome {
	case PathEscaped:
		s.EscapedPaths++
	case PathAbsorbed:
		s.AbsorbedPaths++
	case PathExhausted:
		s.ExhaustedPaths++
	}
}

// AverageBounces returns the mean number of scatter events per path
func (s RenderStats) AverageBounces() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.TotalBounces) / float64(s.TotalSamples)
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
