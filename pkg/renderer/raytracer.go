package renderer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// shadowAcneEpsilon is the minimum hit distance for secondary rays
const shadowAcneEpsilon = 0.001

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 50,
		MaxDepth:        50,
	}
}

// Validate rejects configurations that cannot produce an image
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	GetWorld() geometry.Hittable
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene   Scene
	config  RenderConfig
	sampler core.Sampler
	logger  zerolog.Logger
	metrics *renderMetrics
}

// NewRaytracer creates a raytracer drawing every random number from sampler
func NewRaytracer(scene Scene, config RenderConfig, sampler core.Sampler, logger zerolog.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	metrics, err := newRenderMetrics()
	if err != nil {
		return nil, err
	}

	return &Raytracer{
		scene:   scene,
		config:  config,
		sampler: sampler,
		logger:  logger.With().Str("component", "renderer").Logger(),
		metrics: metrics,
	}, nil
}

// Config returns the render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	topColor, bottomColor := rt.scene.GetBackgroundColors()
	return BackgroundGradient(r, topColor, bottomColor)
}

// BackgroundGradient blends bottom to top by the height of the unit ray direction
func BackgroundGradient(r core.Ray, topColor, bottomColor core.Vec3) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}

// RayColor returns the radiance carried back along r after at most depth bounces
func (rt *Raytracer) RayColor(r core.Ray, depth int) core.Vec3 {
	color, _ := rt.tracePath(r, depth)
	return color
}

// tracePath follows one path iteratively, multiplying attenuation at each scatter.
// It reports how the path ended alongside its color.
func (rt *Raytracer) tracePath(r core.Ray, depth int) (core.Vec3, pathResult) {
	world := rt.scene.GetWorld()
	throughput := core.NewVec3(1, 1, 1)
	result := pathResult{}

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(r, shadowAcneEpsilon, math.Inf(1))
		if !isHit {
			result.outcome = PathEscaped
			return throughput.MultiplyVec(rt.backgroundGradient(r)), result
		}

		scatter, didScatter := hit.Material.Scatter(r, *hit, rt.sampler)
		if !didScatter {
			result.outcome = PathAbsorbed
			return core.Vec3{}, result
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		r = scatter.Scattered
		result.bounces++
	}

	// Exceeded the bounce limit, no more light is gathered
	result.outcome = PathExhausted
	return core.Vec3{}, result
}

// Render renders the whole image and returns it with its statistics
func (rt *Raytracer) Render() (*Frame, RenderStats) {
	frame, stats, _ := rt.RenderContext(context.Background())
	return frame, stats
}

// renderCoordinate maps a pixel index and jitter onto [0,1] across a dimension
func renderCoordinate(index int, jitter float64, size int) float64 {
	if size <= 1 {
		return 0.5
	}
	return (float64(index) + jitter) / float64(size-1)
}

// RenderContext renders scanlines top to bottom, stopping early if ctx is cancelled
func (rt *Raytracer) RenderContext(ctx context.Context) (*Frame, RenderStats, error) {
	width, height := rt.config.Width, rt.config.Height
	camera := rt.scene.GetCamera()
	frame := NewFrame(width, height)
	stats := RenderStats{
		TotalPixels:     width * height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
	}

	rt.logger.Info().
		Int("width", width).
		Int("height", height).
		Int("samples", rt.config.SamplesPerPixel).
		Int("maxDepth", rt.config.MaxDepth).
		Msg("render started")
	start := time.Now()

	for j := height - 1; j >= 0; j-- {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return frame, stats, fmt.Errorf("render cancelled with %d scanlines remaining: %w", j+1, err)
		}
		rt.logger.Debug().Int("remaining", j+1).Msg("scanlines remaining")

		row := height - 1 - j
		for i := 0; i < width; i++ {
			var pixel PixelStats

			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				// Jitter within the pixel
				s := renderCoordinate(i, rt.sampler.Get1D(), width)
				t := renderCoordinate(j, rt.sampler.Get1D(), height)

				ray := camera.GetRay(s, t, rt.sampler)
				color, result := rt.tracePath(ray, rt.config.MaxDepth)

				pixel.AddSample(color)
				stats.record(result)
			}

			frame.Set(i, row, pixel.GetColor())
		}
	}

	stats.Duration = time.Since(start)
	rt.metrics.record(ctx, stats)

	rt.logger.Info().
		Int("samples", stats.TotalSamples).
		Int("bounces", stats.TotalBounces).
		Dur("duration", stats.Duration).
		Msg("render finished")

	return frame, stats, nil
}
