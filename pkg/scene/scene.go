package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Default sky gradient
var (
	DefaultTopColor    = core.NewVec3(0.5, 0.7, 1.0)
	DefaultBottomColor = core.NewVec3(1.0, 1.0, 1.0)
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	World        *geometry.HittableList
	TopColor     core.Vec3
	BottomColor  core.Vec3
	RenderConfig renderer.RenderConfig
}

// Options overrides scene defaults. Zero fields keep the scene's value.
type Options struct {
	Camera          geometry.CameraConfig
	Width           int
	Height          int // 0 derives the height from width and aspect ratio
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64 // Seeds scenes with random content
}

// New assembles a scene with the default sky and builds its camera
func New(cameraConfig geometry.CameraConfig, renderConfig renderer.RenderConfig, world *geometry.HittableList) *Scene {
	s := &Scene{
		CameraConfig: cameraConfig,
		World:        world,
		TopColor:     DefaultTopColor,
		BottomColor:  DefaultBottomColor,
		RenderConfig: renderConfig,
	}
	s.Camera = geometry.NewCamera(cameraConfig)
	return s
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetBackgroundColors returns the sky gradient endpoints
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetWorld returns everything a ray can hit
func (s *Scene) GetWorld() geometry.Hittable {
	return s.World
}

// Apply merges opts into the scene and rebuilds the camera
func (s *Scene) Apply(opts Options) {
	s.CameraConfig = geometry.MergeCameraConfig(s.CameraConfig, opts.Camera)

	if opts.Width > 0 {
		s.RenderConfig.Width = opts.Width
		s.RenderConfig.Height = heightForAspect(opts.Width, s.CameraConfig.AspectRatio)
	}
	if opts.Height > 0 {
		// An explicit height reshapes the viewport to match the image
		s.RenderConfig.Height = opts.Height
		s.CameraConfig.AspectRatio = float64(s.RenderConfig.Width) / float64(opts.Height)
	}
	if opts.SamplesPerPixel > 0 {
		s.RenderConfig.SamplesPerPixel = opts.SamplesPerPixel
	}
	if opts.MaxDepth > 0 {
		s.RenderConfig.MaxDepth = opts.MaxDepth
	}

	s.Camera = geometry.NewCamera(s.CameraConfig)
}

// heightForAspect truncates width/aspect, never going below one pixel
func heightForAspect(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return width
	}
	return max(1, int(float64(width)/aspectRatio))
}

// sizedConfig sizes a render config for width at the given aspect ratio
func sizedConfig(width int, aspectRatio float64, samplesPerPixel, maxDepth int) renderer.RenderConfig {
	return renderer.RenderConfig{
		Width:           width,
		Height:          heightForAspect(width, aspectRatio),
		SamplesPerPixel: samplesPerPixel,
		MaxDepth:        maxDepth,
	}
}
