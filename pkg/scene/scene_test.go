package scene

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

func TestSimpleScene_EndToEndFixture(t *testing.T) {
	s, err := Create("simple", Options{
		Camera:          geometry.CameraConfig{AspectRatio: 1},
		Width:           3,
		SamplesPerPixel: 1,
		MaxDepth:        2,
	})
	require.NoError(t, err)
	require.Equal(t, renderer.RenderConfig{Width: 3, Height: 3, SamplesPerPixel: 1, MaxDepth: 2}, s.RenderConfig)

	rt, err := renderer.NewRaytracer(s, s.RenderConfig, core.NewConstantSampler(0), zerolog.Nop())
	require.NoError(t, err)

	frame, _ := rt.Render()
	assert.Equal(t, [3]uint8{156, 166, 181}, renderer.ToneMap(frame.At(1, 1)))
}

func TestScene_ImplementsRendererScene(t *testing.T) {
	var _ renderer.Scene = (*Scene)(nil)

	s := NewSimpleScene(Options{})
	top, bottom := s.GetBackgroundColors()
	assert.Equal(t, DefaultTopColor, top)
	assert.Equal(t, DefaultBottomColor, bottom)
	assert.Same(t, s.Camera, s.GetCamera())
	assert.Equal(t, 2, s.World.Len())
}

func TestScene_ApplyOverrides(t *testing.T) {
	s := NewMaterialsScene(Options{})
	assert.Equal(t, 400, s.RenderConfig.Width)
	assert.Equal(t, 225, s.RenderConfig.Height)

	s.Apply(Options{
		Camera:          geometry.CameraConfig{Center: core.NewVec3(0, 0, 5), AspectRatio: 2},
		Width:           200,
		SamplesPerPixel: 7,
		MaxDepth:        3,
	})

	assert.Equal(t, core.NewVec3(0, 0, 5), s.CameraConfig.Center)
	assert.Equal(t, core.NewVec3(0, 0, 5), s.Camera.Origin())
	assert.Equal(t, renderer.RenderConfig{Width: 200, Height: 100, SamplesPerPixel: 7, MaxDepth: 3}, s.RenderConfig)

	s.Apply(Options{Height: 40})
	assert.Equal(t, 200, s.RenderConfig.Width)
	assert.Equal(t, 40, s.RenderConfig.Height)
	assert.InDelta(t, 5.0, s.CameraConfig.AspectRatio, 1e-12)
}

func TestScene_HeightOverrideKeepsPixelsSquare(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"height only", Options{Height: 400}},
		{"width and height", Options{Width: 300, Height: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create("simple", tt.opts)
			require.NoError(t, err)

			imageAspect := float64(s.RenderConfig.Width) / float64(s.RenderConfig.Height)
			assert.InDelta(t, imageAspect, s.CameraConfig.AspectRatio, 1e-12)

			// Corner rays span the viewport in the same ratio as the image
			sampler := core.NewConstantSampler(0.5)
			lowerLeft := s.Camera.GetRay(0, 0, sampler).Direction
			upperRight := s.Camera.GetRay(1, 1, sampler).Direction
			span := upperRight.Subtract(lowerLeft)
			assert.InDelta(t, imageAspect, math.Abs(span.X/span.Y), 1e-9)
		})
	}
}

func TestHeightForAspect(t *testing.T) {
	assert.Equal(t, 225, heightForAspect(400, 16.0/9.0))
	assert.Equal(t, 266, heightForAspect(400, 1.5))
	assert.Equal(t, 1, heightForAspect(1, 16.0/9.0))
	assert.Equal(t, 10, heightForAspect(10, 0))
}

func TestDefocusScene_FocusesOnLookAt(t *testing.T) {
	s := NewDefocusScene(Options{})
	assert.Equal(t, 1.0, s.Camera.LensRadius())
	assert.InDelta(t, s.CameraConfig.Center.Subtract(s.CameraConfig.LookAt).Length(), s.CameraConfig.FocusDistance, 1e-12)
}

func TestRandomScene_Seeded(t *testing.T) {
	first := NewRandomScene(Options{Seed: 7})
	second := NewRandomScene(Options{Seed: 7})
	other := NewRandomScene(Options{Seed: 8})

	require.Equal(t, first.World.Len(), second.World.Len())
	for i := range first.World.Objects {
		assert.Equal(t, first.World.Objects[i], second.World.Objects[i])
	}

	// Ground plus at least the three feature spheres
	assert.Greater(t, first.World.Len(), 4)

	a := first.World.Objects[1].(*geometry.Sphere).Center
	b := other.World.Objects[1].(*geometry.Sphere).Center
	assert.NotEqual(t, a, b, "different seeds should place spheres differently")
}

func TestRandomScene_KeepsFeatureAreaClear(t *testing.T) {
	s := NewRandomScene(Options{Seed: 42})
	keepClear := core.NewVec3(4, 0.2, 0)

	// Skip the ground and the three feature spheres
	small := s.World.Objects[1 : s.World.Len()-3]
	for _, obj := range small {
		sphere, ok := obj.(*geometry.Sphere)
		require.True(t, ok, "random scene holds static spheres only")
		assert.Equal(t, 0.2, sphere.Radius)
		assert.Greater(t, sphere.Center.Subtract(keepClear).Length(), 0.9)
	}
}

func TestBouncingScene_HasMotion(t *testing.T) {
	s := NewBouncingScene(Options{Seed: 42})
	assert.Equal(t, 0.0, s.CameraConfig.Time0)
	assert.Equal(t, 1.0, s.CameraConfig.Time1)

	moving := 0
	for _, obj := range s.World.Objects {
		if ms, ok := obj.(*geometry.MovingSphere); ok {
			moving++
			rise := ms.Center1.Subtract(ms.Center0)
			assert.Equal(t, 0.0, rise.X)
			assert.Equal(t, 0.0, rise.Z)
			assert.GreaterOrEqual(t, rise.Y, 0.0)
			assert.Less(t, rise.Y, 0.5)
		}
	}
	assert.Greater(t, moving, 0)
}
