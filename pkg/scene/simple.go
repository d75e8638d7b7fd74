package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewSimpleScene creates a grey diffuse sphere resting on a large ground sphere
func NewSimpleScene(opts Options) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 16.0 / 9.0,
	}

	grey := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, grey),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, grey),
	)

	s := New(cameraConfig, sizedConfig(400, cameraConfig.AspectRatio, 100, 50), world)
	s.Apply(opts)
	return s
}
