package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// materialsWorld lines up glass, diffuse and metal spheres on a yellow ground
func materialsWorld() *geometry.HittableList {
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		// Negative radius flips the normal, hollowing out the glass sphere
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
	)
}

// NewMaterialsScene shows each material side by side through a pinhole camera
func NewMaterialsScene(opts Options) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(-2, 2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
	}

	s := New(cameraConfig, sizedConfig(400, cameraConfig.AspectRatio, 100, 50), materialsWorld())
	s.Apply(opts)
	return s
}

// NewDefocusScene is the materials scene with a wide aperture focused on the center sphere
func NewDefocusScene(opts Options) *Scene {
	center := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)
	cameraConfig := geometry.CameraConfig{
		Center:        center,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      2.0,
		FocusDistance: center.Subtract(lookAt).Length(),
	}

	s := New(cameraConfig, sizedConfig(400, cameraConfig.AspectRatio, 100, 50), materialsWorld())
	s.Apply(opts)
	return s
}
