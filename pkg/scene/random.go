package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// randomWorld scatters small spheres on a grid around three large feature spheres.
// When moving is set, diffuse spheres bounce upward over the [0,1] shutter.
func randomWorld(sampler core.Sampler, moving bool) *geometry.HittableList {
	world := geometry.NewHittableList()

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	keepClear := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// diffuse
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				mat := material.NewLambertian(albedo)
				if moving {
					center1 := center.Add(core.NewVec3(0, sampler.Range(0, 0.5), 0))
					world.Add(geometry.NewMovingSphere(center, center1, 0, 1, 0.2, mat))
				} else {
					world.Add(geometry.NewSphere(center, 0.2, mat))
				}
			case chooseMat < 0.95:
				// metal
				albedo := core.RandomVec3Range(sampler, 0.5, 1)
				fuzz := sampler.Range(0, 0.5)
				world.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				// glass
				world.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return world
}

func randomCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}
}

// NewRandomScene creates the field of random spheres, seeded by opts.Seed
func NewRandomScene(opts Options) *Scene {
	cameraConfig := randomCamera()
	world := randomWorld(core.NewSeededSampler(opts.Seed), false)

	s := New(cameraConfig, sizedConfig(400, cameraConfig.AspectRatio, 50, 50), world)
	s.Apply(opts)
	return s
}

// NewBouncingScene is the random field with diffuse spheres in motion during the exposure
func NewBouncingScene(opts Options) *Scene {
	cameraConfig := randomCamera()
	cameraConfig.AspectRatio = 16.0 / 9.0
	cameraConfig.Time0 = 0
	cameraConfig.Time1 = 1
	world := randomWorld(core.NewSeededSampler(opts.Seed), true)

	s := New(cameraConfig, sizedConfig(400, cameraConfig.AspectRatio, 50, 50), world)
	s.Apply(opts)
	return s
}
