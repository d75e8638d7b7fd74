package material

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass.
//
// By default every ray refracts: there is no total internal reflection branch
// and no Fresnel-weighted choice. A grazing exit from a dense medium folds the
// negative Snell term through an absolute value instead of reflecting. Glass
// built with NewFresnelDielectric makes the reflect/refract choice.
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
	Fresnel         bool    // Reflect on total internal reflection and by Schlick probability
}

// NewDielectric creates a refract-only dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// NewFresnelDielectric creates a dielectric that also reflects
func NewFresnelDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Fresnel: true}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	// Determine if we're entering or exiting the material
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex // Ray is entering the material (from air to glass)
	} else {
		refractionRatio = d.RefractiveIndex // Ray is exiting the material (from glass to air)
	}

	unitDirection := rayIn.Direction.Normalize()

	var direction core.Vec3
	if d.Fresnel && d.shouldReflect(unitDirection, hit.Normal, refractionRatio, sampler) {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: attenuation,
	}, true
}

// shouldReflect picks reflection on total internal reflection or by Schlick probability
func (d *Dielectric) shouldReflect(unitDirection, normal core.Vec3, refractionRatio float64, sampler core.Sampler) bool {
	cosTheta := math.Min(unitDirection.Negate().Dot(normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	if refractionRatio*sinTheta > 1.0 {
		return true
	}
	return Reflectance(cosTheta, refractionRatio) > sampler.Get1D()
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	// Calculate R0 for normal incidence
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
