package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays
type Hittable interface {
	// Hit reports the intersection with the ray in [tMin, tMax], if any
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
