package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}

			if hit.Material != testMaterial {
				t.Error("Hit record should carry the sphere's material")
			}
		})
	}
}

func TestSphere_Hit_AimedAtCenter(t *testing.T) {
	center := core.NewVec3(1, -2, -5)
	radius := 1.5
	sphere := NewSphere(center, radius, testMaterial)

	origins := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(10, 3, -4),
		core.NewVec3(-7, -2, 12),
	}

	for _, origin := range origins {
		toCenter := center.Subtract(origin)
		ray := core.NewRay(origin, toCenter.Normalize())

		hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			t.Fatalf("Expected hit from %v", origin)
		}

		expectedT := toCenter.Length() - radius
		if math.Abs(hit.T-expectedT) > 1e-9 {
			t.Errorf("From %v: expected t=%f, got %f", origin, expectedT, hit.T)
		}

		expectedNormal := hit.Point.Subtract(center).Divide(radius)
		if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
			t.Errorf("From %v: expected normal %v, got %v", origin, expectedNormal, hit.Normal)
		}
		if !hit.FrontFace {
			t.Errorf("From %v: expected front face", origin)
		}
	}
}

func TestSphere_Hit_FrontFaceConsistentWithOutwardNormal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	sampler := core.NewSeededSampler(11)

	for i := 0; i < 500; i++ {
		origin := core.RandomVec3Range(sampler, -3, 3)
		direction := core.RandomUnitVector(sampler)
		ray := core.NewRay(origin, direction)

		hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			continue
		}

		outward := hit.Point.Subtract(sphere.Center).Divide(sphere.Radius)
		if hit.FrontFace != (ray.Direction.Dot(outward) < 0) {
			t.Fatalf("front face %t inconsistent with outward normal %v", hit.FrontFace, outward)
		}
		if ray.Direction.Dot(hit.Normal) > 0 {
			t.Fatalf("stored normal %v faces along the ray", hit.Normal)
		}
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Test tMax bound
	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Test tMin bound
	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root accepted
	hit, isHit = sphere.Hit(ray, 1.5, 1000.0)
	if !isHit {
		t.Fatal("Expected the far intersection")
	}
	if math.Abs(hit.T-3.0) > 1e-9 || hit.FrontFace {
		t.Errorf("Expected back face at t=3, got t=%f front=%t", hit.T, hit.FrontFace)
	}
}

func TestMovingSphere_Center(t *testing.T) {
	s := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, testMaterial)

	tests := []struct {
		time     float64
		expected core.Vec3
	}{
		{0, core.NewVec3(0, 0, 0)},
		{0.5, core.NewVec3(0, 1, 0)},
		{1, core.NewVec3(0, 2, 0)},
		{2, core.NewVec3(0, 4, 0)},   // extrapolates past the keyframes
		{-1, core.NewVec3(0, -2, 0)}, // and before them
	}

	for _, tt := range tests {
		if got := s.Center(tt.time); got.Subtract(tt.expected).Length() > 1e-12 {
			t.Errorf("Center(%f): expected %v, got %v", tt.time, tt.expected, got)
		}
	}

	still := NewMovingSphere(core.NewVec3(1, 1, 1), core.NewVec3(5, 5, 5), 0.3, 0.3, 1, testMaterial)
	if still.Center(0.9) != core.NewVec3(1, 1, 1) {
		t.Errorf("Degenerate shutter should pin the first keyframe, got %v", still.Center(0.9))
	}
}

func TestMovingSphere_HitUsesRayTime(t *testing.T) {
	s := NewMovingSphere(core.NewVec3(0, 0, -2), core.NewVec3(0, 3, -2), 0, 1, 0.5, testMaterial)
	dir := core.NewVec3(0, 0, -1)

	early := core.NewRayAtTime(core.NewVec3(0, 0, 0), dir, 0)
	if _, isHit := s.Hit(early, 0.001, math.Inf(1)); !isHit {
		t.Error("Expected hit at time 0")
	}

	late := core.NewRayAtTime(core.NewVec3(0, 0, 0), dir, 1)
	if _, isHit := s.Hit(late, 0.001, math.Inf(1)); isHit {
		t.Error("Sphere has moved away by time 1")
	}

	following := core.NewRayAtTime(core.NewVec3(0, 3, 0), dir, 1)
	hit, isHit := s.Hit(following, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit on the moved sphere")
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Normal should use the moved center, got %v", hit.Normal)
	}
}
