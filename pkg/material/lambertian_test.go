package material

import (
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)

	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    normal,
		FrontFace: true,
	}
	ray := core.NewRayAtTime(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), 0.3)

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at the hit point, got %v", scatter.Scattered.Origin)
		}
		if scatter.Scattered.Time != ray.Time {
			t.Fatalf("Scattered ray should keep the incoming time, got %f", scatter.Scattered.Time)
		}
		// normal + unit vector never points into the surface
		if scatter.Scattered.Direction.Dot(normal) < -1e-12 {
			t.Fatalf("Diffuse direction below surface: %v", scatter.Scattered.Direction)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))

	// A zero stream yields the unit vector (0,0,1); a normal of (0,0,-1) cancels it exactly
	normal := core.NewVec3(0, 0, -1)
	hit := HitRecord{Point: core.NewVec3(1, 2, 3), Normal: normal}
	ray := core.NewRay(core.NewVec3(1, 2, 0), core.NewVec3(0, 0, 1))

	scatter, didScatter := lambertian.Scatter(ray, hit, core.NewConstantSampler(0))
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != normal {
		t.Errorf("Expected fallback to normal %v, got %v", normal, scatter.Scattered.Direction)
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 1, 0)

	tests := []struct {
		name          string
		direction     core.Vec3
		expectedFront bool
		expectedNorm  core.Vec3
	}{
		{"ray from outside", core.NewVec3(0, -1, 0), true, outward},
		{"ray from inside", core.NewVec3(0, 1, 0), false, outward.Negate()},
		{"oblique outside", core.NewVec3(1, -0.1, 0), true, outward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			hit.SetFaceNormal(ray, outward)

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal != tt.expectedNorm {
				t.Errorf("Expected normal %v, got %v", tt.expectedNorm, hit.Normal)
			}
			if ray.Direction.Dot(hit.Normal) >= 0 {
				t.Error("Stored normal must oppose the incoming ray")
			}
		})
	}
}
