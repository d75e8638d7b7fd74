package core

import (
	"math"
	"testing"
)

func vecClose(a, b Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Lerp midpoint", NewVec3(1, 1, 1).Lerp(NewVec3(0.5, 0.7, 1.0), 0.5), NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecClose(tt.got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestVec3_ImmutableValueSemantics(t *testing.T) {
	v := NewVec3(1, 2, 3)
	_ = v.Add(NewVec3(10, 10, 10))
	_ = v.Multiply(5)
	_ = v.Normalize()

	if v != NewVec3(1, 2, 3) {
		t.Errorf("Operations mutated the receiver: %v", v)
	}
}

func TestVec3_LengthAndDot(t *testing.T) {
	v := NewVec3(3, 4, 12)
	if v.Length() != 13 {
		t.Errorf("Expected length 13, got %f", v.Length())
	}
	if v.LengthSquared() != 169 {
		t.Errorf("Expected squared length 169, got %f", v.LengthSquared())
	}
	if d := v.Dot(NewVec3(1, 1, 1)); d != 19 {
		t.Errorf("Expected dot 19, got %f", d)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(0, 3, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"exact zero", NewVec3(0, 0, 0), true},
		{"tiny components", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-7, 0), false},
		{"unit", NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.NearZero() != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.v, tt.v.NearZero(), tt.expected)
			}
		})
	}
}

func TestVec3_ClampAndGamma(t *testing.T) {
	c := NewVec3(-0.5, 0.25, 2).Clamp(0, 0.999)
	if c != NewVec3(0, 0.25, 0.999) {
		t.Errorf("Unexpected clamp result %v", c)
	}

	g := NewVec3(0.25, 0.5, 1).GammaCorrect(2.0)
	expected := NewVec3(0.5, math.Sqrt(0.5), 1)
	if !vecClose(g, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, g)
	}
}

func TestReflect(t *testing.T) {
	// 45 degree incidence onto a floor
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	r := Reflect(v, n)
	if !vecClose(r, NewVec3(1, 1, 0), 1e-12) {
		t.Errorf("Expected (1,1,0), got %v", r)
	}
}

func TestRefract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	// Normal incidence passes straight through regardless of ratio
	straight := Refract(NewVec3(0, -1, 0), n, 1.0/1.5)
	if !vecClose(straight, NewVec3(0, -1, 0), 1e-12) {
		t.Errorf("Expected straight transmission, got %v", straight)
	}

	// Unit ratio leaves any direction unchanged
	in := NewVec3(1, -1, 0).Normalize()
	same := Refract(in, n, 1.0)
	if !vecClose(same, in, 1e-12) {
		t.Errorf("Expected %v, got %v", in, same)
	}

	// Snell's law: sin(theta_t) = ratio * sin(theta_i)
	ratio := 1.0 / 1.5
	out := Refract(in, n, ratio)
	sinI := math.Abs(in.X)
	sinT := math.Abs(out.Normalize().X)
	if math.Abs(sinT-ratio*sinI) > 1e-12 {
		t.Errorf("Snell's law violated: sinT=%f, expected %f", sinT, ratio*sinI)
	}
	if out.Y >= 0 {
		t.Errorf("Refracted ray should continue below the surface, got %v", out)
	}
}

func TestRefract_TotalInternalReflectionStaysFinite(t *testing.T) {
	// Leaving glass at 60 degrees: ratio*sin(theta) = 1.3 exceeds 1
	n := NewVec3(0, 1, 0)
	in := NewVec3(math.Sin(math.Pi/3), -math.Cos(math.Pi/3), 0)

	out := Refract(in, n, 1.5)
	for i, c := range []float64{out.X, out.Y, out.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			t.Fatalf("component %d of %v is not finite", i, out)
		}
	}
	if out.Y >= 0 {
		t.Errorf("Folded direction should still point below the surface, got %v", out)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 2, 3), NewVec3(0, 0, -2), 0.25)
	p := ray.At(1.5)
	if p != NewVec3(1, 2, 0) {
		t.Errorf("Expected (1,2,0), got %v", p)
	}
	if ray.Time != 0.25 {
		t.Errorf("Expected time 0.25, got %f", ray.Time)
	}
	if NewRay(Vec3{}, NewVec3(1, 0, 0)).Time != 0 {
		t.Error("NewRay should default time to zero")
	}
}
