package astro

import (
	"math"
	"testing"
)

func TestVec3Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Norm()
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Normalized(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want Vec3
	}{
		{"unit x", Vec3{5, 0, 0}, Vec3{1, 0, 0}},
		{"diagonal", Vec3{1, 1, 0}, Vec3{1 / math.Sqrt(2), 1 / math.Sqrt(2), 0}},
		{"zero", Vec3{0, 0, 0}, Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normalized()
			if !vecClose(got, tt.want, 1e-10) {
				t.Errorf("Normalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"y cross z", Vec3{0, 1, 0}, Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"z cross x", Vec3{0, 0, 1}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"parallel", Vec3{2, 0, 0}, Vec3{5, 0, 0}, Vec3{0, 0, 0}},
		{"anti-commutes", Vec3{0, 1, 0}, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Cross(tt.b)
			if !vecClose(got, tt.want, 1e-10) {
				t.Errorf("Cross() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Dot(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}
	if got := a.Dot(b); math.Abs(got-12) > 1e-10 {
		t.Errorf("Dot() = %v, want 12", got)
	}

	// Orthogonal vectors
	if got := (Vec3{1, 0, 0}).Dot(Vec3{0, 1, 0}); got != 0 {
		t.Errorf("orthogonal Dot() = %v, want 0", got)
	}
}

func TestUnitConversions(t *testing.T) {
	if got := KmToAU(AU); math.Abs(got-1) > 1e-12 {
		t.Errorf("KmToAU(AU) = %v, want 1", got)
	}
	if got := AUToKm(2); math.Abs(got-2*AU) > 1e-6 {
		t.Errorf("AUToKm(2) = %v, want %v", got, 2*AU)
	}

	// Light crosses 1 AU in roughly 499 seconds.
	lt := LightTimeSec(AU)
	if lt < 498 || lt > 500 {
		t.Errorf("LightTimeSec(AU) = %v, want ~499", lt)
	}
}

func vecClose(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}
