package vmath

import (
	"math"
	"testing"
)

func nearVec(a, b Vec3F) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

// TestRotationsQuarterTurn checks each axis rotation on a unit vector
func TestRotationsQuarterTurn(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
		in   Vec3F
		want Vec3F
	}{
		{"X rotates Y to Z", RotX(90), Vec3F{0, 1, 0}, Vec3F{0, 0, 1}},
		{"Y rotates Z to X", RotY(90), Vec3F{0, 0, 1}, Vec3F{1, 0, 0}},
		{"Z rotates X to Y", RotZ(90), Vec3F{1, 0, 0}, Vec3F{0, 1, 0}},
		{"identity", Identity3(), Vec3F{1, 2, 3}, Vec3F{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Apply(tt.in)
			if !nearVec(got, tt.want) {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestViewMatrixOrder verifies Z rotation is applied to the point before X
func TestViewMatrixOrder(t *testing.T) {
	m := ViewMatrix(90, 0, 90, 2)
	// Z: (1,0,0) -> (0,1,0); X: (0,1,0) -> (0,0,1); scale 2
	got := m.Apply(Vec3F{1, 0, 0})
	want := Vec3F{0, 0, 2}
	if !nearVec(got, want) {
		t.Errorf("ViewMatrix apply = %v, want %v", got, want)
	}
}

// TestRotationPreservesLength verifies rotations are orthonormal
func TestRotationPreservesLength(t *testing.T) {
	m := ViewMatrix(-45, 10, 15, 1)
	v := Vec3F{0.3, -0.7, 0.2}
	if d := math.Abs(V3FMag(m.Apply(v)) - V3FMag(v)); d > 1e-9 {
		t.Errorf("length changed by %g", d)
	}
}
