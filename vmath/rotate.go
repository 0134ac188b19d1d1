package vmath

import "math"

// Mat3 is a row-major 3x3 rotation/scale matrix
type Mat3 [3][3]float64

// Identity3 returns the identity matrix
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mul returns m*o
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

// Apply transforms v by m
func (m Mat3) Apply(v Vec3F) Vec3F {
	return Vec3F{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// RotX returns a rotation of deg degrees about the X axis
func RotX(deg float64) Mat3 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

// RotY returns a rotation of deg degrees about the Y axis
func RotY(deg float64) Mat3 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

// RotZ returns a rotation of deg degrees about the Z axis
func RotZ(deg float64) Mat3 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// ViewMatrix composes scale, then rotations applied to a point in X, Y, Z order as a GL modelview stack would
// (glScale; glRotate x; glRotate y; glRotate z: the Z rotation touches the point first)
func ViewMatrix(rotX, rotY, rotZ, scale float64) Mat3 {
	s := Mat3{{scale, 0, 0}, {0, scale, 0}, {0, 0, scale}}
	return s.Mul(RotX(rotX)).Mul(RotY(rotY)).Mul(RotZ(rotZ))
}
