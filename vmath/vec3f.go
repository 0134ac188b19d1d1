package vmath

import "math"

// Vec3F is a float64 3D vector for view-space transforms
type Vec3F struct {
	X, Y, Z float64
}

// V3FDot returns a·b
func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// V3FMag returns the Euclidean length of v
func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FDot(v, v))
}

// V3FFrom32 widens a float32 triple as stored in element records
func V3FFrom32(p [3]float32) Vec3F {
	return Vec3F{float64(p[0]), float64(p[1]), float64(p[2])}
}
