package render

import (
	"github.com/lixenwraith/stonerview/parameter"
	"github.com/lixenwraith/stonerview/vmath"
)

// Camera is the fixed view transform applied to every element, angles in degrees
type Camera struct {
	RotX, RotY, RotZ float64
	Scale            float64
}

// DefaultCamera returns the stock StonerView view angle
func DefaultCamera() Camera {
	return Camera{
		RotX:  parameter.CameraRotX,
		RotY:  parameter.CameraRotY,
		RotZ:  parameter.CameraRotZ,
		Scale: parameter.CameraScale,
	}
}

// Matrix returns the world-to-view transform
func (c Camera) Matrix() vmath.Mat3 {
	return vmath.ViewMatrix(c.RotX, c.RotY, c.RotZ, c.Scale)
}

// Orbit rotates the camera by the given degrees, keeping angles within (-360, 360)
func (c Camera) Orbit(dx, dz float64) Camera {
	c.RotX = wrapDeg(c.RotX + dx)
	c.RotZ = wrapDeg(c.RotZ + dz)
	return c
}

func wrapDeg(d float64) float64 {
	for d >= 360 {
		d -= 360
	}
	for d <= -360 {
		d += 360
	}
	return d
}
