package parameter

// View transform, degrees and world-to-viewport scale
const (
	CameraRotX  = -45.0
	CameraRotY  = 0.0
	CameraRotZ  = 15.0
	CameraScale = 4.0

	// CameraAspect compensates for terminal cells being roughly twice as tall as wide
	CameraAspect = 2.0

	// CameraRotStep is the rotation applied per arrow key press
	CameraRotStep = 5.0
)
