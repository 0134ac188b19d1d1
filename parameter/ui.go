package parameter

import "time"

// Interactive controls
const (
	// SpeedStep is the speed multiplier change per +/- key press
	SpeedStep = 0.1

	// TransparencyStep is the alpha change per a/z key press
	TransparencyStep = 0.05

	// FPSWindow is the span over which the status line averages frame rate
	FPSWindow = time.Second

	// StatusMessageTimeout is how long a key feedback message stays on the status line
	StatusMessageTimeout = 2 * time.Second
)

// Headless dump defaults
const (
	DefaultDumpFrames = 10
	DefaultDumpWidth  = 80
	DefaultDumpHeight = 24
)
