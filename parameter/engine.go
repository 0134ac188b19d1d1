package parameter

import "time"

// Frame pacing
const (
	// DefaultTickInterval is one oscillator tick at speed 1.0 (~30 FPS)
	DefaultTickInterval = 33 * time.Millisecond

	// MinSpeed and MaxSpeed bound the user speed multiplier
	MinSpeed = 0.1
	MaxSpeed = 4.0

	// MaxFramesBehind is how many tick intervals the scheduler may fall behind before resyncing its deadline
	MaxFramesBehind = 2

	// PausedPollInterval is the scheduler sleep while paused
	PausedPollInterval = 100 * time.Millisecond
)

// TickInterval converts a speed multiplier into a tick duration, clamping to [MinSpeed, MaxSpeed]
func TickInterval(speed float64) time.Duration {
	speed = min(max(speed, MinSpeed), MaxSpeed)
	return time.Duration(float64(DefaultTickInterval) / speed)
}
