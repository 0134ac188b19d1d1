package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// StonerSound voice
const (
	// VoiceBaseFreq is the pitch when the field sits at altitude zero
	VoiceBaseFreq = 220.0

	// VoiceOctaves is the pitch span, in octaves each way, across the altitude range
	VoiceOctaves = 1.0

	// VoiceAltitudeSpan is the absolute altitude mapped to a full VoiceOctaves shift
	VoiceAltitudeSpan = 1.5

	// VoiceGain is the output amplitude of the voice before mixing
	VoiceGain = 0.12

	// VoiceGlide is the per-sample smoothing factor toward a new target pitch
	VoiceGlide = 0.0005
)
