package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/stonerview/motion"
	"github.com/lixenwraith/stonerview/parameter"
)

// Voice is a drone whose pitch follows the element field's mean altitude and whose pan follows its mean x
// Update is called from the frame loop, Stream from the speaker goroutine
type Voice struct {
	sr beep.SampleRate

	mu         sync.Mutex
	targetFreq float64
	targetPan  float64 // -1 left .. 1 right
	targetGain float64

	// Streaming state, only touched by Stream
	freq, pan, gain float64
	phase, fifth    float64
}

// NewVoice creates a voice at the base pitch, centered
func NewVoice(sr beep.SampleRate) *Voice {
	return &Voice{
		sr:         sr,
		targetFreq: parameter.VoiceBaseFreq,
		targetGain: parameter.VoiceGain,
		freq:       parameter.VoiceBaseFreq,
		gain:       parameter.VoiceGain,
	}
}

// Update retargets the voice from the current element records
func (v *Voice) Update(elems []motion.Elem) {
	if len(elems) == 0 {
		return
	}
	var alt, x, r float64
	for _, el := range elems {
		alt += float64(el.Pos[2])
		x += float64(el.Pos[0])
		r += math.Hypot(float64(el.Pos[0]), float64(el.Pos[1]))
	}
	n := float64(len(elems))
	alt, x, r = alt/n, x/n, r/n

	octaves := parameter.VoiceOctaves * clamp(alt/parameter.VoiceAltitudeSpan, -1, 1)

	v.mu.Lock()
	v.targetFreq = parameter.VoiceBaseFreq * math.Exp2(octaves)
	v.targetPan = clamp(x, -1, 1)
	// A wider field sounds louder
	v.targetGain = parameter.VoiceGain * (0.6 + 0.4*clamp(r, 0, 1))
	v.mu.Unlock()
}

// Target returns the pitch, pan and gain the voice is gliding toward
func (v *Voice) Target() (freq, pan, gain float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.targetFreq, v.targetPan, v.targetGain
}

// Stream fills samples with the drone, it never ends
func (v *Voice) Stream(samples [][2]float64) (n int, ok bool) {
	v.mu.Lock()
	tf, tp, tg := v.targetFreq, v.targetPan, v.targetGain
	v.mu.Unlock()

	step := 2 * math.Pi / float64(v.sr)
	for i := range samples {
		v.freq += (tf - v.freq) * parameter.VoiceGlide
		v.pan += (tp - v.pan) * parameter.VoiceGlide
		v.gain += (tg - v.gain) * parameter.VoiceGlide

		v.phase = math.Mod(v.phase+step*v.freq, 2*math.Pi)
		v.fifth = math.Mod(v.fifth+step*v.freq*1.5, 2*math.Pi)
		s := v.gain * (0.7*math.Sin(v.phase) + 0.3*math.Sin(v.fifth))

		// Equal-power pan
		a := (v.pan + 1) * math.Pi / 4
		samples[i][0] = s * math.Cos(a)
		samples[i][1] = s * math.Sin(a)
	}
	return len(samples), true
}

func (v *Voice) Err() error {
	return nil
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
