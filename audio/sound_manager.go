package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/stonerview/parameter"
)

// SampleRate is the output rate voices are created for
const SampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager owns the speaker and the voice playing through it
// Every method is safe before Initialize or after a failed one; sound is then silently off
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	voice       *Voice
	initialized bool
}

// NewSoundManager creates a manager with no voice attached
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker, repeated calls are no-ops
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether the speaker is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Attach starts v through the mixer, replacing any previous voice
// The voice starts muted or audible per enabled
func (sm *SoundManager) Attach(v *Voice, enabled bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.voice = v
	sm.volume = &effects.Volume{Streamer: v, Base: 2, Volume: 0}
	sm.ctrl = &beep.Ctrl{Streamer: sm.volume, Paused: !enabled}

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	sm.mixer.Add(sm.ctrl)
	speaker.Unlock()
}

// Voice returns the attached voice, nil when none
func (sm *SoundManager) Voice() *Voice {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.voice
}

// Enabled reports whether the attached voice is audible
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.ctrl != nil && !sm.paused()
}

// SetEnabled mutes or unmutes the attached voice
func (sm *SoundManager) SetEnabled(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.ctrl == nil {
		return
	}
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.ctrl.Paused = !on
}

// Toggle flips mute and reports whether sound is now on
func (sm *SoundManager) Toggle() bool {
	on := !sm.Enabled()
	sm.SetEnabled(on)
	return sm.Enabled()
}

// SetVolume sets the master level in halvings relative to the voice gain, 0 is unchanged and -1 is half
func (sm *SoundManager) SetVolume(halvings float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.volume == nil {
		return
	}
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.volume.Volume = halvings
}

// Cleanup stops all sound
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.ctrl != nil {
		sm.ctrl.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

func (sm *SoundManager) paused() bool {
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return sm.ctrl.Paused
}
