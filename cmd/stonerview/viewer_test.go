package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/stonerview/config"
	"github.com/lixenwraith/stonerview/logging"
	"github.com/lixenwraith/stonerview/parameter"
	"github.com/lixenwraith/stonerview/preset"
	"github.com/lixenwraith/stonerview/render"
)

type fakePacer struct {
	speed  float64
	paused bool
}

func (f *fakePacer) SetSpeed(s float64) { f.speed = s }
func (f *fakePacer) Paused() bool       { return f.paused }

func (f *fakePacer) TogglePause() bool {
	f.paused = !f.paused
	return f.paused
}

func newTestViewer(t *testing.T) (*viewer, *gridScreen, *fakePacer) {
	t.Helper()
	s := settings{prefs: config.Default()}
	p, err := preset.Builtin("stoner")
	require.NoError(t, err)
	sc, err := newScene(p, s)
	require.NoError(t, err)

	screen := newGridScreen(80, 24)
	r := render.NewTerminalRenderer(screen, render.DefaultCamera(), s.prefs.RenderOptions())
	v := newViewer(s, sc, r, logging.NewNop())
	pacer := &fakePacer{speed: 1}
	v.pacer = pacer
	return v, screen, pacer
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestViewerFrameStepsAndDraws(t *testing.T) {
	v, screen, _ := newTestViewer(t)
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return clock }

	for i := 0; i < 31; i++ {
		require.NoError(t, v.frame(uint64(i+1)))
		clock = clock.Add(parameter.DefaultTickInterval)
	}
	assert.Equal(t, uint64(31), v.scene.mover.Tick())

	st := v.status()
	assert.InDelta(t, 1/parameter.DefaultTickInterval.Seconds(), st.FPS, 0.5)
	assert.Equal(t, "stoner", st.Preset)
	assert.Contains(t, screen.String(), "tick 31")
}

func TestViewerKeys(t *testing.T) {
	v, _, pacer := newTestViewer(t)

	assert.Equal(t, actionRedraw, v.handleKey(runeKey('w')))
	assert.True(t, v.renderer.Options().Wireframe)
	assert.True(t, v.settings.prefs.Wireframe)

	v.handleKey(runeKey('e'))
	assert.True(t, v.renderer.Options().Edges)

	v.handleKey(runeKey('s'))
	assert.Equal(t, 1, v.renderer.Options().Shape)
	assert.Equal(t, "quads", v.settings.prefs.Shape)
	for i := 0; i < parameter.NumShapes; i++ {
		v.handleKey(runeKey('s'))
	}
	assert.Equal(t, 0, v.renderer.Options().Shape)
	assert.Equal(t, config.ShapeRandom, v.settings.prefs.Shape)

	v.handleKey(runeKey('+'))
	assert.InDelta(t, 1.1, pacer.speed, 1e-9)
	for i := 0; i < 100; i++ {
		v.handleKey(runeKey('-'))
	}
	assert.InDelta(t, parameter.MinSpeed, pacer.speed, 1e-9)

	v.handleKey(runeKey('z'))
	assert.InDelta(t, 0.95, v.settings.prefs.Transparency, 1e-9)
	assert.InDelta(t, 0.95, v.scene.mover.Transparency(), 1e-6)

	v.handleKey(runeKey(' '))
	assert.True(t, pacer.paused)
	assert.True(t, v.status().Paused)
	assert.Equal(t, "paused", v.status().Message)

	before := v.renderer.Camera()
	v.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Equal(t, before.RotZ-parameter.CameraRotStep, v.renderer.Camera().RotZ)
	v.handleKey(runeKey('r'))
	assert.Equal(t, render.DefaultCamera(), v.renderer.Camera())

	assert.Equal(t, actionNone, v.handleKey(runeKey('?')))
	assert.Equal(t, actionQuit, v.handleKey(runeKey('q')))
	assert.Equal(t, actionQuit, v.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestViewerSoundUnavailable(t *testing.T) {
	v, _, _ := newTestViewer(t)
	v.handleKey(runeKey('m'))
	assert.Equal(t, "sound unavailable", v.status().Message)
	assert.False(t, v.status().Sound)
}

func TestViewerMessageExpires(t *testing.T) {
	v, _, _ := newTestViewer(t)
	clock := time.Now()
	v.now = func() time.Time { return clock }

	v.handleKey(runeKey('w'))
	assert.Equal(t, "wireframe on", v.status().Message)
	clock = clock.Add(parameter.StatusMessageTimeout)
	assert.Empty(t, v.status().Message)
}

func TestViewerNextPreset(t *testing.T) {
	v, _, _ := newTestViewer(t)
	names := preset.Names()

	seen := []string{v.scene.preset.Name}
	for range names {
		v.handleKey(runeKey('p'))
		seen = append(seen, v.scene.preset.Name)
	}
	assert.Equal(t, seen[0], seen[len(seen)-1], "cycling wraps around")
	assert.ElementsMatch(t, names, seen[:len(names)])
	assert.Equal(t, v.scene.preset.Name, v.settings.prefs.Preset)
}

func TestViewerSavePreferences(t *testing.T) {
	v, _, _ := newTestViewer(t)
	v.settings.path = t.TempDir() + "/config.yaml"

	v.handleKey(runeKey('w'))
	v.handleKey(runeKey('x'))
	assert.Equal(t, "saved", v.status().Message)

	prefs, err := config.Load(v.settings.path)
	require.NoError(t, err)
	assert.True(t, prefs.Wireframe)

	v.settings.path = ""
	v.handleKey(runeKey('x'))
	assert.Equal(t, "no config path", v.status().Message)
}
