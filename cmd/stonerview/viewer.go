package main

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stonerview/audio"
	"github.com/lixenwraith/stonerview/config"
	"github.com/lixenwraith/stonerview/metrics"
	"github.com/lixenwraith/stonerview/parameter"
	"github.com/lixenwraith/stonerview/preset"
	"github.com/lixenwraith/stonerview/render"
)

// pacer is the part of the frame scheduler the viewer steers
type pacer interface {
	SetSpeed(speed float64)
	TogglePause() bool
	Paused() bool
}

// action tells the run loop what a key asked for
type action int

const (
	actionNone action = iota
	actionRedraw
	actionQuit
)

// viewer owns the scene and renderer and applies both frames and key presses
// Frames arrive on the scheduler goroutine and keys on the input goroutine, mu serializes them
type viewer struct {
	mu       sync.Mutex
	settings settings
	scene    *scene
	renderer *render.TerminalRenderer
	pacer    pacer
	sound    *audio.SoundManager
	voice    *audio.Voice
	metrics  *metrics.Collector
	logger   *slog.Logger
	now      func() time.Time

	frameTimes []time.Time
	message    string
	messageAt  time.Time
}

func newViewer(s settings, sc *scene, r *render.TerminalRenderer, logger *slog.Logger) *viewer {
	return &viewer{
		settings: s,
		scene:    sc,
		renderer: r,
		logger:   logger,
		now:      time.Now,
	}
}

// frame steps the scene one tick and draws it, it is the scheduler's step function
func (v *viewer) frame(uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.scene.mover.Step(); err != nil {
		return err
	}
	elems := v.scene.mover.Elems()
	if v.voice != nil {
		v.voice.Update(elems)
	}

	now := v.now()
	v.frameTimes = append(v.frameTimes, now)
	cut := 0
	for cut < len(v.frameTimes) && now.Sub(v.frameTimes[cut]) > parameter.FPSWindow {
		cut++
	}
	v.frameTimes = v.frameTimes[cut:]

	v.draw()
	return nil
}

// redraw repaints the current tick without stepping
func (v *viewer) redraw() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draw()
}

func (v *viewer) draw() {
	v.renderer.RenderFrame(v.scene.mover.Elems(), v.status())
}

func (v *viewer) status() render.Status {
	st := render.Status{
		Tick:   v.scene.mover.Tick(),
		Preset: v.scene.preset.Name,
		Sound:  v.sound != nil && v.sound.Enabled(),
	}
	if v.pacer != nil {
		st.Paused = v.pacer.Paused()
	}
	if n := len(v.frameTimes); n > 1 {
		span := v.frameTimes[n-1].Sub(v.frameTimes[0])
		if span > 0 {
			st.FPS = float64(n-1) / span.Seconds()
		}
	}
	if v.message != "" && v.now().Sub(v.messageAt) < parameter.StatusMessageTimeout {
		st.Message = v.message
	}
	return st
}

func (v *viewer) notify(format string, args ...any) {
	v.message = fmt.Sprintf(format, args...)
	v.messageAt = v.now()
	v.logger.Debug("control", "message", v.message)
}

// handleKey applies one key press
func (v *viewer) handleKey(ev *tcell.EventKey) action {
	v.mu.Lock()
	defer v.mu.Unlock()

	prefs := &v.settings.prefs
	cam := v.renderer.Camera()
	opts := v.renderer.Options()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyUp:
		v.renderer.SetCamera(cam.Orbit(-parameter.CameraRotStep, 0))
		return v.redrawLocked()
	case tcell.KeyDown:
		v.renderer.SetCamera(cam.Orbit(parameter.CameraRotStep, 0))
		return v.redrawLocked()
	case tcell.KeyLeft:
		v.renderer.SetCamera(cam.Orbit(0, -parameter.CameraRotStep))
		return v.redrawLocked()
	case tcell.KeyRight:
		v.renderer.SetCamera(cam.Orbit(0, parameter.CameraRotStep))
		return v.redrawLocked()
	case tcell.KeyRune:
	default:
		return actionNone
	}

	switch ev.Rune() {
	case 'q':
		return actionQuit
	case ' ':
		if v.pacer != nil {
			if v.pacer.TogglePause() {
				v.notify("paused")
			} else {
				v.notify("resumed")
			}
		}
	case 'r':
		v.renderer.SetCamera(render.DefaultCamera())
		v.notify("camera reset")
	case 'w':
		prefs.Wireframe = !prefs.Wireframe
		opts.Wireframe = prefs.Wireframe
		v.notify("wireframe %s", onOff(prefs.Wireframe))
	case 'e':
		prefs.Edges = !prefs.Edges
		opts.Edges = prefs.Edges
		v.notify("edges %s", onOff(prefs.Edges))
	case 's':
		opts.Shape = (opts.Shape + 1) % (parameter.NumShapes + 1)
		prefs.Shape = shapeName(opts.Shape)
		v.notify("shape %s", prefs.Shape)
	case 'i':
		prefs.ShowStatus = !prefs.ShowStatus
		opts.ShowStatus = prefs.ShowStatus
	case '+', '=':
		v.setSpeed(prefs.Speed + parameter.SpeedStep)
	case '-', '_':
		v.setSpeed(prefs.Speed - parameter.SpeedStep)
	case 'a':
		v.setTransparency(prefs.Transparency + parameter.TransparencyStep)
	case 'z':
		v.setTransparency(prefs.Transparency - parameter.TransparencyStep)
	case 'm':
		if v.sound == nil || !v.sound.Initialized() {
			v.notify("sound unavailable")
			break
		}
		prefs.Sound = v.sound.Toggle()
		v.notify("sound %s", onOff(prefs.Sound))
	case 'p':
		v.nextPreset()
	case 'x':
		v.savePreferences()
	default:
		return actionNone
	}

	v.renderer.SetOptions(opts)
	return v.redrawLocked()
}

func (v *viewer) redrawLocked() action {
	v.draw()
	return actionRedraw
}

func (v *viewer) setSpeed(speed float64) {
	speed = min(max(speed, parameter.MinSpeed), parameter.MaxSpeed)
	// Keep one decimal so repeated steps land on round values
	speed = float64(int(speed*10+0.5)) / 10
	v.settings.prefs.Speed = speed
	if v.pacer != nil {
		v.pacer.SetSpeed(speed)
	}
	v.notify("speed %.1fx", speed)
}

func (v *viewer) setTransparency(alpha float64) {
	alpha = min(max(alpha, 0), 1)
	alpha = float64(int(alpha*100+0.5)) / 100
	v.settings.prefs.Transparency = alpha
	v.scene.mover.SetTransparency(float32(alpha))
	v.notify("alpha %.2f", alpha)
}

// nextPreset switches to the bundled preset after the current one
func (v *viewer) nextPreset() {
	names := preset.Names()
	next := names[0]
	for i, n := range names {
		if n == v.scene.preset.Name {
			next = names[(i+1)%len(names)]
			break
		}
	}

	p, err := preset.Builtin(next)
	if err != nil {
		v.notify("preset %s: %v", next, err)
		return
	}
	sc, err := newScene(p, v.settings)
	if err != nil {
		v.logger.Error("preset switch failed", "preset", next, "error", err)
		v.notify("preset %s failed", next)
		return
	}
	v.scene = sc
	v.settings.prefs.Preset = next
	if v.metrics != nil {
		v.metrics.SetGraphShape(kindCounts(sc.ctx))
	}
	v.logger.Info("preset switched", "preset", next, "nodes", sc.ctx.Len(), "seed", sc.seed)
	v.notify("preset %s", next)
}

func (v *viewer) savePreferences() {
	if v.settings.path == "" {
		v.notify("no config path")
		return
	}
	if err := v.settings.prefs.Save(v.settings.path); err != nil {
		v.logger.Error("save preferences failed", "path", v.settings.path, "error", err)
		v.notify("save failed")
		return
	}
	v.logger.Info("preferences saved", "path", v.settings.path)
	v.notify("saved")
}

func shapeName(opt int) string {
	if opt <= 0 || opt > parameter.NumShapes {
		return config.ShapeRandom
	}
	return render.ShapeNames[opt-1]
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
