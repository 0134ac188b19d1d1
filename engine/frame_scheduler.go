package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/stonerview/parameter"
)

// ErrAlreadyRunning is returned by Run when the scheduler loop is active
var ErrAlreadyRunning = errors.New("engine: scheduler already running")

// StepFunc runs one frame; tick counts frames from 1
type StepFunc func(tick uint64) error

// FrameStats describes one completed frame
type FrameStats struct {
	Tick     uint64
	Duration time.Duration // wall time spent in the step
	Late     bool          // started a full interval or more after its deadline
	Skipped  bool          // deadline reset because the loop fell too far behind
}

// Observer receives stats after every frame, called on the scheduler goroutine
type Observer interface {
	ObserveFrame(FrameStats)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(FrameStats)

func (f ObserverFunc) ObserveFrame(s FrameStats) { f(s) }

// FrameScheduler steps the animation on a fixed interval of pausable clock time
// Deadlines advance by whole intervals so frame times do not drift with step cost
type FrameScheduler struct {
	clock    *PausableClock
	step     StepFunc
	observer Observer
	logger   *slog.Logger

	mu           sync.Mutex
	interval     time.Duration
	nextDeadline time.Time

	tickCount atomic.Uint64
	running   atomic.Bool
	wake      chan struct{}
}

// SchedulerOption configures a FrameScheduler
type SchedulerOption func(*FrameScheduler)

// WithObserver attaches a per-frame observer
func WithObserver(o Observer) SchedulerOption {
	return func(fs *FrameScheduler) { fs.observer = o }
}

// WithLogger sets the scheduler logger
func WithLogger(l *slog.Logger) SchedulerOption {
	return func(fs *FrameScheduler) { fs.logger = l }
}

// NewFrameScheduler creates a scheduler calling step every interval of clock time
func NewFrameScheduler(clock *PausableClock, interval time.Duration, step StepFunc, opts ...SchedulerOption) *FrameScheduler {
	if interval <= 0 {
		interval = parameter.DefaultTickInterval
	}
	fs := &FrameScheduler{
		clock:    clock,
		step:     step,
		interval: interval,
		wake:     make(chan struct{}, 1),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(fs)
	}
	fs.nextDeadline = clock.Now().Add(interval)
	return fs
}

// Run drives frames until ctx is cancelled or a step fails
// Cancellation is a clean stop and returns nil
func (fs *FrameScheduler) Run(ctx context.Context) error {
	if !fs.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer fs.running.Store(false)

	fs.mu.Lock()
	fs.nextDeadline = fs.clock.Now().Add(fs.interval)
	fs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	fs.logger.Debug("scheduler started", "interval", fs.Interval())

	for {
		select {
		case <-ctx.Done():
			fs.logger.Debug("scheduler stopped", "ticks", fs.Ticks())
			return nil
		default:
		}

		sleep, err := fs.tickIfDue()
		if err != nil {
			return err
		}
		if sleep <= 0 {
			continue
		}

		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-fs.wake:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-ctx.Done():
			fs.logger.Debug("scheduler stopped", "ticks", fs.Ticks())
			return nil
		}
	}
}

// tickIfDue runs at most one frame and returns how long to wait before the next check
func (fs *FrameScheduler) tickIfDue() (time.Duration, error) {
	if fs.clock.IsPaused() {
		return parameter.PausedPollInterval, nil
	}

	now := fs.clock.Now()

	fs.mu.Lock()
	deadline := fs.nextDeadline
	interval := fs.interval
	fs.mu.Unlock()

	if now.Before(deadline) {
		return deadline.Sub(now), nil
	}

	tick := fs.tickCount.Add(1)
	started := fs.clock.RealTime()
	if err := fs.step(tick); err != nil {
		return 0, fmt.Errorf("frame %d: %w", tick, err)
	}
	stats := FrameStats{
		Tick:     tick,
		Duration: fs.clock.RealTime().Sub(started),
		Late:     now.Sub(deadline) >= interval,
	}

	fs.mu.Lock()
	// A deadline change from SetInterval while stepping wins
	if fs.nextDeadline.Equal(deadline) {
		fs.nextDeadline = deadline.Add(interval)
		if now.Sub(fs.nextDeadline) > parameter.MaxFramesBehind*interval {
			fs.nextDeadline = now.Add(interval)
			stats.Skipped = true
		}
	}
	next := fs.nextDeadline
	fs.mu.Unlock()

	if stats.Skipped {
		fs.logger.Debug("frames skipped", "tick", tick, "behind", now.Sub(deadline))
	}
	if fs.observer != nil {
		fs.observer.ObserveFrame(stats)
	}

	return max(next.Sub(fs.clock.Now()), 0), nil
}

// Pause stops frames until Resume
func (fs *FrameScheduler) Pause() {
	fs.clock.Pause()
}

// Resume restarts frames, waking a sleeping loop
func (fs *FrameScheduler) Resume() {
	fs.clock.Resume()
	fs.signal()
}

// TogglePause flips the pause state and reports whether the scheduler is now paused
func (fs *FrameScheduler) TogglePause() bool {
	if fs.clock.IsPaused() {
		fs.Resume()
		return false
	}
	fs.Pause()
	return true
}

// Paused reports whether frames are held
func (fs *FrameScheduler) Paused() bool {
	return fs.clock.IsPaused()
}

// Interval returns the current frame interval
func (fs *FrameScheduler) Interval() time.Duration {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.interval
}

// SetInterval changes the frame interval, the next frame is due one new interval from now
func (fs *FrameScheduler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	fs.mu.Lock()
	fs.interval = d
	fs.nextDeadline = fs.clock.Now().Add(d)
	fs.mu.Unlock()
	fs.signal()
}

// SetSpeed sets the interval from a speed multiplier
func (fs *FrameScheduler) SetSpeed(speed float64) {
	fs.SetInterval(parameter.TickInterval(speed))
}

// Ticks returns the number of frames run
func (fs *FrameScheduler) Ticks() uint64 {
	return fs.tickCount.Load()
}

// Running reports whether Run is active
func (fs *FrameScheduler) Running() bool {
	return fs.running.Load()
}

func (fs *FrameScheduler) signal() {
	select {
	case fs.wake <- struct{}{}:
	default:
	}
}
