package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/stonerview/audio"
	"github.com/lixenwraith/stonerview/core"
	"github.com/lixenwraith/stonerview/engine"
	"github.com/lixenwraith/stonerview/logging"
	"github.com/lixenwraith/stonerview/metrics"
	"github.com/lixenwraith/stonerview/parameter"
	"github.com/lixenwraith/stonerview/render"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the animation in the terminal",
	Long: `Runs the animation full screen until q or Esc.

Keys: space pause, arrows orbit the camera, r reset camera, w wireframe, e edges,
s cycle shape, +/- speed, a/z transparency, m sound, p next preset, i status line,
x save preferences.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		return runInteractive(cmd.Context(), s)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Float64("transparency", 0, "Element alpha in [0,1]")
	runCmd.Flags().Bool("wireframe", false, "Draw outline glyphs only")
	runCmd.Flags().Bool("edges", false, "Shade the cell behind each element")
	runCmd.Flags().String("shape", "", "Force one shape (quads, triangles, hexagons, discs, spheres, cubes, cones, torus) or random")
	runCmd.Flags().Bool("sound", false, "Play the altitude-following drone")
	runCmd.Flags().Bool("status", true, "Show the status line")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. 127.0.0.1:9100")
	runCmd.Flags().String("log-file", "", "Log file (default: user cache dir/stonerview/stonerview.log)")

	// Run is the default when no command is given
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}

// defaultLogPath places the log under the user cache directory
func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "stonerview", "stonerview.log")
}

func runInteractive(parent context.Context, s settings) error {
	if parent == nil {
		parent = context.Background()
	}

	logPath := s.prefs.LogFile
	if logPath == "" {
		logPath = defaultLogPath()
	}
	logger, logCloser, err := logging.NewFile(logPath, s.level)
	if err != nil {
		logger, logCloser = logging.NewNop(), io.NopCloser(nil)
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}
	defer logCloser.Close()

	sc, err := loadScene(s)
	if err != nil {
		return err
	}
	logger.Info("scene built", "preset", sc.preset.Name, "seed", sc.seed, "nodes", sc.ctx.Len(), "kinds", kindSummary(sc.ctx))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	core.SetCrashScreen(screen)
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	renderer := render.NewTerminalRenderer(screen, render.DefaultCamera(), s.prefs.RenderOptions())
	v := newViewer(s, sc, renderer, logger)

	collector := metrics.NewCollector()
	collector.SetGraphShape(kindCounts(sc.ctx))
	v.metrics = collector
	if s.prefs.MetricsAddr != "" {
		core.Go(func() {
			if err := metrics.Serve(ctx, s.prefs.MetricsAddr, collector, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		})
	}

	if s.prefs.Sound {
		v.sound, v.voice = startSound(logger)
		if v.sound != nil {
			defer v.sound.Cleanup()
		}
	}

	observer := engine.ObserverFunc(func(st engine.FrameStats) {
		collector.ObserveFrame(st)
		if st.Late {
			logger.Debug("late frame", "tick", st.Tick, "duration", st.Duration, "skipped", st.Skipped)
		}
	})
	sched := engine.NewFrameScheduler(
		engine.NewPausableClock(nil),
		parameter.TickInterval(s.prefs.Speed),
		v.frame,
		engine.WithObserver(observer),
		engine.WithLogger(logger),
	)
	v.pacer = sched
	v.redraw()

	events := make(chan tcell.Event, 16)
	core.Go(func() { pumpEvents(ctx, screen, events) })

	schedErr := make(chan error, 1)
	core.Go(func() { schedErr <- sched.Run(ctx) })

	for {
		select {
		case err := <-schedErr:
			if err != nil {
				logger.Error("animation stopped", "error", err)
			}
			return err
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if v.handleKey(ev) == actionQuit {
					cancel()
					<-schedErr
					logger.Info("quit", "ticks", sched.Ticks())
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				v.redraw()
			}
		case <-ctx.Done():
			<-schedErr
			return nil
		}
	}
}

// pumpEvents forwards terminal events until ctx ends or the screen closes
func pumpEvents(ctx context.Context, screen tcell.Screen, out chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// startSound opens the speaker and attaches a voice, nil results mean sound is unavailable
func startSound(logger *slog.Logger) (*audio.SoundManager, *audio.Voice) {
	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		logger.Warn("sound unavailable, continuing without audio", "error", err)
		return nil, nil
	}
	voice := audio.NewVoice(audio.SampleRate)
	sm.Attach(voice, true)
	return sm, voice
}
