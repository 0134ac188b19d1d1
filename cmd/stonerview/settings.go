package main

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/stonerview/config"
	"github.com/lixenwraith/stonerview/logging"
	"github.com/lixenwraith/stonerview/motion"
	"github.com/lixenwraith/stonerview/osc"
	"github.com/lixenwraith/stonerview/preset"
)

// settings are the preferences after flag overrides, plus what they resolve to
type settings struct {
	prefs    config.Preferences
	path     string // preferences file, empty when no config dir is available
	seedFlag bool
	level    slog.Level
}

// loadSettings reads the preferences file and applies every flag the user set
func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Flags()
	s := settings{}

	path, _ := flags.GetString("config")
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	s.path = path

	prefs := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return s, err
		}
		prefs = loaded
	}

	if flags.Changed("preset") {
		prefs.Preset, _ = flags.GetString("preset")
	}
	if flags.Changed("seed") {
		prefs.Seed, _ = flags.GetUint64("seed")
		s.seedFlag = true
	}
	if flags.Changed("speed") {
		prefs.Speed, _ = flags.GetFloat64("speed")
	}
	if flags.Changed("log-level") {
		prefs.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("transparency") {
		prefs.Transparency, _ = flags.GetFloat64("transparency")
	}
	if flags.Changed("wireframe") {
		prefs.Wireframe, _ = flags.GetBool("wireframe")
	}
	if flags.Changed("edges") {
		prefs.Edges, _ = flags.GetBool("edges")
	}
	if flags.Changed("shape") {
		prefs.Shape, _ = flags.GetString("shape")
	}
	if flags.Changed("sound") {
		prefs.Sound, _ = flags.GetBool("sound")
	}
	if flags.Changed("status") {
		prefs.ShowStatus, _ = flags.GetBool("status")
	}
	if flags.Changed("metrics-addr") {
		prefs.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("log-file") {
		prefs.LogFile, _ = flags.GetString("log-file")
	}

	if err := prefs.Validate(); err != nil {
		return s, err
	}
	level, err := logging.ParseLevel(prefs.LogLevel)
	if err != nil {
		return s, err
	}
	s.prefs = prefs
	s.level = level
	return s, nil
}

// scene is one built preset: its oscillator context and the mover over it
type scene struct {
	preset *preset.Preset
	ctx    *osc.Context
	mover  *motion.Mover
	labels preset.Labels
	seed   uint64
}

// newScene builds p into a fresh context
// An explicit seed flag wins, then the preset's own seed, then the preferences seed
func newScene(p *preset.Preset, s settings) (*scene, error) {
	seed := s.prefs.Seed
	if !s.seedFlag && p.Seed != 0 {
		seed = p.Seed
	}

	ctx := osc.NewContext(osc.WithSeed(seed))
	g, labels, err := p.BuildLabeled(ctx)
	if err != nil {
		return nil, err
	}
	m, err := motion.NewMover(ctx, g, motion.WithTransparency(float32(s.prefs.Transparency)))
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", p.Name, err)
	}
	return &scene{preset: p, ctx: ctx, mover: m, labels: labels, seed: seed}, nil
}

// loadScene resolves the preferred preset and builds it
func loadScene(s settings) (*scene, error) {
	p, err := preset.Resolve(s.prefs.Preset)
	if err != nil {
		return nil, err
	}
	return newScene(p, s)
}

// kindCounts tallies the oscillators in ctx by kind name
func kindCounts(ctx *osc.Context) map[string]int {
	counts := make(map[string]int)
	for _, o := range ctx.Nodes() {
		if k, err := ctx.Kind(o); err == nil {
			counts[k.String()]++
		}
	}
	return counts
}

// kindSummary renders kindCounts as "kind=n ..." in name order
func kindSummary(ctx *osc.Context) string {
	counts := kindCounts(ctx)
	out := ""
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", k, counts[k])
	}
	return out
}
