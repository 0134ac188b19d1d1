package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("speed: 2.5\nwireframe: true\nshape: cubes\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, p.Speed)
	assert.True(t, p.Wireframe)
	assert.Equal(t, "cubes", p.Shape)
	assert.Equal(t, "stoner", p.Preset)
	assert.Equal(t, uint64(1), p.Seed)

	opts := p.RenderOptions()
	assert.True(t, opts.Wireframe)
	assert.Equal(t, 6, opts.Shape)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	p := Default()
	p.Speed = 0.5
	p.Transparency = 0.4
	p.Edges = true
	p.Shape = "torus"
	p.Preset = "spiral"
	p.Seed = 99
	p.Sound = true
	p.MetricsAddr = "127.0.0.1:9100"

	require.NoError(t, p.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Preferences)
	}{
		{"speed too low", func(p *Preferences) { p.Speed = 0 }},
		{"speed too high", func(p *Preferences) { p.Speed = 10 }},
		{"negative transparency", func(p *Preferences) { p.Transparency = -0.1 }},
		{"opaque beyond one", func(p *Preferences) { p.Transparency = 1.5 }},
		{"unknown shape", func(p *Preferences) { p.Shape = "stars" }},
		{"empty preset", func(p *Preferences) { p.Preset = "  " }},
		{"bad log level", func(p *Preferences) { p.LogLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalid)
			assert.ErrorIs(t, p.Save(filepath.Join(t.TempDir(), "c.yaml")), ErrInvalid)
		})
	}
}

func TestLoadRejectsBadFile(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("speed: [fast\n"), 0o644))
	_, err := Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("transparency: 3\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "stonerview", filepath.Base(filepath.Dir(path)))
}
