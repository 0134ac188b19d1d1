package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/stonerview/logging"
	"github.com/lixenwraith/stonerview/parameter"
	"github.com/lixenwraith/stonerview/render"
)

// ErrInvalid reports a preference outside its allowed range
var ErrInvalid = errors.New("config: invalid preference")

// ShapeRandom lets each element's selector choose its shape
const ShapeRandom = "random"

// Preferences are the user settings persisted between runs
type Preferences struct {
	Speed        float64 `yaml:"speed"`
	Transparency float64 `yaml:"transparency"`
	Wireframe    bool    `yaml:"wireframe"`
	Edges        bool    `yaml:"edges"`
	Shape        string  `yaml:"shape"`
	Preset       string  `yaml:"preset"`
	Seed         uint64  `yaml:"seed"`
	Sound        bool    `yaml:"sound"`
	ShowStatus   bool    `yaml:"show_status"`
	MetricsAddr  string  `yaml:"metrics_addr,omitempty"`
	LogFile      string  `yaml:"log_file,omitempty"`
	LogLevel     string  `yaml:"log_level"`
}

// Default returns the stock preferences
func Default() Preferences {
	return Preferences{
		Speed:        1.0,
		Transparency: parameter.DefaultTransparency,
		Shape:        ShapeRandom,
		Preset:       "stoner",
		Seed:         1,
		ShowStatus:   true,
		LogLevel:     "info",
	}
}

// DefaultPath returns the preferences file under the user config directory
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "stonerview", "config.yaml"), nil
}

// Load reads preferences from path over the defaults
// A missing file yields the defaults; fields absent from the file keep their default
func Load(path string) (Preferences, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating parent directories
func (p Preferences) Save(path string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks every preference range
func (p Preferences) Validate() error {
	if p.Speed < parameter.MinSpeed || p.Speed > parameter.MaxSpeed {
		return fmt.Errorf("%w: speed %v outside [%v,%v]", ErrInvalid, p.Speed, parameter.MinSpeed, parameter.MaxSpeed)
	}
	if p.Transparency < 0 || p.Transparency > 1 {
		return fmt.Errorf("%w: transparency %v outside [0,1]", ErrInvalid, p.Transparency)
	}
	if p.Shape != ShapeRandom && render.ShapeByName(p.Shape) == 0 {
		return fmt.Errorf("%w: shape %q, want %s or one of %s", ErrInvalid, p.Shape, ShapeRandom, strings.Join(render.ShapeNames[:], ", "))
	}
	if strings.TrimSpace(p.Preset) == "" {
		return fmt.Errorf("%w: empty preset", ErrInvalid)
	}
	if _, err := logging.ParseLevel(p.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// RenderOptions maps the display preferences onto renderer options
func (p Preferences) RenderOptions() render.Options {
	return render.Options{
		Wireframe:  p.Wireframe,
		Edges:      p.Edges,
		Shape:      render.ShapeByName(p.Shape),
		ShowStatus: p.ShowStatus,
	}
}
