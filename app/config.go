// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/loomkit/loom/op/paint"
	"github.com/loomkit/loom/unit"
	"github.com/pelletier/go-toml/v2"
)

// Config describes a window and the services of its frames.
type Config struct {
	Window WindowConfig `toml:"window"`
	Atlas  AtlasConfig  `toml:"atlas"`
	Log    LogConfig    `toml:"log"`
	// Threaded runs the widget passes on their own goroutine.
	Threaded bool `toml:"threaded"`
	// Uploader receives images made resident by layout.
	Uploader paint.Uploader `toml:"-"`
}

type WindowConfig struct {
	Title string `toml:"title"`
	// Width and Height are in dp.
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
	// Scale is the number of pixels per dp.
	Scale float32 `toml:"scale"`
	// FontScale is the number of pixels per sp, relative to Scale.
	FontScale float32 `toml:"font_scale"`
}

// AtlasConfig sizes the glyph atlas, in pixels. The atlas starts at
// Width by Height and grows up to MaxHeight.
type AtlasConfig struct {
	Width     int `toml:"width"`
	Height    int `toml:"height"`
	MaxHeight int `toml:"max_height"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error or off.
	Level string `toml:"level"`
}

// Option adjusts a Config.
type Option func(cnf *Config)

// DefaultConfig returns the configuration used for settings missing
// from a configuration file.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     "Loom",
			Width:     800,
			Height:    600,
			Scale:     1,
			FontScale: 1,
		},
		Atlas: AtlasConfig{
			Width:     1024,
			Height:    256,
			MaxHeight: 4096,
		},
		Log:      LogConfig{Level: "off"},
		Threaded: true,
	}
}

// LoadConfig reads the TOML file at path over the defaults. A missing
// file yields the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("app: read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("app: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML data over the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("app: marshal config: %w", err)
	}
	return data, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("invalid window size %vx%v", c.Window.Width, c.Window.Height)
	case c.Window.Scale <= 0:
		return fmt.Errorf("invalid scale %v", c.Window.Scale)
	case c.Window.FontScale <= 0:
		return fmt.Errorf("invalid font scale %v", c.Window.FontScale)
	case c.Atlas.Width <= 0 || c.Atlas.Height <= 0:
		return fmt.Errorf("invalid atlas size %dx%d", c.Atlas.Width, c.Atlas.Height)
	case c.Atlas.MaxHeight < c.Atlas.Height:
		return fmt.Errorf("atlas max height %d below height %d", c.Atlas.MaxHeight, c.Atlas.Height)
	}
	if _, _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Metric returns the unit metric of the configured scale.
func (c Config) Metric() unit.Metric {
	return unit.Metric{
		PxPerDp: c.Window.Scale,
		PxPerSp: c.Window.Scale * c.Window.FontScale,
	}
}

// Title sets the title of the window.
func Title(t string) Option {
	return func(cnf *Config) {
		cnf.Window.Title = t
	}
}

// Size sets the size of the window in dp.
func Size(w, h float32) Option {
	if w <= 0 {
		panic("width must be larger than 0")
	}
	if h <= 0 {
		panic("height must be larger than 0")
	}
	return func(cnf *Config) {
		cnf.Window.Width = w
		cnf.Window.Height = h
	}
}

// Scale sets the number of pixels per dp.
func Scale(s float32) Option {
	return func(cnf *Config) {
		cnf.Window.Scale = s
	}
}

// WithUploader sets the uploader of the image registry.
func WithUploader(u paint.Uploader) Option {
	return func(cnf *Config) {
		cnf.Uploader = u
	}
}

// Threaded selects between the threaded and the single goroutine
// pipeline.
func Threaded(enable bool) Option {
	return func(cnf *Config) {
		cnf.Threaded = enable
	}
}

// parseLevel maps a level name to a slog level. off reports false.
func parseLevel(s string) (slog.Level, bool, error) {
	switch strings.ToLower(s) {
	case "", "off":
		return 0, false, nil
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	}
	return 0, false, fmt.Errorf("unknown log level %q", s)
}
