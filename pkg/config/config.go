// Package config loads the service configuration from YAML over a set of
// working defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dodalovic/mandelbrot/pkg/fractal"
	"github.com/dodalovic/mandelbrot/pkg/view"
)

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Render RenderConfig `yaml:"render"`
	View   ViewConfig   `yaml:"view"`
}

// ServerConfig bounds what the HTTP server will accept.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	MaxWidth      int    `yaml:"max_width"`
	MaxHeight     int    `yaml:"max_height"`
	MaxIterations int    `yaml:"max_iterations"`
}

// RenderConfig holds default render parameters.
type RenderConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Iterations int    `yaml:"iterations"`
	Palette    string `yaml:"palette"`
	Workers    int    `yaml:"workers"` // 0 means one per CPU
	SubSamples int    `yaml:"subsamples"`
}

// ViewConfig is the default region of the complex plane.
type ViewConfig struct {
	Top    float64 `yaml:"top"`
	Left   float64 `yaml:"left"`
	Bottom float64 `yaml:"bottom"`
	Right  float64 `yaml:"right"`
}

// Default returns the configuration used when no file overrides it. The
// default view is the canonical full-set framing.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:          "localhost:8000",
			MaxWidth:      4096,
			MaxHeight:     4096,
			MaxIterations: 20000,
		},
		Render: RenderConfig{
			Width:      1024,
			Height:     768,
			Iterations: 1000,
			Palette:    "classic",
			SubSamples: 1,
		},
		View: ViewConfig{
			Top:    1.2,
			Left:   -2.1,
			Bottom: -1.2,
			Right:  1.1,
		},
	}
}

// Load reads a YAML file over the defaults. Absent keys keep their
// default values; the merged result is validated before being returned.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", fractal.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the merged configuration.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", fractal.ErrInvalidConfig)
	}
	for _, e := range []struct {
		name string
		val  int
	}{
		{"server.max_width", c.Server.MaxWidth},
		{"server.max_height", c.Server.MaxHeight},
		{"server.max_iterations", c.Server.MaxIterations},
		{"render.width", c.Render.Width},
		{"render.height", c.Render.Height},
		{"render.iterations", c.Render.Iterations},
	} {
		if e.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", fractal.ErrInvalidConfig, e.name, e.val)
		}
	}
	if c.Render.Width > c.Server.MaxWidth || c.Render.Height > c.Server.MaxHeight {
		return fmt.Errorf("%w: default render size exceeds server limits", fractal.ErrInvalidConfig)
	}
	if _, err := c.Viewport(); err != nil {
		return fmt.Errorf("%w: view: %v", fractal.ErrInvalidConfig, err)
	}
	return nil
}

// Viewport returns the configured default view.
func (c Config) Viewport() (view.Viewport, error) {
	return view.NewViewport(c.View.Top, c.View.Left, c.View.Bottom, c.View.Right)
}
