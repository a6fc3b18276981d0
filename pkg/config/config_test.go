package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dodalovic/mandelbrot/pkg/fractal"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadOverridesKeepDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Overridden keys.
	if cfg.Server.Addr != "0.0.0.0:9090" {
		t.Errorf("addr = %q, want 0.0.0.0:9090", cfg.Server.Addr)
	}
	if cfg.Server.MaxIterations != 5000 {
		t.Errorf("max_iterations = %d, want 5000", cfg.Server.MaxIterations)
	}
	if cfg.Render.Width != 800 || cfg.Render.Height != 600 {
		t.Errorf("render size = %dx%d, want 800x600", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.Palette != "fire" {
		t.Errorf("palette = %q, want fire", cfg.Render.Palette)
	}
	if cfg.View.Top != 0.3 || cfg.View.Right != -0.6 {
		t.Errorf("view = %+v, want the file's region", cfg.View)
	}

	// Absent keys keep their defaults.
	def := Default()
	if cfg.Server.MaxWidth != def.Server.MaxWidth {
		t.Errorf("max_width = %d, want default %d", cfg.Server.MaxWidth, def.Server.MaxWidth)
	}
	if cfg.Render.Iterations != def.Render.Iterations {
		t.Errorf("iterations = %d, want default %d", cfg.Render.Iterations, def.Render.Iterations)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "does_not_exist.yaml"))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "config_invalid.yaml"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, fractal.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadInvertedView(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "config_bad_view.yaml"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, fractal.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidateRejectsOversizedDefaults(t *testing.T) {
	cfg := Default()
	cfg.Render.Width = cfg.Server.MaxWidth + 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when defaults exceed server limits")
	}
}

func TestViewport(t *testing.T) {
	vp, err := Default().Viewport()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vp.Top <= vp.Bottom || vp.Right <= vp.Left {
		t.Fatalf("default viewport degenerate: %+v", vp)
	}
}
