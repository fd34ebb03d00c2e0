package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Records.Backend != "json" {
		t.Errorf("backend = %q, want json", cfg.Records.Backend)
	}
	if cfg.Gesture.Threshold != 50 {
		t.Errorf("threshold = %v, want 50", cfg.Gesture.Threshold)
	}
	if cfg.GPS.Warmup != 10*time.Second || cfg.GPS.MaxAccuracy != 5.5 {
		t.Errorf("gps = %+v", cfg.GPS)
	}
	if cfg.Transition.Duration != time.Second {
		t.Errorf("transition = %v, want 1s", cfg.Transition.Duration)
	}
	if cfg.Window.FPS != 30 || cfg.DataDir == "" {
		t.Errorf("window = %+v data_dir = %q", cfg.Window, cfg.DataDir)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panther.yaml")
	data := []byte("log_level: debug\nrecords:\n  backend: sqlite\nwindow:\n  width: 400\ngps:\n  warmup: 3s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PANTHER_WINDOW_HEIGHT", "700")
	t.Setenv("PANTHER_DATA_DIR", dir)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Records.Backend != "sqlite" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Window.Width != 400 || cfg.Window.Height != 700 {
		t.Errorf("window = %+v, want 400x700", cfg.Window)
	}
	if cfg.GPS.Warmup != 3*time.Second {
		t.Errorf("warmup = %v, want 3s", cfg.GPS.Warmup)
	}
	if cfg.DataDir != dir {
		t.Errorf("data_dir = %q, want %q", cfg.DataDir, dir)
	}
}

func TestLoadFindsFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	if err := os.WriteFile(filepath.Join(dir, "panther.yaml"), []byte("window:\n  fps: 60\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.FPS != 60 {
		t.Errorf("fps = %d, want 60", cfg.Window.FPS)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	base, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"backend", func(c *Config) { c.Records.Backend = "csv" }},
		{"width", func(c *Config) { c.Window.Width = 0 }},
		{"fps", func(c *Config) { c.Window.FPS = -1 }},
		{"threshold", func(c *Config) { c.Gesture.Threshold = 0 }},
		{"warmup", func(c *Config) { c.GPS.Warmup = -time.Second }},
		{"accuracy", func(c *Config) { c.GPS.MaxAccuracy = 0 }},
		{"data dir", func(c *Config) { c.DataDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate = %v, want ErrInvalid", err)
			}
		})
	}
	if err := base.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}
