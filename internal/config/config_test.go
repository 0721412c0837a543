package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Viewer.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Viewer.Height)
	}
	if cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}
	if !cfg.Viewer.ShowBounds {
		t.Error("expected bounds to be shown by default")
	}
	if cfg.Scene.Path != "scene.yaml" {
		t.Errorf("expected scene path scene.yaml, got %s", cfg.Scene.Path)
	}
	if cfg.Derive.Workers != 0 {
		t.Errorf("expected 0 workers, got %d", cfg.Derive.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
viewer:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fov: 60
  background: [0, 0, 0]
  lead_color: [1, 0.5, 0]
  show_bounds: false
  offset_step: 0.25

scene:
  path: "rigs/hand.yaml"

derive:
  workers: 4

logging:
  level: "debug"
  log_file: "proxy.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Viewer.Width != 1920 || cfg.Viewer.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if !cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Viewer.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Viewer.FOV != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Viewer.FOV)
	}
	if cfg.Viewer.LeadColor != [3]float32{1, 0.5, 0} {
		t.Errorf("unexpected lead color %v", cfg.Viewer.LeadColor)
	}
	if cfg.Viewer.ShowBounds {
		t.Error("expected show_bounds to be false")
	}
	if cfg.Viewer.OffsetStep != 0.25 {
		t.Errorf("expected offset step 0.25, got %f", cfg.Viewer.OffsetStep)
	}
	if cfg.Scene.Path != "rigs/hand.yaml" {
		t.Errorf("expected scene rigs/hand.yaml, got %s", cfg.Scene.Path)
	}
	if cfg.Derive.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Derive.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "proxy.log" {
		t.Errorf("expected log file 'proxy.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "viewer:\n  width: not a number\n  invalid syntax here\n"},
		{"zero width", "viewer:\n  width: 0\n"},
		{"fov too wide", "viewer:\n  fov: 190\n"},
		{"negative workers", "derive:\n  workers: -2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tool.yaml")
	if err := os.WriteFile(path, []byte("derive:\n  workers: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Derive.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Derive.Workers)
	}
	if cfg.Viewer.Width != 1280 {
		t.Errorf("unset fields should keep defaults, got width %d", cfg.Viewer.Width)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("expected error naming the file, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Viewer.Width = 800
	cfg.Scene.Path = "shapes.yaml"
	cfg.Viewer.Background = [3]float32{0.1, 0.2, 0.3}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *loaded, *cfg)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "controlshape.yaml")
	if err := os.WriteFile(configPath, []byte("viewer:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find controlshape.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "scene flag",
			setup: func() {
				*flagScene = "other.yaml"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Path != "other.yaml" {
					t.Errorf("expected scene other.yaml, got %s", cfg.Scene.Path)
				}
			},
			teardown: func() {
				*flagScene = ""
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Viewer.Width)
				}
				if cfg.Viewer.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Viewer.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "no-bounds flag",
			setup: func() {
				*flagNoBounds = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.ShowBounds {
					t.Error("expected bounds hidden with no-bounds flag")
				}
			},
			teardown: func() {
				*flagNoBounds = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
viewer:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag beats file
	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Viewer.Width)
	}
	// File beats default
	if cfg.Viewer.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Viewer.Height)
	}
}
