// Package config handles tool configuration loading and management.
package config

// Config holds all viewer and tool settings.
type Config struct {
	Viewer  ViewerConfig  `yaml:"viewer"`
	Scene   SceneConfig   `yaml:"scene"`
	Derive  DeriveConfig  `yaml:"derive"`
	Logging LoggingConfig `yaml:"logging"`
}

// ViewerConfig holds display settings for the preview viewer.
type ViewerConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FOV        float32    `yaml:"fov"`        // Vertical field of view in degrees
	Background [3]float32 `yaml:"background"` // Clear color
	LeadColor  [3]float32 `yaml:"lead_color"` // Highlight color of the selected shape
	ShowBounds bool       `yaml:"show_bounds"`
	OffsetStep float64    `yaml:"offset_step"` // Offset change per +/- key press

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// SceneConfig holds the scene to open.
type SceneConfig struct {
	Path string `yaml:"path"`
}

// DeriveConfig holds batch derivation settings.
type DeriveConfig struct {
	Workers int `yaml:"workers"` // 0 means one per CPU
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			Background: [3]float32{0.18, 0.18, 0.2},
			LeadColor:  [3]float32{0.26, 1, 0.64},
			ShowBounds: true,
			OffsetStep: 0.05,

			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			Path: "scene.yaml",
		},
		Derive: DeriveConfig{
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
