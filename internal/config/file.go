package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration of the screensaver.
type File struct {
	Settings      Settings            `yaml:"settings"`
	Fx            map[string]bool     `yaml:"fx"`
	Mode          string              `yaml:"mode"`
	Audio         AudioConfig         `yaml:"audio"`
	Window        WindowConfig        `yaml:"window"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// AudioConfig holds drone settings.
type AudioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Volume   float64 `yaml:"volume"`
	Ambience string  `yaml:"ambience"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Fullscreen bool `yaml:"fullscreen"`
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	MetricsAddress string `yaml:"metrics_address"`
}

func Default() *File {
	return &File{
		Settings: DefaultSettings(),
		Fx:       map[string]bool{},
		Mode:     "orbs",
		Audio: AudioConfig{
			Enabled: true,
			Volume:  DefaultVolume,
		},
		Window: WindowConfig{
			Fullscreen: true,
			Width:      WindowWidth,
			Height:     WindowHeight,
		},
		Observability: ObservabilityConfig{
			LogLevel: "info",
		},
	}
}

// DefaultPath is settings.yaml under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "etherwall.yaml"
	}
	return filepath.Join(dir, "etherwall", "settings.yaml")
}

// Load reads the configuration file. A missing file is not an error: the
// defaults are used. Environment variables override both.
func Load(filename string) (*File, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnv(cfg)
	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration, creating the parent directory if needed.
func Save(filename string, cfg *File) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyEnv(cfg *File) {
	if v := os.Getenv("ETHERWALL_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("ETHERWALL_ANIMATION_SPEED"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Settings.AnimationSpeed = f
		}
	}
	if v := os.Getenv("ETHERWALL_ORB_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Settings.OrbCount = n
		}
	}
	if v := os.Getenv("ETHERWALL_ORB_OPACITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Settings.OrbOpacity = f
		}
	}
	if v := os.Getenv("ETHERWALL_COLOR_THEME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Settings.ColorTheme = n
		}
	}
	if v := os.Getenv("ETHERWALL_VOLUME"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Audio.Volume = f
		}
	}
	if v := os.Getenv("ETHERWALL_METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ETHERWALL_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
}

func (f *File) normalize() {
	f.Settings = f.Settings.Clamped()
	if f.Fx == nil {
		f.Fx = map[string]bool{}
	}
	if f.Audio.Volume < 0 {
		f.Audio.Volume = 0
	}
	if f.Audio.Volume > 1 {
		f.Audio.Volume = 1
	}
	if f.Window.Width <= 0 {
		f.Window.Width = WindowWidth
	}
	if f.Window.Height <= 0 {
		f.Window.Height = WindowHeight
	}
}
