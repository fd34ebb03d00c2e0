// Package config loads panther settings from panther.yaml, PANTHER_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/skygrel/panther/internal/logging"
)

var ErrInvalid = errors.New("invalid configuration")

type RecordsConfig struct {
	Backend string `mapstructure:"backend"`
}

type WindowConfig struct {
	Width      int  `mapstructure:"width"`
	Height     int  `mapstructure:"height"`
	Fullscreen bool `mapstructure:"fullscreen"`
	FPS        int  `mapstructure:"fps"`
}

type GestureConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

type GPSConfig struct {
	Warmup      time.Duration `mapstructure:"warmup"`
	MaxAccuracy float64       `mapstructure:"max_accuracy"`
}

type TransitionConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

type Config struct {
	DataDir    string           `mapstructure:"data_dir"`
	LogLevel   string           `mapstructure:"log_level"`
	Records    RecordsConfig    `mapstructure:"records"`
	Window     WindowConfig     `mapstructure:"window"`
	Gesture    GestureConfig    `mapstructure:"gesture"`
	GPS        GPSConfig        `mapstructure:"gps"`
	Transition TransitionConfig `mapstructure:"transition"`
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".panther"
	}
	return filepath.Join(home, ".local", "share", "panther")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("log_level", "info")
	v.SetDefault("records.backend", "json")
	v.SetDefault("window.width", 540)
	v.SetDefault("window.height", 960)
	v.SetDefault("window.fullscreen", false)
	v.SetDefault("window.fps", 30)
	v.SetDefault("gesture.threshold", 50.0)
	v.SetDefault("gps.warmup", "10s")
	v.SetDefault("gps.max_accuracy", 5.5)
	v.SetDefault("transition.duration", "1s")
}

// Load reads the configuration. An explicit path must exist; otherwise
// panther.yaml is looked up in the working directory and in
// $HOME/.config/panther, and its absence is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PANTHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("panther")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "panther"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		logging.L().Debug("config file loaded", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func invalid(key string, value any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalid, key, value)
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return invalid("data_dir", `""`)
	}
	if _, err := logging.ResolveLogLevel(c.LogLevel); err != nil {
		return invalid("log_level", c.LogLevel)
	}
	switch c.Records.Backend {
	case "json", "sqlite":
	default:
		return invalid("records.backend", c.Records.Backend)
	}
	if c.Window.Width <= 0 {
		return invalid("window.width", c.Window.Width)
	}
	if c.Window.Height <= 0 {
		return invalid("window.height", c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return invalid("window.fps", c.Window.FPS)
	}
	if c.Gesture.Threshold <= 0 {
		return invalid("gesture.threshold", c.Gesture.Threshold)
	}
	if c.GPS.Warmup < 0 {
		return invalid("gps.warmup", c.GPS.Warmup)
	}
	if c.GPS.MaxAccuracy <= 0 {
		return invalid("gps.max_accuracy", c.GPS.MaxAccuracy)
	}
	if c.Transition.Duration < 0 {
		return invalid("transition.duration", c.Transition.Duration)
	}
	return nil
}
