package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/optimscale/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
)

// Config holds all optimscale configuration.
type Config struct {
	General    GeneralConfig             `toml:"general"`
	Appearance AppearanceConfig          `toml:"appearance"`
	Log        LogConfig                 `toml:"log"`
	Metrics    map[string]MetricOverride `toml:"metrics,omitempty" validate:"dive"`
}

// GeneralConfig holds forecasting preferences shared by every chart.
type GeneralConfig struct {
	Degree           int    `toml:"degree" default:"1" validate:"oneof=1 2"`
	Horizon          int    `toml:"horizon" default:"12" validate:"gte=1,lte=120"`
	MarketingHistory int    `toml:"marketing_history" default:"10" validate:"gte=1,lte=120"`
	Dataset          string `toml:"dataset,omitempty"`
	ExportDir        string `toml:"export_dir" default:"."`
}

// AppearanceConfig holds theme and layout settings.
type AppearanceConfig struct {
	Theme  string `toml:"theme" default:"flexoki-dark"`
	Layout string `toml:"layout" default:"single" validate:"oneof=single grid"`
}

// LogConfig controls the log sink. An empty File logs to optimscale.log in
// the config dir; "-" logs to stderr.
type LogConfig struct {
	Level  string `toml:"level" default:"info" validate:"oneof=trace debug info warn error disabled"`
	Format string `toml:"format" default:"console" validate:"oneof=console json"`
	File   string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "optimscale")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "optimscale")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LogPath returns the default log file path.
func LogPath() string {
	return filepath.Join(ConfigDir(), "optimscale.log")
}

// Load reads the default config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path over the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate range-checks every section.
func (c Config) Validate() error {
	if err := model.Validate(&c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-supplied config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
