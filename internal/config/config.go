package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete agentorg configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// StorageConfig controls where registry snapshots are persisted
type StorageConfig struct {
	// Dir is the base directory for data files.
	// If empty, defaults to $XDG_DATA_HOME/agentorg (or ~/.local/share/agentorg).
	Dir string `mapstructure:"dir"`
	// DepartmentsFile is the department registry file name or path.
	// Relative paths are resolved against Dir.
	DepartmentsFile string `mapstructure:"departments_file"`
	// UnitsFile is the unit registry file name or path.
	// Relative paths are resolved against Dir.
	UnitsFile string `mapstructure:"units_file"`
}

// LoggingConfig controls structured logging behavior
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr
	File string `mapstructure:"file"`
}

// TUIConfig controls the dashboard behavior
type TUIConfig struct {
	// RefreshSeconds is how often the dashboard re-reads the registries
	RefreshSeconds int `mapstructure:"refresh_seconds"`
}

// RefreshInterval returns the dashboard refresh period as a time.Duration
func (c *TUIConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// ResolveDir returns the storage directory, falling back to the default
// data directory when unset. Supports ~ expansion.
func (s *StorageConfig) ResolveDir() string {
	if s.Dir == "" {
		return DataDir()
	}
	path := s.Dir
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	if len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}

// DepartmentsPath returns the resolved department file path.
func (s *StorageConfig) DepartmentsPath() string {
	if filepath.IsAbs(s.DepartmentsFile) {
		return s.DepartmentsFile
	}
	return filepath.Join(s.ResolveDir(), s.DepartmentsFile)
}

// UnitsPath returns the resolved unit file path.
func (s *StorageConfig) UnitsPath() string {
	if filepath.IsAbs(s.UnitsFile) {
		return s.UnitsFile
	}
	return filepath.Join(s.ResolveDir(), s.UnitsFile)
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:             "", // Empty means use DataDir()
			DepartmentsFile: "departments.json",
			UnitsFile:       "units.json",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "", // Empty means stderr
		},
		TUI: TUIConfig{
			RefreshSeconds: 2,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Storage defaults
	viper.SetDefault("storage.dir", defaults.Storage.Dir)
	viper.SetDefault("storage.departments_file", defaults.Storage.DepartmentsFile)
	viper.SetDefault("storage.units_file", defaults.Storage.UnitsFile)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)

	// TUI defaults
	viper.SetDefault("tui.refresh_seconds", defaults.TUI.RefreshSeconds)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentorg")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agentorg"
	}
	return filepath.Join(home, ".config", "agentorg")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the path to the user's data directory
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentorg")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agentorg"
	}
	return filepath.Join(home, ".local", "share", "agentorg")
}
