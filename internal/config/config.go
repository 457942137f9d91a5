// Package config defines the HotTake client configuration, its defaults,
// and viper integration. Configuration is read from
// $HOME/.config/hottake/config.yaml and may be overridden via HOTTAKE_*
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete HotTake configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Serve   ServeConfig   `mapstructure:"serve"`
}

// APIConfig controls how the client reaches the debate directory API
type APIConfig struct {
	// BaseURL is the root of the debates REST API (default: http://localhost:3000/api)
	BaseURL string `mapstructure:"base_url"`
	// TimeoutSeconds is the per-request timeout for directory calls (default: 10)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout returns the API timeout as a time.Duration
func (a *APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// StorageConfig controls where the client persists local state
type StorageConfig struct {
	// Dir is the directory holding the persisted profile.
	// If empty, defaults to the user data directory (~/.local/share/hottake).
	// Supports ~ for home directory expansion.
	Dir string `mapstructure:"dir"`
}

// ResolveDir returns the resolved storage directory path.
func (s *StorageConfig) ResolveDir() string {
	if s.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".hottake"
		}
		return filepath.Join(home, ".local", "share", "hottake")
	}

	path := s.Dir
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}
	return path
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "default")
	// Options: "default", "monokai", "dracula", "nord"
	Theme string `mapstructure:"theme"`
	// ShowParticipantAges shows participant ages in session labels (default: true)
	ShowParticipantAges bool `mapstructure:"show_participant_ages"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the log directory. Empty means logs go next to the stored profile.
	Dir string `mapstructure:"dir"`
}

// ServeConfig controls the bundled debates API server
type ServeConfig struct {
	// Addr is the listen address for `hottake serve` (default: ":3000")
	Addr string `mapstructure:"addr"`
	// Seed populates the server with demo debates at startup (default: true)
	Seed bool `mapstructure:"seed"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:3000/api",
			TimeoutSeconds: 10,
		},
		Storage: StorageConfig{
			Dir: "", // Empty means use the user data directory
		},
		TUI: TUIConfig{
			Theme:               "default",
			ShowParticipantAges: true,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
		Serve: ServeConfig{
			Addr: ":3000",
			Seed: true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// API defaults
	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.timeout_seconds", defaults.API.TimeoutSeconds)

	// Storage defaults
	viper.SetDefault("storage.dir", defaults.Storage.Dir)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.show_participant_ages", defaults.TUI.ShowParticipantAges)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Serve defaults
	viper.SetDefault("serve.addr", defaults.Serve.Addr)
	viper.SetDefault("serve.seed", defaults.Serve.Seed)
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
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hottake")
	}
	// Fall back to ~/.config/hottake
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hottake"
	}
	return filepath.Join(home, ".config", "hottake")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
