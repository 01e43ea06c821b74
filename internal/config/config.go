// Package config holds the client configuration for the Eventually Yours
// terminal app. Config lives in <home>/config.yaml; a missing file means
// defaults. Environment variables override the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Backend BackendConfig `yaml:"backend"`
	Storage StorageConfig `yaml:"storage"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig configures the recommendation backend gateway.
type BackendConfig struct {
	// BaseURL is the absolute origin API-prefixed paths are rewritten onto.
	BaseURL string `yaml:"base_url"`
	// APIPrefix marks which request paths belong to the backend.
	APIPrefix string `yaml:"api_prefix"`
	Timeout   string `yaml:"timeout"`
}

// StorageConfig configures durable client state.
type StorageConfig struct {
	// Home is the app state directory. Defaults to ~/.eventually.
	Home string `yaml:"home"`
	// SessionFile holds the persisted session identifier.
	SessionFile string `yaml:"session_file"`
	// ExportFile is the default export document filename.
	ExportFile string `yaml:"export_file"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, light, dark
}

// LoggingConfig configures debug logging.
type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home := defaultHome()
	return &Config{
		Name:    "Eventually Yours",
		Version: "1.2.0",

		Backend: BackendConfig{
			BaseURL:   "https://eventually-yours-shopping-app-backend.onrender.com",
			APIPrefix: "/api",
			Timeout:   "60s",
		},

		Storage: StorageConfig{
			Home:        home,
			SessionFile: filepath.Join(home, "session"),
			ExportFile:  "shopping-assistant-data.json",
		},

		UI: UIConfig{
			Theme: "auto",
		},

		Logging: LoggingConfig{
			Debug: false,
			Level: "info",
		},
	}
}

func defaultHome() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".eventually")
	}
	return ".eventually"
}

// Load loads configuration from a YAML file, applying defaults for a missing
// file and environment overrides on top. A .env next to the working directory
// is honored first so EVY_* variables can live there.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	return filepath.Join(defaultHome(), "config.yaml")
}

// RequestTimeout parses the backend timeout, falling back to 60s.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Backend.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("EVY_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("EVY_API_PREFIX"); v != "" {
		c.Backend.APIPrefix = v
	}
	if v := os.Getenv("EVY_TIMEOUT"); v != "" {
		c.Backend.Timeout = v
	}
	if v := os.Getenv("EVY_HOME"); v != "" {
		c.Storage.Home = v
		c.Storage.SessionFile = filepath.Join(v, "session")
	}
	if v := os.Getenv("EVY_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("EVY_DEBUG"); v == "1" || v == "true" {
		c.Logging.Debug = true
	}
}
