// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Timeline TimelineConfig `toml:"timeline"`
	LLM      LLMConfig      `toml:"llm"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// TimelineConfig holds chart geometry and editing settings.
type TimelineConfig struct {
	StartHour          int `toml:"start_hour"`           // first hour on the chart
	EndHour            int `toml:"end_hour"`             // 24 means midnight
	PixelsPerHour      int `toml:"pixels_per_hour"`      // horizontal cells per hour
	SnapMinutes        int `toml:"snap_minutes"`         // drag and resize grid
	MinDurationMinutes int `toml:"min_duration_minutes"` // shortest allowed activity
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "ollama" or "lmstudio"
	Model    string `toml:"model"`    // e.g., "llama3.1"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434/v1"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Timeline: TimelineConfig{
			StartHour:          6,
			EndHour:            24,
			PixelsPerHour:      80,
			SnapMinutes:        15,
			MinDurationMinutes: 15,
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.1",
			BaseURL:  "http://localhost:11434/v1",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tripline.db"
	}
	return filepath.Join(home, ".local", "share", "tripline", "tripline.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "tripline", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	// LLM overrides
	if v := os.Getenv("TRIPLINE_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("TRIPLINE_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("TRIPLINE_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	// Storage overrides
	if v := os.Getenv("TRIPLINE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := os.Getenv("TRIPLINE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	t := c.Timeline
	if t.StartHour < 0 || t.StartHour > 23 {
		return fmt.Errorf("start_hour must be between 0 and 23, got %d", t.StartHour)
	}
	if t.EndHour < 1 || t.EndHour > 24 {
		return fmt.Errorf("end_hour must be between 1 and 24, got %d", t.EndHour)
	}
	if t.StartHour >= t.EndHour {
		return errors.New("start_hour must be before end_hour")
	}
	if t.PixelsPerHour <= 0 {
		return errors.New("pixels_per_hour must be positive")
	}
	if t.SnapMinutes <= 0 || t.SnapMinutes > 60 {
		return fmt.Errorf("snap_minutes must be between 1 and 60, got %d", t.SnapMinutes)
	}
	if t.MinDurationMinutes < t.SnapMinutes {
		return errors.New("min_duration_minutes must be at least snap_minutes")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
