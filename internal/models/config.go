package models

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the checker's TOML configuration
type Config struct {
	Data    DataConfig    `toml:"data"`
	Session SessionConfig `toml:"session"`
	Log     LogConfig     `toml:"log"`
	Display DisplayConfig `toml:"display"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

type SessionConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DisplayConfig struct {
	Top int `toml:"top"` // 0 shows every row
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Data:    DataConfig{Dir: "data"},
		Session: SessionConfig{Path: DefaultSessionPath()},
		Log:     LogConfig{Level: slog.LevelWarn, Format: "text"},
	}
}

// DefaultSessionPath is ~/.cookie-checker/session.json, or a relative
// session.json when the home directory is unknown
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".cookie-checker", "session.json")
}

// LoadConfig reads a TOML config on top of the defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateConfig checks values a TOML file could get wrong
func ValidateConfig(c *Config) error {
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Display.Top < 0 {
		return fmt.Errorf("display.top must not be negative, got %d", c.Display.Top)
	}
	if c.Data.Dir == "" {
		return errors.New("data.dir must not be empty")
	}
	if c.Session.Path == "" {
		return errors.New("session.path must not be empty")
	}
	return nil
}
