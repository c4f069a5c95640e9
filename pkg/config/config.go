// Package config loads lgrep defaults from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/praetorian-inc/lgrep/pkg/render"
	"github.com/praetorian-inc/lgrep/pkg/source"
	"github.com/praetorian-inc/lgrep/pkg/types"
)

// Environment variables read by Load.
const (
	EnvConfig = "LGREP_CONFIG"
	EnvColor  = "LGREP_COLOR"
	EnvEngine = "LGREP_ENGINE"
)

// Config holds the defaults applied before command-line flags.
type Config struct {
	IgnoreCase   bool          `yaml:"ignore_case"`
	LineNumber   bool          `yaml:"line_number"`
	Color        string        `yaml:"color"`
	Engine       string        `yaml:"engine"`
	Format       string        `yaml:"format"`
	Hidden       bool          `yaml:"hidden"`
	Extract      string        `yaml:"extract"`
	MaxFileSize  int64         `yaml:"max_file_size"`
	MatchTimeout time.Duration `yaml:"match_timeout"`

	Colors render.Colors `yaml:"colors"`
	Log    LogConfig     `yaml:"log"`
}

// LogConfig configures the rotating diagnostics log file.
type LogConfig struct {
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"` // megabytes
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Color:        "auto",
		Engine:       types.EngineRE2.String(),
		Format:       render.FormatText,
		MatchTimeout: 5 * time.Second,
		Colors:       render.DefaultColors(),
		Log: LogConfig{
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Load reads the configuration file at path, or at the default location
// when path is empty, then applies environment overrides. A missing file
// is only an error when path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = Path()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Path returns the default config file path.
func Path() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "lgrep", "config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "lgrep", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - the path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadFromEnv(cfg *Config) {
	if c := os.Getenv(EnvColor); c != "" {
		cfg.Color = c
	}
	if e := os.Getenv(EnvEngine); e != "" {
		cfg.Engine = e
	}
}

// Validate checks every enumerated value.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}

	if _, err := types.ParseEngine(c.Engine); err != nil {
		return err
	}

	switch strings.ToLower(c.Format) {
	case render.FormatText, render.FormatJSON, render.FormatSARIF:
	default:
		return fmt.Errorf("format must be text, json or sarif, got %q", c.Format)
	}

	if err := source.ValidateExtract(c.Extract); err != nil {
		return err
	}

	for name, value := range map[string]string{
		"colors.origin": c.Colors.Origin,
		"colors.line":   c.Colors.Line,
		"colors.match":  c.Colors.Match,
	} {
		if _, err := render.ParseColor(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must be non-negative")
	}
	if c.MatchTimeout < 0 {
		return fmt.Errorf("match_timeout must be non-negative")
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return fmt.Errorf("log rotation limits must be non-negative")
	}
	return nil
}
