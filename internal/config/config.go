// Package config provides the overlay's configuration: the application
// config read from the environment, and the typed accessors over the
// persisted user customization.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	LogLevel         string  `yaml:"log_level"`
	LogPretty        bool    `yaml:"log_pretty"`
	SourceURL        string  `yaml:"source_url"`
	FPS              float64 `yaml:"fps"`
	DataDir          string  `yaml:"data_dir"`
	AssetDir         string  `yaml:"asset_dir"`
	MinWidth         float64 `yaml:"min_width"`
	MinHeight        float64 `yaml:"min_height"`
	ViewportFraction float64 `yaml:"viewport_fraction"`
	ViewportWidth    float64 `yaml:"viewport_width"`
	ViewportHeight   float64 `yaml:"viewport_height"`
}

// Defaults
const (
	DefaultSourceURL        = "ws://localhost:1080/api/ws/events"
	DefaultFPS              = 2
	DefaultMinSize          = 100
	DefaultViewportFraction = 0.99
	DefaultViewportWidth    = 1920
	DefaultViewportHeight   = 1080
)

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogLevel:         "info",
		LogPretty:        true,
		SourceURL:        DefaultSourceURL,
		FPS:              DefaultFPS,
		DataDir:          defaultDataDir(),
		MinWidth:         DefaultMinSize,
		MinHeight:        DefaultMinSize,
		ViewportFraction: DefaultViewportFraction,
		ViewportWidth:    DefaultViewportWidth,
		ViewportHeight:   DefaultViewportHeight,
	}
}

// Load reads configuration from an optional YAML file and environment
// variables. Environment variables take precedence over the file.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("SISU_HUD_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.LogLevel = getEnv("SISU_HUD_LOG_LEVEL", cfg.LogLevel)
	cfg.LogPretty = getEnvAsBool("SISU_HUD_LOG_PRETTY", cfg.LogPretty)
	cfg.SourceURL = getEnv("SISU_HUD_SOURCE_URL", cfg.SourceURL)
	cfg.FPS = getEnvAsFloat("SISU_HUD_FPS", cfg.FPS)
	cfg.DataDir = getEnv("SISU_HUD_DATA_DIR", cfg.DataDir)
	cfg.AssetDir = getEnv("SISU_HUD_ASSET_DIR", cfg.AssetDir)
	cfg.MinWidth = getEnvAsFloat("SISU_HUD_MIN_WIDTH", cfg.MinWidth)
	cfg.MinHeight = getEnvAsFloat("SISU_HUD_MIN_HEIGHT", cfg.MinHeight)
	cfg.ViewportFraction = getEnvAsFloat("SISU_HUD_VIEWPORT_FRACTION", cfg.ViewportFraction)
	cfg.ViewportWidth = getEnvAsFloat("SISU_HUD_VIEWPORT_WIDTH", cfg.ViewportWidth)
	cfg.ViewportHeight = getEnvAsFloat("SISU_HUD_VIEWPORT_HEIGHT", cfg.ViewportHeight)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required values are usable
func (c *Config) Validate() error {
	if c.SourceURL == "" {
		return fmt.Errorf("source url is required")
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %v", c.FPS)
	}
	if c.MinWidth <= 0 || c.MinHeight <= 0 {
		return fmt.Errorf("minimum panel size must be positive, got %vx%v", c.MinWidth, c.MinHeight)
	}
	if c.ViewportFraction <= 0 || c.ViewportFraction > 1 {
		return fmt.Errorf("viewport fraction must be in (0, 1], got %v", c.ViewportFraction)
	}
	return nil
}

// DatabasePath returns the SQLite settings file used by headless runs
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "settings.db")
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "sisu-hud")
	}
	return filepath.Join(os.TempDir(), "sisu-hud")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
