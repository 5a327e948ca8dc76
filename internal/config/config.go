// Package config provides configuration loading and validation for the editor.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreLocal    = "local"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

// Config represents the editor configuration that can be loaded from a JSON
// or YAML file. All fields are optional; missing values fall back to Defaults.
type Config struct {
	// Storage
	Store       string `json:"store,omitempty" yaml:"store,omitempty" validate:"omitempty,oneof=local postgres redis memory"`
	StorePath   string `json:"store_path,omitempty" yaml:"store_path,omitempty"`     // SQLite file for the local store
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty" yaml:"redis_url,omitempty"`       // host:port or redis:// URL

	// Behavior
	SaveDebounceMS int    `json:"save_debounce_ms,omitempty" yaml:"save_debounce_ms,omitempty" validate:"gte=0"`
	ChromePath     string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"` // Chrome/Chromium binary for PDF export
	ExportTimeoutS int    `json:"export_timeout_s,omitempty" yaml:"export_timeout_s,omitempty" validate:"gte=0"`

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=json text"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Store:          StoreLocal,
		StorePath:      filepath.Join(".resume_editor", "documents.db"),
		SaveDebounceMS: 1000,
		ExportTimeoutS: 60,
		Port:           8080,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadConfig loads configuration from a JSON or YAML file. The format is
// chosen by extension; .yaml and .yml are YAML, everything else is JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Backend-specific
// requirements are checked after defaults and environment are applied.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config error: 'redis_url' is required for the redis store")
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.SaveDebounceMS == 0 {
		result.SaveDebounceMS = defaults.SaveDebounceMS
	}
	if result.ExportTimeoutS == 0 {
		result.ExportTimeoutS = defaults.ExportTimeoutS
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// ApplyEnv overrides fields from the environment. Unset variables leave the
// field alone.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("RESUME_EDITOR_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		c.ChromePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Load resolves the effective configuration: the optional file at path,
// then environment overrides, then defaults, then validation.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// SaveDebounce is the persistence debounce delay.
func (c Config) SaveDebounce() time.Duration {
	return time.Duration(c.SaveDebounceMS) * time.Millisecond
}

// ExportTimeout bounds a single PDF rasterization.
func (c Config) ExportTimeout() time.Duration {
	return time.Duration(c.ExportTimeoutS) * time.Second
}
