package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
	Serve  ServeConfig  `yaml:"serve"`
}

// ServerConfig points the client at the remote HackTracker API.
type ServerConfig struct {
	URL     string   `yaml:"url" env:"DUGOUT_SERVER_URL"`
	APIKey  string   `yaml:"-" env:"DUGOUT_API_KEY"` // env-only, never in YAML
	Timeout Duration `yaml:"timeout" env:"DUGOUT_SERVER_TIMEOUT"`
}

// CacheConfig contains local cache settings.
type CacheConfig struct {
	Path            string   `yaml:"path" env:"DUGOUT_CACHE_PATH"`
	RefreshInterval Duration `yaml:"refresh_interval" env:"DUGOUT_REFRESH_INTERVAL"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"DUGOUT_LOG_LEVEL"`
	Format string `yaml:"format" env:"DUGOUT_LOG_FORMAT"`
}

// ServeConfig contains settings for the local development server.
type ServeConfig struct {
	Port            int      `yaml:"port" env:"DUGOUT_SERVE_PORT"`
	DatabasePath    string   `yaml:"database_path" env:"DUGOUT_SERVE_DB_PATH"`
	APIKey          string   `yaml:"-" env:"DUGOUT_SERVE_API_KEY"` // env-only, never in YAML
	ReadTimeout     Duration `yaml:"read_timeout" env:"DUGOUT_SERVE_READ_TIMEOUT"`
	WriteTimeout    Duration `yaml:"write_timeout" env:"DUGOUT_SERVE_WRITE_TIMEOUT"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" env:"DUGOUT_SERVE_SHUTDOWN_TIMEOUT"`
}

// Duration is a wrapper around time.Duration that supports YAML and env
// string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so env.Parse can fill
// Duration fields from environment variables.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("DUGOUT_CONFIG_PATH", "config/dugout.yaml")

	// Missing file is not an error; defaults still apply
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:8080",
			Timeout: Duration(30 * time.Second),
		},
		Cache: CacheConfig{
			Path:            defaultCachePath(),
			RefreshInterval: Duration(5 * time.Minute),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Serve: ServeConfig{
			Port:            8080,
			DatabasePath:    "data/dugout.db",
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
	}
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dugout-cache.db"
	}
	return filepath.Join(home, ".dugout", "cache.db")
}

// loadYAMLFile loads configuration from a YAML file if it exists.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// validate checks that required configuration values are set.
// In dev mode (DUGOUT_DEV_MODE=true), API key validation is skipped.
func (c *Config) validate() error {
	if c.Server.URL == "" {
		return errors.New("server.url is required")
	}
	if os.Getenv("DUGOUT_DEV_MODE") == "true" {
		return nil
	}
	if c.Server.APIKey == "" {
		return errors.New("DUGOUT_API_KEY is required")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
