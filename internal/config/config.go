package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"20"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"10"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/cleaner.log"`
}

// CleaningConfig contains the default pipeline settings used when a
// request or CLI invocation does not override them.
type CleaningConfig struct {
	FillStrategy       string  `yaml:"fill_strategy" envconfig:"FILL_STRATEGY" default:"delete"`
	ApplyOutliers      bool    `yaml:"apply_outliers" envconfig:"APPLY_OUTLIERS" default:"true"`
	OutlierMethod      string  `yaml:"outlier_method" envconfig:"OUTLIER_METHOD" default:"zscore"`
	OutlierThreshold   float64 `yaml:"outlier_threshold" envconfig:"OUTLIER_THRESHOLD" default:"3.0"`
	OutlierReplacement string  `yaml:"outlier_replacement" envconfig:"OUTLIER_REPLACEMENT" default:"median"`
	MaxCachedRuns      int     `yaml:"max_cached_runs" envconfig:"MAX_CACHED_RUNS" default:"32"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"sample_data"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"output"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration: struct-tag defaults and CLEANER_* environment
// variables first, then an optional YAML config file layered on top.
func Load() (*Config, error) {
	return LoadFrom(configFilePath())
}

// LoadFrom loads configuration, reading the YAML file at path if it
// exists.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("CLEANER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func configFilePath() string {
	if p := os.Getenv("CLEANER_CONFIG_FILE"); p != "" {
		return p
	}
	return "config.yaml"
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Cleaning.OutlierThreshold <= 0 {
		return fmt.Errorf("outlier threshold must be positive, got %v", c.Cleaning.OutlierThreshold)
	}
	if c.Cleaning.MaxCachedRuns < 1 {
		return fmt.Errorf("max cached runs must be at least 1, got %d", c.Cleaning.MaxCachedRuns)
	}
	return nil
}
