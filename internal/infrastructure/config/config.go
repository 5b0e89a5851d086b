package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/AgentOS/launcher/internal/interpreter"
)

// Config holds all launcher configuration.
type Config struct {
	Logging     LogConfig
	Interpreter InterpreterConfig
	Manifest    string `envconfig:"LAUNCHER_MANIFEST"`
	Metrics     bool   `envconfig:"LAUNCHER_METRICS" default:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// InterpreterConfig holds embedded interpreter configuration.
type InterpreterConfig struct {
	SearchPath      []string      `envconfig:"LAUNCHER_SEARCH_PATH"`
	CallTimeout     time.Duration `envconfig:"LAUNCHER_CALL_TIMEOUT" default:"0s"`
	DedupSearchPath bool          `envconfig:"LAUNCHER_DEDUP_SEARCH_PATH" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// InterpreterConfig converts the interpreter section into an interpreter.Config.
// Manifest search path entries are appended after the configured ones.
func (c *Config) InterpreterConfig(manifest *Manifest) interpreter.Config {
	ic := interpreter.DefaultConfig()
	ic.SearchPath = append(ic.SearchPath, c.Interpreter.SearchPath...)
	if manifest != nil {
		ic.SearchPath = append(ic.SearchPath, manifest.SearchPath...)
	}
	ic.CallTimeout = c.Interpreter.CallTimeout
	ic.DedupSearchPath = c.Interpreter.DedupSearchPath
	return ic
}
