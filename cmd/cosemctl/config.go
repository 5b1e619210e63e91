package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/validator.v2"
	"gopkg.in/yaml.v3"

	"github.com/ngc-ami/cosem-go/pkg/names"
)

// Config is the cosemctl configuration file.
type Config struct {
	// LogLevel is one of debug, info, warn or error. Default info.
	LogLevel string `yaml:"log_level" validate:"regexp=^(debug|info|warn|error)?$"`

	// LogFormat is text or json. Default text.
	LogFormat string `yaml:"log_format" validate:"regexp=^(text|json)?$"`

	// Names is a dictionary file that replaces the built-in names.
	Names string `yaml:"names"`

	Shell ShellConfig `yaml:"shell"`
}

// ShellConfig configures the interactive shell.
type ShellConfig struct {
	// Fixture is the simulated meter to load.
	Fixture string `yaml:"fixture"`

	// Trace appends every request to this trace file.
	Trace string `yaml:"trace"`

	// SessionID tags the trace events. Empty means a fresh ID per object.
	SessionID string `yaml:"session_id"`
}

// loadConfig reads and validates a configuration file. An empty path
// returns the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// newLogger builds the operational logger described by cfg.
func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// dictionary returns the configured name dictionary.
func (c *Config) dictionary() (*names.Dictionary, error) {
	if c.Names == "" {
		return names.Default(), nil
	}
	data, err := os.ReadFile(c.Names)
	if err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}
	return names.Load(data)
}
