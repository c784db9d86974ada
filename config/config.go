// Package config loads the optional host configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	cerrors "github.com/chouten-app/chouten-cli/domain/errors"
)

// DefaultPath is probed when no -config flag is given. A missing file at
// this path is not an error.
const DefaultPath = "chouten.yaml"

var validate = validator.New()

// HTTP configures the outbound request capability.
type HTTP struct {
	// TimeoutMS bounds each request in milliseconds.
	TimeoutMS int `yaml:"timeout_ms" validate:"omitempty,min=1"`

	// MaxBodyBytes caps the response body read per request.
	MaxBodyBytes int64 `yaml:"max_body_bytes" validate:"omitempty,min=1"`

	// UserAgent is sent on every request when non-empty.
	UserAgent string `yaml:"user_agent"`

	// FollowRedirects controls redirect following. Default is true.
	FollowRedirects *bool `yaml:"follow_redirects"`
}

// RedirectsEnabled resolves the redirect policy, defaulting to true.
func (h HTTP) RedirectsEnabled() bool {
	if h.FollowRedirects == nil {
		return true
	}
	return *h.FollowRedirects
}

// Log configures host diagnostics.
type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Config is the host configuration.
type Config struct {
	HTTP HTTP `yaml:"http"`
	Log  Log  `yaml:"log"`
}

// Default returns the built-in configuration: 30s request timeout, 10MB body
// cap, redirects followed, info-level logging.
func Default() *Config {
	return &Config{
		HTTP: HTTP{
			TimeoutMS:    30000,
			MaxBodyBytes: 10 * 1024 * 1024,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads and validates the configuration at path, layered over the
// defaults. An unreadable file or invalid content is an error.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &cerrors.FileReadError{Path: path, Err: err}
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads DefaultPath if it exists, otherwise returns Default().
func LoadDefault() (*Config, error) {
	if _, err := os.Stat(DefaultPath); err != nil {
		return Default(), nil
	}
	return Load(DefaultPath)
}

// SlogLevel maps the configured log level to slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
