package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chouten-app/chouten-cli/config"
	cerrors "github.com/chouten-app/chouten-cli/domain/errors"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 30000, cfg.HTTP.TimeoutMS)
	assert.Equal(t, int64(10*1024*1024), cfg.HTTP.MaxBodyBytes)
	assert.True(t, cfg.HTTP.RedirectsEnabled())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chouten.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
http:
  timeout_ms: 5000
  user_agent: "chouten/1.0"
  follow_redirects: false
log:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.HTTP.TimeoutMS)
	assert.Equal(t, "chouten/1.0", cfg.HTTP.UserAgent)
	assert.False(t, cfg.HTTP.RedirectsEnabled())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	// Untouched keys keep their defaults.
	assert.Equal(t, int64(10*1024*1024), cfg.HTTP.MaxBodyBytes)
}

func TestLoad_RejectsBadLevel(t *testing.T) {
	path := writeConfig(t, "log:\n  level: loud\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoad_RejectsBadTimeout(t *testing.T) {
	path := writeConfig(t, "http:\n  timeout_ms: -1\n")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))

	var fileErr *cerrors.FileReadError
	require.ErrorAs(t, err, &fileErr)
}

func TestLoadDefault_MissingFileIsNotAnError(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := config.LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for level, want := range tests {
		cfg := config.Default()
		cfg.Log.Level = level
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", level)
	}
}
