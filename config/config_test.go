package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level: -4
api_base: https://api.example.com
user_id: 12
ui: terminal
game:
  tick_ms: 100
audio:
  volume: 0.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, "https://api.example.com", cfg.APIBase)
	assert.Equal(t, 12, cfg.UserID)
	assert.Equal(t, UITerminal, cfg.UI)
	assert.Equal(t, 100*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, 0.5, cfg.Audio.Volume)
	assert.True(t, cfg.Audio.Enabled)

	// defaults
	assert.Equal(t, 20, cfg.Game.GridSize)
	assert.Equal(t, 20, cfg.Game.CellSize)
	assert.Equal(t, 400*time.Millisecond, cfg.Fade())
	assert.Equal(t, "8000", cfg.Server.Port)
}

func TestZeroVolumeMutes(t *testing.T) {
	cfg, err := Load(writeConfig(t, "audio:\n  volume: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Audio.Volume)

	cfg, err = Load(writeConfig(t, "audio:\n  fade_ms: 100\n"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Audio.Volume)
	assert.Equal(t, 1.0, Default().Audio.Volume)
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, UIWindow, cfg.UI)
	assert.Equal(t, 150*time.Millisecond, cfg.TickInterval())
}

func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("non_existent_file.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "game: [unclosed\n")
	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SNAKEIFY_USER_ID", "42")
	t.Setenv("SNAKEIFY_UI", "terminal")
	t.Setenv("SNAKEIFY_AUDIO", "false")

	cfg, err := Load(writeConfig(t, "user_id: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.UserID)
	assert.Equal(t, UITerminal, cfg.UI)
	assert.False(t, cfg.Audio.Enabled)
}

func TestEnvInvalidNumber(t *testing.T) {
	t.Setenv("SNAKEIFY_TICK_MS", "fast")
	_, err := Load(writeConfig(t, "ui: window\n"))
	assert.ErrorContains(t, err, "SNAKEIFY_TICK_MS")
}

func TestValidate(t *testing.T) {
	_, err := Load(writeConfig(t, "ui: browser\n"))
	assert.ErrorContains(t, err, "unknown ui")

	_, err = Load(writeConfig(t, "audio:\n  volume: 3\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "audio:\n  volume: -0.5\n"))
	assert.Error(t, err)
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
