package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/progmatch/internal/config"
)

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", "stdout")
	t.Setenv("NO_COLOR", "1")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.DefaultLogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "stdout", cfg.LogOutput)
	assert.True(t, cfg.NoColor)
	assert.Empty(t, cfg.LogLevel, "explicit level only comes from the flag")
}

func TestLoadConfigDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("LOG_FORMAT=console\nLOG_OUTPUT=discard\n"), 0o644))
	require.NoError(t, os.WriteFile(".env.local", []byte("LOG_FORMAT=json\n"), 0o644))
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("LOG_OUTPUT", "")
	os.Unsetenv("LOG_FORMAT")
	os.Unsetenv("LOG_OUTPUT")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat, ".env.local wins over .env")
	assert.Equal(t, "discard", cfg.LogOutput)
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "yaml", NoColor: true}
	cfg.UpdateFromFlags(true, false, false, "", "trace")

	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Quiet)
	assert.True(t, cfg.NoColor, "NO_COLOR is not cleared by an unset flag")
	assert.Equal(t, "yaml", cfg.Format, "empty flag keeps the configured format")
	assert.Equal(t, "trace", cfg.LogLevel)

	cfg.UpdateFromFlags(false, true, true, "json", "")
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "trace", cfg.LogLevel)
}

func TestApplyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nlog_output: discard\n"), 0o644))

	v := config.NewViper(path)
	require.NoError(t, config.ReadConfig(v))

	cfg := &Config{DefaultLogLevel: "info", LogFormat: "auto", LogOutput: "stderr"}
	cfg.ApplyFile(v)
	assert.Equal(t, "debug", cfg.DefaultLogLevel)
	assert.Equal(t, "auto", cfg.LogFormat)
	assert.Equal(t, "discard", cfg.LogOutput)
}
