package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoadConfigFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	cfg, err := LoadConfig([]string{"--port", "9090", "-l", "warn"})
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	for _, args := range [][]string{
		{"--port", "http"},
		{"--port", "0"},
		{"--port", "70000"},
		{"--log-level", "loud"},
		{"--unknown"},
	} {
		_, err := LoadConfig(args)
		assert.Error(t, err, args)
	}
}
