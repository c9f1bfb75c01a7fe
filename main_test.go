package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"health/api/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want zerolog.Level
	}{
		{name: "configured level", cfg: config.Config{LogLevel: "warn", Env: "production"}, want: zerolog.WarnLevel},
		{name: "invalid level falls back to info", cfg: config.Config{LogLevel: "loud", Env: "production"}, want: zerolog.InfoLevel},
		{name: "debug toggle wins", cfg: config.Config{LogLevel: "error", Env: "production", Debug: true}, want: zerolog.DebugLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger := newLogger(tc.cfg)
			assert.Equal(t, tc.want, logger.GetLevel())
		})
	}
}

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.Config{AppName: "health-api", Env: "production", LogLevel: "info"}).Output(&buf)
	logger.Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "health-api", line["app"])
	assert.Equal(t, "production", line["env"])
	assert.NotEmpty(t, line["instance"])
}
