package infrastructure

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/404Health/universal-dataCleaner/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"unknown", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in))
	}
}

func TestCreateLogger_Stdout(t *testing.T) {
	logger, err := createLogger(config.LoggingConfig{Level: "info", Output: "stdout"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestGetLogger_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, GetLogger())
}
