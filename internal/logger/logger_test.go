package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brizzai/mcp-sync-console/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "console.log")
	cfg := &config.LoggingConfig{
		Level:          "debug",
		Format:         "json",
		OutputPath:     path,
		DisableConsole: true,
	}

	l, err := NewLogger(cfg)
	require.NoError(t, err)
	l.Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNewLoggerRejectsBadInput(t *testing.T) {
	_, err := NewLogger(&config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = NewLogger(&config.LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestInteractive(t *testing.T) {
	cfg := Interactive(config.LoggingConfig{Level: "info", Color: true})
	assert.True(t, cfg.DisableConsole)
	assert.False(t, cfg.Color)
	assert.Equal(t, InteractiveLogFile, filepath.Base(cfg.OutputPath))

	kept := Interactive(config.LoggingConfig{OutputPath: "/var/log/mcpsync.log"})
	assert.Equal(t, "/var/log/mcpsync.log", kept.OutputPath)
}
