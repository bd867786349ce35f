package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Endpoint.BaseURL)
	assert.Equal(t, AuthTypeNone, cfg.Endpoint.AuthType)
	assert.Equal(t, time.Duration(0), cfg.Endpoint.Timeout)
	assert.False(t, cfg.Endpoint.StrictContract)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "en", cfg.Console.Locale)
	assert.Equal(t, ServerModeSTDIO, cfg.Server.Mode)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	content := []byte(`
endpoint:
  base_url: http://from-file:9000/
  auth_type: bearer
  auth_config:
    token: secret
  timeout: 5s
console:
  locale: ko
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	t.Run("file", func(t *testing.T) {
		cfg, err := Load(newFlags(t))
		require.NoError(t, err)
		assert.Equal(t, "http://from-file:9000", cfg.Endpoint.BaseURL)
		assert.Equal(t, AuthTypeBearer, cfg.Endpoint.AuthType)
		assert.Equal(t, "secret", cfg.Endpoint.AuthConfig["token"])
		assert.Equal(t, 5*time.Second, cfg.Endpoint.Timeout)
		assert.Equal(t, "ko", cfg.Console.Locale)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("MCPSYNC_ENDPOINT_BASE_URL", "http://from-env:7000")
		cfg, err := Load(newFlags(t))
		require.NoError(t, err)
		assert.Equal(t, "http://from-env:7000", cfg.Endpoint.BaseURL)
	})

	t.Run("flag over env", func(t *testing.T) {
		t.Setenv("MCPSYNC_ENDPOINT_BASE_URL", "http://from-env:7000")
		cfg, err := Load(newFlags(t, "--base-url", "https://from-flag", "--locale", "en", "--strict"))
		require.NoError(t, err)
		assert.Equal(t, "https://from-flag", cfg.Endpoint.BaseURL)
		assert.Equal(t, "en", cfg.Console.Locale)
		assert.True(t, cfg.Endpoint.StrictContract)
	})
}

func TestLoadServeFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	fs := newFlags(t)
	BindServeFlags(fs)
	require.NoError(t, fs.Parse([]string{"--mode", "sse", "--port", "9100"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, ServerModeSSE, cfg.Server.Mode)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)

	fs = newFlags(t)
	BindServeFlags(fs)
	require.NoError(t, fs.Parse([]string{"--mode", "grpc"}))
	_, err = Load(fs)
	assert.ErrorContains(t, err, "server.mode")
}

func TestLoadExplicitConfigMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(newFlags(t, "--config", "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.Endpoint.BaseURL = "/api" },
			wantErr: "endpoint.base_url",
		},
		{
			name:    "unknown auth type",
			mutate:  func(c *Config) { c.Endpoint.AuthType = "oauth2" },
			wantErr: "endpoint.auth_type",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Endpoint.Timeout = -time.Second },
			wantErr: "endpoint.timeout",
		},
		{
			name:    "unknown server mode",
			mutate:  func(c *Config) { c.Server.Mode = "grpc" },
			wantErr: "server.mode",
		},
		{
			name:    "unknown locale",
			mutate:  func(c *Config) { c.Console.Locale = "fr" },
			wantErr: "console.locale",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				Endpoint: EndpointConfig{BaseURL: "http://localhost:8080", AuthType: AuthTypeNone},
				Server:   ServerConfig{Mode: ServerModeSTDIO},
				Console:  ConsoleConfig{Locale: "en"},
			}
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
