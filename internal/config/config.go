package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "MCPSYNC"

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("mcpsync version %s, commit %s, built at %s", version, commit, date)
}

// Version returns the bare build version.
func Version() string {
	return version
}

type Config struct {
	Endpoint EndpointConfig `mapstructure:"endpoint"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Console  ConsoleConfig  `mapstructure:"console"`
	Server   ServerConfig   `mapstructure:"server"`
}

// AuthType represents the type of authentication to use
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBasic  AuthType = "basic"
	AuthTypeBearer AuthType = "bearer"
	AuthTypeAPIKey AuthType = "api_key"
)

// EndpointConfig describes how to reach the sync service backend.
type EndpointConfig struct {
	BaseURL    string            `json:"base_url" mapstructure:"base_url"`
	AuthType   AuthType          `json:"auth_type" mapstructure:"auth_type"`
	AuthConfig map[string]string `json:"auth_config" mapstructure:"auth_config"`
	Headers    map[string]string `json:"headers" mapstructure:"headers"`
	// Zero means requests never time out.
	Timeout        time.Duration `json:"timeout" mapstructure:"timeout"`
	StrictContract bool          `json:"strict_contract" mapstructure:"strict_contract"`
}

type ServerMode string

const (
	ServerModeSSE   ServerMode = "sse"
	ServerModeSTDIO ServerMode = "stdio"
	ServerModeHTTP  ServerMode = "http"
)

// ServerConfig configures the MCP bridge started by `mcpsync serve`.
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	Host    string     `mapstructure:"host"`
	Mode    ServerMode `mapstructure:"mode"`
	Name    string     `mapstructure:"name"`
	Version string     `mapstructure:"version"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	Color             bool   `mapstructure:"color"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// ConsoleConfig holds settings of the interactive console.
type ConsoleConfig struct {
	Locale string `mapstructure:"locale"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint.base_url", "http://localhost:8080")
	v.SetDefault("endpoint.auth_type", string(AuthTypeNone))
	v.SetDefault("endpoint.timeout", "0s")
	v.SetDefault("endpoint.strict_contract", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.append_to_file", true)

	v.SetDefault("console.locale", "en")

	v.SetDefault("server.mode", string(ServerModeSTDIO))
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.name", "MCP Sync Console")
	v.SetDefault("server.version", version)
}

// BindFlags registers the persistent flags understood by Load on fs
// (without parsing).
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a config file (default: ./config.yaml, ~/.config/mcpsync/config.yaml)")
	fs.String("base-url", "", "Base URL of the sync service backend")
	fs.String("log-level", "", "Log level (debug|info|warn|error)")
	fs.String("log-file", "", "Write logs to this file")
	fs.String("locale", "", "Console language (en|ko)")
	fs.Bool("strict", false, "Validate every backend response against the API contract")
}

// BindServeFlags registers the flags of the MCP bridge command on fs.
func BindServeFlags(fs *pflag.FlagSet) {
	fs.String("mode", "", "Transport of the MCP bridge (stdio|sse|http)")
	fs.String("host", "", "Host the sse and http transports listen on")
	fs.Int("port", 0, "Port the sse and http transports listen on")
}

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"base-url":  "endpoint.base_url",
	"log-level": "logging.level",
	"log-file":  "logging.output_path",
	"locale":    "console.locale",
	"strict":    "endpoint.strict_contract",
	"mode":      "server.mode",
	"host":      "server.host",
	"port":      "server.port",
}

// Load builds the configuration from defaults, the config file, MCPSYNC_*
// environment variables and the flags in fs. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if flag := fs.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}
	}

	configFile := ""
	if fs != nil {
		configFile, _ = fs.GetString("config")
	}
	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mcpsync"))
		}
		v.AddConfigPath("/etc/mcpsync")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint.base_url must be an absolute http(s) URL, got %q; adjust the config or pass --base-url or %s_ENDPOINT_BASE_URL", c.Endpoint.BaseURL, EnvPrefix)
	}
	c.Endpoint.BaseURL = strings.TrimRight(c.Endpoint.BaseURL, "/")

	switch c.Endpoint.AuthType {
	case "":
		c.Endpoint.AuthType = AuthTypeNone
	case AuthTypeNone, AuthTypeBasic, AuthTypeBearer, AuthTypeAPIKey:
	default:
		return fmt.Errorf("endpoint.auth_type %q is not supported (none|basic|bearer|api_key)", c.Endpoint.AuthType)
	}

	if c.Endpoint.Timeout < 0 {
		return fmt.Errorf("endpoint.timeout must not be negative")
	}

	switch c.Server.Mode {
	case ServerModeSSE, ServerModeSTDIO, ServerModeHTTP:
	default:
		return fmt.Errorf("server.mode %q is not supported (stdio|sse|http)", c.Server.Mode)
	}

	switch c.Console.Locale {
	case "":
		c.Console.Locale = "en"
	case "en", "ko":
	default:
		return fmt.Errorf("console.locale %q is not supported (en|ko)", c.Console.Locale)
	}
	return nil
}
