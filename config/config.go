// Package config provides the process configuration for the Yelp MCP server.
//
// The configuration is loaded once at startup from an optional file
// (YAML, JSON or TOML), the .env file and the environment,
// and then passed explicitly to the components that need it.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables
const (
	EnvAPIKey    = "YELP_API_KEY"
	EnvBaseURL   = "YELP_BASE_URL"
	EnvTimeout   = "YELP_TIMEOUT"
	EnvLogLevel  = "YELP_LOG_LEVEL"
	EnvTransport = "YELP_MCP_TRANSPORT"
)

// Defaults
const (
	DefaultBaseURL    = "https://api.yelp.com"
	DefaultServerName = "yelp-business"
	DefaultTransport  = TransportStdio
	DefaultAddr       = ":9997"
	DefaultEndpoint   = "/mcp"
	DefaultLogLevel   = "INFO"
)

// Transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config for the server
type Config struct {
	// APIKey is the bearer token sent to the Yelp API
	APIKey string `json:"api_key" yaml:"api_key" toml:"api_key" validate:"required"`
	// BaseURL of the Yelp API, the default is https://api.yelp.com
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" toml:"base_url" validate:"required,http_url"`
	// Timeout is the HTTP client timeout, as Go duration.
	// Empty means no timeout beyond the HTTP client default.
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty" toml:"timeout"`
	// UserAgent is optional User-Agent header value
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" toml:"user_agent"`
	// LogLevel specifies the global log level:
	// TRACE|DEBUG|INFO|NOTICE|WARNING|ERROR|CRITICAL
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" toml:"log_level" validate:"omitempty,oneof=TRACE DEBUG INFO NOTICE WARNING ERROR CRITICAL"`

	Server ServerConfig `json:"server" yaml:"server" toml:"server"`
}

// ServerConfig specifies the MCP server options
type ServerConfig struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty" toml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty" toml:"version"`
	// Transport is stdio or http
	Transport string `json:"transport,omitempty" yaml:"transport,omitempty" toml:"transport" validate:"oneof=stdio http"`
	// Addr is the listen address for http transport
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty" toml:"addr"`
	// Endpoint is the path of the streamable HTTP handler
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" toml:"endpoint" validate:"omitempty,startswith=/"`
}

// LoadDotEnv loads the environment from .env files,
// missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return errors.Wrapf(err, "failed to load %s", file)
		}
	}
	return nil
}

// Load returns the configuration from the file, if provided,
// with the environment overrides and defaults applied.
func Load(file string) (*Config, error) {
	cfg := new(Config)
	if file != "" {
		if err := loadFile(file, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(file string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		if _, err := toml.DecodeFile(file, cfg); err != nil {
			return errors.Wrapf(err, "failed to load config: %s", file)
		}
		cfg.APIKey = os.ExpandEnv(cfg.APIKey)
		cfg.BaseURL = os.ExpandEnv(cfg.BaseURL)
	default:
		if err := configloader.UnmarshalAndExpand(file, cfg); err != nil {
			return errors.Wrapf(err, "failed to load config: %s", file)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToUpper(v)
	}
	if v := os.Getenv(EnvTransport); v != "" {
		c.Server.Transport = v
	}
}

func (c *Config) setDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Server.Name == "" {
		c.Server.Name = DefaultServerName
	}
	if c.Server.Transport == "" {
		c.Server.Transport = DefaultTransport
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Endpoint == "" {
		c.Server.Endpoint = DefaultEndpoint
	}
}

// Validate returns error if the configuration is not valid
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(yamlName)

	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Field() == "api_key" {
				return errors.Errorf("invalid configuration: %s is not set", EnvAPIKey)
			}
			return errors.Errorf("invalid configuration: %s: failed on %q validation", fe.Namespace(), fe.Tag())
		}
		return errors.Wrap(err, "invalid configuration")
	}

	if _, err := c.HTTPTimeout(); err != nil {
		return err
	}
	return nil
}

// HTTPTimeout returns the parsed Timeout,
// zero when not configured.
func (c *Config) HTTPTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0, errors.Errorf("invalid configuration: timeout: %q", c.Timeout)
	}
	return d, nil
}

// Redacted returns a copy of the configuration safe for printing.
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.APIKey != "" {
		cp.APIKey = "[REDACTED]"
	}
	return &cp
}

func yamlName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
	if name == "-" {
		return ""
	}
	return name
}
