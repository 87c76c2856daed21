// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port of the web host.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20

	// DefaultRefreshInterval is the fixed period between automatic refreshes.
	DefaultRefreshInterval = 30 * time.Second

	// DefaultQuoteBaseURL is the public random-quote service.
	DefaultQuoteBaseURL = "https://api.quotable.io"

	// DefaultQuotePath is the random-quote endpoint below DefaultQuoteBaseURL.
	DefaultQuotePath = "/random"

	// DefaultRateLimitRPS is the sustained manual refresh rate per client.
	DefaultRateLimitRPS = 1.0

	// DefaultRateLimitBurst is the manual refresh burst per client.
	DefaultRateLimitBurst = 3

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 10

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 2

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 10

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// envPrefix is the prefix of environment variables read into the config.
	envPrefix = "APP_"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Services  ServicesConfig  `koanf:"services"  validate:"required"`
	Widget    WidgetConfig    `koanf:"widget"    validate:"required"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains settings of the web host's HTTP server.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains settings of the HTTP client used for the quote provider.
type ClientConfig struct {
	Timeout   time.Duration   `koanf:"timeout"   validate:"required,min=100ms"`
	Transport TransportConfig `koanf:"transport" validate:"required"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig contains configuration for downstream services.
type ServicesConfig struct {
	Quote ServiceEndpointConfig `koanf:"quote" validate:"required"`
}

// ServiceEndpointConfig contains configuration for a downstream service endpoint.
type ServiceEndpointConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Path    string `koanf:"path"     validate:"required,startswith=/"`
	Name    string `koanf:"name"     validate:"required"`
}

// WidgetConfig contains quote widget behavior.
type WidgetConfig struct {
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=100ms"`
}

// RateLimitConfig limits manual refreshes per client on the web host.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"     validate:"required_if=Enabled true,omitempty,gt=0"`
	Burst   int     `koanf:"burst"   validate:"required_if=Enabled true,omitempty,min=1"`
}

// Options controls where Load looks for configuration sources.
type Options struct {
	// Profile selects configs/{profile}.yaml. Empty skips the profile file.
	Profile string

	// ConfigDir is the directory holding base.yaml and profile files.
	ConfigDir string

	// EnvFile is an optional dotenv file. Missing files are ignored.
	EnvFile string
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quote-widget",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "127.0.0.1",
		"server.read_timeout":     "10s",
		"server.write_timeout":    "10s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quote-widget.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quote-widget",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "10s",
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"services.quote.base_url": DefaultQuoteBaseURL,
		"services.quote.path":     DefaultQuotePath,
		"services.quote.name":     "quote-service",

		"widget.refresh_interval": DefaultRefreshInterval.String(),
		"widget.request_timeout":  "10s",

		"ratelimit.enabled": true,
		"ratelimit.rps":     DefaultRateLimitRPS,
		"ratelimit.burst":   DefaultRateLimitBurst,
	}
}

// Load loads configuration from the working directory with the following
// precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. .env file
//  3. Profile config file (configs/{profile}.yaml)
//  4. Base config file (configs/base.yaml)
//  5. Default values
func Load(profile string) (*Config, error) {
	return LoadWithOptions(Options{
		Profile:   profile,
		ConfigDir: "configs",
		EnvFile:   ".env",
	})
}

// LoadWithOptions is Load with explicit source locations.
func LoadWithOptions(opts Options) (*Config, error) {
	k := koanf.New(".")
	keys := envKeyIndex()

	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if opts.ConfigDir != "" {
		err = loadFileIfExists(k, filepath.Join(opts.ConfigDir, "base.yaml"))
		if err != nil {
			return nil, fmt.Errorf("loading base config: %w", err)
		}

		if opts.Profile != "" {
			profilePath := filepath.Join(opts.ConfigDir, opts.Profile+".yaml")
			err = loadFileIfExists(k, profilePath)
			if err != nil {
				return nil, fmt.Errorf("loading profile config %q: %w", opts.Profile, err)
			}
		}
	}

	if opts.EnvFile != "" {
		err = loadDotEnvIfExists(k, opts.EnvFile, keys)
		if err != nil {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}

	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return envToKey(s, keys)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// QuoteEndpoint returns the full URL the widget fetches quotes from.
func (c *Config) QuoteEndpoint() string {
	return strings.TrimSuffix(c.Services.Quote.BaseURL, "/") + c.Services.Quote.Path
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// loadDotEnvIfExists merges APP_ entries of a dotenv file without touching
// the process environment.
func loadDotEnvIfExists(k *koanf.Koanf, path string, keys map[string]string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return err
	}

	values := make(map[string]any, len(vars))
	for name, value := range vars {
		if !strings.HasPrefix(name, envPrefix) {
			continue
		}
		values[envToKey(name, keys)] = value
	}

	return k.Load(confmap.Provider(values, "."), nil)
}

// envKeyIndex maps the underscore form of every known key to its dotted form,
// so APP_SERVICES_QUOTE_BASE_URL resolves to services.quote.base_url.
func envKeyIndex() map[string]string {
	d := defaults()
	index := make(map[string]string, len(d))

	for key := range d {
		index[strings.ReplaceAll(key, ".", "_")] = key
	}

	return index
}

// envToKey converts an APP_ variable name to a koanf key path.
func envToKey(name string, keys map[string]string) string {
	flat := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	if key, ok := keys[flat]; ok {
		return key
	}

	return strings.ReplaceAll(flat, "_", ".")
}
