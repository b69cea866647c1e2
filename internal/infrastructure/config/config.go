package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// SDK identification sent with every request
const (
	SDKName     = "Go"
	SDKPlatform = "server"
	SDKLanguage = "go"
	SDKVersion  = "0.1.0"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "APPWRITE"

// Config holds all client configuration. Build it once and pass it by
// pointer; nothing in the client mutates it after construction.
type Config struct {
	Endpoint           string   `split_words:"true" default:"https://cloud.appwrite.io/v1" yaml:"endpoint" toml:"endpoint"`
	Project            string   `split_words:"true" yaml:"project" toml:"project"`
	Key                string   `split_words:"true" yaml:"key" toml:"key"`
	JWT                string   `split_words:"true" yaml:"jwt" toml:"jwt"`
	Locale             string   `split_words:"true" yaml:"locale" toml:"locale"`
	Session            string   `split_words:"true" yaml:"session" toml:"session"`
	ForwardedFor       string   `split_words:"true" yaml:"forwarded_for" toml:"forwarded_for"`
	ForwardedUserAgent string   `split_words:"true" yaml:"forwarded_user_agent" toml:"forwarded_user_agent"`
	SelfSigned         bool     `split_words:"true" default:"false" yaml:"self_signed" toml:"self_signed"`
	ResponseFormat     string   `split_words:"true" default:"1.4.0" yaml:"response_format" toml:"response_format"`
	Timeout            Duration `split_words:"true" default:"0s" yaml:"timeout" toml:"timeout"`

	Retry     RetryConfig     `split_words:"true" yaml:"retry" toml:"retry"`
	RateLimit RateLimitConfig `split_words:"true" yaml:"rate_limit" toml:"rate_limit"`
	Breaker   BreakerConfig   `split_words:"true" yaml:"breaker" toml:"breaker"`
	Logging   LogConfig       `split_words:"true" yaml:"logging" toml:"logging"`
}

// RetryConfig holds the opt-in retry policy. MaxRetries of 0 disables
// retries entirely.
type RetryConfig struct {
	MaxRetries int      `split_words:"true" default:"0" yaml:"max_retries" toml:"max_retries"`
	MinWait    Duration `split_words:"true" default:"1s" yaml:"min_wait" toml:"min_wait"`
	MaxWait    Duration `split_words:"true" default:"30s" yaml:"max_wait" toml:"max_wait"`
}

// RateLimitConfig holds client-side rate limiting. Zero means unlimited.
type RateLimitConfig struct {
	RequestsPerSecond float64 `split_words:"true" default:"0" yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int     `split_words:"true" default:"1" yaml:"burst" toml:"burst"`
}

// BreakerConfig holds the opt-in circuit breaker.
type BreakerConfig struct {
	Enabled             bool     `split_words:"true" default:"false" yaml:"enabled" toml:"enabled"`
	ConsecutiveFailures uint32   `split_words:"true" default:"5" yaml:"consecutive_failures" toml:"consecutive_failures"`
	Timeout             Duration `split_words:"true" default:"30s" yaml:"timeout" toml:"timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `split_words:"true" default:"info" yaml:"level" toml:"level"`
	Development bool   `split_words:"true" default:"false" yaml:"development" toml:"development"`
}

// Duration is a time.Duration that decodes from strings such as "30s" in
// environment variables, YAML and TOML alike.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Load loads configuration from APPWRITE_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads a YAML (.yaml, .yml) or TOML (.toml) file. Keys absent from
// the file keep their Default() values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Endpoint:       "https://cloud.appwrite.io/v1",
		ResponseFormat: "1.4.0",
		Retry: RetryConfig{
			MaxRetries: 0,
			MinWait:    Duration(time.Second),
			MaxWait:    Duration(30 * time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 0,
			Burst:             1,
		},
		Breaker: BreakerConfig{
			Enabled:             false,
			ConsecutiveFailures: 5,
			Timeout:             Duration(30 * time.Second),
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate checks the configuration for values the transport cannot use.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must use http or https scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint %q has no host", c.Endpoint)
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries cannot be negative")
	}
	if c.Retry.MinWait > c.Retry.MaxWait {
		return fmt.Errorf("retry.min_wait cannot exceed retry.max_wait")
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("rate_limit.requests_per_second cannot be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

// UserAgent returns the user-agent header value
func UserAgent() string {
	return fmt.Sprintf("AppwriteGoSDK/%s (%s; %s)", SDKVersion, runtime.GOOS, runtime.GOARCH)
}

// Headers derives the default header set. The map is freshly allocated on
// every call; callers may keep or modify it.
func (c *Config) Headers() map[string]string {
	headers := map[string]string{
		"content-type":               "application/json",
		"user-agent":                 UserAgent(),
		"x-sdk-name":                 SDKName,
		"x-sdk-platform":             SDKPlatform,
		"x-sdk-language":             SDKLanguage,
		"x-sdk-version":              SDKVersion,
		"X-Appwrite-Response-Format": c.ResponseFormat,
	}

	optional := []struct {
		name  string
		value string
	}{
		{"X-Appwrite-Project", c.Project},
		{"X-Appwrite-Key", c.Key},
		{"X-Appwrite-JWT", c.JWT},
		{"X-Appwrite-Locale", c.Locale},
		{"X-Appwrite-Session", c.Session},
		{"X-Forwarded-For", c.ForwardedFor},
		{"X-Forwarded-User-Agent", c.ForwardedUserAgent},
	}
	for _, h := range optional {
		if h.value != "" {
			headers[h.name] = h.value
		}
	}

	if c.ResponseFormat == "" {
		delete(headers, "X-Appwrite-Response-Format")
	}

	return headers
}
