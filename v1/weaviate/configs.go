package weaviate

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds connection and behavior settings for the Weaviate client.
//
// It can be filled programmatically, from YAML via LoadConfig, or from
// environment variables by the surrounding application.
//
// Example (builder style):
//
//	cfg := weaviate.FromEndpoint("weaviate.internal").
//	    WithApiKey(os.Getenv("WEAVIATE_API_KEY")).
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Scheme is "http" or "https". Defaults to "http".
	Scheme string `yaml:"scheme" env:"WEAVIATE_SCHEME"`

	// Endpoint is the hostname of the Weaviate server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" env:"WEAVIATE_ENDPOINT"`

	// Port is the REST/GraphQL port. Defaults to 8080.
	Port int `yaml:"port" env:"WEAVIATE_PORT"`

	// ApiKey is the optional bearer token for secured deployments.
	ApiKey string `yaml:"api_key" env:"WEAVIATE_API_KEY"`

	// Timeout bounds each request.
	Timeout time.Duration `yaml:"timeout" env:"WEAVIATE_TIMEOUT"`

	// ConnectTimeout bounds the startup readiness check.
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"WEAVIATE_CONNECT_TIMEOUT"`

	// SkipReadyCheck disables the readiness probe during construction.
	SkipReadyCheck bool `yaml:"skip_ready_check" env:"WEAVIATE_SKIP_READY_CHECK"`

	// ConsistencyLevel applies to batch writes: ONE, QUORUM or ALL.
	// Empty leaves the server default.
	ConsistencyLevel string `yaml:"consistency_level" env:"WEAVIATE_CONSISTENCY_LEVEL"`

	// BatchSize is the chunk size for batched object inserts.
	BatchSize int `yaml:"batch_size" env:"WEAVIATE_BATCH_SIZE"`

	// DefaultLimit is the result limit applied when a request gives none.
	DefaultLimit int `yaml:"default_limit" env:"WEAVIATE_DEFAULT_LIMIT"`

	// MaxConcurrentSearches bounds parallelism of batched Search calls.
	MaxConcurrentSearches int `yaml:"max_concurrent_searches" env:"WEAVIATE_MAX_CONCURRENT_SEARCHES"`

	// RateLimit caps outgoing requests per second. Zero disables limiting.
	RateLimit float64 `yaml:"rate_limit" env:"WEAVIATE_RATE_LIMIT"`

	// RateBurst is the limiter's burst size when RateLimit is set.
	RateBurst int `yaml:"rate_burst" env:"WEAVIATE_RATE_BURST"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Scheme:                "http",
		Endpoint:              "localhost",
		Port:                  8080,
		Timeout:               10 * time.Second,
		ConnectTimeout:        5 * time.Second,
		BatchSize:             100,
		DefaultLimit:          10,
		MaxConcurrentSearches: 10,
		RateBurst:             1,
	}
}

// FromEndpoint returns a default config pre-filled with a specific endpoint.
func FromEndpoint(host string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = host
	return cfg
}

// LoadConfig reads a YAML file into a config pre-filled with defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("weaviate: read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("weaviate: parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the config for values the client cannot work with.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("weaviate: endpoint must not be empty")
	}
	if c.Scheme != "http" && c.Scheme != "https" {
		return fmt.Errorf("weaviate: scheme must be http or https, got %q", c.Scheme)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("weaviate: port %d out of range", c.Port)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("weaviate: batch size must be positive")
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("weaviate: default limit must be positive")
	}
	if c.MaxConcurrentSearches <= 0 {
		return fmt.Errorf("weaviate: max concurrent searches must be positive")
	}
	switch c.ConsistencyLevel {
	case "", "ONE", "QUORUM", "ALL":
	default:
		return fmt.Errorf("weaviate: unknown consistency level %q", c.ConsistencyLevel)
	}
	return nil
}

// Builder-style helpers (optional, ergonomic)

func (c *Config) WithScheme(scheme string) *Config {
	c.Scheme = scheme
	return c
}

func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	c.ConnectTimeout = d
	return c
}

func (c *Config) WithConsistencyLevel(level string) *Config {
	c.ConsistencyLevel = level
	return c
}

func (c *Config) WithBatchSize(n int) *Config {
	c.BatchSize = n
	return c
}

func (c *Config) WithRateLimit(perSecond float64, burst int) *Config {
	c.RateLimit = perSecond
	c.RateBurst = burst
	return c
}

func (c *Config) WithSkipReadyCheck(skip bool) *Config {
	c.SkipReadyCheck = skip
	return c
}

func (c *Config) baseURL() string {
	return fmt.Sprintf("%s://%s:%d", c.Scheme, c.Endpoint, c.Port)
}
