// Package config loads bridge configuration from an optional YAML file
// and environment variables. Environment variables always win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/synapsecrm/mcp-bridge/pkg/observability"
)

// Session store types.
const (
	SessionStoreFile  = "file"
	SessionStoreRedis = "redis"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Backend CRM API configuration
	Backend BackendConfig

	// Session storage configuration
	Session SessionConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// BackendConfig holds the CRM REST backend configuration
type BackendConfig struct {
	// URL is the backend base URL, e.g. http://localhost:5000
	URL string
	// APIPrefix is prepended to every endpoint path, e.g. /api
	APIPrefix string
	// RequestTimeout bounds each forwarded backend call
	RequestTimeout time.Duration
}

// SessionConfig holds session persistence configuration
type SessionConfig struct {
	// StoreType is "file" or "redis"
	StoreType string
	// FilePath overrides the default ~/.synapse/session.json location
	FilePath string
	// RedisURL is required when StoreType is "redis"
	RedisURL string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel observability.LogLevel

	MetricsEnabled bool

	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool
}

// fileConfig mirrors Config for the optional YAML overlay. Zero values
// mean "not set" and leave the built-in default in place.
type fileConfig struct {
	Server struct {
		Host            string        `yaml:"host"`
		Port            string        `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		IdleTimeout     time.Duration `yaml:"idle_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Backend struct {
		URL            string        `yaml:"url"`
		APIPrefix      string        `yaml:"api_prefix"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
	} `yaml:"backend"`
	Session struct {
		Store    string `yaml:"store"`
		FilePath string `yaml:"file_path"`
		RedisURL string `yaml:"redis_url"`
	} `yaml:"session"`
	Observability struct {
		LogLevel       string `yaml:"log_level"`
		MetricsEnabled *bool  `yaml:"metrics_enabled"`
		OTelEnabled    *bool  `yaml:"otel_enabled"`
		OTelEndpoint   string `yaml:"otel_endpoint"`
		OTelInsecure   *bool  `yaml:"otel_insecure"`
	} `yaml:"observability"`
}

// LoadConfig loads configuration: built-in defaults, then the YAML file
// named by BRIDGE_CONFIG_FILE (if any), then environment overrides.
func LoadConfig() (*Config, error) {
	defaults := defaultConfig()

	if path := os.Getenv("BRIDGE_CONFIG_FILE"); path != "" {
		if err := applyFile(defaults, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	cfg := loadFromEnv(defaults)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Backend: BackendConfig{
			URL:            "http://localhost:5000",
			APIPrefix:      "/api",
			RequestTimeout: 30 * time.Second,
		},
		Session: SessionConfig{
			StoreType: SessionStoreFile,
		},
		Observability: ObservabilityConfig{
			LogLevel:           observability.InfoLevel,
			MetricsEnabled:     true,
			OTelEnabled:        false,
			OTelEndpoint:       "localhost:4317",
			OTelServiceName:    "mcp-bridge",
			OTelServiceVersion: "1.0.0",
			OTelInsecure:       true,
		},
	}
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	if fc.Server.Host != "" {
		cfg.Server.Host = fc.Server.Host
	}
	if fc.Server.Port != "" {
		cfg.Server.Port = fc.Server.Port
	}
	if fc.Server.ReadTimeout > 0 {
		cfg.Server.ReadTimeout = fc.Server.ReadTimeout
	}
	if fc.Server.WriteTimeout > 0 {
		cfg.Server.WriteTimeout = fc.Server.WriteTimeout
	}
	if fc.Server.IdleTimeout > 0 {
		cfg.Server.IdleTimeout = fc.Server.IdleTimeout
	}
	if fc.Server.ShutdownTimeout > 0 {
		cfg.Server.ShutdownTimeout = fc.Server.ShutdownTimeout
	}
	if fc.Backend.URL != "" {
		cfg.Backend.URL = fc.Backend.URL
	}
	if fc.Backend.APIPrefix != "" {
		cfg.Backend.APIPrefix = fc.Backend.APIPrefix
	}
	if fc.Backend.RequestTimeout > 0 {
		cfg.Backend.RequestTimeout = fc.Backend.RequestTimeout
	}
	if fc.Session.Store != "" {
		cfg.Session.StoreType = fc.Session.Store
	}
	if fc.Session.FilePath != "" {
		cfg.Session.FilePath = fc.Session.FilePath
	}
	if fc.Session.RedisURL != "" {
		cfg.Session.RedisURL = fc.Session.RedisURL
	}
	if fc.Observability.LogLevel != "" {
		cfg.Observability.LogLevel = observability.ParseLogLevel(fc.Observability.LogLevel)
	}
	if fc.Observability.MetricsEnabled != nil {
		cfg.Observability.MetricsEnabled = *fc.Observability.MetricsEnabled
	}
	if fc.Observability.OTelEnabled != nil {
		cfg.Observability.OTelEnabled = *fc.Observability.OTelEnabled
	}
	if fc.Observability.OTelEndpoint != "" {
		cfg.Observability.OTelEndpoint = fc.Observability.OTelEndpoint
	}
	if fc.Observability.OTelInsecure != nil {
		cfg.Observability.OTelInsecure = *fc.Observability.OTelInsecure
	}

	return nil
}

func loadFromEnv(defaults *Config) *Config {
	cfg := *defaults

	cfg.Server.Host = getEnv("BRIDGE_HTTP_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnv("BRIDGE_HTTP_PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout = getEnvDuration("BRIDGE_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getEnvDuration("BRIDGE_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = getEnvDuration("BRIDGE_IDLE_TIMEOUT", cfg.Server.IdleTimeout)
	cfg.Server.ShutdownTimeout = getEnvDuration("BRIDGE_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Backend.URL = getEnv("BRIDGE_BACKEND_URL", cfg.Backend.URL)
	cfg.Backend.APIPrefix = getEnv("BRIDGE_API_PREFIX", cfg.Backend.APIPrefix)
	cfg.Backend.RequestTimeout = getEnvDuration("BRIDGE_REQUEST_TIMEOUT", cfg.Backend.RequestTimeout)

	cfg.Session.StoreType = getEnv("BRIDGE_SESSION_STORE", cfg.Session.StoreType)
	cfg.Session.FilePath = getEnv("BRIDGE_SESSION_FILE", cfg.Session.FilePath)
	cfg.Session.RedisURL = getEnv("BRIDGE_REDIS_URL", cfg.Session.RedisURL)

	if level := os.Getenv("BRIDGE_LOG_LEVEL"); level != "" {
		cfg.Observability.LogLevel = observability.ParseLogLevel(level)
	}
	cfg.Observability.MetricsEnabled = getEnvBool("BRIDGE_METRICS_ENABLED", cfg.Observability.MetricsEnabled)
	cfg.Observability.OTelEnabled = getEnvBool("BRIDGE_OTEL_ENABLED", cfg.Observability.OTelEnabled)
	cfg.Observability.OTelEndpoint = getEnv("BRIDGE_OTEL_ENDPOINT", cfg.Observability.OTelEndpoint)
	cfg.Observability.OTelServiceName = getEnv("BRIDGE_OTEL_SERVICE_NAME", cfg.Observability.OTelServiceName)
	cfg.Observability.OTelServiceVersion = getEnv("BRIDGE_OTEL_SERVICE_VERSION", cfg.Observability.OTelServiceVersion)
	cfg.Observability.OTelInsecure = getEnvBool("BRIDGE_OTEL_INSECURE", cfg.Observability.OTelInsecure)

	return &cfg
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Backend.URL == "" {
		return fmt.Errorf("backend URL is required")
	}
	if !strings.HasPrefix(c.Backend.URL, "http://") && !strings.HasPrefix(c.Backend.URL, "https://") {
		return fmt.Errorf("backend URL must start with http:// or https://: %s", c.Backend.URL)
	}
	if c.Backend.APIPrefix != "" && !strings.HasPrefix(c.Backend.APIPrefix, "/") {
		return fmt.Errorf("API prefix must start with /: %s", c.Backend.APIPrefix)
	}
	if c.Backend.RequestTimeout <= 0 {
		return fmt.Errorf("backend request timeout must be positive")
	}

	switch c.Session.StoreType {
	case SessionStoreFile:
		// FilePath may be empty; the store falls back to the home directory.
	case SessionStoreRedis:
		if c.Session.RedisURL == "" {
			return fmt.Errorf("redis URL is required for redis session storage")
		}
	default:
		return fmt.Errorf("invalid session store type: %s (must be file or redis)", c.Session.StoreType)
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default.
// Accepts Go duration strings ("30s") or bare seconds ("30").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
