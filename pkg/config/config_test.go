package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/synapsecrm/mcp-bridge/pkg/observability"
)

// TestGetEnv tests the getEnv helper function
func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns env value when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when env not set",
			key:          "TEST_VAR_NOT_SET",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvDuration tests duration parsing from the environment
func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue time.Duration
		want         time.Duration
	}{
		{"go duration string", "45s", 30 * time.Second, 45 * time.Second},
		{"bare seconds", "10", 30 * time.Second, 10 * time.Second},
		{"unset uses default", "", 30 * time.Second, 30 * time.Second},
		{"garbage uses default", "not-a-duration", 30 * time.Second, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("TEST_DURATION", tt.envValue)
			}
			got := getEnvDuration("TEST_DURATION", tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestLoadConfig_Defaults verifies the built-in defaults
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Backend.URL != "http://localhost:5000" {
		t.Errorf("Backend.URL = %v, want http://localhost:5000", cfg.Backend.URL)
	}
	if cfg.Backend.APIPrefix != "/api" {
		t.Errorf("Backend.APIPrefix = %v, want /api", cfg.Backend.APIPrefix)
	}
	if cfg.Backend.RequestTimeout != 30*time.Second {
		t.Errorf("Backend.RequestTimeout = %v, want 30s", cfg.Backend.RequestTimeout)
	}
	if cfg.Session.StoreType != SessionStoreFile {
		t.Errorf("Session.StoreType = %v, want file", cfg.Session.StoreType)
	}
	if cfg.Observability.LogLevel != observability.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.Observability.LogLevel)
	}
	if !cfg.Observability.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
}

// TestLoadConfig_EnvOverrides verifies environment variables override defaults
func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BRIDGE_BACKEND_URL", "https://crm.example.com")
	t.Setenv("BRIDGE_API_PREFIX", "/v2")
	t.Setenv("BRIDGE_REQUEST_TIMEOUT", "10s")
	t.Setenv("BRIDGE_HTTP_PORT", "9191")
	t.Setenv("BRIDGE_LOG_LEVEL", "debug")
	t.Setenv("BRIDGE_SESSION_STORE", "redis")
	t.Setenv("BRIDGE_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Backend.URL != "https://crm.example.com" {
		t.Errorf("Backend.URL = %v", cfg.Backend.URL)
	}
	if cfg.Backend.APIPrefix != "/v2" {
		t.Errorf("Backend.APIPrefix = %v", cfg.Backend.APIPrefix)
	}
	if cfg.Backend.RequestTimeout != 10*time.Second {
		t.Errorf("Backend.RequestTimeout = %v", cfg.Backend.RequestTimeout)
	}
	if cfg.Server.Port != "9191" {
		t.Errorf("Server.Port = %v", cfg.Server.Port)
	}
	if cfg.Observability.LogLevel != observability.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.Observability.LogLevel)
	}
	if cfg.Session.StoreType != SessionStoreRedis {
		t.Errorf("Session.StoreType = %v, want redis", cfg.Session.StoreType)
	}
}

// TestLoadConfig_YAMLOverlay verifies the optional config file is applied
// under environment overrides
func TestLoadConfig_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	data := []byte(`
backend:
  url: http://file.example.com
  api_prefix: /file
session:
  store: file
observability:
  log_level: warn
  metrics_enabled: false
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BRIDGE_CONFIG_FILE", path)
	t.Setenv("BRIDGE_API_PREFIX", "/env")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Backend.URL != "http://file.example.com" {
		t.Errorf("Backend.URL = %v, want file value", cfg.Backend.URL)
	}
	if cfg.Backend.APIPrefix != "/env" {
		t.Errorf("Backend.APIPrefix = %v, env should win over file", cfg.Backend.APIPrefix)
	}
	if cfg.Observability.LogLevel != observability.WarnLevel {
		t.Errorf("LogLevel = %v, want warn", cfg.Observability.LogLevel)
	}
	if cfg.Observability.MetricsEnabled {
		t.Error("MetricsEnabled should be false from file")
	}
}

// TestValidate tests configuration validation rules
func TestValidate(t *testing.T) {
	base := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"missing backend URL", func(c *Config) { c.Backend.URL = "" }, true},
		{"backend URL without scheme", func(c *Config) { c.Backend.URL = "localhost:5000" }, true},
		{"prefix without slash", func(c *Config) { c.Backend.APIPrefix = "api" }, true},
		{"zero request timeout", func(c *Config) { c.Backend.RequestTimeout = 0 }, true},
		{"unknown session store", func(c *Config) { c.Session.StoreType = "memcached" }, true},
		{"redis store without URL", func(c *Config) { c.Session.StoreType = SessionStoreRedis }, true},
		{"redis store with URL", func(c *Config) {
			c.Session.StoreType = SessionStoreRedis
			c.Session.RedisURL = "redis://localhost:6379"
		}, false},
		{"otel enabled without endpoint", func(c *Config) {
			c.Observability.OTelEnabled = true
			c.Observability.OTelEndpoint = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
