package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Supabase SupabaseConfig `toml:"supabase"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host" env:"LINWEB_SERVER_HOST"`
	Port int    `toml:"port" env:"LINWEB_SERVER_PORT"`
}

// SupabaseConfig contains settings for the hosted auth provider and data store.
type SupabaseConfig struct {
	URL        string `toml:"url" env:"LINWEB_SUPABASE_URL"`
	ServiceKey string `toml:"service_key" env:"LINWEB_SUPABASE_SERVICE_KEY"`
	Timeout    string `toml:"timeout" env:"LINWEB_SUPABASE_TIMEOUT"`
}

// GetTimeout parses and returns the outbound request timeout.
func (c *SupabaseConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level" env:"LINWEB_LOG_LEVEL"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path" env:"LINWEB_LOG_FILE"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// LINWEB_* environment variables override file values.
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return config, nil
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate returns a list of problems with mandatory configuration.
// An empty slice means the config is usable.
func (c *Config) Validate() []string {
	var issues []string
	if c.Supabase.URL == "" {
		issues = append(issues, "supabase.url is required (or LINWEB_SUPABASE_URL)")
	}
	if c.Supabase.ServiceKey == "" {
		issues = append(issues, "supabase.service_key is required (or LINWEB_SUPABASE_SERVICE_KEY)")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	return issues
}
