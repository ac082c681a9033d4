package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4310,
			Host: "0.0.0.0",
		},
		Supabase: SupabaseConfig{
			Timeout: "10s",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "./logs/linweb.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
