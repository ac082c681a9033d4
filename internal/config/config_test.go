package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "linweb.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFiles_Defaults(t *testing.T) {
	cfg, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 4310, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10*time.Second, cfg.Supabase.GetTimeout())
}

func TestLoadFromFiles_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
[server]
port = 8080

[supabase]
url = "https://example.supabase.co"
service_key = "service-role-key"
timeout = "5s"
`)

	cfg, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://example.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, 5*time.Second, cfg.Supabase.GetTimeout())
	// untouched sections keep defaults
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFiles_LaterFileWins(t *testing.T) {
	first := writeConfigFile(t, "[server]\nport = 8080\n")
	second := filepath.Join(t.TempDir(), "override.toml")
	require.NoError(t, os.WriteFile(second, []byte("[server]\nport = 9090\n"), 0o600))

	cfg, err := LoadFromFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadFromFiles_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
[server]
port = 8080

[supabase]
url = "https://file.supabase.co"
`)
	t.Setenv("LINWEB_SERVER_PORT", "9999")
	t.Setenv("LINWEB_SUPABASE_URL", "https://env.supabase.co")

	cfg, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "https://env.supabase.co", cfg.Supabase.URL)
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/linweb.toml")
	assert.Error(t, err)
}

func TestLoadFromFiles_MalformedFile(t *testing.T) {
	path := writeConfigFile(t, "not toml at all [[[")
	_, err := LoadFromFiles(path)
	assert.Error(t, err)
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 7070, "127.0.0.1")
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	// zero/empty values leave config untouched
	ApplyFlagOverrides(cfg, 0, "")
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
}

func TestValidate_MissingSupabaseSettings(t *testing.T) {
	cfg := NewDefaultConfig()

	issues := cfg.Validate()
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0], "supabase.url")
	assert.Contains(t, issues[1], "supabase.service_key")
}

func TestValidate_OK(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Supabase.URL = "https://example.supabase.co"
	cfg.Supabase.ServiceKey = "key"

	assert.Empty(t, cfg.Validate())
}

func TestGetTimeout_InvalidFallsBack(t *testing.T) {
	c := SupabaseConfig{Timeout: "soon"}
	assert.Equal(t, 10*time.Second, c.GetTimeout())
}
