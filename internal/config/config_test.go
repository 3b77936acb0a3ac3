package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PULSEFORGE_API_URL", "PULSEFORGE_DB", "PULSEFORGE_TIMEOUT_SECONDS", "PULSEFORGE_LOG_REQUESTS", "PULSEFORGE_LOG_USE_CASES"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 15, cfg.RequestTimeoutSeconds)
	assert.False(t, cfg.LogRequests)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, ExpandHome("~/.pulseforge/pulseforge.db"), cfg.StatePath)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PF_HOST", "api.example.test")
	path := writeConfig(t, `
api_base_url: https://${PF_HOST}/
request_timeout_seconds: 30
log_requests: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.test", cfg.APIBaseURL)
	assert.Equal(t, 30, cfg.RequestTimeoutSeconds)
	assert.True(t, cfg.LogRequests)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "api_base_url: http://file.test\nrequest_timeout_seconds: 30\n")
	t.Setenv("PULSEFORGE_API_URL", "http://env.test")
	t.Setenv("PULSEFORGE_DB", "/tmp/pf.db")
	t.Setenv("PULSEFORGE_TIMEOUT_SECONDS", "5")
	t.Setenv("PULSEFORGE_LOG_USE_CASES", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env.test", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/pf.db", cfg.StatePath)
	assert.Equal(t, 5, cfg.RequestTimeoutSeconds)
	assert.True(t, cfg.LogUseCases)
}

func TestLoad_InvalidEnvValuesIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("PULSEFORGE_TIMEOUT_SECONDS", "soon")
	t.Setenv("PULSEFORGE_LOG_REQUESTS", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.RequestTimeoutSeconds)
	assert.False(t, cfg.LogRequests)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "api_base_url: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"https", func(c *Config) { c.APIBaseURL = "https://pf.test" }, false},
		{"no scheme", func(c *Config) { c.APIBaseURL = "pf.test" }, true},
		{"ftp", func(c *Config) { c.APIBaseURL = "ftp://pf.test" }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeoutSeconds = 0 }, true},
		{"empty state path", func(c *Config) { c.StatePath = " " }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("PULSEFORGE_CONFIG", "")
	assert.Equal(t, "~/.pulseforge/config.yaml", DefaultPath())

	t.Setenv("PULSEFORGE_CONFIG", "/etc/pf.yaml")
	assert.Equal(t, "/etc/pf.yaml", DefaultPath())
}
