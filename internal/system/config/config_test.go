package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: http://backend.local
security:
  jwt_secret: secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Backend.TokenTimeout)
	assert.Equal(t, 3, cfg.Security.MaxAuthFailures)
	assert.Equal(t, 50, cfg.Audit.BoardActivityLimit)
	assert.Equal(t, 25, cfg.Audit.SchoolActivityLimit)
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: http://backend.local
security:
  jwt_secret: secret
`)
	t.Setenv("HOURS_DASH_SERVER_PORT", "9090")
	t.Setenv("HOURS_DASH_BACKEND_BASE_URL", "http://override.local")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://override.local", cfg.Backend.BaseURL)
}

func TestLoad_RequiresSecretWhenVerifying(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: http://backend.local
security:
  verify_tokens: true
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestValidateConfig_DatabaseRequiredFields(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080},
		Backend:  BackendConfig{BaseURL: "http://x", TokenTimeout: time.Second},
		Security: SecurityConfig{MaxAuthFailures: 3},
		Audit:    AuditConfig{BoardActivityLimit: 50, SchoolActivityLimit: 25},
		Database: DatabaseConfig{Enabled: true},
	}

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hostname")

	cfg.Database.Hostname = "db"
	cfg.Database.Database = "hours"
	assert.NoError(t, validateConfig(cfg))
}

func TestGetEndpointURL(t *testing.T) {
	b := &BackendConfig{BaseURL: "http://backend.local/"}
	assert.Equal(t, "http://backend.local/users/all", b.GetEndpointURL("/users/all"))
}
