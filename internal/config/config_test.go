package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  port: 8080
  env: production
database:
  driver: sqlite
  url: "file::memory:"
reviews:
  code_ttl: 10m
  company_domains:
    - ticker: ACME
      company_name: Acme Corp
      domains: [acme.com]
cors:
  allowed_origins: ["http://localhost:5173"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Reviews.CodeTTL.Duration)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	require.Len(t, cfg.Reviews.CompanyDomains, 1)
	assert.Equal(t, "ACME", cfg.Reviews.CompanyDomains[0].Ticker)
	// defaults
	assert.Equal(t, 3, cfg.Reviews.MaxCodesPerDay)
	assert.Equal(t, 180, cfg.Reviews.CooldownDays)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL.Duration)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[server]
port = 9000

[jobs]
backend = "redis"
ttl = "2h"

[analysis]
command = ["python3", "run.py", "--ticker", "{ticker}"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Jobs.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Jobs.TTL.Duration)
	assert.Equal(t, "{ticker}", cfg.Analysis.Command[3])
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("SERVER_PORT", "4000")
	t.Setenv("DEMO_MODE_ENABLED", "true")
	t.Setenv("FRONTEND_URL", "http://a.example, http://b.example")
	t.Setenv("NESSIE_API_KEY", "nessie-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.True(t, cfg.Demo.Enabled)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "nessie-key", cfg.Nessie.APIKey)
	assert.Equal(t, DefaultCompanyDomains, cfg.Reviews.CompanyDomains)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeFile(t, "config.ini", "port=1")
	_, err := Load(path)
	assert.Error(t, err)
}
