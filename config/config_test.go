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

	path := filepath.Join(t.TempDir(), "tradedesk.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  demo_mode: true
auth:
  jwt_secret: secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tradedesk", cfg.App.Name)
	assert.Equal(t, ":3000", cfg.Server.Listen)
	assert.Equal(t, 5*time.Second, cfg.Prices.Interval)
	assert.Equal(t, 0.01, cfg.Prices.Jitter)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "tradedesk.events", cfg.AMQP.Exchange)
	assert.Equal(t, 24*time.Hour, cfg.App.SandboxTTL)
	assert.Equal(t, 10*time.Minute, cfg.App.SandboxSweepInterval)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
auth:
  jwt_secret: from-file
prices:
  interval: 2s
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_SSLMODE", "disable")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Second, cfg.Prices.Interval)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DSN(), "sslmode=disable")
}

func TestLoadRejectsMissingDatabaseOutsideDemo(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: secret
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadJitter(t *testing.T) {
	path := writeConfig(t, `
app:
  demo_mode: true
auth:
  jwt_secret: secret
prices:
  jitter: 1.5
`)

	_, err := Load(path)
	assert.Error(t, err)
}
