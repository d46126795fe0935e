package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
http:
  addr: ":9000"
database:
  dsn: "file-dsn"
auth:
  access_secret: "a"
  refresh_secret: "r"
  session_key: "`+strings.Repeat("k", 32)+`"
kafka:
  brokers: ["k1:9092"]
`)
	t.Setenv("CONFIG_PATH", dir)
	t.Setenv("TEAMSOCIAL_DATABASE_DSN", "env-dsn")
	t.Setenv("TEAMSOCIAL_REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, "env-dsn", cfg.Database.DSN)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"k1:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_CommaSeparatedBrokers(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("TEAMSOCIAL_DATABASE_DSN", "dsn")
	t.Setenv("TEAMSOCIAL_AUTH_ACCESS_SECRET", "a")
	t.Setenv("TEAMSOCIAL_AUTH_REFRESH_SECRET", "r")
	t.Setenv("TEAMSOCIAL_AUTH_SESSION_KEY", strings.Repeat("k", 32))
	t.Setenv("TEAMSOCIAL_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestValidate(t *testing.T) {
	err := (&Config{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dsn")
	assert.Contains(t, err.Error(), "session_key")
}
