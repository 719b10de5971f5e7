package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchfield/storefront/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("file_with_defaults", func(t *testing.T) {
		path := writeConfig(t, `
postgres:
  host: db.internal
  user: storefront
  dbname: storefront
`)

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "5432", cfg.Postgres.Port)
		assert.Equal(t, "disable", cfg.Postgres.SSLMode)
		assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
		assert.Equal(t, 30*time.Minute, cfg.Postgres.MaxConnLifetime)
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		path := writeConfig(t, `
app:
  port: "8080"
postgres:
  host: db.internal
  user: storefront
  dbname: storefront
`)
		t.Setenv("APP_PORT", "9090")
		t.Setenv("DB_HOST", "10.0.0.5")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "10.0.0.5", cfg.Postgres.Host)
	})

	t.Run("missing_host_rejected", func(t *testing.T) {
		path := writeConfig(t, `
postgres:
  user: storefront
  dbname: storefront
`)

		_, err := config.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "host is required")
	})

	t.Run("missing_file_rejected", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestPostgresConfig_URL(t *testing.T) {
	p := config.PostgresConfig{
		Host: "localhost", Port: "5432", User: "u", Password: "p", DBName: "store", SSLMode: "disable",
	}

	assert.Equal(t, "postgres://u:p@localhost:5432/store?sslmode=disable", p.URL("postgres"))
	assert.Equal(t, "pgx5://u:p@localhost:5432/store?sslmode=disable", p.URL("pgx5"))
}
