package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CONFIG_FILE", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("ADMIN_JWT_TTL_MINUTES", "30")
	t.Setenv("JWT_TTL_MINUTES", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 60*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AdminTTL)
	assert.Contains(t, cfg.Database.DSN(), "dbname=car_rental")
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
database:
  url: postgres://app@db/rental
redis:
  addr: redis:6379
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "postgres://app@db/rental", cfg.Database.DSN())
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL_MINUTES", "soon")

	_, err := Load()
	assert.Error(t, err)
}
