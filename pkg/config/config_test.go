package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "warehouse-api", cfg.App.Name)
	assert.Equal(t, config.StoragePostgres, cfg.App.Storage)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Ledger.NumberingRetries)
	assert.Equal(t, time.Minute, cfg.Analytics.CacheTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LEDGER_NUMBERING_RETRIES", "5")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.App.Storage)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5, cfg.Ledger.NumberingRetries)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_InvalidStorage(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "warehouse", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/warehouse?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
