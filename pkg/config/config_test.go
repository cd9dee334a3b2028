package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("OPTIMIZATION_INTERVAL_MINUTES", "30")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 30*time.Minute, cfg.Optimization.Interval)
	assert.Equal(t, "default", cfg.Optimization.Scenario)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 10*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, "", cfg.ML.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.ML.Timeout)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "grid", Password: "p@ss:word", DBName: "gridaura", SSLMode: "disable"}
	assert.Equal(t, "postgres://grid:p%40ss%3Aword@db:5432/gridaura?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
