package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sku-matrix-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendPostgres, cfg.Sequence.Backend)
	assert.Equal(t, "7890000", cfg.Sequence.BarcodePrefix)
	assert.True(t, cfg.Sequence.OfflineFallback)
	assert.Equal(t, 3*time.Second, cfg.Sequence.AllocateTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("SEQUENCE_BACKEND", "redis")
	t.Setenv("BARCODE_PREFIX", "789123")
	t.Setenv("BARCODE_OFFLINE_FALLBACK", "false")
	t.Setenv("ALLOCATE_TIMEOUT_MS", "500")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendRedis, cfg.Sequence.Backend)
	assert.Equal(t, "789123", cfg.Sequence.BarcodePrefix)
	assert.False(t, cfg.Sequence.OfflineFallback)
	assert.Equal(t, 500*time.Millisecond, cfg.Sequence.AllocateTimeout)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_PrefijoInvalido(t *testing.T) {
	t.Setenv("BARCODE_PREFIX", "78A")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_BackendDesconocido(t *testing.T) {
	t.Setenv("SEQUENCE_BACKEND", "etcd")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "sku", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/sku?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestLoad_PrefijoEnRangoProvisional(t *testing.T) {
	t.Setenv("BARCODE_PREFIX", "2000123")
	_, err := config.Load()
	assert.Error(t, err)
}
