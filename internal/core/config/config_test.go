package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PHARMACY_API_URL", "https://api.pharmacy.test")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 10, cfg.Pharmacy.ReadTimeoutSeconds)
	assert.Equal(t, 30, cfg.Pharmacy.WriteTimeoutSeconds)
	assert.Equal(t, 2, cfg.Checkout.AddressRetryAttempts)
	assert.Equal(t, 2, cfg.Checkout.AddressRetryBackoffSeconds)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("PHARMACY_API_URL")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PHARMACY_API_URL")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PHARMACY_API_URL", "https://api.pharmacy.test")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PHARMACY_READ_TIMEOUT_SECONDS", "5")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 5, cfg.Pharmacy.ReadTimeoutSeconds)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "PHARMACY_API_URL=https://file.pharmacy.test\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(dir+"/.env", []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://file.pharmacy.test", cfg.Pharmacy.URL)
	assert.Equal(t, "debug", cfg.LogLevel)
}
