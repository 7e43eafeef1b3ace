package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SHOPIFY_API_KEY", "key")
	t.Setenv("SHOPIFY_API_PASSWORD", "secret")
	t.Setenv("SHOPIFY_STORE_NAME", "demo-store")
	t.Setenv("PIPEDRIVE_API_TOKEN", "token")
}

func TestLoadFile_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Duration(0), cfg.UpstreamTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Equal(t, "2021-04", cfg.Shopify.APIVersion)
	assert.Equal(t, "https://demo-store.myshopify.com", cfg.Shopify.StoreURL())
	assert.Equal(t, "https://api.pipedrive.com/v1", cfg.Pipedrive.BaseURL)
	assert.Equal(t, "USD", cfg.Pipedrive.Currency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "15")
	t.Setenv("SHOPIFY_BASE_URL", "http://127.0.0.1:8081/")
	t.Setenv("PIPEDRIVE_CURRENCY", "eur")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "http://127.0.0.1:8081", cfg.Shopify.StoreURL())
	assert.Equal(t, "EUR", cfg.Pipedrive.Currency)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
}

func TestLoadFile_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "SHOPIFY_API_KEY=file-key\nSHOPIFY_API_PASSWORD=file-secret\nSHOPIFY_STORE_NAME=file-store\nPIPEDRIVE_API_TOKEN=file-token\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	// empty variables fall through to the file
	t.Setenv("SHOPIFY_API_KEY", "")
	t.Setenv("SHOPIFY_STORE_NAME", "")
	t.Setenv("PIPEDRIVE_API_TOKEN", "env-token")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Shopify.APIKey)
	assert.Equal(t, "file-store", cfg.Shopify.StoreName)
	assert.Equal(t, "env-token", cfg.Pipedrive.APIToken)
}

func TestLoadFile_MissingDotEnvIsIgnored(t *testing.T) {
	setRequired(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
}

func TestLoadFile_MissingCredentials(t *testing.T) {
	t.Setenv("SHOPIFY_API_KEY", "")
	t.Setenv("SHOPIFY_API_PASSWORD", "")
	t.Setenv("SHOPIFY_STORE_NAME", "")
	t.Setenv("PIPEDRIVE_API_TOKEN", "")

	_, err := LoadFile("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHOPIFY_API_KEY")
	assert.Contains(t, err.Error(), "PIPEDRIVE_API_TOKEN")
}
