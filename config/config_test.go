package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hardware-mapper/config"
	"hardware-mapper/engine"
)

var configVars = []string{
	"ENV", "PORT", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"MAPPINGS_FILE", "MAPPING_REGISTRY_BASE", "MCP_SERVER_URL", "MCP_BRIDGE_BASE", "CODEGEN_BASE",
	"BOARD_CATALOG_FILE", "BOARD_IMAGE_DIR", "BOARD_IMAGE_CACHE_DIR", "GOOGLE_APPLICATION_CREDENTIALS",
	"CHROME_PATH", "SELECTION_MODE", "REQUEST_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configVars {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "mappings.json", cfg.MappingsFile)
	assert.Equal(t, engine.SingleMode, cfg.SelectionMode)
	assert.Zero(t, cfg.RequestTimeout)
	assert.Zero(t, cfg.HTTPClient().Timeout)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", ":9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "mapper")
	t.Setenv("DB_NAME", "pins")
	t.Setenv("MAPPING_REGISTRY_BASE", "http://registry:8000")
	t.Setenv("SELECTION_MODE", "MULTI")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "host=db port=5432 user=mapper password= dbname=pins sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, "http://registry:8000", cfg.CodegenBase, "code generator defaults to the registry host")
	assert.Equal(t, engine.MultiMode, cfg.SelectionMode)
	assert.Equal(t, 5*time.Second, cfg.HTTPClient().Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("SELECTION_MODE", "all")
	_, err := config.Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err = config.Load()
	require.Error(t, err)
}
