// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"hardware-mapper/engine"
)

// Config holds every setting the commands and the server read at startup
type Config struct {
	Environment string
	Port        string

	// DatabaseURL selects the Postgres store; empty means the JSON file store at MappingsFile
	DatabaseURL  string
	MappingsFile string

	RegistryBase  string
	MCPServerURL  string
	MCPBridgeBase string
	CodegenBase   string

	CatalogFile      string
	ImageDir         string
	ImageCacheDir    string
	DriveCredentials string
	ChromePath       string

	SelectionMode  engine.SelectionMode
	RequestTimeout time.Duration
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	mode, err := engine.ParseSelectionMode(os.Getenv("SELECTION_MODE"))
	if err != nil {
		return nil, fmt.Errorf("invalid SELECTION_MODE: %w", err)
	}

	var timeout time.Duration
	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", raw, err)
		}
		if timeout < 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: must not be negative", raw)
		}
	}

	// Remove leading colon if present (PORT from Render doesn't include it)
	port := strings.TrimPrefix(getenv("PORT", "8080"), ":")

	registryBase := os.Getenv("MAPPING_REGISTRY_BASE")
	codegenBase := getenv("CODEGEN_BASE", registryBase)

	return &Config{
		Environment:      os.Getenv("ENV"),
		Port:             port,
		DatabaseURL:      databaseURL(),
		MappingsFile:     getenv("MAPPINGS_FILE", "mappings.json"),
		RegistryBase:     registryBase,
		MCPServerURL:     os.Getenv("MCP_SERVER_URL"),
		MCPBridgeBase:    os.Getenv("MCP_BRIDGE_BASE"),
		CodegenBase:      codegenBase,
		CatalogFile:      os.Getenv("BOARD_CATALOG_FILE"),
		ImageDir:         getenv("BOARD_IMAGE_DIR", "static"),
		ImageCacheDir:    getenv("BOARD_IMAGE_CACHE_DIR", "cache/images"),
		DriveCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ChromePath:       os.Getenv("CHROME_PATH"),
		SelectionMode:    mode,
		RequestTimeout:   timeout,
	}, nil
}

// HTTPClient returns the client used for collaborator calls. A zero
// RequestTimeout means no timeout.
func (c *Config) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.RequestTimeout}
}

// databaseURL returns DATABASE_URL, or a DSN built from the DB_* variables,
// or "" when neither is configured
func databaseURL() string {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return ""
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, getenv("DB_PORT", "5432"), user, os.Getenv("DB_PASSWORD"), dbname, getenv("DB_SSLMODE", "disable"))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
