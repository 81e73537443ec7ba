// Package config reads brokerdesk settings from the environment,
// falling back to defaults for any unset values. A .env file in the
// working directory is honored when present.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	// APIBaseURL is the CRM backend root, including the /api prefix.
	APIBaseURL string
	// APITimeoutMs bounds every request round trip.
	APITimeoutMs int
	// DBPath is the local SQLite file holding the saved session.
	DBPath string
	// ExportDir receives generated CSV files.
	ExportDir string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Default returns a Config with sensible defaults. The database lives
// under ~/.brokerdesk, exports land in the working directory.
func Default() Config {
	cfg := Config{
		APIBaseURL:   "http://localhost:8000/api",
		APITimeoutMs: 15000,
		ExportDir:    ".",
		LogLevel:     "warn",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.DBPath = filepath.Join(home, ".brokerdesk", "brokerdesk.db")
	} else {
		cfg.DBPath = "brokerdesk.db"
	}
	return cfg
}

// Load reads configuration from the environment. A .env file, if one
// exists, is loaded first without overriding variables already set.
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv("BROKERDESK_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("BROKERDESK_API_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APITimeoutMs = n
		}
	}
	if v := os.Getenv("BROKERDESK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("BROKERDESK_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("BROKERDESK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}
