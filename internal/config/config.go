// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite database file.
	DBPath string `koanf:"db_path"`

	// SuggestURL is the base URL of the mapping similarity service.
	// Empty disables suggestion lookups.
	SuggestURL string `koanf:"suggest_url"`

	// SuggestTimeoutMS bounds a single similarity lookup.
	SuggestTimeoutMS int `koanf:"suggest_timeout_ms"`

	// ScanConcurrency bounds concurrent lookups during a suggestion scan.
	ScanConcurrency int `koanf:"scan_concurrency"`

	// DedupeSize sets the size of the ingest idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		DBPath:           "drillscore.db",
		SuggestURL:       "",
		SuggestTimeoutMS: 5_000,
		ScanConcurrency:  runtime.NumCPU() * 2,
		DedupeSize:       50_000,
	}
}
