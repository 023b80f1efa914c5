// Package config loads settleup's runtime configuration.
package config

import "time"

// Config holds server settings. Fields are tagged for koanf.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is "text" (coloured) or "json".
	LogFormat string `koanf:"log_format"`

	MetricsEnabled bool   `koanf:"metrics_enabled"`
	MetricsPath    string `koanf:"metrics_path"`

	// CORSOrigin is sent as Access-Control-Allow-Origin.
	CORSOrigin string `koanf:"cors_origin"`

	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`

	// MaxSessions caps in-memory sessions. Zero means unlimited.
	MaxSessions int `koanf:"max_sessions"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:              ":8080",
		LogLevel:          "info",
		LogFormat:         "text",
		MetricsEnabled:    true,
		MetricsPath:       "/metrics",
		CORSOrigin:        "*",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   15 * time.Second,
		MaxSessions:       10_000,
	}
}
