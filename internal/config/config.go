// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config holding the defaults.
// - Load(ctx) layers a YAML file, a .env file and the environment on top.
// - Errors are wrapped around this package's sentinels.
package config

import (
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir is the directory holding pals.json, pals_raw.json and assets/.
	DataDir string `koanf:"data_dir"`

	// DataURL is a base URL serving the same files. It wins over DataDir.
	DataURL string `koanf:"data_url"`

	// LoadTimeoutMS bounds the whole dataset load.
	LoadTimeoutMS int `koanf:"load_timeout_ms"`

	// SuggestLimit caps the name suggestions returned for an empty search.
	// Zero disables suggestions.
	SuggestLimit int `koanf:"suggest_limit"`

	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string `koanf:"cors_origins"`

	// ServeData exposes DataDir under /data/ so the UI can load icons.
	ServeData bool `koanf:"serve_data"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		DataDir:       "data",
		LoadTimeoutMS: 10_000,
		SuggestLimit:  5,
		CORSOrigins:   []string{"*"},
		ServeData:     true,
	}
}

// LoadTimeout returns LoadTimeoutMS as a duration.
func (c *Config) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutMS) * time.Millisecond
}

// normalizeOrigins splits comma-joined entries, as set from a single env var.
func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
