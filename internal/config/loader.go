package config

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	envPrefix     = "PALDEX_"
	envConfigFile = "PALDEX_CONFIG"
	envDotenvFile = "PALDEX_DOTENV"
	defaultDotenv = ".env"
)

// Load builds a Config by layering defaults, optional files, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PALDEX_CONFIG is set
//  3. dotenv file: PALDEX_DOTENV if set, else ./.env when present
//  4. env (prefix PALDEX_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(ErrLoadConfig, "read %s: %v", path, err)
		}
	}

	if err := loadDotenv(k); err != nil {
		return nil, err
	}

	// Environment variables: PALDEX_ADDR, PALDEX_DATA_DIR, ...
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider(envPrefix, ".", envKey)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrapf(ErrLoadConfig, "read environment: %v", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrapf(ErrLoadConfig, "decode: %v", err)
	}
	cfg.CORSOrigins = normalizeOrigins(cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.Wrap(ErrInvalidConfig, "addr must not be empty")
	}
	if strings.TrimSpace(c.DataDir) == "" && strings.TrimSpace(c.DataURL) == "" {
		return errors.Wrap(ErrInvalidConfig, "one of data_dir or data_url must be set")
	}
	if c.LoadTimeoutMS < 0 {
		return errors.Wrap(ErrInvalidConfig, "load_timeout_ms must not be negative")
	}
	if c.SuggestLimit < 0 {
		return errors.Wrap(ErrInvalidConfig, "suggest_limit must not be negative")
	}
	return nil
}

// loadDotenv reads PALDEX_ keys from a .env file without touching the
// process environment. An explicit PALDEX_DOTENV must exist; the default
// ./.env is optional.
func loadDotenv(k *koanf.Koanf) error {
	path, explicit := os.LookupEnv(envDotenvFile)
	if !explicit || path == "" {
		path = defaultDotenv
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return errors.Wrapf(ErrLoadConfig, "read %s: %v", path, err)
	}
	for name, value := range vars {
		if !strings.HasPrefix(strings.ToUpper(name), envPrefix) {
			continue
		}
		if err := k.Set(envKey(name), value); err != nil {
			return errors.Wrapf(ErrLoadConfig, "set %s: %v", name, err)
		}
	}
	return nil
}

// envKey maps PALDEX_DATA_DIR -> data_dir.
func envKey(s string) string {
	s = strings.ToLower(s)
	return strings.TrimPrefix(s, strings.ToLower(envPrefix))
}
