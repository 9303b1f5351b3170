package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath      = "CONFIG_PATH"
	EnvUpstreamBaseURL = "UPSTREAM_BASE_URL"
	EnvResolverTTL     = "RESOLVER_TTL"
	EnvDBConnection    = "DB_CONNECTION"
)

// AppConfig holds resolved application configuration values.
type AppConfig struct {
	ConfigPath string
}

// LoadFromEnv loads app config from environment variables.
func LoadFromEnv() (AppConfig, error) {
	return AppConfig{ConfigPath: ResolveConfigPath(os.Getenv(EnvConfigPath))}, nil
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// ErrMissingUpstreamBaseURL indicates no upstream base URL is configured.
var ErrMissingUpstreamBaseURL = errors.New("missing upstream base url (set `upstream.base-url` in config file or UPSTREAM_BASE_URL)")

// UpstreamConfig holds connection settings for the backend REST API.
type UpstreamConfig struct {
	BaseURL string        `yaml:"base-url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ResolverConfig holds foreign-key resolver tuning.
type ResolverConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

const (
	defaultUpstreamTimeout = 10 * time.Second
	defaultResolverTTL     = 5 * time.Minute
)

// LoadUpstreamConfig loads backend connection settings from the YAML
// config file, with environment overrides.
func LoadUpstreamConfig(configPath string) (UpstreamConfig, error) {
	// fileConfig maps the YAML fields needed for upstream settings.
	type fileConfig struct {
		Upstream UpstreamConfig `yaml:"upstream"`
	}

	result := UpstreamConfig{Timeout: defaultUpstreamTimeout}

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			result = cfg.Upstream
		}
	}

	if base := strings.TrimSpace(os.Getenv(EnvUpstreamBaseURL)); base != "" {
		result.BaseURL = base
	}
	if result.Timeout <= 0 {
		result.Timeout = defaultUpstreamTimeout
	}

	result.BaseURL = strings.TrimRight(strings.TrimSpace(result.BaseURL), "/")
	if result.BaseURL == "" {
		return result, ErrMissingUpstreamBaseURL
	}
	return result, nil
}

// LoadResolverConfig loads resolver settings from the YAML config file,
// with environment overrides. Invalid values fall back to defaults.
func LoadResolverConfig(configPath string) (ResolverConfig, error) {
	// fileConfig maps the YAML fields needed for resolver settings.
	type fileConfig struct {
		Resolver ResolverConfig `yaml:"resolver"`
	}

	result := ResolverConfig{TTL: defaultResolverTTL}

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil && cfg.Resolver.TTL > 0 {
			result = cfg.Resolver
		}
	}

	if ttlRaw := strings.TrimSpace(os.Getenv(EnvResolverTTL)); ttlRaw != "" {
		if ttl, errParse := time.ParseDuration(ttlRaw); errParse == nil && ttl > 0 {
			result.TTL = ttl
		}
	}

	if result.TTL <= 0 {
		result.TTL = defaultResolverTTL
	}
	return result, nil
}

// ErrMissingDatabaseDSN indicates no database DSN is present for the dev backend.
var ErrMissingDatabaseDSN = errors.New("missing database dsn (set `database-dsn` in config file or DB_CONNECTION)")

// LoadDatabaseDSN reads the dev backend database DSN, env first.
func LoadDatabaseDSN(configPath string) (string, error) {
	if dsn := strings.TrimSpace(os.Getenv(EnvDBConnection)); dsn != "" {
		return dsn, nil
	}

	// fileConfig maps the YAML fields needed for DSN resolution.
	type fileConfig struct {
		DatabaseDSN string `yaml:"database-dsn"`
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("read config file: %w", err)
	}

	var cfg fileConfig
	if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
		return "", fmt.Errorf("parse config file: %w", errUnmarshal)
	}

	if dsn := strings.TrimSpace(cfg.DatabaseDSN); dsn != "" {
		return dsn, nil
	}
	return "", ErrMissingDatabaseDSN
}
