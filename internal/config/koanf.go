// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/atelier/config.yaml",
	"/etc/atelier/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "ATELIER_CONFIG_PATH"

// envPrefix is the required prefix for configuration environment variables.
const envPrefix = "ATELIER_"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8270,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:                   "data/atelier.db",
			MaxMemory:              "512MB",
			Threads:                runtime.NumCPU(),
			PreserveInsertionOrder: true,
		},
		Badger: BadgerConfig{
			Path:           "data/chat",
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			SessionTimeout:    24 * time.Hour,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"http://localhost:3000"},
			TrustedProxies:    []string{},
		},
		Vision: VisionConfig{
			APIKey:    "",
			BaseURL:   "https://api.openai.com/v1",
			Model:     "gpt-4o",
			Timeout:   30 * time.Second,
			MaxTokens: 1024,
		},
		Museum: MuseumConfig{
			BaseURL:        "https://collectionapi.metmuseum.org",
			ObjectTimeout:  5 * time.Second,
			SearchTimeout:  5 * time.Second,
			RelatedTimeout: 10 * time.Second,
		},
		Uploads: UploadsConfig{
			Dir:      "data/uploads",
			MaxBytes: 16 << 20,
		},
		Cache: CacheConfig{
			RelatedTTL:      30 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			LookupLRUSize:   100,
			RelatedLRUSize:  50,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// ATELIER_HTTP_PORT -> server.port
	// ATELIER_VISION_API_KEY -> vision.api_key
	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Only variables in the explicit mapping are honored; everything else is
// dropped so unrelated ATELIER_* variables cannot corrupt the config tree.
//
// Examples:
//   - ATELIER_HTTP_PORT -> server.port
//   - ATELIER_DUCKDB_PATH -> database.path
//   - ATELIER_VISION_API_KEY -> vision.api_key
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	envMappings := map[string]string{
		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Database mappings
		"duckdb_path":       "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",

		// Badger mappings
		"badger_path":             "badger.path",
		"badger_gc_interval":      "badger.gc_interval",
		"badger_gc_discard_ratio": "badger.gc_discard_ratio",

		// Security mappings
		"jwt_secret":         "security.jwt_secret",
		"session_timeout":    "security.session_timeout",
		"disable_rate_limit": "security.rate_limit_disabled",
		"cors_origins":       "security.cors_origins",
		"trusted_proxies":    "security.trusted_proxies",

		// Vision model mappings
		"vision_api_key":    "vision.api_key",
		"vision_base_url":   "vision.base_url",
		"vision_model":      "vision.model",
		"vision_timeout":    "vision.timeout",
		"vision_max_tokens": "vision.max_tokens",

		// Museum API mappings
		"met_base_url":        "museum.base_url",
		"met_object_timeout":  "museum.object_timeout",
		"met_search_timeout":  "museum.search_timeout",
		"met_related_timeout": "museum.related_timeout",

		// Upload mappings
		"upload_dir":       "uploads.dir",
		"upload_max_bytes": "uploads.max_bytes",

		// Cache mappings
		"cache_related_ttl":      "cache.related_ttl",
		"cache_cleanup_interval": "cache.cleanup_interval",
		"cache_lookup_lru_size":  "cache.lookup_lru_size",
		"cache_related_lru_size": "cache.related_lru_size",

		// API mappings
		"api_default_page_size": "api.default_page_size",
		"api_max_page_size":     "api.max_page_size",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if path, ok := envMappings[key]; ok {
		return path
	}

	// Unmapped variables are ignored
	return ""
}
