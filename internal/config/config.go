// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment variables
// and an optional YAML config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via ATELIER_* variables
//
// Example - Load configuration from environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Server.Port, cfg.Database.Path, etc. are now populated
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Badger   BadgerConfig   `koanf:"badger"`
	Security SecurityConfig `koanf:"security"`
	Vision   VisionConfig   `koanf:"vision"`
	Museum   MuseumConfig   `koanf:"museum"`
	Uploads  UploadsConfig  `koanf:"uploads"`
	Cache    CacheConfig    `koanf:"cache"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - ATELIER_HTTP_PORT: Listen port (default: 8270)
//   - ATELIER_HTTP_HOST: Bind address (default: 0.0.0.0)
//   - ATELIER_HTTP_TIMEOUT: Read/write timeout (default: 30s)
//   - ATELIER_ENVIRONMENT: "development", "staging", "production" (default: development)
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings.
//
// Environment Variables:
//   - ATELIER_DUCKDB_PATH: Database file path (default: data/atelier.db)
//   - ATELIER_DUCKDB_MAX_MEMORY: Memory limit (default: 512MB)
//   - ATELIER_DUCKDB_THREADS: Thread count, 0 = NumCPU (default: 0)
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"`
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
}

// BadgerConfig holds Badger key-value store settings for chat history.
//
// Environment Variables:
//   - ATELIER_BADGER_PATH: Store directory (default: data/chat)
//   - ATELIER_BADGER_GC_INTERVAL: Value-log GC interval (default: 10m)
//   - ATELIER_BADGER_GC_DISCARD_RATIO: GC discard ratio (default: 0.5)
type BadgerConfig struct {
	Path           string        `koanf:"path"`
	GCInterval     time.Duration `koanf:"gc_interval"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio"`
}

// SecurityConfig holds authentication and rate limiting settings.
//
// Environment Variables:
//   - ATELIER_JWT_SECRET: HMAC secret for JWT signing (required in production)
//   - ATELIER_SESSION_TIMEOUT: Token lifetime (default: 24h)
//   - ATELIER_DISABLE_RATE_LIMIT: Disable all rate limiting (default: false)
//   - ATELIER_CORS_ORIGINS: Comma-separated allowed origins
//   - ATELIER_TRUSTED_PROXIES: Comma-separated trusted proxy CIDRs
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// VisionConfig holds settings for the vision-capable AI model used for
// artwork recognition and content generation. When APIKey is empty every
// generator degrades to its deterministic static fallback.
//
// Environment Variables:
//   - ATELIER_VISION_API_KEY: API key (empty = static fallbacks only)
//   - ATELIER_VISION_BASE_URL: OpenAI-compatible API base URL
//   - ATELIER_VISION_MODEL: Model identifier (default: gpt-4o)
//   - ATELIER_VISION_TIMEOUT: Per-call timeout (default: 30s)
//   - ATELIER_VISION_MAX_TOKENS: Completion token cap (default: 1024)
type VisionConfig struct {
	APIKey    string        `koanf:"api_key"`
	BaseURL   string        `koanf:"base_url"`
	Model     string        `koanf:"model"`
	Timeout   time.Duration `koanf:"timeout"`
	MaxTokens int           `koanf:"max_tokens"`
}

// MuseumConfig holds Metropolitan Museum of Art Collection API settings.
//
// Environment Variables:
//   - ATELIER_MET_BASE_URL: Collection API base URL
//   - ATELIER_MET_OBJECT_TIMEOUT: Object detail timeout (default: 5s)
//   - ATELIER_MET_SEARCH_TIMEOUT: Single search timeout (default: 5s)
//   - ATELIER_MET_RELATED_TIMEOUT: Related search timeout (default: 10s)
type MuseumConfig struct {
	BaseURL        string        `koanf:"base_url"`
	ObjectTimeout  time.Duration `koanf:"object_timeout"`
	SearchTimeout  time.Duration `koanf:"search_timeout"`
	RelatedTimeout time.Duration `koanf:"related_timeout"`
}

// UploadsConfig holds image upload settings.
//
// Environment Variables:
//   - ATELIER_UPLOAD_DIR: Upload directory (default: data/uploads)
//   - ATELIER_UPLOAD_MAX_BYTES: Max upload size (default: 16777216 = 16MB)
type UploadsConfig struct {
	Dir      string `koanf:"dir"`
	MaxBytes int64  `koanf:"max_bytes"`
}

// CacheConfig holds TTL cache and LRU memoization settings.
//
// Environment Variables:
//   - ATELIER_CACHE_RELATED_TTL: Related-content bundle TTL (default: 30m)
//   - ATELIER_CACHE_CLEANUP_INTERVAL: Janitor sweep interval (default: 5m)
//   - ATELIER_CACHE_LOOKUP_LRU_SIZE: Museum single-lookup LRU size (default: 100)
//   - ATELIER_CACHE_RELATED_LRU_SIZE: Museum related-search LRU size (default: 50)
type CacheConfig struct {
	RelatedTTL      time.Duration `koanf:"related_ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	LookupLRUSize   int           `koanf:"lookup_lru_size"`
	RelatedLRUSize  int           `koanf:"related_lru_size"`
}

// APIConfig holds API pagination settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - ATELIER_LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - ATELIER_LOG_FORMAT: json, console (default: json)
//   - ATELIER_LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load loads configuration using Koanf v2 with layered sources.
// This is the single entry point used by cmd/server.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
