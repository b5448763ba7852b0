// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateVision(); err != nil {
		return err
	}

	if err := c.validateMuseum(); err != nil {
		return err
	}

	if err := c.validateUploads(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("ATELIER_HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("ATELIER_HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ATELIER_ENVIRONMENT must be development, staging, or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("ATELIER_DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("ATELIER_DUCKDB_THREADS must not be negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	// A weak or missing secret is tolerated in development (one is generated
	// at startup with a logged warning); production requires an explicit one.
	if c.Server.Environment == "production" {
		if c.Security.JWTSecret == "" {
			return fmt.Errorf("ATELIER_JWT_SECRET is required in production")
		}
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("ATELIER_JWT_SECRET must be at least 32 characters in production")
		}
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("ATELIER_SESSION_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateVision() error {
	if c.Vision.BaseURL != "" {
		if err := validateHTTPURL(c.Vision.BaseURL, "ATELIER_VISION_BASE_URL"); err != nil {
			return err
		}
	}
	if c.Vision.APIKey != "" && c.Vision.Model == "" {
		return fmt.Errorf("ATELIER_VISION_MODEL is required when ATELIER_VISION_API_KEY is set")
	}
	if c.Vision.Timeout <= 0 {
		return fmt.Errorf("ATELIER_VISION_TIMEOUT must be positive")
	}
	if c.Vision.MaxTokens < 1 {
		return fmt.Errorf("ATELIER_VISION_MAX_TOKENS must be at least 1")
	}
	return nil
}

func (c *Config) validateMuseum() error {
	if c.Museum.BaseURL == "" {
		return fmt.Errorf("ATELIER_MET_BASE_URL is required")
	}
	if err := validateHTTPURL(c.Museum.BaseURL, "ATELIER_MET_BASE_URL"); err != nil {
		return err
	}
	if c.Museum.ObjectTimeout <= 0 || c.Museum.SearchTimeout <= 0 || c.Museum.RelatedTimeout <= 0 {
		return fmt.Errorf("museum API timeouts must be positive")
	}
	return nil
}

func (c *Config) validateUploads() error {
	if c.Uploads.Dir == "" {
		return fmt.Errorf("ATELIER_UPLOAD_DIR is required")
	}
	if c.Uploads.MaxBytes < 1 {
		return fmt.Errorf("ATELIER_UPLOAD_MAX_BYTES must be at least 1")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.RelatedTTL <= 0 {
		return fmt.Errorf("ATELIER_CACHE_RELATED_TTL must be positive")
	}
	if c.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("ATELIER_CACHE_CLEANUP_INTERVAL must be positive")
	}
	if c.Cache.LookupLRUSize < 1 || c.Cache.RelatedLRUSize < 1 {
		return fmt.Errorf("LRU cache sizes must be at least 1")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("ATELIER_API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("ATELIER_API_MAX_PAGE_SIZE must be >= default page size")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("ATELIER_LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("ATELIER_LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

// validateHTTPURL validates that a URL is properly formatted for HTTP/HTTPS services.
// Validates: scheme (http/https), host present, no paths or query params.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
