// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

// Package config provides centralized configuration management for all
// application components.
//
// Configuration is loaded with Koanf v2 from three layered sources, in
// order of increasing priority: built-in defaults, an optional YAML config
// file, and ATELIER_* environment variables. The resulting Config struct is
// validated once at startup and is immutable afterwards.
package config
