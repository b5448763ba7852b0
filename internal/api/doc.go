// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

// Package api wires the HTTP surface: a chi router with per-group rate
// limits, JWT authentication, and JSON responses wrapped in the standard
// {status, data, metadata, error} envelope.
//
// Handlers never surface raw errors to clients. Domain failures map to
// structured error codes (VALIDATION_ERROR, NOT_FOUND, CONFLICT, ...) and
// external-service degradation produces fallback payloads, not 5xx noise.
package api
