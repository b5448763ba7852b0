// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package api

// Machine-readable error codes used in the error envelope.
const (
	codeValidation      = "VALIDATION_ERROR"
	codeAuthentication  = "AUTHENTICATION_ERROR"
	codeForbidden       = "FORBIDDEN"
	codeNotFound        = "NOT_FOUND"
	codeConflict        = "CONFLICT"
	codePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	codeInternal        = "INTERNAL_ERROR"
	codeNotReady        = "NOT_READY"
	codeRateLimited     = "RATE_LIMIT_EXCEEDED"
)
