// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package models

import "time"

// APIResponse is the standard envelope for every JSON response.
//
// Example success response:
//
//	{
//	  "status": "success",
//	  "data": {"artworks": [...], "total": 42},
//	  "metadata": {"timestamp": "2026-02-11T12:00:00Z"}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "NOT_FOUND", "message": "Artwork not found"},
//	  "metadata": {"timestamp": "2026-02-11T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata. Cached is set when the payload was
// served from a cache rather than computed for this request.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Cached    bool      `json:"cached,omitempty"`
}

// APIError is the structured error body inside an error envelope.
//
// Common codes: VALIDATION_ERROR, AUTHENTICATION_ERROR, FORBIDDEN,
// NOT_FOUND, CONFLICT, PAYLOAD_TOO_LARGE, INTERNAL_ERROR, NOT_READY.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
