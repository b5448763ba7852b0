// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

// Package vision talks to an OpenAI-compatible chat/vision API and turns
// its free-form output into the service's domain types.
//
// The recognition gate is the strictest consumer: model output is parsed,
// repaired when slightly malformed, and demoted to a guidance response when
// incomplete or low-confidence. It never returns an error to its caller.
//
// Content generators (descriptions, biographies, chat replies, quizzes,
// related suggestions) follow a common pattern: use the AI path when an API
// key is configured, fall back to deterministic static content otherwise or
// on any call or parse failure.
package vision
