// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package models

// RecognitionResult is the outcome of the recognition gate. It is never
// persisted directly; a successful result is reconciled into an Artwork.
//
// A claimed success is demoted to failure when title or artist is missing
// or confidence is below the acceptance threshold. Failures always carry a
// user-facing message and retry suggestions, never an error.
type RecognitionResult struct {
	Success     bool    `json:"success"`
	IsArtwork   bool    `json:"is_artwork"`
	Title       string  `json:"title,omitempty"`
	Artist      string  `json:"artist,omitempty"`
	Year        string  `json:"year,omitempty"`
	Movement    string  `json:"movement,omitempty"`
	Museum      string  `json:"museum,omitempty"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`

	// Failure fields.
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// RecognizeResponse is the payload of POST /api/v1/recognize.
type RecognizeResponse struct {
	Recognition *RecognitionResult `json:"recognition"`
	Artwork     *Artwork           `json:"artwork,omitempty"`
	Cached      bool               `json:"cached"`
	XPAwarded   int                `json:"xp_awarded"`
}
