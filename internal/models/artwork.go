// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package models

import "time"

// Artwork is the persistent artwork entity, deduplicated by image content
// hash first and (title, artist) second. Confidence is monotonically
// non-decreasing across recognition events; RecognizedCount tracks how many
// times this piece has been recognized.
type Artwork struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Artist              string    `json:"artist"`
	Year                string    `json:"year,omitempty"`
	Movement            string    `json:"movement,omitempty"`
	Museum              string    `json:"museum,omitempty"`
	Description         string    `json:"description,omitempty"`
	DetailedDescription string    `json:"detailed_description,omitempty"`
	ImageURL            string    `json:"image_url,omitempty"`
	ImageHash           string    `json:"image_hash,omitempty"`
	Confidence          float64   `json:"confidence"`
	RecognizedCount     int       `json:"recognized_count"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// GalleryItem links a user to a saved artwork. The (user, artwork) pair is
// unique; adding a duplicate is a conflict.
type GalleryItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ArtworkID string    `json:"artwork_id"`
	AddedAt   time.Time `json:"added_at"`

	// Artwork is populated on list responses.
	Artwork *Artwork `json:"artwork,omitempty"`
}

// CreateArtworkRequest is the body of POST /api/v1/artworks/create, used to
// persist an artwork from a related-content suggestion.
type CreateArtworkRequest struct {
	Title    string `json:"title" validate:"required,max=500"`
	Artist   string `json:"artist" validate:"required,max=300"`
	Year     string `json:"year,omitempty" validate:"max=50"`
	Movement string `json:"movement,omitempty" validate:"max=200"`
	Museum   string `json:"museum,omitempty" validate:"max=300"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
	Source   string `json:"source,omitempty" validate:"omitempty,oneof=museum ai"`
}

// ChatRequest is the body of POST /api/v1/artworks/{id}/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatMessage is one entry of a per-(user, artwork) conversation. Role is
// "user" or "assistant".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
