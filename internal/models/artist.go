// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package models

// ArtistInfo is the biography payload for GET /api/v1/artworks/{id}/artist.
// Canonical artists have curated static entries used as the fallback when
// no AI client is configured or generation fails.
type ArtistInfo struct {
	Name         string   `json:"name"`
	BirthYear    string   `json:"birth_year,omitempty"`
	DeathYear    string   `json:"death_year,omitempty"`
	Nationality  string   `json:"nationality,omitempty"`
	Biography    string   `json:"biography"`
	Style        string   `json:"style,omitempty"`
	NotableWorks []string `json:"notable_works,omitempty"`
	Influences   string   `json:"influences,omitempty"`
}
