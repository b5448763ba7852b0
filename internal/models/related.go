// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package models

// RelatedArtwork is one related-artwork entry. Source records where the
// entry came from: "museum" for collection-API matches, "ai" for
// model-suggested pieces enriched through the image lookup chain.
type RelatedArtwork struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Year        string `json:"year,omitempty"`
	Movement    string `json:"movement,omitempty"`
	Museum      string `json:"museum,omitempty"`
	ImageURL    string `json:"image_url"`
	Source      string `json:"source"`
	Explanation string `json:"explanation,omitempty"`
}

// RelatedContentBundle is the assembled related content for an artwork,
// cached per (artwork, user) for a bounded TTL.
type RelatedContentBundle struct {
	SimilarArtworks     []RelatedArtwork `json:"similar_artworks"`
	ContemporaryArtists []string         `json:"contemporary_artists,omitempty"`
	HistoricalContext   string           `json:"historical_context,omitempty"`
}

// MuseumArtwork is a verified match from the museum collection API. Every
// returned match carries a non-empty primary image.
type MuseumArtwork struct {
	ObjectID   int    `json:"object_id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Year       string `json:"year,omitempty"`
	Movement   string `json:"movement,omitempty"`
	Museum     string `json:"museum"`
	ImageURL   string `json:"image_url"`
	ObjectURL  string `json:"object_url,omitempty"`
	Department string `json:"department,omitempty"`
}
